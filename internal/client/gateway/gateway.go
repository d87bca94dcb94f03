// Package gateway adapts the external document-store capability into
// typed employee operations. It holds no state of its own.
package gateway

import (
	"context"
	"fmt"

	"github.com/avolkov/StaffKeeper/internal/apperr"
	"github.com/avolkov/StaffKeeper/internal/models"
)

// Document is one schemaless record as the store returns it: the
// generated identifier plus a field map.
type Document struct {
	ID     string
	Fields map[string]any
}

// DocumentStore is the external document-store capability. The gateway
// imposes the Employee schema on top of it.
type DocumentStore interface {
	// Insert stores a new document and returns the generated id.
	Insert(ctx context.Context, fields map[string]any) (string, error)
	// GetAll returns every document, sorted by the named field.
	GetAll(ctx context.Context, orderBy string, ascending bool) ([]Document, error)
	// GetByID returns the document, or nil without error when absent.
	GetByID(ctx context.Context, id string) (*Document, error)
	// Update applies only the supplied fields to a document.
	Update(ctx context.Context, id string, fields map[string]any) error
	// Delete removes a document; removing an absent id is not an error.
	Delete(ctx context.Context, id string) error
	// QueryByField returns documents whose field equals value exactly.
	QueryByField(ctx context.Context, field, value string) ([]Document, error)
}

// Gateway wraps the document store behind employee-typed operations plus
// the derived email-uniqueness check.
type Gateway struct {
	store DocumentStore
}

// New constructs a Gateway over the given document store.
func New(store DocumentStore) *Gateway {
	return &Gateway{store: store}
}

// Insert stores a new employee record and returns the generated id.
// Fails with apperr.ErrConflict when another record already holds the
// email. The check and the insert are two separate store calls, so two
// concurrent inserts with the same fresh email can both pass.
func (g *Gateway) Insert(ctx context.Context, e models.Employee) (string, error) {
	exists, err := g.CheckEmailExists(ctx, e.Email, "")
	if err != nil {
		return "", err
	}
	if exists {
		return "", apperr.ErrConflict
	}

	id, err := g.store.Insert(ctx, fieldsOf(e))
	if err != nil {
		return "", fmt.Errorf("insert employee: %w", err)
	}
	return id, nil
}

// ListAll returns every employee record sorted ascending by name.
func (g *Gateway) ListAll(ctx context.Context) ([]models.Employee, error) {
	docs, err := g.store.GetAll(ctx, "name", true)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	employees := make([]models.Employee, 0, len(docs))
	for _, d := range docs {
		employees = append(employees, employeeFromDoc(d))
	}
	return employees, nil
}

// FetchByID returns one record, or apperr.ErrNotFound when the id does
// not resolve.
func (g *Gateway) FetchByID(ctx context.Context, id string) (*models.Employee, error) {
	doc, err := g.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch employee: %w", err)
	}
	if doc == nil {
		return nil, apperr.ErrNotFound
	}
	e := employeeFromDoc(*doc)
	return &e, nil
}

// Patch applies only the supplied fields to the record. When the partial
// includes an email, the uniqueness check is re-run excluding the record
// itself; apperr.ErrConflict on collision.
func (g *Gateway) Patch(ctx context.Context, id string, fields models.Partial) error {
	if raw, ok := fields["email"]; ok {
		email, _ := raw.(string)
		exists, err := g.CheckEmailExists(ctx, email, id)
		if err != nil {
			return err
		}
		if exists {
			return apperr.ErrConflict
		}
	}

	if err := g.store.Update(ctx, id, fields); err != nil {
		return fmt.Errorf("patch employee: %w", err)
	}
	return nil
}

// Delete removes the record. Deleting an id that no longer exists is
// reported as success.
func (g *Gateway) Delete(ctx context.Context, id string) error {
	if err := g.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}

// CheckEmailExists reports whether any record holds the email. When
// excludeID is non-empty, only a different record counts.
func (g *Gateway) CheckEmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	docs, err := g.store.QueryByField(ctx, "email", email)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	for _, d := range docs {
		if d.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// fieldsOf flattens an employee into the document field map, dropping
// the identifier.
func fieldsOf(e models.Employee) map[string]any {
	return map[string]any{
		"name":        e.Name,
		"email":       e.Email,
		"position":    e.Position,
		"department":  e.Department,
		"salary":      e.Salary,
		"hireDate":    e.HireDate,
		"address":     e.Address,
		"dob":         e.DOB,
		"skill":       e.Skill,
		"nationality": e.Nationality,
	}
}

func employeeFromDoc(d Document) models.Employee {
	return models.Employee{
		ID:          d.ID,
		Name:        str(d.Fields["name"]),
		Email:       str(d.Fields["email"]),
		Position:    str(d.Fields["position"]),
		Department:  str(d.Fields["department"]),
		Salary:      num(d.Fields["salary"]),
		HireDate:    str(d.Fields["hireDate"]),
		Address:     str(d.Fields["address"]),
		DOB:         str(d.Fields["dob"]),
		Skill:       str(d.Fields["skill"]),
		Nationality: str(d.Fields["nationality"]),
	}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

// num tolerates the numeric types JSON decoding can produce.
func num(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}
