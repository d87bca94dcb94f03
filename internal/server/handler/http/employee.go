// Package http provides HTTP handlers for the employee document
// collection.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avolkov/StaffKeeper/internal/apperr"
	"github.com/avolkov/StaffKeeper/internal/models"
)

// EmployeeService defines the collection operations required by the
// employee HTTP handlers.
type EmployeeService interface {
	Create(ctx context.Context, e models.Employee) (string, error)
	List(ctx context.Context) ([]models.Employee, error)
	Get(ctx context.Context, id string) (*models.Employee, error)
	Update(ctx context.Context, id string, fields models.Partial) error
	Delete(ctx context.Context, id string) error
	FindByEmail(ctx context.Context, email string) ([]models.Employee, error)
}

// EmployeeHandler handles HTTP requests for the employee collection.
type EmployeeHandler struct {
	// EmployeeService performs the underlying collection operations.
	EmployeeService EmployeeService
}

// List returns all employee records ordered ascending by name. With
// ?field=email&value=<v> it instead returns records matching the email
// exactly; email is the only filterable field.
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	field := r.URL.Query().Get("field")

	var (
		employees []models.Employee
		err       error
	)
	switch field {
	case "":
		employees, err = h.EmployeeService.List(r.Context())
	case "email":
		employees, err = h.EmployeeService.FindByEmail(r.Context(), r.URL.Query().Get("value"))
	default:
		http.Error(w, "unsupported filter field", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if employees == nil {
		employees = []models.Employee{}
	}
	writeJSON(w, http.StatusOK, employees)
}

// Create inserts a new employee record and returns the generated id.
// A duplicate email yields 409.
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var e models.Employee
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil || e.Name == "" || e.Email == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	e.ID = ""

	id, err := h.EmployeeService.Create(r.Context(), e)
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			http.Error(w, "email already exists", http.StatusConflict)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// Get returns one employee record, or 404 when the id does not resolve.
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	e, err := h.EmployeeService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			http.Error(w, "employee not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, e)
}

// Update applies the supplied fields to a record. 409 on an email
// collision, 404 on a missing id.
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var fields models.Partial
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	delete(fields, "id")

	if err := h.EmployeeService.Update(r.Context(), id, fields); err != nil {
		switch {
		case errors.Is(err, apperr.ErrConflict):
			http.Error(w, "email already exists", http.StatusConflict)
		case errors.Is(err, apperr.ErrNotFound):
			http.Error(w, "employee not found", http.StatusNotFound)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a record. Deleting an absent id still returns 204.
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.EmployeeService.Delete(r.Context(), id); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
