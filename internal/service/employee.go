package service

import (
	"context"
	"fmt"

	"github.com/avolkov/StaffKeeper/internal/apperr"
	"github.com/avolkov/StaffKeeper/internal/models"
)

// EmployeeRepository defines the persistence operations required by the
// employee service.
type EmployeeRepository interface {
	Insert(ctx context.Context, e models.Employee) (string, error)
	List(ctx context.Context) ([]models.Employee, error)
	GetByID(ctx context.Context, id string) (*models.Employee, error)
	Update(ctx context.Context, id string, fields models.Partial) (int64, error)
	Delete(ctx context.Context, id string) error
	FindByEmail(ctx context.Context, email string) ([]models.Employee, error)
}

// EmployeeService implements employee collection operations by
// delegating to an EmployeeRepository. It repeats the duplicate-email
// check server-side before every insert and email-changing update.
// The check and the following write are still two statements, so two
// concurrent submissions can both pass it.
type EmployeeService struct {
	repo EmployeeRepository
}

// NewEmployeeService constructs a new EmployeeService using the provided
// repository.
func NewEmployeeService(repo EmployeeRepository) *EmployeeService {
	return &EmployeeService{repo: repo}
}

// Create stores a new employee record and returns the generated id.
// Fails with apperr.ErrConflict when another record holds the email.
func (s *EmployeeService) Create(ctx context.Context, e models.Employee) (string, error) {
	inUse, err := s.emailInUse(ctx, e.Email, "")
	if err != nil {
		return "", err
	}
	if inUse {
		return "", apperr.ErrConflict
	}
	return s.repo.Insert(ctx, e)
}

// List returns every employee record ordered ascending by name.
func (s *EmployeeService) List(ctx context.Context) ([]models.Employee, error) {
	return s.repo.List(ctx)
}

// Get fetches one record. Fails with apperr.ErrNotFound when the id does
// not resolve.
func (s *EmployeeService) Get(ctx context.Context, id string) (*models.Employee, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, apperr.ErrNotFound
	}
	return e, nil
}

// Update applies only the supplied fields. When the partial includes an
// email, the uniqueness check is re-run excluding the record itself.
// Fails with apperr.ErrNotFound when the id does not resolve.
func (s *EmployeeService) Update(ctx context.Context, id string, fields models.Partial) error {
	if raw, ok := fields["email"]; ok {
		email, ok := raw.(string)
		if !ok {
			return fmt.Errorf("update: email must be a string")
		}
		inUse, err := s.emailInUse(ctx, email, id)
		if err != nil {
			return err
		}
		if inUse {
			return apperr.ErrConflict
		}
	}

	affected, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return err
	}
	if affected == 0 && len(fields) > 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Delete removes a record. Deleting an absent id succeeds.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// FindByEmail returns all records whose email matches exactly.
func (s *EmployeeService) FindByEmail(ctx context.Context, email string) ([]models.Employee, error) {
	return s.repo.FindByEmail(ctx, email)
}

// emailInUse reports whether a record other than excludeID holds the email.
func (s *EmployeeService) emailInUse(ctx context.Context, email, excludeID string) (bool, error) {
	matches, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	for _, m := range matches {
		if m.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}
