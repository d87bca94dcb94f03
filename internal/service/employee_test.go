package service

import (
	"context"
	"errors"
	"testing"

	"github.com/avolkov/StaffKeeper/internal/apperr"
	"github.com/avolkov/StaffKeeper/internal/models"
)

type mockEmployeeRepo struct {
	InsertFunc      func(ctx context.Context, e models.Employee) (string, error)
	ListFunc        func(ctx context.Context) ([]models.Employee, error)
	GetByIDFunc     func(ctx context.Context, id string) (*models.Employee, error)
	UpdateFunc      func(ctx context.Context, id string, fields models.Partial) (int64, error)
	DeleteFunc      func(ctx context.Context, id string) error
	FindByEmailFunc func(ctx context.Context, email string) ([]models.Employee, error)
}

func (m *mockEmployeeRepo) Insert(ctx context.Context, e models.Employee) (string, error) {
	return m.InsertFunc(ctx, e)
}
func (m *mockEmployeeRepo) List(ctx context.Context) ([]models.Employee, error) {
	return m.ListFunc(ctx)
}
func (m *mockEmployeeRepo) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockEmployeeRepo) Update(ctx context.Context, id string, fields models.Partial) (int64, error) {
	return m.UpdateFunc(ctx, id, fields)
}
func (m *mockEmployeeRepo) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}
func (m *mockEmployeeRepo) FindByEmail(ctx context.Context, email string) ([]models.Employee, error) {
	return m.FindByEmailFunc(ctx, email)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	inserted := false
	repo := &mockEmployeeRepo{
		FindByEmailFunc: func(ctx context.Context, email string) ([]models.Employee, error) {
			return []models.Employee{{ID: "other", Email: email}}, nil
		},
		InsertFunc: func(ctx context.Context, e models.Employee) (string, error) {
			inserted = true
			return "x", nil
		},
	}
	svc := NewEmployeeService(repo)

	_, err := svc.Create(context.Background(), models.Employee{Name: "Ada", Email: "a@x.com"})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("Create error = %v; want ErrConflict", err)
	}
	if inserted {
		t.Error("Insert was called despite duplicate email")
	}
}

func TestCreate_Success(t *testing.T) {
	repo := &mockEmployeeRepo{
		FindByEmailFunc: func(ctx context.Context, email string) ([]models.Employee, error) {
			return nil, nil
		},
		InsertFunc: func(ctx context.Context, e models.Employee) (string, error) {
			return "id-1", nil
		},
	}
	svc := NewEmployeeService(repo)

	id, err := svc.Create(context.Background(), models.Employee{Name: "Ada", Email: "a@x.com"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if id != "id-1" {
		t.Errorf("Create id = %q; want id-1", id)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := &mockEmployeeRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Employee, error) {
			return nil, nil
		},
	}
	svc := NewEmployeeService(repo)

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Get error = %v; want ErrNotFound", err)
	}
}

func TestUpdate_EmailOwnRecordAllowed(t *testing.T) {
	repo := &mockEmployeeRepo{
		FindByEmailFunc: func(ctx context.Context, email string) ([]models.Employee, error) {
			// The same record already holds this email.
			return []models.Employee{{ID: "42", Email: email}}, nil
		},
		UpdateFunc: func(ctx context.Context, id string, fields models.Partial) (int64, error) {
			return 1, nil
		},
	}
	svc := NewEmployeeService(repo)

	err := svc.Update(context.Background(), "42", models.Partial{"email": "a@x.com"})
	if err != nil {
		t.Errorf("Update returned error: %v", err)
	}
}

func TestUpdate_EmailCollision(t *testing.T) {
	repo := &mockEmployeeRepo{
		FindByEmailFunc: func(ctx context.Context, email string) ([]models.Employee, error) {
			return []models.Employee{{ID: "other", Email: email}}, nil
		},
		UpdateFunc: func(ctx context.Context, id string, fields models.Partial) (int64, error) {
			t.Error("Update was called despite email collision")
			return 0, nil
		},
	}
	svc := NewEmployeeService(repo)

	err := svc.Update(context.Background(), "42", models.Partial{"email": "a@x.com"})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("Update error = %v; want ErrConflict", err)
	}
}

func TestUpdate_MissingID(t *testing.T) {
	repo := &mockEmployeeRepo{
		UpdateFunc: func(ctx context.Context, id string, fields models.Partial) (int64, error) {
			return 0, nil
		},
	}
	svc := NewEmployeeService(repo)

	err := svc.Update(context.Background(), "missing", models.Partial{"name": "Ada"})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Update error = %v; want ErrNotFound", err)
	}
}

func TestDelete_Passthrough(t *testing.T) {
	wantErr := errors.New("db down")
	repo := &mockEmployeeRepo{
		DeleteFunc: func(ctx context.Context, id string) error {
			return wantErr
		},
	}
	svc := NewEmployeeService(repo)

	if err := svc.Delete(context.Background(), "1"); !errors.Is(err, wantErr) {
		t.Errorf("Delete error = %v; want %v", err, wantErr)
	}
}
