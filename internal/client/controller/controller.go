// Package controller implements the headless view logic behind the
// employee list and detail screens: loading state, form drafts,
// client-side validation, and the calls into the record store gateway.
package controller

import (
	"context"

	"github.com/avolkov/StaffKeeper/internal/models"
)

// RecordStore is the gateway surface the controllers depend on.
type RecordStore interface {
	Insert(ctx context.Context, e models.Employee) (string, error)
	ListAll(ctx context.Context) ([]models.Employee, error)
	FetchByID(ctx context.Context, id string) (*models.Employee, error)
	Patch(ctx context.Context, id string, fields models.Partial) error
	Delete(ctx context.Context, id string) error
}

// Notifier receives transient user-facing toast messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Navigator applies a fragment change, handing control back to the
// navigation shell.
type Navigator interface {
	Navigate(fragment string)
}
