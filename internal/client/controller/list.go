package controller

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/avolkov/StaffKeeper/internal/apperr"
	"github.com/avolkov/StaffKeeper/internal/client/router"
	"github.com/avolkov/StaffKeeper/internal/models"
)

// Form steps of the add-employee wizard.
const (
	// StepBasics collects name and email.
	StepBasics = 1
	// StepJob collects position, department, salary, and hire date.
	StepJob = 2
)

// FormDraft is the transient two-step add-employee form state. Values
// are kept as entered; salary is parsed only on submit. The draft is
// discarded on cancel or successful submit, never persisted before.
type FormDraft struct {
	Open bool
	Step int

	Name       string
	Email      string
	Position   string
	Department string
	Salary     string
	HireDate   string

	// Errors holds inline validation messages keyed by field name.
	Errors map[string]string
}

// ListController drives the employee list view: the record table, the
// two-step add form, and delete confirmations.
type ListController struct {
	store  RecordStore
	notify Notifier
	nav    Navigator

	Loading   bool
	LoadError string
	Employees []models.Employee

	Form FormDraft

	// PendingDelete holds the id awaiting delete confirmation, empty
	// when no confirmation dialog is open.
	PendingDelete string

	// Saving is set while a write is in flight; the submit control is
	// disabled for its duration.
	Saving bool

	closed bool
}

// NewListController constructs the list controller. Call Load to
// populate it.
func NewListController(store RecordStore, notify Notifier, nav Navigator) *ListController {
	return &ListController{store: store, notify: notify, nav: nav}
}

// Load fetches the full employee list. On failure the list stays empty
// and LoadError carries the banner message; the loading flag clears on
// both paths.
func (c *ListController) Load(ctx context.Context) {
	c.Loading = true
	c.LoadError = ""

	employees, err := c.store.ListAll(ctx)

	if c.closed {
		return
	}
	c.Loading = false
	if err != nil {
		c.LoadError = "Failed to load employees: " + err.Error()
		return
	}
	c.Employees = employees
}

// OpenForm opens the add-employee form at step 1 with a fresh draft.
func (c *ListController) OpenForm() {
	c.Form = FormDraft{Open: true, Step: StepBasics, Errors: map[string]string{}}
}

// CancelForm closes the form and discards the draft.
func (c *ListController) CancelForm() {
	c.Form = FormDraft{}
}

// SubmitStep1 validates name and email and advances to step 2. An empty
// field keeps the form on step 1 with an inline message; no store call
// is made.
func (c *ListController) SubmitStep1() bool {
	c.Form.Errors = map[string]string{}
	if c.Form.Name == "" {
		c.Form.Errors["name"] = "Name is required"
	}
	if c.Form.Email == "" {
		c.Form.Errors["email"] = "Email is required"
	}
	if len(c.Form.Errors) > 0 {
		return false
	}

	c.Form.Step = StepJob
	return true
}

// BackToStep1 returns to step 1 without losing any entered values.
func (c *ListController) BackToStep1() {
	c.Form.Step = StepBasics
}

// SubmitStep2 validates the remaining fields and inserts the record.
// On success the form closes, the draft resets, and the list reloads.
// A duplicate email shows the specific conflict notification.
func (c *ListController) SubmitStep2(ctx context.Context) bool {
	c.Form.Errors = map[string]string{}
	if c.Form.Position == "" {
		c.Form.Errors["position"] = "Position is required"
	}
	if c.Form.Department == "" {
		c.Form.Errors["department"] = "Department is required"
	}

	salary, err := strconv.ParseFloat(c.Form.Salary, 64)
	if c.Form.Salary == "" || err != nil || salary < 0 {
		c.Form.Errors["salary"] = "Salary must be a non-negative number"
	}

	if c.Form.HireDate == "" {
		c.Form.Errors["hireDate"] = "Hire date is required"
	} else if _, err := time.Parse("2006-01-02", c.Form.HireDate); err != nil {
		c.Form.Errors["hireDate"] = "Hire date must be YYYY-MM-DD"
	}

	if len(c.Form.Errors) > 0 {
		return false
	}

	employee := models.Employee{
		Name:       c.Form.Name,
		Email:      c.Form.Email,
		Position:   c.Form.Position,
		Department: c.Form.Department,
		Salary:     salary,
		HireDate:   c.Form.HireDate,
	}

	c.Saving = true
	_, insertErr := c.store.Insert(ctx, employee)
	c.Saving = false

	if insertErr != nil {
		if errors.Is(insertErr, apperr.ErrConflict) {
			c.notify.Error("Email already exists")
		} else {
			c.notify.Error("Failed to save employee: " + insertErr.Error())
		}
		return false
	}

	c.notify.Success("Employee added")
	c.Form = FormDraft{}
	c.Load(ctx)
	return true
}

// RequestDelete opens the confirmation dialog for the given id.
func (c *ListController) RequestDelete(id string) {
	c.PendingDelete = id
}

// CancelDelete closes the confirmation dialog without touching the store.
func (c *ListController) CancelDelete() {
	c.PendingDelete = ""
}

// ConfirmDelete deletes the pending record, notifies, and reloads the
// list. Does nothing when no delete is pending.
func (c *ListController) ConfirmDelete(ctx context.Context) {
	id := c.PendingDelete
	if id == "" {
		return
	}
	c.PendingDelete = ""

	c.Saving = true
	err := c.store.Delete(ctx, id)
	c.Saving = false

	if err != nil {
		c.notify.Error("Failed to delete employee: " + err.Error())
		return
	}
	c.notify.Success("Employee deleted")
	c.Load(ctx)
}

// View navigates to the record's detail page.
func (c *ListController) View(id string) {
	c.nav.Navigate(router.DetailFragment(id))
}

// Close marks the controller unmounted; a fetch still in flight will
// not touch its state afterwards.
func (c *ListController) Close() {
	c.closed = true
}
