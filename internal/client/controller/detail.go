package controller

import (
	"context"
	"errors"
	"strconv"

	"github.com/avolkov/StaffKeeper/internal/apperr"
	"github.com/avolkov/StaffKeeper/internal/client/router"
	"github.com/avolkov/StaffKeeper/internal/models"
)

// Tab identifies which detail tab is active.
type Tab string

const (
	// TabGeneral holds name, email, position, department, salary, and
	// hire date.
	TabGeneral Tab = "general"
	// TabPersonal holds address, date of birth, skill, and nationality.
	TabPersonal Tab = "personal"
)

// GeneralFields and PersonalFields list the editable fields per tab.
var (
	GeneralFields  = []string{"name", "email", "position", "department", "salary", "hireDate"}
	PersonalFields = []string{"address", "dob", "skill", "nationality"}
)

// DetailController drives the single-employee detail view: the two tabs,
// the per-field edit flags, and the full-draft save.
type DetailController struct {
	store  RecordStore
	notify Notifier
	nav    Navigator

	EmployeeID string

	Loading bool
	// Err is the page-level error state ("Employee not found" or a load
	// failure); when set, the view renders the error instead of the tabs.
	Err string

	// Draft mirrors every field of the loaded record, general and
	// personal alike, so switching tabs never loses edits.
	Draft models.Employee

	ActiveTab Tab

	// editable tracks per-field edit mode; absent means read-only.
	editable map[string]bool

	// Saving is set while the patch is in flight.
	Saving bool

	closed bool
}

// NewDetailController constructs the detail controller for one record.
// Call Load to populate it.
func NewDetailController(store RecordStore, notify Notifier, nav Navigator, employeeID string) *DetailController {
	return &DetailController{
		store:      store,
		notify:     notify,
		nav:        nav,
		EmployeeID: employeeID,
		ActiveTab:  TabGeneral,
		editable:   map[string]bool{},
	}
}

// Load fetches the record and fills the draft. Not-found becomes the
// page error state; the loading flag clears on every path. Results are
// dropped when the controller was closed while the fetch was in flight.
func (c *DetailController) Load(ctx context.Context) {
	c.Loading = true
	c.Err = ""

	employee, err := c.store.FetchByID(ctx, c.EmployeeID)

	if c.closed {
		return
	}
	c.Loading = false
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.Err = "Employee not found"
		} else {
			c.Err = "Failed to load employee: " + err.Error()
		}
		return
	}
	c.Draft = *employee
}

// SwitchTab activates the given tab. Edits in the other tab stay in the
// draft.
func (c *DetailController) SwitchTab(tab Tab) {
	if tab == TabGeneral || tab == TabPersonal {
		c.ActiveTab = tab
	}
}

// EnableEdit reveals the input for one field. Other fields keep their
// current mode.
func (c *DetailController) EnableEdit(field string) {
	c.editable[field] = true
}

// IsEditable reports whether the field is in edit mode.
func (c *DetailController) IsEditable(field string) bool {
	return c.editable[field]
}

// SetField writes one draft field from its string input form. Salary is
// parsed and must be a non-negative number; the error is a
// ValidationError suitable for inline display.
func (c *DetailController) SetField(field, value string) error {
	switch field {
	case "name":
		c.Draft.Name = value
	case "email":
		c.Draft.Email = value
	case "position":
		c.Draft.Position = value
	case "department":
		c.Draft.Department = value
	case "salary":
		salary, err := strconv.ParseFloat(value, 64)
		if err != nil || salary < 0 {
			return &apperr.ValidationError{Field: "salary", Reason: "must be a non-negative number"}
		}
		c.Draft.Salary = salary
	case "hireDate":
		c.Draft.HireDate = value
	case "address":
		c.Draft.Address = value
	case "dob":
		c.Draft.DOB = value
	case "skill":
		c.Draft.Skill = value
	case "nationality":
		c.Draft.Nationality = value
	default:
		return &apperr.ValidationError{Field: field, Reason: "unknown field"}
	}
	return nil
}

// Field returns the display value of one draft field.
func (c *DetailController) Field(field string) string {
	switch field {
	case "name":
		return c.Draft.Name
	case "email":
		return c.Draft.Email
	case "position":
		return c.Draft.Position
	case "department":
		return c.Draft.Department
	case "salary":
		return strconv.FormatFloat(c.Draft.Salary, 'f', -1, 64)
	case "hireDate":
		return c.Draft.HireDate
	case "address":
		return c.Draft.Address
	case "dob":
		return c.Draft.DOB
	case "skill":
		return c.Draft.Skill
	case "nationality":
		return c.Draft.Nationality
	}
	return ""
}

// Save patches the record with the full draft, every field rather than
// only the touched ones, keeping the original full-replace behavior.
// The view stays on the page and edit flags are left as they are.
func (c *DetailController) Save(ctx context.Context) {
	fields := models.Partial{
		"name":        c.Draft.Name,
		"email":       c.Draft.Email,
		"position":    c.Draft.Position,
		"department":  c.Draft.Department,
		"salary":      c.Draft.Salary,
		"hireDate":    c.Draft.HireDate,
		"address":     c.Draft.Address,
		"dob":         c.Draft.DOB,
		"skill":       c.Draft.Skill,
		"nationality": c.Draft.Nationality,
	}

	c.Saving = true
	err := c.store.Patch(ctx, c.EmployeeID, fields)
	c.Saving = false

	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			c.notify.Error("Email already exists")
		} else {
			c.notify.Error("Failed to save: " + err.Error())
		}
		return
	}
	c.notify.Success("Employee updated successfully")
}

// Back returns to the employee list.
func (c *DetailController) Back() {
	c.nav.Navigate(router.ListFragment)
}

// Close marks the controller unmounted; a fetch still in flight will
// not touch its state afterwards.
func (c *DetailController) Close() {
	c.closed = true
}
