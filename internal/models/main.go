// Package models defines the core data structures for employees and
// authenticated identities.
package models

// Employee represents one employee record stored in the employees
// collection. ID is assigned by the store on creation and is empty on
// a record that has not been inserted yet.
type Employee struct {
	// ID is the unique identifier for the record.
	ID string `json:"id"`
	// Name is the employee's full name.
	Name string `json:"name"`
	// Email is the employee's email address, unique across records.
	Email string `json:"email"`
	// Position is the employee's job title.
	Position string `json:"position"`
	// Department is the organizational unit the employee belongs to.
	Department string `json:"department"`
	// Salary is the employee's salary; never negative.
	Salary float64 `json:"salary"`
	// HireDate is the hire date as an ISO-8601 date string (2006-01-02).
	HireDate string `json:"hireDate"`

	// Extended personal fields, optional and empty when unset.
	Address     string `json:"address,omitempty"`
	DOB         string `json:"dob,omitempty"`
	Skill       string `json:"skill,omitempty"`
	Nationality string `json:"nationality,omitempty"`
}

// Identity represents the currently authenticated user.
type Identity struct {
	// ID is the unique identifier assigned by the identity provider.
	ID string `json:"id"`
	// Email is the login email address.
	Email string `json:"email"`
	// DisplayName is an optional human-readable name.
	DisplayName string `json:"displayName,omitempty"`
}

// Partial holds a subset of employee fields for a partial update,
// keyed by the document field name ("name", "email", "hireDate", ...).
type Partial map[string]any
