// Package router maps URL fragments to views. Parsing is a pure
// function, kept separate from navigation side effects so it can be
// tested on its own.
package router

import (
	"net/url"
	"strings"
)

// View identifies which view a fragment resolves to.
type View int

const (
	// ViewList is the employee list, the fallback for every
	// unrecognized fragment.
	ViewList View = iota
	// ViewDetail is the single-employee detail view.
	ViewDetail
)

// Route is the parsed form of a fragment.
type Route struct {
	View View
	// EmployeeID is set only for ViewDetail.
	EmployeeID string
}

const detailPrefix = "#/employees/"

// Parse resolves a URL fragment to a route. "#/employees/<id>" with a
// non-empty URL-decoded remainder and no further path segments yields
// the detail view; everything else, including an empty fragment and
// unknown paths, falls back to the list.
func Parse(fragment string) Route {
	rest, ok := strings.CutPrefix(fragment, detailPrefix)
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return Route{View: ViewList}
	}

	id, err := url.PathUnescape(rest)
	if err != nil || id == "" {
		return Route{View: ViewList}
	}
	return Route{View: ViewDetail, EmployeeID: id}
}

// DetailFragment builds the fragment for an employee's detail view.
func DetailFragment(id string) string {
	return detailPrefix + url.PathEscape(id)
}

// ListFragment is the fragment for the list view.
const ListFragment = "#/"
