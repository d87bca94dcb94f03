package router

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     Route
	}{
		{"empty", "", Route{View: ViewList}},
		{"root", "#/", Route{View: ViewList}},
		{"detail", "#/employees/42", Route{View: ViewDetail, EmployeeID: "42"}},
		{"detail encoded id", "#/employees/a%20b", Route{View: ViewDetail, EmployeeID: "a b"}},
		{"detail missing id", "#/employees/", Route{View: ViewList}},
		{"detail trailing segment", "#/employees/42/extra", Route{View: ViewList}},
		{"unknown route", "#/bogus", Route{View: ViewList}},
		{"no hash", "/employees/42", Route{View: ViewList}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.fragment)
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v; want %+v", tt.fragment, got, tt.want)
			}
		})
	}
}

func TestDetailFragmentRoundTrip(t *testing.T) {
	ids := []string{"42", "a b", "weird/id", "ä"}
	for _, id := range ids {
		got := Parse(DetailFragment(id))
		if got.View != ViewDetail || got.EmployeeID != id {
			t.Errorf("Parse(DetailFragment(%q)) = %+v; want detail with same id", id, got)
		}
	}
}
