package domain

import "time"

// Role is a realm role. Composite roles aggregate the roles listed in
// Composites (by id).
type Role struct {
	ID          string
	Realm       string
	Name        string
	Description string
	Composite   bool
	Composites  []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RoleQuery narrows a role listing. The service fills in defaults before
// the store sees it.
type RoleQuery struct {
	First  int
	Max    int
	Search string
}

// RolePage is one window of a role listing. Total counts every role that
// matches the search, not just the window.
type RolePage struct {
	Roles []Role
	First int
	Max   int
	Total int
}
