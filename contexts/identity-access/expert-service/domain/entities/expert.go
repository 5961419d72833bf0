package entities

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleExpert Role = "expert"
)

// Expert is an authenticated reviewer. Identity is immutable once
// created; the role is fixed at creation time.
type Expert struct {
	ExpertID   string
	Name       string
	AccessCode string
	Role       Role
	CreatedAt  time.Time
}

// Satisfies reports whether the expert's stored role meets the
// requirement. Admins satisfy every requirement.
func (e Expert) Satisfies(required Role) bool {
	if e.Role == RoleAdmin {
		return true
	}
	return e.Role == required
}
