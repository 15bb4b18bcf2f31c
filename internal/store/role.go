package store

import (
	"fmt"
	"strings"
)

// Role identifies who is acting. The store never checks roles itself;
// it only records them in CreatedBy and ReviewedBy.
type Role string

const (
	RoleChild   Role = "Child"
	RoleParent  Role = "Parent"
	RoleTeacher Role = "Teacher"
)

// Roles lists the selectable roles in display order.
var Roles = []Role{RoleChild, RoleParent, RoleTeacher}

// ParseRole matches a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if strings.EqualFold(strings.TrimSpace(s), string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q (want Child, Parent or Teacher)", s)
}

// IsReviewer reports whether the role reviews tasks and wishes.
func (r Role) IsReviewer() bool {
	return r == RoleParent || r == RoleTeacher
}

// Ptr returns a pointer to a copy of r, for the nullable role fields.
func (r Role) Ptr() *Role {
	return &r
}
