package catalog

import (
	"fmt"
	"strings"
)

// Role is the kind of account signed in to the app.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
	RoleAdmin   Role = "ADMIN"
)

// AllRoles returns the roles in login menu order.
func AllRoles() []Role {
	return []Role{RoleStudent, RoleTeacher, RoleAdmin}
}

// ParseRole resolves a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	for _, r := range AllRoles() {
		if strings.EqualFold(string(r), s) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Label returns the login menu label for a role.
func (r Role) Label() string {
	switch r {
	case RoleStudent:
		return "I'm a Student"
	case RoleTeacher:
		return "I'm a Teacher"
	case RoleAdmin:
		return "School Admin"
	default:
		return string(r)
	}
}

// User is a signed-in account. Grade and XP apply to students only.
type User struct {
	ID    string
	Name  string
	Role  Role
	Grade string
	XP    int
	Email string
}

// Badge is an achievement shown on the student dashboard.
type Badge struct {
	ID          string
	Name        string
	Icon        string
	Description string
	Unlocked    bool
}
