package darshan

import (
	"slices"
	"strings"
)

// UserRole is the user's role as reported by the backend
type UserRole string

const (
	// RoleUser is a regular devotee account
	RoleUser UserRole = "user"
	// RoleAdmin can manage temples, services, content and see all bookings
	RoleAdmin UserRole = "admin"
)

// IsValid checks if the role is one of the known roles
func (r UserRole) IsValid() bool {
	return slices.Contains(GetAllRoles(), r)
}

// IsAdmin checks if the role grants privileged endpoints
func (r UserRole) IsAdmin() bool {
	role, ok := ParseRole(string(r))
	return ok && role.IsAtLeast(RoleAdmin)
}

// IsAtLeast checks if this role meets the minimum required level
func (r UserRole) IsAtLeast(minRole UserRole) bool {
	roleHierarchy := map[UserRole]int{
		RoleUser:  0,
		RoleAdmin: 1,
	}

	currentLevel, exists := roleHierarchy[r]
	if !exists {
		return false
	}

	minLevel, exists := roleHierarchy[minRole]
	if !exists {
		return false
	}

	return currentLevel >= minLevel
}

// GetAllRoles returns all known roles in hierarchical order
func GetAllRoles() []UserRole {
	return []UserRole{
		RoleUser,
		RoleAdmin,
	}
}

// ParseRole safely parses a string into a UserRole, case insensitive
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(strings.ToLower(strings.TrimSpace(roleStr)))
	return role, role.IsValid()
}
