package domain

import "github.com/google/uuid"

// Role represents the role of an authenticated user
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEngineer Role = "engineer"
	RoleStaff    Role = "staff"
	RoleViewer   Role = "viewer"
)

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEngineer, RoleStaff, RoleViewer:
		return true
	default:
		return false
	}
}

// Principal is the session capability handed from the auth middleware to the
// services. It is always passed explicitly, never read from global state.
type Principal struct {
	UserID uuid.UUID `json:"user_id"`
	Role   Role      `json:"role"`
}

// HasRole reports whether the principal holds any of the given roles
func (p Principal) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// CanManageTemplates reports whether the principal may create or edit step templates
func (p Principal) CanManageTemplates() bool {
	return p.HasRole(RoleAdmin, RoleEngineer)
}

// CanRecordSteps reports whether the principal may record production steps
func (p Principal) CanRecordSteps() bool {
	return p.HasRole(RoleAdmin, RoleEngineer, RoleStaff)
}

// CanReview reports whether the principal may approve or reject production steps
func (p Principal) CanReview() bool {
	return p.HasRole(RoleAdmin, RoleEngineer)
}
