package identity

import (
	"github.com/google/uuid"
)

// Role identifies the coarse-grained role the server assigned to a user.
// The backend issues exactly one primary role per user; finer-grained
// permissions ride alongside as opaque permission codes.
type Role string

// Roles issued by the backend.
const (
	RoleAdmin     Role = "admin"
	RoleManager   Role = "manager"
	RoleSeller    Role = "seller"
	RoleWarehouse Role = "warehouse"
	RoleViewer    Role = "viewer"
)

// Valid reports whether the role is one of the roles the backend issues.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleSeller, RoleWarehouse, RoleViewer:
		return true
	}
	return false
}

// UserProfile is the last known profile of the logged-in user as returned by
// the server. It may be stale relative to server-side role changes until the
// next verification round trip.
type UserProfile struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email,omitempty"`
	Role        Role      `json:"role"`
	Permissions []string  `json:"permissions,omitempty"`
}

// GetDisplayNameOrUsername returns the display name, falling back to the
// username when no display name is set.
func (p *UserProfile) GetDisplayNameOrUsername() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Username
}

// HasRole reports whether the profile carries the given role. A nil profile
// has no roles.
func (p *UserProfile) HasRole(role Role) bool {
	if p == nil {
		return false
	}
	return p.Role == role
}

// IsAdmin reports whether the profile carries the admin role.
func (p *UserProfile) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}

// HasPermission checks if the profile contains a specific permission code.
func (p *UserProfile) HasPermission(permission string) bool {
	if p == nil {
		return false
	}
	for _, code := range p.Permissions {
		if code == permission {
			return true
		}
	}
	return false
}
