package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleSeller.Valid())
	assert.True(t, RoleWarehouse.Valid())
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("").Valid())
}

func TestHasRole_NilProfile(t *testing.T) {
	var p *UserProfile

	assert.False(t, p.HasRole(RoleAdmin))
	assert.False(t, p.IsAdmin())
	assert.False(t, p.HasPermission("product:read"))
}

func TestHasRole(t *testing.T) {
	p := &UserProfile{
		ID:       uuid.New(),
		Username: "alice",
		Role:     RoleSeller,
	}

	assert.True(t, p.HasRole(RoleSeller))
	assert.False(t, p.HasRole(RoleAdmin))
	assert.False(t, p.IsAdmin())
}

func TestIsAdmin(t *testing.T) {
	p := &UserProfile{Username: "root", Role: RoleAdmin}

	assert.True(t, p.IsAdmin())
	assert.True(t, p.HasRole(RoleAdmin))
}

func TestHasPermission(t *testing.T) {
	p := &UserProfile{
		Username:    "bob",
		Role:        RoleManager,
		Permissions: []string{"product:read", "product:create"},
	}

	assert.True(t, p.HasPermission("product:read"))
	assert.False(t, p.HasPermission("product:delete"))
}

func TestGetDisplayNameOrUsername(t *testing.T) {
	p := &UserProfile{Username: "bob"}
	assert.Equal(t, "bob", p.GetDisplayNameOrUsername())

	p.DisplayName = "Bob Smith"
	assert.Equal(t, "Bob Smith", p.GetDisplayNameOrUsername())
}
