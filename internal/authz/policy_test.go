package authz

import (
	"testing"

	"bozor/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestCanDeleteUser(t *testing.T) {
	tests := []struct {
		name      string
		requester entity.Role
		target    entity.Role
		want      bool
	}{
		{"owner deletes user", entity.RoleOwner, entity.RoleUser, true},
		{"owner deletes admin", entity.RoleOwner, entity.RoleAdmin, true},
		{"owner cannot delete owner", entity.RoleOwner, entity.RoleOwner, false},
		{"admin deletes user", entity.RoleAdmin, entity.RoleUser, true},
		{"admin cannot delete admin", entity.RoleAdmin, entity.RoleAdmin, false},
		{"admin cannot delete owner", entity.RoleAdmin, entity.RoleOwner, false},
		{"user cannot delete anyone", entity.RoleUser, entity.RoleUser, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanDeleteUser(tt.requester, tt.target))
		})
	}
}

func TestCanViewUser(t *testing.T) {
	assert.True(t, CanViewUser(entity.RoleOwner, entity.RoleOwner))
	assert.True(t, CanViewUser(entity.RoleAdmin, entity.RoleUser))
	assert.False(t, CanViewUser(entity.RoleAdmin, entity.RoleOwner))
	assert.False(t, CanViewUser(entity.RoleUser, entity.RoleUser))
}

func TestCanCreateAdmin(t *testing.T) {
	assert.True(t, CanCreateAdmin(entity.RoleOwner))
	assert.False(t, CanCreateAdmin(entity.RoleAdmin))
	assert.False(t, CanCreateAdmin(entity.RoleUser))
}

func TestCanAssignRole(t *testing.T) {
	assert.True(t, CanAssignRole(entity.RoleAdmin, entity.RoleUser))
	assert.False(t, CanAssignRole(entity.RoleAdmin, entity.RoleAdmin))
	assert.True(t, CanAssignRole(entity.RoleOwner, entity.RoleAdmin))
	assert.True(t, CanAssignRole(entity.RoleOwner, entity.RoleOwner))
	assert.False(t, CanAssignRole(entity.RoleUser, entity.RoleAdmin))
}

func TestCanModifyOwnedResource(t *testing.T) {
	assert.True(t, CanModifyOwnedResource(7, entity.RoleUser, 7))
	assert.False(t, CanModifyOwnedResource(7, entity.RoleUser, 8))
	assert.True(t, CanModifyOwnedResource(7, entity.RoleAdmin, 8))
	// OWNER is not a blanket override for resource mutation.
	assert.False(t, CanModifyOwnedResource(7, entity.RoleOwner, 8))
}

func TestIsSelf(t *testing.T) {
	assert.True(t, IsSelf(3, 3))
	assert.False(t, IsSelf(3, 4))
}
