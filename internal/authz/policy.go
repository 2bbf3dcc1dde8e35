// Package authz holds the pure role-comparison rules consumed by the
// request handlers and the user-management service. None of these
// functions touch storage; they decide over the verified claims
// payload only.
package authz

import "bozor/internal/entity"

// AdminOrOwner reports whether the role may perform admin-level
// actions.
func AdminOrOwner(role entity.Role) bool {
	return role == entity.RoleAdmin || role == entity.RoleOwner
}

func CanListUsers(requester entity.Role) bool {
	return AdminOrOwner(requester)
}

// CanViewUser: OWNER sees everyone; ADMIN sees everyone but OWNER.
func CanViewUser(requester entity.Role, target entity.Role) bool {
	switch requester {
	case entity.RoleOwner:
		return true
	case entity.RoleAdmin:
		return target != entity.RoleOwner
	}
	return false
}

func CanCreateAdmin(requester entity.Role) bool {
	return requester == entity.RoleOwner
}

// CanAssignRole: anyone may leave a user as USER; assigning any other
// role is OWNER-only.
func CanAssignRole(requester entity.Role, newRole entity.Role) bool {
	if newRole == entity.RoleUser {
		return true
	}
	return requester == entity.RoleOwner
}

// CanDeleteUser: OWNER rows are never deletable, ADMIN cannot delete
// another ADMIN, and only ADMIN/OWNER may delete at all.
func CanDeleteUser(requester entity.Role, target entity.Role) bool {
	if !AdminOrOwner(requester) {
		return false
	}
	if target == entity.RoleOwner {
		return false
	}
	if requester == entity.RoleAdmin && target == entity.RoleAdmin {
		return false
	}
	return true
}

// CanModifyOwnedResource: the resource's owning user, or any ADMIN.
func CanModifyOwnedResource(requesterID int64, requester entity.Role, ownerID int64) bool {
	return requesterID == ownerID || requester == entity.RoleAdmin
}

func IsSelf(requesterID, targetID int64) bool {
	return requesterID == targetID
}
