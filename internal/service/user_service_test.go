package service

import (
	"context"
	"testing"

	"bozor/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserFixture(t *testing.T) (*UserService, *authFixture) {
	t.Helper()
	f := newAuthFixture(t)
	return NewUserService(f.users, f.service), f
}

func (f *authFixture) seedUser(t *testing.T, email string, role entity.Role) *entity.User {
	t.Helper()
	user := &entity.User{
		FullName: "Seeded " + string(role),
		Email:    email,
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func TestCreateAdminRequiresOwner(t *testing.T) {
	svc, f := newUserFixture(t)

	for _, requester := range []entity.Role{entity.RoleUser, entity.RoleAdmin} {
		_, err := svc.CreateAdmin(context.Background(), signupInput("new-admin@x.com"), requester)
		assert.ErrorIs(t, err, ErrOnlyOwnerCreatesAdmin)
	}

	_, err := svc.CreateAdmin(context.Background(), signupInput("new-admin@x.com"), entity.RoleOwner)
	require.NoError(t, err)

	created, err := f.users.FindByEmail(context.Background(), "new-admin@x.com")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, entity.RoleAdmin, created.Role)
	// Admins go through the same pending-activation flow as users.
	assert.False(t, created.IsActive)
	assert.NotNil(t, created.OTP)
}

func TestListVisibilityByRole(t *testing.T) {
	svc, f := newUserFixture(t)
	f.seedUser(t, "owner@x.com", entity.RoleOwner)
	f.seedUser(t, "admin@x.com", entity.RoleAdmin)
	f.seedUser(t, "user@x.com", entity.RoleUser)

	all, err := svc.List(context.Background(), entity.RoleOwner)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	visible, err := svc.List(context.Background(), entity.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, visible, 2)
	for _, u := range visible {
		assert.NotEqual(t, entity.RoleOwner, u.Role)
	}

	_, err = svc.List(context.Background(), entity.RoleUser)
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestGetHidesOwnerFromAdmin(t *testing.T) {
	svc, f := newUserFixture(t)
	owner := f.seedUser(t, "owner@x.com", entity.RoleOwner)
	user := f.seedUser(t, "user@x.com", entity.RoleUser)

	got, err := svc.Get(context.Background(), user.ID, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Get(context.Background(), owner.ID, entity.RoleAdmin)
	assert.ErrorIs(t, err, ErrNotAllowed)

	_, err = svc.Get(context.Background(), int64(9999), entity.RoleOwner)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateRoleAssignment(t *testing.T) {
	svc, f := newUserFixture(t)
	target := f.seedUser(t, "user@x.com", entity.RoleUser)

	admin := entity.RoleAdmin
	_, err := svc.Update(context.Background(), target.ID, UpdateUserInput{Role: &admin}, entity.RoleAdmin)
	assert.ErrorIs(t, err, ErrOnlyOwnerAssignsRoles)

	updated, err := svc.Update(context.Background(), target.ID, UpdateUserInput{Role: &admin}, entity.RoleOwner)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, updated.Role)

	bogus := entity.Role("SUPERUSER")
	_, err = svc.Update(context.Background(), target.ID, UpdateUserInput{Role: &bogus}, entity.RoleOwner)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	svc, f := newUserFixture(t)
	target := f.seedUser(t, "user@x.com", entity.RoleUser)

	name := "Yangi Ism"
	updated, err := svc.Update(context.Background(), target.ID, UpdateUserInput{FullName: &name}, entity.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, name, updated.FullName)
	assert.Equal(t, target.Phone, updated.Phone)
	assert.Equal(t, entity.RoleUser, updated.Role)
}

func TestDeleteRules(t *testing.T) {
	svc, f := newUserFixture(t)
	owner := f.seedUser(t, "owner@x.com", entity.RoleOwner)
	admin := f.seedUser(t, "admin@x.com", entity.RoleAdmin)
	user := f.seedUser(t, "user@x.com", entity.RoleUser)

	assert.ErrorIs(t, svc.Delete(context.Background(), owner.ID, entity.RoleOwner), ErrOwnerUndeletable)
	assert.ErrorIs(t, svc.Delete(context.Background(), admin.ID, entity.RoleAdmin), ErrAdminDeletesAdmin)
	assert.ErrorIs(t, svc.Delete(context.Background(), user.ID, entity.RoleUser), ErrNotAllowed)
	assert.ErrorIs(t, svc.Delete(context.Background(), int64(9999), entity.RoleOwner), ErrUserNotFound)

	require.NoError(t, svc.Delete(context.Background(), admin.ID, entity.RoleOwner))
	gone, err := f.users.FindByID(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
