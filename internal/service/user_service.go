package service

import (
	"context"
	"fmt"

	"bozor/internal/authz"
	"bozor/internal/entity"
	"bozor/internal/repository"
)

// UserService owns user management: admin creation, listing, updates
// and deletion. All role rules come from the authz package; the
// lifecycle side of admin creation is delegated to the auth engine.
type UserService struct {
	users repository.UserRepository
	auth  *AuthService
}

func NewUserService(users repository.UserRepository, auth *AuthService) *UserService {
	return &UserService{users: users, auth: auth}
}

// CreateAdmin runs the signup flow with an asserted ADMIN role. Only
// OWNER may do this; the new admin still activates via OTP like any
// other account.
func (s *UserService) CreateAdmin(ctx context.Context, input SignupInput, requester entity.Role) (string, error) {
	if !authz.CanCreateAdmin(requester) {
		return "", ErrOnlyOwnerCreatesAdmin
	}
	return s.auth.SignUp(ctx, input, entity.RoleAdmin)
}

// List returns users visible to the requester: everything for OWNER,
// everything but OWNER rows for ADMIN.
func (s *UserService) List(ctx context.Context, requester entity.Role) ([]entity.User, error) {
	if !authz.CanListUsers(requester) {
		return nil, ErrNotAllowed
	}
	if requester == entity.RoleAdmin {
		owner := entity.RoleOwner
		return s.users.List(ctx, &owner)
	}
	return s.users.List(ctx, nil)
}

func (s *UserService) Get(ctx context.Context, id int64, requester entity.Role) (*entity.User, error) {
	if !authz.CanListUsers(requester) {
		return nil, ErrNotAllowed
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !authz.CanViewUser(requester, user.Role) {
		return nil, ErrNotAllowed
	}
	return user, nil
}

type UpdateUserInput struct {
	FullName *string
	Phone    *string
	Gender   *string
	Role     *entity.Role
}

func (s *UserService) Update(ctx context.Context, id int64, input UpdateUserInput, requester entity.Role) (*entity.User, error) {
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, ErrInvalidInput
		}
		if !authz.CanAssignRole(requester, *input.Role) {
			return nil, ErrOnlyOwnerAssignsRoles
		}
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update user lookup: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Gender != nil {
		user.Gender = *input.Gender
	}
	if input.Role != nil {
		user.Role = *input.Role
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id int64, requester entity.Role) error {
	if !authz.AdminOrOwner(requester) {
		return ErrNotAllowed
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user lookup: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	if user.Role == entity.RoleOwner {
		return ErrOwnerUndeletable
	}
	if !authz.CanDeleteUser(requester, user.Role) {
		return ErrAdminDeletesAdmin
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
