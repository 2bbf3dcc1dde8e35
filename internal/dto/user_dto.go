package dto

type UpdateUserRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=1"`
	Phone    *string `json:"phone" validate:"omitempty,min=3"`
	Gender   *string `json:"gender" validate:"omitempty,oneof=male female"`
	Role     *string `json:"role" validate:"omitempty,oneof=USER ADMIN OWNER"`
}
