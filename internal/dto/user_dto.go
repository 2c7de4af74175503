package dto

// CreateUserRequest is the admin payload for provisioning an account.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Role     string `json:"role" validate:"required,oneof=admin editor viewer"`
	Name     string `json:"name" validate:"omitempty,max=255"`
	IsActive *bool  `json:"is_active"`
}

// UpdateUserRequest is the admin partial-update payload for an account.
type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=100"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin editor viewer"`
	Name     *string `json:"name" validate:"omitempty,max=255"`
	IsActive *bool   `json:"is_active"`
}

// ResetPasswordRequest is the admin payload for forcing a new password onto
// an account.
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8,max=128"`
}

// UpdateProfileRequest is the self-service payload for the signed-in user.
type UpdateProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=100"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Name     *string `json:"name" validate:"omitempty,max=255"`
}

// ChangePasswordRequest is the self-service password change payload. The
// current password is verified before the new one is stored.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required,min=8,max=128"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=128"`
}
