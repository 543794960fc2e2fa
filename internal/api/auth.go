package api

// swagger:model api.SignupRequest
type SignupRequest struct {
	Name     string `json:"name" validate:"required" example:"Ann"`
	Email    string `json:"email" validate:"required" example:"ann@example.com"`
	Password string `json:"password" validate:"required" example:"pw123456"`
}

// swagger:model api.LoginRequest
type LoginRequest struct {
	Email    string `json:"email" validate:"required" example:"ann@example.com"`
	Password string `json:"password" validate:"required" example:"pw123456"`
}

// UserResponse 對外公開的使用者欄位
// swagger:model api.UserResponse
type UserResponse struct {
	ID    int    `json:"id" example:"1"`
	Name  string `json:"name" example:"Ann"`
	Email string `json:"email" example:"ann@example.com"`
}

// swagger:model api.LoginResponse
type LoginResponse struct {
	Token string       `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User  UserResponse `json:"user"`
}

// UpdateProfileRequest name 省略時不修改
// swagger:model api.UpdateProfileRequest
type UpdateProfileRequest struct {
	Name *string `json:"name" example:"Annie"`
}

// swagger:model api.UpdateProfileResponse
type UpdateProfileResponse struct {
	Message string       `json:"message" example:"Profile updated successfully"`
	User    UserResponse `json:"user"`
}

// swagger:model api.ChangePasswordRequest
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required" example:"pw123456"`
	NewPassword     string `json:"newPassword" validate:"required" example:"n3wPassw0rd"`
}
