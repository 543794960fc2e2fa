package api

// ErrorResponse 全域錯誤響應模型
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	// message 錯誤描述
	Message string `json:"message" example:"invalid email or password"`
	// code 穩定的錯誤碼，供前端分支判斷
	Code string `json:"code" example:"auth_error"`
}

// swagger:model api.MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"User created successfully"`
}
