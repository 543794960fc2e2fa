package handler

import (
	"nexthire/internal/api"
	"nexthire/internal/model"
	"nexthire/internal/service"

	"github.com/jinzhu/copier"
)

// CopyList 以 copier 轉換清單；空清單輸出為 [] 而非 null
func CopyList[T any](from any) ([]T, error) {
	out := []T{}
	if err := copier.Copy(&out, from); err != nil {
		return nil, &service.Error{Kind: service.KindInternal, Message: "internal server error", Err: err}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// UserView 公開的使用者欄位
func UserView(u *model.User) api.UserResponse {
	return api.UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}
