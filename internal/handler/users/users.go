package users

import (
	"context"
	"net/http"

	"nexthire/internal/api"
	"nexthire/internal/handler"
	"nexthire/internal/middleware"
	"nexthire/internal/model"
	"nexthire/internal/service"

	"github.com/labstack/echo/v4"
)

// ProfileService 由 service.Auth 實作
type ProfileService interface {
	CurrentUser(ctx context.Context, userID int) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int, name *string) (*model.User, error)
	ChangePassword(ctx context.Context, userID int, current, next string) error
}

// DetailsService 由 service.Dashboard 實作
type DetailsService interface {
	UserDetails(ctx context.Context, userID int) (*service.UserDetails, error)
}

// GetProfileHandler
// @Summary  Get profile
// @Tags     user
// @Produce  json
// @Success  200 {object} api.UserResponse
// @Failure  401 {object} api.ErrorResponse
// @Failure  404 {object} api.ErrorResponse
// @Security ApiKeyAuth
// @Router   /user/profile [get]
func GetProfileHandler(svc ProfileService) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, err := svc.CurrentUser(c.Request().Context(), middleware.ClaimsFrom(c).UserID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, handler.UserView(u))
	}
}

// UpdateProfileHandler 目前只允許修改名稱
// @Summary  Update profile
// @Tags     user
// @Accept   json
// @Produce  json
// @Param    body body     api.UpdateProfileRequest true "可修改的欄位"
// @Success  200  {object} api.UpdateProfileResponse
// @Failure  400  {object} api.ErrorResponse
// @Failure  401  {object} api.ErrorResponse
// @Failure  404  {object} api.ErrorResponse
// @Security ApiKeyAuth
// @Router   /user/profile [put]
func UpdateProfileHandler(svc ProfileService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.UpdateProfileRequest
		if err := handler.Bind(c, &req); err != nil {
			return err
		}
		u, err := svc.UpdateProfile(c.Request().Context(), middleware.ClaimsFrom(c).UserID, req.Name)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.UpdateProfileResponse{
			Message: "Profile updated successfully",
			User:    handler.UserView(u),
		})
	}
}

// ChangePasswordHandler 需先驗證目前密碼
// @Summary  Change password
// @Tags     user
// @Accept   json
// @Produce  json
// @Param    body body     api.ChangePasswordRequest true "目前密碼與新密碼"
// @Success  200  {object} api.MessageResponse
// @Failure  400  {object} api.ErrorResponse
// @Failure  401  {object} api.ErrorResponse
// @Security ApiKeyAuth
// @Router   /user/change-password [post]
func ChangePasswordHandler(svc ProfileService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.ChangePasswordRequest
		if err := handler.Bind(c, &req); err != nil {
			return err
		}
		err := svc.ChangePassword(c.Request().Context(), middleware.ClaimsFrom(c).UserID, req.CurrentPassword, req.NewPassword)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Password updated successfully"})
	}
}

// DetailsHandler 使用者資料加上練習統計
// @Summary  User details
// @Tags     user
// @Produce  json
// @Success  200 {object} api.UserDetailsResponse
// @Failure  401 {object} api.ErrorResponse
// @Failure  404 {object} api.ErrorResponse
// @Security ApiKeyAuth
// @Router   /user/details [get]
func DetailsHandler(svc DetailsService) echo.HandlerFunc {
	return func(c echo.Context) error {
		d, err := svc.UserDetails(c.Request().Context(), middleware.ClaimsFrom(c).UserID)
		if err != nil {
			return err
		}
		roles, err := handler.CopyList[api.RoleStat](d.RolesPracticed)
		if err != nil {
			return err
		}
		recent, err := handler.CopyList[api.RecentResponse](d.Recent)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.UserDetailsResponse{
			User: api.UserDetail{
				ID:         d.User.ID,
				Name:       d.User.Name,
				Email:      d.User.Email,
				JoinedDate: d.User.CreatedAt,
			},
			Stats: api.DetailStats{
				TotalResponses:  d.TotalResponses,
				RolesPracticed:  roles,
				LatestPractice:  d.LatestPractice,
				RecentResponses: recent,
			},
		})
	}
}
