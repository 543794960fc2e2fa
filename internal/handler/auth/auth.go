package auth

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

// Service 由 service.Auth 實作
type Service interface {
	Signup(ctx context.Context, name, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
	Logout(ctx context.Context, claims *service.Claims) error
	CurrentUser(ctx context.Context, userID int) (*model.User, error)
}

// SignupHandler 建立帳號
// @Summary     Sign up
// @Description 建立新帳號 (Email 會自動轉小寫)；Email 已存在時回傳 409
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.SignupRequest true "帳號資料"
// @Success     201  {object} api.MessageResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/signup [post]
func SignupHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.SignupRequest
		if err := handler.Bind(c, &req); err != nil {
			return err
		}
		if _, err := svc.Signup(c.Request().Context(), req.Name, req.Email, req.Password); err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, api.MessageResponse{Message: "User created successfully"})
	}
}

// LoginHandler 驗證帳密並回傳 JWT
// @Summary     Log in
// @Description 使用 Email 與密碼登入，回傳存取令牌
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.LoginRequest true "登入資料"
// @Success     200  {object} api.LoginResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/login [post]
func LoginHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := handler.Bind(c, &req); err != nil {
			return err
		}
		res, err := svc.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.LoginResponse{Token: res.Token, User: handler.UserView(res.User)})
	}
}

// LogoutHandler 撤銷目前的 token
// @Summary  Log out
// @Tags     auth
// @Produce  json
// @Success  200 {object} api.MessageResponse
// @Failure  401 {object} api.ErrorResponse
// @Failure  422 {object} api.ErrorResponse
// @Security ApiKeyAuth
// @Router   /auth/logout [post]
func LogoutHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := svc.Logout(c.Request().Context(), middleware.ClaimsFrom(c)); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Successfully logged out"})
	}
}

// CurrentUserHandler 取得目前登入的使用者
// @Summary  Current user
// @Tags     auth
// @Produce  json
// @Success  200 {object} api.UserResponse
// @Failure  401 {object} api.ErrorResponse
// @Failure  404 {object} api.ErrorResponse
// @Failure  422 {object} api.ErrorResponse
// @Security ApiKeyAuth
// @Router   /auth/user [get]
func CurrentUserHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, err := svc.CurrentUser(c.Request().Context(), middleware.ClaimsFrom(c).UserID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, handler.UserView(u))
	}
}
