package middleware

import (
	"context"
	"strings"

	"nexthire/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextClaimsKey = "claims"

// TokenVerifier 由 service.Auth 實作
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*service.Claims, error)
}

// bearerToken 取出 Authorization: Bearer <token>；格式不符時回傳空字串
func bearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth 驗證 token，成功後把 claims 放進 context
func RequireAuth(v TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := v.Verify(c.Request().Context(), bearerToken(c))
			if err != nil {
				return err
			}
			c.Set(ContextClaimsKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom 只能在 RequireAuth 之後呼叫
func ClaimsFrom(c echo.Context) *service.Claims {
	claims, _ := c.Get(ContextClaimsKey).(*service.Claims)
	return claims
}
