package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"nexthire/internal/api"
	"nexthire/internal/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Render 將錯誤轉為 HTTP 狀態與 {message, code}
func Render(err error) (int, api.ErrorResponse) {
	var se *service.Error
	if errors.As(err, &se) {
		return se.Kind.Status(), api.ErrorResponse{Message: se.Message, Code: se.Kind.Code()}
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok && m != "" {
			msg = m
		} else if he.Message != nil {
			msg = fmt.Sprint(he.Message)
		}
		code := strings.ToLower(strings.ReplaceAll(http.StatusText(he.Code), " ", "_"))
		if code == "" {
			code = "http_error"
		}
		return he.Code, api.ErrorResponse{Message: msg, Code: code}
	}
	return http.StatusInternalServerError, api.ErrorResponse{Message: "internal server error", Code: "internal_error"}
}

// StatusOf 回傳 ErrorHandler 會為 err 寫出的狀態碼
func StatusOf(err error) int {
	status, _ := Render(err)
	return status
}

// ErrorHandler 取代 echo 預設的 HTTPErrorHandler；5xx 的內部原因只寫日誌
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, body := Render(err)
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("route", c.Path()),
				zap.Int("status", status),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.Warn("write error response", zap.Error(err))
		}
	}
}
