package handler

import (
	"net/http"
	"time"

	"nexthire/internal/api"
	"nexthire/internal/database"

	"github.com/labstack/echo/v4"
)

var timeNow = time.Now

// HealthHandler 健康檢查
// @Summary     Health Check
// @Description 回傳服務狀態，並檢查資料庫連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} api.HealthResponse
// @Failure     503 {object} api.HealthResponse
// @Router      /health [get]
func HealthHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		now := timeNow().UTC()
		if err := db.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, api.HealthResponse{Status: "unhealthy", Timestamp: now})
		}
		return c.JSON(http.StatusOK, api.HealthResponse{Status: "healthy", Timestamp: now})
	}
}
