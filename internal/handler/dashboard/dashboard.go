package dashboard

import (
	"context"
	"net/http"

	"nexthire/internal/api"
	"nexthire/internal/handler"
	"nexthire/internal/middleware"
	"nexthire/internal/service"

	"github.com/labstack/echo/v4"
)

// Service 由 service.Dashboard 實作
type Service interface {
	Stats(ctx context.Context, userID int) (*service.Stats, error)
	Responses(ctx context.Context, userID int, role string, page, perPage int) (*service.ResponsePage, error)
}

// StatsHandler 總作答數、各職缺分組與最近五筆
// @Summary  Dashboard stats
// @Tags     dashboard
// @Produce  json
// @Success  200 {object} api.StatsResponse
// @Failure  401 {object} api.ErrorResponse
// @Failure  500 {object} api.ErrorResponse
// @Security ApiKeyAuth
// @Router   /dashboard/stats [get]
func StatsHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := svc.Stats(c.Request().Context(), middleware.ClaimsFrom(c).UserID)
		if err != nil {
			return err
		}
		roles, err := handler.CopyList[api.RoleStat](s.RoleStats)
		if err != nil {
			return err
		}
		recent, err := handler.CopyList[api.RecentActivity](s.RecentActivity)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.StatsResponse{
			TotalResponses: s.TotalResponses,
			RoleStats:      roles,
			RecentActivity: recent,
		})
	}
}

// ResponsesHandler 分頁列出作答紀錄，新的在前
// @Summary  List responses
// @Tags     dashboard
// @Produce  json
// @Param    page     query    int    false "頁碼"     default(1)
// @Param    per_page query    int    false "每頁筆數" default(10)
// @Param    role     query    string false "職缺"
// @Success  200      {object} api.ResponsesResponse
// @Failure  400      {object} api.ErrorResponse
// @Failure  401      {object} api.ErrorResponse
// @Failure  500      {object} api.ErrorResponse
// @Security ApiKeyAuth
// @Router   /dashboard/responses [get]
func ResponsesHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, perPage, err := handler.PageParams(c)
		if err != nil {
			return err
		}
		res, err := svc.Responses(c.Request().Context(), middleware.ClaimsFrom(c).UserID, c.QueryParam("role"), page, perPage)
		if err != nil {
			return err
		}
		items, err := handler.CopyList[api.ResponseItem](res.Items)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.ResponsesResponse{
			Responses:   items,
			Total:       res.Total,
			Pages:       res.Pages,
			CurrentPage: res.CurrentPage,
		})
	}
}
