package router

import (
	"nexthire/internal/database"
	"nexthire/internal/handler"
	"nexthire/internal/handler/auth"
	"nexthire/internal/handler/content"
	"nexthire/internal/handler/dashboard"
	"nexthire/internal/handler/practice"
	"nexthire/internal/handler/users"
	"nexthire/internal/middleware"
	"nexthire/internal/service"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// Deps 由 cmd/service 組裝後注入
type Deps struct {
	DB        database.DB
	Auth      *service.Auth
	Practice  *service.Practice
	Content   *service.Content
	Dashboard *service.Dashboard
	// RateLimit 每個 IP 每秒可呼叫 AI 路由的次數，0 表示不限制
	RateLimit float64
}

// aiLimiter 限制會呼叫外部模型的路由
func aiLimiter(rps float64) []echo.MiddlewareFunc {
	if rps <= 0 {
		return nil
	}
	store := echomw.NewRateLimiterMemoryStore(rate.Limit(rps))
	return []echo.MiddlewareFunc{echomw.RateLimiter(store)}
}

// Setup 註冊所有 /api 路由與中介層
func Setup(e *echo.Echo, d Deps) {
	api := e.Group("/api")
	requireAuth := middleware.RequireAuth(d.Auth)
	limited := aiLimiter(d.RateLimit)
	authed := func(extra ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
		return append([]echo.MiddlewareFunc{requireAuth}, extra...)
	}

	api.GET("/health", handler.HealthHandler(d.DB))

	// 練習
	api.GET("/questions", practice.QuestionHandler(d.Practice), limited...)
	api.POST("/evaluate", practice.EvaluateHandler(d.Practice), authed(limited...)...)

	// 學習路線與選擇題
	api.GET("/roadmap/:role", content.RoadmapHandler(d.Content))
	api.POST("/mcq/generate", practice.GenerateMCQHandler(d.Practice), authed(limited...)...)
	api.POST("/mcq/check/:id", content.CheckHandler(d.Content), requireAuth)
	api.GET("/mcq/:role", content.ListMCQsHandler(d.Content))
	api.GET("/mcq/:role/topics", content.TopicsHandler(d.Content))

	// 帳號
	apiAuth := api.Group("/auth")
	apiAuth.POST("/signup", auth.SignupHandler(d.Auth))
	apiAuth.POST("/login", auth.LoginHandler(d.Auth))
	apiAuth.POST("/logout", auth.LogoutHandler(d.Auth), requireAuth)
	apiAuth.GET("/user", auth.CurrentUserHandler(d.Auth), requireAuth)

	// group 不掛 middleware，避免 echo 為 group 額外註冊 catch-all 路由
	apiUser := api.Group("/user")
	apiUser.GET("/profile", users.GetProfileHandler(d.Auth), requireAuth)
	apiUser.PUT("/profile", users.UpdateProfileHandler(d.Auth), requireAuth)
	apiUser.POST("/change-password", users.ChangePasswordHandler(d.Auth), requireAuth)
	apiUser.GET("/details", users.DetailsHandler(d.Dashboard), requireAuth)

	apiDashboard := api.Group("/dashboard")
	apiDashboard.GET("/stats", dashboard.StatsHandler(d.Dashboard), requireAuth)
	apiDashboard.GET("/responses", dashboard.ResponsesHandler(d.Dashboard), requireAuth)
}
