// @title        NextHire API
// @version      1.0
// @description  NextHire 面試練習平台後端 API 文件
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nexthire/internal/cache"
	"nexthire/internal/completion"
	"nexthire/internal/config"
	"nexthire/internal/database"
	"nexthire/internal/logger"
	"nexthire/internal/metrics"
	"nexthire/internal/middleware"
	"nexthire/internal/router"
	"nexthire/internal/service"
	"nexthire/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	_ "nexthire/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

const shutdownTimeout = 10 * time.Second

var (
	loadConfig      = config.Load
	newLogger       = logger.New
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newWorkerPool   = worker.NewPool
	newGateway      = buildGateway
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownServer  = func(ctx context.Context, e *echo.Echo) error { return e.Shutdown(ctx) }
	notifyContext   = func() (context.Context, context.CancelFunc) {
		return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	}
	exitFunc = os.Exit
)

// buildGateway 依設定選擇 OpenAI 或 Gemini；回傳的 close 在關機時呼叫
func buildGateway(ctx context.Context, cfg config.CompletionConfig) (completion.Gateway, func() error, error) {
	if cfg.Provider == config.ProviderGemini {
		g, err := completion.NewGemini(ctx, cfg.GeminiKey, cfg.GeminiModel)
		if err != nil {
			return nil, nil, err
		}
		return g, g.Close, nil
	}
	o := completion.NewOpenAI(cfg.OpenAIBaseURL, cfg.OpenAIKey, cfg.OpenAIModel, nil)
	return o, func() error { return nil }, nil
}

// newEcho 掛上全域中介層；路由由 router.Setup 註冊
func newEcho(cfg *config.Config, zl *zap.Logger, m *metrics.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Debug()
	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = middleware.ErrorHandler(zl)

	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(zl))
	e.Use(echomw.Recover())
	e.Use(m.Middleware(middleware.StatusOf))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	return e
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	zl := newLogger(cfg.Debug(), cfg.LogFile)
	defer func() { _ = zl.Sync() }()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	db, err := newPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %v", err)
	}
	defer rdb.Close()

	gw, closeGateway, err := newGateway(context.Background(), cfg.Completion)
	if err != nil {
		return fmt.Errorf("completion 初始化失敗: %v", err)
	}
	defer func() {
		if err := closeGateway(); err != nil {
			zl.Warn("關閉 completion client 失敗", zap.Error(err))
		}
	}()
	if cfg.Completion.APIKey() == "" {
		zl.Warn("completion API key not set; AI endpoints will return upstream_config_error",
			zap.String("provider", cfg.Completion.Provider))
	}

	wp := newWorkerPool(cfg.Completion.Workers)
	defer wp.Stop()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	tokens := service.NewTokens(cfg.JWTSecret, cfg.TokenTTL, cache.NewBlocklist(rdb))
	authSvc := service.NewAuth(db, tokens, zl)
	pooled := completion.NewPooled(gw, wp, cfg.Completion.Timeout, m)

	e := newEcho(cfg, zl, m)
	router.Setup(e, router.Deps{
		DB:        db,
		Auth:      authSvc,
		Practice:  service.NewPractice(db, pooled, m, zl),
		Content:   service.NewContent(db),
		Dashboard: service.NewDashboard(db, authSvc),
		RateLimit: cfg.RateLimit,
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	ctx, stop := notifyContext()
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- startServer(e, cfg.HTTPAddr) }()
	zl.Info("HTTP 服務啟動", zap.String("addr", cfg.HTTPAddr), zap.String("provider", cfg.Completion.Provider))

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP 服務失敗: %v", err)
		}
		return nil
	case <-ctx.Done():
	}

	zl.Info("收到關機訊號，等待進行中的請求完成")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownServer(shutdownCtx, e); err != nil {
		return fmt.Errorf("HTTP 服務關閉失敗: %v", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
