package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nexthire/internal/cache"
	"nexthire/internal/completion"
	"nexthire/internal/config"
	"nexthire/internal/database"
	"nexthire/internal/logger"
	"nexthire/internal/metrics"
	"nexthire/internal/service"
	"nexthire/internal/worker"
)

var defaultNotifyContext = notifyContext

func restoreGlobals() {
	loadConfig = config.Load
	newLogger = logger.New
	newPgxPool = database.NewPgxPool
	newRedisClient = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newWorkerPool = worker.NewPool
	newGateway = buildGateway
	startServer = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownServer = func(ctx context.Context, e *echo.Echo) error { return e.Shutdown(ctx) }
	notifyContext = defaultNotifyContext
	exitFunc = func(code int) {}
}

func testConfig() *config.Config {
	return &config.Config{
		HTTPAddr:    ":0",
		DatabaseURL: "db",
		RedisAddr:   "127",
		RedisDB:     1,
		JWTSecret:   "s",
		TokenTTL:    time.Hour,
		CORSOrigins: []string{"http://localhost:5173"},
		Completion: config.CompletionConfig{
			Provider: config.ProviderOpenAI,
			Workers:  2,
		},
	}
}

// stubAll 讓 run 不連任何外部服務
func stubAll(t *testing.T, called map[string]bool) {
	t.Helper()
	t.Cleanup(restoreGlobals)
	newLogger = func(bool, string) *zap.Logger { return zap.NewNop() }
	loadConfig = func() (*config.Config, error) { return testConfig(), nil }
	newPgxPool = func(ctx context.Context, url string) (database.DB, error) {
		called["pgx"] = true
		require.Equal(t, "db", url)
		return &database.FakeDB{CloseFn: func() { called["dbClose"] = true }}, nil
	}
	newRedisClient = func(addr, pwd string, db int) (cache.Cache, error) {
		called["redis"] = true
		require.Equal(t, "127", addr)
		require.Equal(t, 1, db)
		return &cache.FakeCache{CloseFn: func() error { called["redisClose"] = true; return nil }}, nil
	}
	runMigrationsFn = func(url string) error { called["migrate"] = true; return nil }
	newGateway = func(context.Context, config.CompletionConfig) (completion.Gateway, func() error, error) {
		called["gateway"] = true
		return &completion.FakeGateway{}, func() error { called["gatewayClose"] = true; return nil }, nil
	}
}

func TestCustomValidator(t *testing.T) {
	cv := &CustomValidator{validator: validator.New()}
	type s struct {
		Name string `validate:"required"`
	}
	require.NoError(t, cv.Validate(&s{Name: "ok"}))
	require.Error(t, cv.Validate(&s{}))
}

func TestRunSuccess(t *testing.T) {
	called := make(map[string]bool)
	stubAll(t, called)

	var routes []string
	startServer = func(e *echo.Echo, addr string) error {
		called["start"] = true
		require.Equal(t, ":0", addr)
		for _, r := range e.Routes() {
			routes = append(routes, r.Method+" "+r.Path)
		}
		return http.ErrServerClosed
	}

	require.NoError(t, run())
	for _, k := range []string{"pgx", "redis", "migrate", "gateway", "start", "dbClose", "redisClose", "gatewayClose"} {
		require.True(t, called[k], k)
	}
	require.Contains(t, routes, "GET /swagger/*")
	require.Contains(t, routes, "GET /metrics")
	require.Contains(t, routes, "GET /api/health")
}

func TestRunGracefulShutdown(t *testing.T) {
	called := make(map[string]bool)
	stubAll(t, called)

	release := make(chan struct{})
	startServer = func(*echo.Echo, string) error {
		<-release
		return http.ErrServerClosed
	}
	shutdownServer = func(ctx context.Context, _ *echo.Echo) error {
		_, ok := ctx.Deadline()
		require.True(t, ok)
		called["shutdown"] = true
		close(release)
		return nil
	}
	notifyContext = func() (context.Context, context.CancelFunc) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx, cancel
	}

	require.NoError(t, run())
	require.True(t, called["shutdown"])
	require.True(t, called["dbClose"])
}

func TestRunErrors(t *testing.T) {
	called := make(map[string]bool)
	stubAll(t, called)

	loadConfig = func() (*config.Config, error) { return nil, errors.New("config") }
	require.Error(t, run())
	loadConfig = func() (*config.Config, error) { return testConfig(), nil }

	runMigrationsFn = func(string) error { return errors.New("migrate") }
	require.Error(t, run())
	runMigrationsFn = func(string) error { return nil }

	newPgxPool = func(context.Context, string) (database.DB, error) { return nil, errors.New("db") }
	require.Error(t, run())
	newPgxPool = func(context.Context, string) (database.DB, error) { return &database.FakeDB{}, nil }

	newRedisClient = func(string, string, int) (cache.Cache, error) { return nil, errors.New("redis") }
	require.Error(t, run())
	newRedisClient = func(string, string, int) (cache.Cache, error) { return &cache.FakeCache{}, nil }

	newGateway = func(context.Context, config.CompletionConfig) (completion.Gateway, func() error, error) {
		return nil, nil, errors.New("gateway")
	}
	require.Error(t, run())
	newGateway = func(context.Context, config.CompletionConfig) (completion.Gateway, func() error, error) {
		return &completion.FakeGateway{}, func() error { return errors.New("close") }, nil
	}

	startServer = func(*echo.Echo, string) error { return errors.New("start") }
	require.Error(t, run())

	// 關閉 gateway 失敗只記錄日誌
	startServer = func(*echo.Echo, string) error { return nil }
	require.NoError(t, run())
}

func TestBuildGateway(t *testing.T) {
	gw, closeFn, err := buildGateway(context.Background(), config.CompletionConfig{Provider: config.ProviderOpenAI, OpenAIModel: "m"})
	require.NoError(t, err)
	require.IsType(t, &completion.OpenAI{}, gw)
	require.NoError(t, closeFn())

	// 沒有金鑰時不建立 client
	gw, closeFn, err = buildGateway(context.Background(), config.CompletionConfig{Provider: config.ProviderGemini})
	require.NoError(t, err)
	require.IsType(t, &completion.Gemini{}, gw)
	require.NoError(t, closeFn())
	_, err = gw.Complete(context.Background(), completion.Prompt{User: "x"})
	require.ErrorIs(t, err, completion.ErrNotConfigured)
}

func TestNewEcho(t *testing.T) {
	cfg := testConfig()
	e := newEcho(cfg, zap.NewNop(), metrics.New(prometheus.NewRegistry()))
	e.GET("/boom", func(echo.Context) error { panic("boom") })

	// CORS preflight
	req := httptest.NewRequest(http.MethodOptions, "/boom", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:5173")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodGet)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, "http://localhost:5173", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))

	// panic 由 Recover 轉成 500 JSON
	req = httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "internal_error")
	require.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestNewEchoCountsServiceErrorStatus(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	e := newEcho(testConfig(), zap.NewNop(), m)
	e.GET("/api/mcq/check/:id", func(echo.Context) error {
		return &service.Error{Kind: service.KindNotFound, Message: "mcq not found"}
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/mcq/check/9", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "/api/mcq/check/:id", "404")))
	require.Equal(t, 0.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "/api/mcq/check/:id", "200")))
}

func TestMainExit(t *testing.T) {
	called := make(map[string]bool)
	stubAll(t, called)
	exitCode := 0
	exitFunc = func(code int) { exitCode = code }
	loadConfig = func() (*config.Config, error) { return nil, errors.New("fail") }
	main()
	require.Equal(t, 1, exitCode)
}
