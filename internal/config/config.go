// File: internal/config/config.go
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 服務啟動所需的全部設定
type Config struct {
	HTTPAddr    string
	Mode        string
	LogFile     string
	CORSOrigins []string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	TokenTTL  time.Duration

	Completion CompletionConfig
	RateLimit  float64
}

// CompletionConfig 外部文字生成服務設定
type CompletionConfig struct {
	Provider      string
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	GeminiKey     string
	GeminiModel   string
	// Timeout 為 0 表示不設上限
	Timeout time.Duration
	Workers int
}

// APIKey 回傳目前 provider 對應的金鑰
func (c CompletionConfig) APIKey() string {
	if c.Provider == ProviderGemini {
		return c.GeminiKey
	}
	return c.OpenAIKey
}

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

var loadDotenv = func() error { return godotenv.Load() }

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("APP_MODE", "release")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:5174")
	v.SetDefault("COMPLETION_PROVIDER", ProviderOpenAI)
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("OPENAI_MODEL", "gpt-3.5-turbo")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("COMPLETION_TIMEOUT", "0s")
	v.SetDefault("COMPLETION_WORKERS", 4)
	v.SetDefault("RATE_LIMIT_RPS", 0)
}

// Load 讀取 .env (若存在) 與環境變數並驗證必要欄位
func Load() (*Config, error) {
	// .env 不存在時沿用既有環境變數
	_ = loadDotenv()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		HTTPAddr:      v.GetString("HTTP_ADDR"),
		Mode:          v.GetString("APP_MODE"),
		LogFile:       v.GetString("LOG_FILE"),
		DatabaseURL:   v.GetString("DATABASE_URL"),
		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		JWTSecret:     v.GetString("JWT_SECRET_KEY"),
		Completion: CompletionConfig{
			Provider:      strings.ToLower(v.GetString("COMPLETION_PROVIDER")),
			OpenAIKey:     v.GetString("OPENAI_API_KEY"),
			OpenAIBaseURL: strings.TrimRight(v.GetString("OPENAI_BASE_URL"), "/"),
			OpenAIModel:   v.GetString("OPENAI_MODEL"),
			GeminiKey:     v.GetString("GEMINI_API_KEY"),
			GeminiModel:   v.GetString("GEMINI_MODEL"),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("環境變數 REDIS_ADDR 未設定")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("環境變數 JWT_SECRET_KEY 未設定")
	}

	var err error
	if cfg.RedisDB, err = parseInt(v, "REDIS_DB"); err != nil {
		return nil, err
	}
	if cfg.Completion.Workers, err = parseInt(v, "COMPLETION_WORKERS"); err != nil {
		return nil, err
	}
	if cfg.Completion.Workers <= 0 {
		return nil, fmt.Errorf("無效的 COMPLETION_WORKERS: %d", cfg.Completion.Workers)
	}
	if cfg.TokenTTL, err = parseDuration(v, "TOKEN_TTL"); err != nil {
		return nil, err
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("無效的 TOKEN_TTL: %s", cfg.TokenTTL)
	}
	if cfg.Completion.Timeout, err = parseDuration(v, "COMPLETION_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = parseFloat(v, "RATE_LIMIT_RPS"); err != nil {
		return nil, err
	}

	switch cfg.Completion.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return nil, fmt.Errorf("無效的 COMPLETION_PROVIDER: %q", cfg.Completion.Provider)
	}

	for _, o := range strings.Split(v.GetString("CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}
	return cfg, nil
}

// Debug 是否為開發模式
func (c *Config) Debug() bool {
	return c.Mode == "debug"
}

func parseInt(v *viper.Viper, key string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return 0, fmt.Errorf("無效的 %s: %v", key, err)
	}
	return n, nil
}

func parseFloat(v *viper.Viper, key string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v.GetString(key)), 64)
	if err != nil {
		return 0, fmt.Errorf("無效的 %s: %v", key, err)
	}
	return f, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("無效的 %s: %v", key, err)
	}
	return d, nil
}
