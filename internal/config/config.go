package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Session store backends.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Config holds runtime configuration values for the web application.
type Config struct {
	AppName               string
	AppEnv                string
	AppPort               string
	AlunoAPIBaseURL       string
	AlunoAPITimeout       time.Duration
	SessionStore          string
	SessionTTL            time.Duration
	RedisURL              string
	NATSURL               string
	NotificationChannel   string
	NotificationKeepAlive time.Duration
	DatabaseURL           string
	SQLitePath            string
	RateLimitMax          int
	RateLimitWindow       time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("DIARIO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Diario Eletronico")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("aluno_api.base_url", "https://api-aluno.vercel.app")
	v.SetDefault("aluno_api.timeout", "15s")
	v.SetDefault("session.store", SessionStoreMemory)
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("notifications.channel", "diario")
	v.SetDefault("notifications.keepalive", "30s")
	v.SetDefault("database.sqlite_path", "diario.db")
	v.SetDefault("rate_limit.max", 30)
	v.SetDefault("rate_limit.window", "1m")

	apiTimeout, err := parseDuration(v, "aluno_api.timeout")
	if err != nil {
		return Config{}, err
	}
	sessionTTL, err := parseDuration(v, "session.ttl")
	if err != nil {
		return Config{}, err
	}
	keepAlive, err := parseDuration(v, "notifications.keepalive")
	if err != nil {
		return Config{}, err
	}
	rateWindow, err := parseDuration(v, "rate_limit.window")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:               v.GetString("app.name"),
		AppEnv:                v.GetString("app.env"),
		AppPort:               v.GetString("app.port"),
		AlunoAPIBaseURL:       strings.TrimSpace(v.GetString("aluno_api.base_url")),
		AlunoAPITimeout:       apiTimeout,
		SessionStore:          strings.ToLower(strings.TrimSpace(v.GetString("session.store"))),
		SessionTTL:            sessionTTL,
		RedisURL:              v.GetString("redis.url"),
		NATSURL:               v.GetString("nats.url"),
		NotificationChannel:   v.GetString("notifications.channel"),
		NotificationKeepAlive: keepAlive,
		DatabaseURL:           v.GetString("database.url"),
		SQLitePath:            v.GetString("database.sqlite_path"),
		RateLimitMax:          v.GetInt("rate_limit.max"),
		RateLimitWindow:       rateWindow,
	}

	if cfg.AlunoAPIBaseURL == "" {
		return Config{}, fmt.Errorf("aluno api base url must be provided")
	}

	switch cfg.SessionStore {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("redis url must be provided when session store is redis")
		}
	default:
		return Config{}, fmt.Errorf("unsupported session store %q", cfg.SessionStore)
	}

	if cfg.RateLimitMax <= 0 {
		cfg.RateLimitMax = 30
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}

	return d, nil
}
