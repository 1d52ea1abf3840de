package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultRestDuration = 60 * time.Second
	DefaultSessionTTL   = 24 * 7 * time.Hour
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// remote services
	DocStoreBaseURL  string `toml:"docstore_base_url"`
	IdentityBaseURL  string `toml:"identity_base_url"`
	ChatGeneratorURL string `toml:"chat_generator_url"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// postgres (training events)
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`

	// auth
	TokenIssuer                 string `toml:"token_issuer"`
	SessionTTLHours             int    `toml:"session_ttl_hours"`
	LoginRateLimitAllowedPerMin int    `toml:"login_rate_limit_allowed_per_min"`
	DevLoginEmail               string `toml:"dev_login_email"`
	DevLoginUID                 string `toml:"dev_login_uid"`

	// workouts
	RestDurationSeconds    int `toml:"rest_duration_seconds"`
	CustomWorkoutsCacheMB  int `toml:"custom_workouts_cache_mb"`
	CustomWorkoutsCacheTTL int `toml:"custom_workouts_cache_ttl_seconds"`

	CorsAllowedOrigins []string `toml:"cors_allowed_origins"`

	// secrets, never read from the file
	DocStoreAuth    string `toml:"-"`
	IdentityAPIKey  string `toml:"-"`
	JWTSecret       string `toml:"-"`
	RedisPassword   string `toml:"-"`
	DevLoginHash    string `toml:"-"`
	SentryDSN       string `toml:"-"`
	HoneycombEnable bool   `toml:"-"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		if t.Development == nil {
			return nil, fmt.Errorf("missing [development] config")
		}
		return t.Development, nil
	case "prod", "production":
		if t.Production == nil {
			return nil, fmt.Errorf("missing [production] config")
		}
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path, picks the section for env, applies
// defaults and reads secrets from the environment.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg.Environment == "" {
		cfg.Environment = strings.ToLower(env)
	}

	cfg.applyDefaults()
	cfg.readSecrets(os.Getenv)

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = "localhost"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
	if c.RedisHost == "" {
		c.RedisHost = "localhost"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.PostgresHost == "" {
		c.PostgresHost = "localhost"
	}
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.PostgresDBName == "" {
		c.PostgresDBName = "fitforge"
	}
	if c.TokenIssuer == "" {
		c.TokenIssuer = "fitforge"
	}
	if c.SessionTTLHours <= 0 {
		c.SessionTTLHours = int(DefaultSessionTTL / time.Hour)
	}
	if c.LoginRateLimitAllowedPerMin <= 0 {
		c.LoginRateLimitAllowedPerMin = 10
	}
	if c.RestDurationSeconds <= 0 {
		c.RestDurationSeconds = int(DefaultRestDuration / time.Second)
	}
	if c.CustomWorkoutsCacheMB <= 0 {
		c.CustomWorkoutsCacheMB = 8
	}
	if c.CustomWorkoutsCacheTTL <= 0 {
		c.CustomWorkoutsCacheTTL = 3600
	}
}

func (c *Config) readSecrets(getenv func(string) string) {
	c.DocStoreAuth = getenv("FITFORGE_STORE_AUTH")
	c.IdentityAPIKey = getenv("FITFORGE_IDENTITY_API_KEY")
	c.JWTSecret = getenv("FITFORGE_JWT_SECRET")
	c.RedisPassword = getenv("FITFORGE_REDIS_PASS")
	c.DevLoginHash = getenv("FITFORGE_DEV_LOGIN_HASH")
	c.SentryDSN = getenv("SENTRY_DSN")
	c.HoneycombEnable = getenv("HONEYCOMB_ENABLED") == "true"
}

func (c *Config) RestDuration() time.Duration {
	return time.Duration(c.RestDurationSeconds) * time.Second
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

func (c *Config) IsProduction() bool {
	return c.Environment == "prod" || c.Environment == "production"
}
