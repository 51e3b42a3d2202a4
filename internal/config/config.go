package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/jwalitptl/clinic-api/pkg/messaging/redis"
)

// EnvPrefix prefixes every environment override, e.g. CLINIC_DATABASE_HOST.
const EnvPrefix = "CLINIC"

// Doctor submissions are either logged or published to the broker.
const (
	ForwardLog    = "log"
	ForwardBroker = "broker"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" split_words:"true"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Pages     PagesConfig     `mapstructure:"pages"`
	Doctor    DoctorConfig    `mapstructure:"doctor"`
	Worker    WorkerConfig    `mapstructure:"worker"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" split_words:"true"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" split_words:"true"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" split_words:"true"`
	Mode            string        `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" split_words:"true"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" split_words:"true"`
}

type RedisConfig struct {
	URL            string        `mapstructure:"url"`
	MaxRetries     int           `mapstructure:"max_retries" split_words:"true"`
	RetryBackoff   time.Duration `mapstructure:"retry_backoff" split_words:"true"`
	PoolSize       int           `mapstructure:"pool_size" split_words:"true"`
	MinIdleConns   int           `mapstructure:"min_idle_conns" split_words:"true"`
	MaxFailures    int           `mapstructure:"max_failures" split_words:"true"`
	BreakerTimeout time.Duration `mapstructure:"breaker_timeout" split_words:"true"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" split_words:"true"`
	Burst             int     `mapstructure:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" split_words:"true"`
	AllowedMethods []string `mapstructure:"allowed_methods" split_words:"true"`
	AllowedHeaders []string `mapstructure:"allowed_headers" split_words:"true"`
	MaxAge         int      `mapstructure:"max_age" split_words:"true"`
}

type CacheConfig struct {
	ClinicTTL     time.Duration `mapstructure:"clinic_ttl" split_words:"true"`
	CatalogMaxAge int           `mapstructure:"catalog_max_age" split_words:"true"`
}

// PagesConfig controls the security headers of the doctor form pages.
type PagesConfig struct {
	FormActions    []string      `mapstructure:"form_actions" split_words:"true"`
	FrameAncestors []string      `mapstructure:"frame_ancestors" split_words:"true"`
	HSTSMaxAge     time.Duration `mapstructure:"hsts_max_age" split_words:"true"`
}

type DoctorConfig struct {
	Forward            string `mapstructure:"forward"`
	ForwardChannel     string `mapstructure:"forward_channel" split_words:"true"`
	StrictEnumerations bool   `mapstructure:"strict_enumerations" split_words:"true"`
}

// WorkerConfig configures the doctor event consumer.
type WorkerConfig struct {
	HealthPort int `mapstructure:"health_port" split_words:"true"`
}

// loadDotEnv exports the variables in the given files without overriding
// ones already set. A missing file is not an error.
func loadDotEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// LoadConfig reads config.yml from the usual locations, applies .env and
// CLINIC_* environment overrides and validates the result. A missing
// config file is not an error; defaults cover every setting.
func LoadConfig(paths ...string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		log.Warn().Err(err).Msg("Failed to load .env file")
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	if len(paths) == 0 {
		paths = []string{".", "./config", "/app/config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.mode", "release")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "clinic")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("redis.retry_backoff", 100*time.Millisecond)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.max_failures", 5)
	v.SetDefault("redis.breaker_timeout", 30*time.Second)

	v.SetDefault("log.level", "info")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 20.0)
	v.SetDefault("rate_limit.burst", 40)

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Origin", "Content-Type", "Accept", "X-Request-ID"})
	v.SetDefault("cors.max_age", 86400)

	v.SetDefault("cache.clinic_ttl", time.Minute)
	v.SetDefault("cache.catalog_max_age", 3600)

	v.SetDefault("pages.form_actions", []string{"'self'"})
	v.SetDefault("pages.frame_ancestors", []string{})
	v.SetDefault("pages.hsts_max_age", time.Duration(0))

	v.SetDefault("doctor.forward", ForwardLog)
	v.SetDefault("doctor.forward_channel", "doctor.upserted")
	v.SetDefault("doctor.strict_enumerations", false)

	v.SetDefault("worker.health_port", 8081)
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch c.Doctor.Forward {
	case ForwardLog:
	case ForwardBroker:
		if c.Doctor.ForwardChannel == "" {
			return fmt.Errorf("doctor.forward_channel is required when forwarding to the broker")
		}
		if c.Redis.URL == "" {
			return fmt.Errorf("redis.url is required when forwarding to the broker")
		}
	default:
		return fmt.Errorf("unknown doctor.forward %q (want %q or %q)", c.Doctor.Forward, ForwardLog, ForwardBroker)
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("rate_limit.requests_per_second must be positive")
	}
	return nil
}

func (c *RedisConfig) ToBrokerConfig() redis.Config {
	return redis.Config{
		URL:            c.URL,
		MaxRetries:     c.MaxRetries,
		RetryBackoff:   c.RetryBackoff,
		PoolSize:       c.PoolSize,
		MinIdleConns:   c.MinIdleConns,
		MaxFailures:    c.MaxFailures,
		BreakerTimeout: c.BreakerTimeout,
	}
}
