// Package config loads the service configuration from an optional file plus MATCHER_*
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/jonathan/talent-matcher/internal/cache"
	"github.com/jonathan/talent-matcher/internal/logging"
	"github.com/jonathan/talent-matcher/internal/ranking"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. MATCHER_SERVER_PORT.
const EnvPrefix = "MATCHER"

// Config is the full configuration of the CLI, the REST server and the MCP server.
type Config struct {
	Log      logging.Config `mapstructure:"log"`
	Server   ServerConfig   `mapstructure:"server"`
	Auth     JWTConfig      `mapstructure:"auth"`
	Database DatabaseConfig `mapstructure:"database"`
	Dataset  DatasetConfig  `mapstructure:"dataset"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Taxonomy TaxonomyConfig `mapstructure:"taxonomy"`
}

// ServerConfig configures the REST listener.
type ServerConfig struct {
	Port            int             `mapstructure:"port"`
	ReadTimeout     time.Duration   `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration   `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdown_timeout"`
	CORSOrigin      string          `mapstructure:"cors_origin"`
	RateLimit       RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig is the per-client token bucket. Zero RequestsPerSecond disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"rps"`
	Burst             int     `mapstructure:"burst"`
}

// DatabaseConfig points at the Postgres read model.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// DatasetConfig points at a JSON fixture used when no database is configured.
type DatasetConfig struct {
	Path string `mapstructure:"path"`
}

// CacheConfig configures the two cache tiers.
type CacheConfig struct {
	RedisURL        string        `mapstructure:"redis_url"`
	MaxEntries      int           `mapstructure:"max_entries"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	TTL             cache.TTLs    `mapstructure:"ttl"`
}

// EngineConfig holds the tunable scoring and aggregation parameters.
type EngineConfig struct {
	Weights        ranking.Weights `mapstructure:"weights"`
	MatchThreshold int             `mapstructure:"match_threshold"`
	MaxPoolSize    int             `mapstructure:"max_pool_size"`
	Workers        int             `mapstructure:"workers"`
	BundleSize     int             `mapstructure:"bundle_size"`
	RequestTimeout time.Duration   `mapstructure:"request_timeout"`
}

// TaxonomyConfig points at an optional taxonomy override file.
type TaxonomyConfig struct {
	Path string `mapstructure:"path"`
}

// Load reads the configuration. An empty path looks for config.{yaml,json,toml} in the
// working directory and silently continues without one.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, &LoadError{Path: path, Message: "config file not found", Cause: err}
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, &LoadError{Path: path, Message: "failed to read config", Cause: err}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &LoadError{Path: path, Message: "failed to decode config", Cause: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file or environment override is present.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults are static and always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.cors_origin", "*")
	v.SetDefault("server.rate_limit.rps", 20.0)
	v.SetDefault("server.rate_limit.burst", 40)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "talent-matcher")
	v.SetDefault("auth.expiration_hours", 24)

	v.SetDefault("database.url", "")
	v.SetDefault("dataset.path", "")

	ttls := cache.DefaultTTLs()
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.max_entries", 10000)
	v.SetDefault("cache.cleanup_interval", 5*time.Minute)
	v.SetDefault("cache.ttl.score", ttls.Score)
	v.SetDefault("cache.ttl.bundle", ttls.Bundle)
	v.SetDefault("cache.ttl.similar", ttls.Similar)

	w := ranking.DefaultWeights()
	v.SetDefault("engine.weights.skills", w.Skills)
	v.SetDefault("engine.weights.experience", w.Experience)
	v.SetDefault("engine.weights.education", w.Education)
	v.SetDefault("engine.weights.location", w.Location)
	v.SetDefault("engine.weights.job_type", w.JobType)
	v.SetDefault("engine.weights.salary", w.Salary)
	v.SetDefault("engine.match_threshold", 30)
	v.SetDefault("engine.max_pool_size", 500)
	v.SetDefault("engine.workers", 8)
	v.SetDefault("engine.bundle_size", 20)
	v.SetDefault("engine.request_timeout", 10*time.Second)

	v.SetDefault("taxonomy.path", "")
}

// Validate checks ranges the loaders cannot express.
func (c *Config) Validate() error {
	durations := map[string]time.Duration{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
		"cache.cleanup_interval":  c.Cache.CleanupInterval,
		"cache.ttl.score":         c.Cache.TTL.Score,
		"cache.ttl.bundle":        c.Cache.TTL.Bundle,
		"cache.ttl.similar":       c.Cache.TTL.Similar,
		"engine.request_timeout":  c.Engine.RequestTimeout,
	}
	for _, key := range slices.Sorted(maps.Keys(durations)) {
		if durations[key] <= 0 {
			return &ValidationError{Field: key, Message: fmt.Sprintf("must be positive, got %s", durations[key])}
		}
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return &ValidationError{Field: "server.port", Message: fmt.Sprintf("out of range: %d", c.Server.Port)}
	}
	if c.Server.RateLimit.RequestsPerSecond < 0 {
		return &ValidationError{Field: "server.rate_limit.rps", Message: "must be non-negative"}
	}
	if c.Server.RateLimit.RequestsPerSecond > 0 && c.Server.RateLimit.Burst < 1 {
		return &ValidationError{Field: "server.rate_limit.burst", Message: "must be at least 1 when rate limiting is enabled"}
	}
	if err := c.Engine.Weights.Validate(); err != nil {
		return &ValidationError{Field: "engine.weights", Message: "invalid weights", Cause: err}
	}
	if c.Engine.MatchThreshold < 0 || c.Engine.MatchThreshold > 100 {
		return &ValidationError{Field: "engine.match_threshold", Message: fmt.Sprintf("must be within [0,100], got %d", c.Engine.MatchThreshold)}
	}
	if c.Engine.MaxPoolSize < 1 {
		return &ValidationError{Field: "engine.max_pool_size", Message: "must be at least 1"}
	}
	if c.Engine.Workers < 1 {
		return &ValidationError{Field: "engine.workers", Message: "must be at least 1"}
	}
	if c.Engine.BundleSize < 1 {
		return &ValidationError{Field: "engine.bundle_size", Message: "must be at least 1"}
	}
	if c.Cache.MaxEntries < 0 {
		return &ValidationError{Field: "cache.max_entries", Message: "must be non-negative"}
	}
	if err := c.Auth.validate(); err != nil {
		return err
	}
	return nil
}
