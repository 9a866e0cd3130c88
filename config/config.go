// Package config loads jobdash settings from defaults, an optional YAML
// file and JOBDASH_ prefixed environment variables, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/adamwoolhether/jobdash/logging"
	"github.com/adamwoolhether/jobdash/validate"
)

// EnvPrefix prefixes every environment override, e.g. JOBDASH_RATE_LIMIT_MAX_CALLS.
const EnvPrefix = "JOBDASH"

// Config is the full jobdash configuration.
type Config struct {
	BaseURL     string         `mapstructure:"base_url" validate:"required,url"`
	Timeout     time.Duration  `mapstructure:"timeout" validate:"gt=0"`
	UserAgent   string         `mapstructure:"user_agent"`
	RateLimit   RateLimit      `mapstructure:"rate_limit"`
	Throttle    Throttle       `mapstructure:"throttle"`
	Concurrency int            `mapstructure:"concurrency" validate:"gt=0"`
	SearchDelay time.Duration  `mapstructure:"search_delay" validate:"gte=0"`
	Metrics     Metrics        `mapstructure:"metrics"`
	Logging     logging.Config `mapstructure:"logging"`
}

// RateLimit configures the sliding-window limiter shared by all API calls.
type RateLimit struct {
	MaxCalls int           `mapstructure:"max_calls" validate:"gt=0"`
	Window   time.Duration `mapstructure:"window" validate:"gt=0"`
}

// Throttle adds a token bucket in front of the limiter. Zero RPS disables it.
type Throttle struct {
	RPS   int `mapstructure:"rps" validate:"gte=0"`
	Burst int `mapstructure:"burst" validate:"gte=0"`
}

// Metrics names the limiter's Prometheus series.
type Metrics struct {
	Namespace string `mapstructure:"namespace"`
}

var defaults = map[string]any{
	"base_url":                  "http://localhost:5000",
	"timeout":                   "10s",
	"user_agent":                "jobdash/1.0",
	"rate_limit.max_calls":      5,
	"rate_limit.window":         "5s",
	"throttle.rps":              0,
	"throttle.burst":            0,
	"concurrency":               4,
	"search_delay":              "300ms",
	"metrics.namespace":         "jobdash",
	"logging.level":             "info",
	"logging.format":            logging.FormatText,
	"logging.file.path":         "",
	"logging.file.max_size_mb":  100,
	"logging.file.max_backups":  3,
	"logging.file.max_age_days": 28,
	"logging.file.compress":     false,
}

// Load reads the configuration. An empty path skips the file.
func Load(path string) (Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %q: %w", path, err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks field constraints and cross-field rules.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if (c.Throttle.RPS == 0) != (c.Throttle.Burst == 0) {
		return errors.New("invalid config: throttle rps and burst must be set together")
	}

	return nil
}
