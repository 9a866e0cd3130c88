package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/adamwoolhether/jobdash/config"
	"github.com/adamwoolhether/jobdash/logging"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	exp := config.Config{
		BaseURL:     "http://localhost:5000",
		Timeout:     10 * time.Second,
		UserAgent:   "jobdash/1.0",
		RateLimit:   config.RateLimit{MaxCalls: 5, Window: 5 * time.Second},
		Concurrency: 4,
		SearchDelay: 300 * time.Millisecond,
		Metrics:     config.Metrics{Namespace: "jobdash"},
		Logging: logging.Config{
			Level:  "info",
			Format: "text",
			File:   logging.FileConfig{MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 28},
		},
	}
	if diff := cmp.Diff(exp, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobdash.yaml")
	yaml := `
base_url: http://dash.internal:8080
rate_limit:
  max_calls: 10
  window: 1m
throttle:
  rps: 2
  burst: 4
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("JOBDASH_RATE_LIMIT_MAX_CALLS", "3")
	t.Setenv("JOBDASH_TIMEOUT", "2s")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.BaseURL != "http://dash.internal:8080" {
		t.Errorf("base url = %q", cfg.BaseURL)
	}
	if cfg.RateLimit.MaxCalls != 3 {
		t.Errorf("env should override file: max_calls = %d", cfg.RateLimit.MaxCalls)
	}
	if cfg.RateLimit.Window != time.Minute {
		t.Errorf("window = %v", cfg.RateLimit.Window)
	}
	if cfg.Timeout != 2*time.Second {
		t.Errorf("timeout = %v", cfg.Timeout)
	}
	if cfg.Throttle != (config.Throttle{RPS: 2, Burst: 4}) {
		t.Errorf("throttle = %+v", cfg.Throttle)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging level = %q", cfg.Logging.Level)
	}
}

func TestLoad_Invalid(t *testing.T) {
	testCases := map[string]map[string]string{
		"zeroMaxCalls":  {"JOBDASH_RATE_LIMIT_MAX_CALLS": "0"},
		"negWindow":     {"JOBDASH_RATE_LIMIT_WINDOW": "-5s"},
		"badURL":        {"JOBDASH_BASE_URL": "not a url"},
		"badLevel":      {"JOBDASH_LOGGING_LEVEL": "chatty"},
		"halfThrottle":  {"JOBDASH_THROTTLE_RPS": "5"},
		"badDuration":   {"JOBDASH_TIMEOUT": "soon"},
		"noConcurrency": {"JOBDASH_CONCURRENCY": "0"},
	}

	for name, env := range testCases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}

			if _, err := config.Load(""); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
