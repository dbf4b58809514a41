// Package config holds the client's operational settings: defaults,
// optional YAML file, and EOSPLAYER_* environment overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

// Config is the top-level configuration.
type Config struct {
	// Endpoint is the base URL of the chain API.
	Endpoint string `yaml:"endpoint"`
	// RequestTimeoutMS bounds a single remote call.
	RequestTimeoutMS int `yaml:"request_timeout_ms"`
	// ActionPageSize is the default page size of full action-log scans.
	ActionPageSize int64 `yaml:"action_page_size"`
	// ActionConcurrency is how many action windows are in flight per batch.
	ActionConcurrency int64 `yaml:"action_concurrency"`
	// DrainPollIntervalMS is how often a range scan checks for completion.
	DrainPollIntervalMS int `yaml:"drain_poll_interval_ms"`
	// ABICachePath enables the on-disk ABI cache when non-empty.
	ABICachePath string `yaml:"abi_cache_path"`
	// PushHistoryCapacity sizes the diagnostic ring of submitted transactions.
	PushHistoryCapacity int `yaml:"push_history_capacity"`
	LogLevel            string `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Endpoint:            "http://127.0.0.1:8888",
		RequestTimeoutMS:    10_000,
		ActionPageSize:      100,
		ActionConcurrency:   4,
		DrainPollIntervalMS: 20,
		PushHistoryCapacity: 1000,
		LogLevel:            "info",
	}
}

// Load reads configuration from a YAML file. A missing file is not an
// error; defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

func (c Config) DrainPollInterval() time.Duration {
	return time.Duration(c.DrainPollIntervalMS) * time.Millisecond
}
