package config

import (
	"os"
	"strconv"
)

// FromEnv overlays EOSPLAYER_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("EOSPLAYER_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("EOSPLAYER_REQUEST_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RequestTimeoutMS = n
		}
	}
	if v := os.Getenv("EOSPLAYER_ACTION_PAGE_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.ActionPageSize = n
		}
	}
	if v := os.Getenv("EOSPLAYER_ACTION_CONCURRENCY"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.ActionConcurrency = n
		}
	}
	if v := os.Getenv("EOSPLAYER_DRAIN_POLL_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DrainPollIntervalMS = n
		}
	}
	if v := os.Getenv("EOSPLAYER_ABI_CACHE_PATH"); v != "" {
		cfg.ABICachePath = v
	}
	if v := os.Getenv("EOSPLAYER_PUSH_HISTORY_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PushHistoryCapacity = n
		}
	}
	if v := os.Getenv("EOSPLAYER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
