package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values (flags) take precedence over env. The Adzuna variable
// names match the upstream API documentation so existing .env files keep
// working.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.AdzunaAppID == "" {
		cfg.AdzunaAppID = os.Getenv("ADZUNA_APP_ID")
	}
	if cfg.AdzunaAppKey == "" {
		cfg.AdzunaAppKey = os.Getenv("ADZUNA_API_KEY")
	}
	if cfg.AdzunaBaseURL == "" {
		cfg.AdzunaBaseURL = os.Getenv("ADZUNA_BASE_URL")
	}
	if cfg.AdzunaCountry == "" {
		cfg.AdzunaCountry = os.Getenv("ADZUNA_COUNTRY")
	}

	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = os.Getenv("LLM_BASE_URL")
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = os.Getenv("LLM_MODEL")
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = os.Getenv("LLM_API_KEY")
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = os.Getenv("OUTPUT_DIR")
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = os.Getenv("CACHE_DIR")
	}

	if cfg.MaxAttempts == 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("API_MAX_RETRIES"))); err == nil && n > 0 {
			cfg.MaxAttempts = n
		}
	}
	if cfg.RetryDelay == 0 {
		if d, err := time.ParseDuration(strings.TrimSpace(os.Getenv("API_RETRY_DELAY"))); err == nil && d > 0 {
			cfg.RetryDelay = d
		}
	}
	if cfg.Timeout == 0 {
		if d, err := time.ParseDuration(strings.TrimSpace(os.Getenv("API_TIMEOUT"))); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	setBool := func(dst *bool, envKey string) {
		if *dst {
			return
		}
		switch strings.ToLower(strings.TrimSpace(os.Getenv(envKey))) {
		case "1", "true", "yes", "on":
			*dst = true
		}
	}
	setBool(&cfg.DryRun, "DRY_RUN")
	setBool(&cfg.Verbose, "VERBOSE")
}
