package app

import (
	"time"

	"github.com/hyperifyio/careerscout/internal/fetch"
)

// Built-in defaults, applied only after every configuration source has had
// its say.
const (
	DefaultNumResults = 5
	DefaultOutputDir  = "outputs"
	DefaultReportPath = "report.md"
	DefaultCacheDir   = ".careerscout-cache"
)

// Config holds runtime configuration for one pipeline run. It is constructed
// once at process start and passed by reference; there is no package-level
// mutable state, so tests can substitute any part of it.
type Config struct {
	// Search request. When RequestPath is set, the request document it
	// points at takes precedence over the three inline fields.
	Role        string
	Location    string
	NumResults  int
	RequestPath string

	// Job-listings API
	AdzunaAppID   string
	AdzunaAppKey  string
	AdzunaBaseURL string
	AdzunaCountry string

	// Retry policy for the listings API
	MaxAttempts int
	RetryDelay  time.Duration
	Timeout     time.Duration

	// LLM
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// Output
	OutputDir     string // per-stage artifact sink
	OutputPath    string // combined report
	OutputPDFPath string // optional PDF export of the combined report

	// Behavior
	CacheDir string
	DryRun   bool
	Verbose  bool
}

// ApplyDefaults fills fields no source has set. Flags are registered with
// zero values so that the env and file overlays stay reachable; this runs
// last and closes the gaps.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.NumResults == 0 {
		cfg.NumResults = DefaultNumResults
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = fetch.DefaultMaxAttempts
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = fetch.DefaultRetryDelay
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = fetch.DefaultTimeout
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = DefaultReportPath
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = DefaultCacheDir
	}
}
