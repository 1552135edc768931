package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/careerscout/internal/app"
)

func main() {
	// Load .env before flag defaults are evaluated so env-backed defaults
	// see the file's values. A missing .env is fine.
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		role        string
		location    string
		numResults  int
		requestPath string
		configPath  string

		adzunaAppID   string
		adzunaAppKey  string
		adzunaBaseURL string
		adzunaCountry string

		maxAttempts int
		retryDelay  time.Duration
		timeout     time.Duration

		llmBaseURL string
		llmModel   string
		llmKey     string

		outputDir  string
		outputPath string
		outputPDF  string
		cacheDir   string

		dryRun  bool
		noCache bool
		verbose bool
	)

	// Zero defaults throughout: "unset" must stay observable so the env and
	// config-file overlays can fill these in. Built-in defaults are applied
	// last, by app.ApplyDefaults.
	flag.StringVar(&role, "role", "", "Job role to search for (e.g. \"Data Scientist\")")
	flag.StringVar(&location, "location", "", "Location to search in (e.g. \"Los Angeles\")")
	flag.IntVar(&numResults, "results", 0, "Number of job listings to retrieve, 1-50 (default 5)")
	flag.StringVar(&requestPath, "request", "", "Path to a YAML/JSON search request document (overrides -role/-location/-results)")
	flag.StringVar(&configPath, "config", "", "Path to a YAML/JSON config file")
	flag.StringVar(&adzunaAppID, "adzuna.appID", "", "Adzuna application ID (default $ADZUNA_APP_ID)")
	flag.StringVar(&adzunaAppKey, "adzuna.appKey", "", "Adzuna API key (default $ADZUNA_API_KEY)")
	flag.StringVar(&adzunaBaseURL, "adzuna.base", "", "Adzuna API base URL override")
	flag.StringVar(&adzunaCountry, "adzuna.country", "", "Adzuna country code (default us)")
	flag.IntVar(&maxAttempts, "retry.attempts", 0, "Retry budget for one search, includes the first attempt (default 3)")
	flag.DurationVar(&retryDelay, "retry.delay", 0, "Fixed delay between attempts (default 2s)")
	flag.DurationVar(&timeout, "timeout", 0, "Per-request timeout (default 30s)")
	flag.StringVar(&llmBaseURL, "llm.base", "", "OpenAI-compatible base URL (default $LLM_BASE_URL)")
	flag.StringVar(&llmModel, "llm.model", "", "Model name (default $LLM_MODEL)")
	flag.StringVar(&llmKey, "llm.key", "", "API key for OpenAI-compatible server (default $LLM_API_KEY)")
	flag.StringVar(&outputDir, "out.dir", "", "Directory for per-stage output files (default outputs)")
	flag.StringVar(&outputPath, "out.report", "", "Path to write the combined report (default report.md)")
	flag.StringVar(&outputPDF, "out.pdf", "", "Optional path to also write the combined report as PDF")
	flag.StringVar(&cacheDir, "cache.dir", "", "LLM response cache directory (default .careerscout-cache)")
	flag.BoolVar(&dryRun, "dry-run", false, "Run the job search only, without calling the model")
	flag.BoolVar(&noCache, "no-cache", false, "Disable the LLM response cache")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	cfg := app.Config{
		Role:          role,
		Location:      location,
		NumResults:    numResults,
		RequestPath:   requestPath,
		AdzunaAppID:   adzunaAppID,
		AdzunaAppKey:  adzunaAppKey,
		AdzunaBaseURL: adzunaBaseURL,
		AdzunaCountry: adzunaCountry,
		MaxAttempts:   maxAttempts,
		RetryDelay:    retryDelay,
		Timeout:       timeout,
		LLMBaseURL:    llmBaseURL,
		LLMModel:      llmModel,
		LLMAPIKey:     llmKey,
		OutputDir:     outputDir,
		OutputPath:    outputPath,
		OutputPDFPath: outputPDF,
		CacheDir:      cacheDir,
		DryRun:        dryRun,
		Verbose:       verbose,
	}

	// Precedence: flags, then environment, then config file, then built-in
	// defaults. Each overlay only fills fields the earlier sources left unset.
	app.ApplyEnvToConfig(&cfg)
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("config", configPath).Msg("load config file")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyDefaults(&cfg)
	if noCache {
		cfg.CacheDir = ""
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := app.ValidateConfig(cfg); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		// Exit code policy: 2 for a terminal search failure, 1 otherwise.
		// An empty result set is a normal outcome and exits 0.
		if errors.Is(err, app.ErrSearchFailed) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(cfg app.Config) error {
	ctx := context.Background()
	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	return a.Run(ctx)
}
