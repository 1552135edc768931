package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the single-file configuration schema. Nested sections map
// naturally onto flags and env.
type FileConfig struct {
	Search struct {
		Role       string `yaml:"role" json:"role"`
		Location   string `yaml:"location" json:"location"`
		NumResults int    `yaml:"numResults" json:"numResults"`
	} `yaml:"search" json:"search"`

	Adzuna struct {
		AppID   string `yaml:"appID" json:"appID"`
		AppKey  string `yaml:"appKey" json:"appKey"`
		BaseURL string `yaml:"base" json:"base"`
		Country string `yaml:"country" json:"country"`
	} `yaml:"adzuna" json:"adzuna"`

	Retry struct {
		MaxAttempts int           `yaml:"maxAttempts" json:"maxAttempts"`
		Delay       time.Duration `yaml:"delay" json:"delay"`
		Timeout     time.Duration `yaml:"timeout" json:"timeout"`
	} `yaml:"retry" json:"retry"`

	LLM struct {
		BaseURL string `yaml:"base" json:"base"`
		Model   string `yaml:"model" json:"model"`
		APIKey  string `yaml:"key" json:"key"`
	} `yaml:"llm" json:"llm"`

	Output struct {
		Dir    string `yaml:"dir" json:"dir"`
		Report string `yaml:"report" json:"report"`
		PDF    string `yaml:"pdf" json:"pdf"`
	} `yaml:"output" json:"output"`

	CacheDir string `yaml:"cacheDir" json:"cacheDir"`
	DryRun   bool   `yaml:"dryRun" json:"dryRun"`
	Verbose  bool   `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for fields that
// are currently unset. Flags are parsed first, so file config supplies
// defaults without overriding explicit flags.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.Role == "" && fc.Search.Role != "" {
		cfg.Role = fc.Search.Role
	}
	if cfg.Location == "" && fc.Search.Location != "" {
		cfg.Location = fc.Search.Location
	}
	if cfg.NumResults == 0 && fc.Search.NumResults > 0 {
		cfg.NumResults = fc.Search.NumResults
	}

	if cfg.AdzunaAppID == "" && fc.Adzuna.AppID != "" {
		cfg.AdzunaAppID = fc.Adzuna.AppID
	}
	if cfg.AdzunaAppKey == "" && fc.Adzuna.AppKey != "" {
		cfg.AdzunaAppKey = fc.Adzuna.AppKey
	}
	if cfg.AdzunaBaseURL == "" && fc.Adzuna.BaseURL != "" {
		cfg.AdzunaBaseURL = fc.Adzuna.BaseURL
	}
	if cfg.AdzunaCountry == "" && fc.Adzuna.Country != "" {
		cfg.AdzunaCountry = fc.Adzuna.Country
	}

	if cfg.MaxAttempts == 0 && fc.Retry.MaxAttempts > 0 {
		cfg.MaxAttempts = fc.Retry.MaxAttempts
	}
	if cfg.RetryDelay == 0 && fc.Retry.Delay > 0 {
		cfg.RetryDelay = fc.Retry.Delay
	}
	if cfg.Timeout == 0 && fc.Retry.Timeout > 0 {
		cfg.Timeout = fc.Retry.Timeout
	}

	if cfg.LLMBaseURL == "" && fc.LLM.BaseURL != "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" && fc.LLM.Model != "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" && fc.LLM.APIKey != "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}

	if cfg.OutputDir == "" && fc.Output.Dir != "" {
		cfg.OutputDir = fc.Output.Dir
	}
	if cfg.OutputPath == "" && fc.Output.Report != "" {
		cfg.OutputPath = fc.Output.Report
	}
	if cfg.OutputPDFPath == "" && fc.Output.PDF != "" {
		cfg.OutputPDFPath = fc.Output.PDF
	}

	if cfg.CacheDir == "" && fc.CacheDir != "" {
		cfg.CacheDir = fc.CacheDir
	}
	if !cfg.DryRun && fc.DryRun {
		cfg.DryRun = true
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig performs minimal schema validation for required settings.
// Search parameter validation is the validator's job; this only checks the
// run can produce output and, outside dry-run, reach a model.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.OutputPath) == "" {
		return errors.New("config: output report path is required")
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return errors.New("config: output dir is required")
	}
	if !cfg.DryRun && strings.TrimSpace(cfg.LLMModel) == "" {
		return errors.New("config: llm.model is required (or set LLM_MODEL)")
	}
	if cfg.MaxAttempts < 0 || cfg.RetryDelay < 0 || cfg.Timeout < 0 {
		return errors.New("config: negative retry settings are not allowed")
	}
	return nil
}
