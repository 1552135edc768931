package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/careerscout/internal/advisor"
	"github.com/hyperifyio/careerscout/internal/aggregate"
	"github.com/hyperifyio/careerscout/internal/cache"
	"github.com/hyperifyio/careerscout/internal/fetch"
	"github.com/hyperifyio/careerscout/internal/llm"
	"github.com/hyperifyio/careerscout/internal/search"
	"github.com/hyperifyio/careerscout/internal/validate"
)

const userAgent = "careerscout/1.0 (+https://github.com/hyperifyio/careerscout)"

// ErrSearchFailed is returned when the job search ends in a terminal failure
// (invalid input, missing credentials, exhausted retries, rejected request,
// unreadable response). The categorized text has already been recorded; the
// sentinel only drives the exit-code policy.
var ErrSearchFailed = errors.New("job search failed")

type App struct {
	cfg      Config
	provider search.Provider
	advisor  *advisor.Advisor
	sink     Sink
}

func New(ctx context.Context, cfg Config) (*App, error) {
	a := &App{cfg: cfg}
	a.provider = &search.Adzuna{
		AppID:   cfg.AdzunaAppID,
		AppKey:  cfg.AdzunaAppKey,
		BaseURL: cfg.AdzunaBaseURL,
		Country: cfg.AdzunaCountry,
		Fetcher: &fetch.Client{
			UserAgent:         userAgent,
			MaxAttempts:       cfg.MaxAttempts,
			RetryDelay:        cfg.RetryDelay,
			PerRequestTimeout: cfg.Timeout,
		},
	}
	a.sink = &FileSink{Dir: cfg.OutputDir}

	if !cfg.DryRun {
		transportCfg := openai.DefaultConfig(cfg.LLMAPIKey)
		if cfg.LLMBaseURL != "" {
			transportCfg.BaseURL = cfg.LLMBaseURL
		}
		client := &llm.OpenAIProvider{Inner: openai.NewClientWithConfig(transportCfg)}
		var stageCache *cache.LLMCache
		if cfg.CacheDir != "" {
			stageCache = &cache.LLMCache{Dir: cfg.CacheDir}
		}
		a.advisor = &advisor.Advisor{
			Client:  client,
			Model:   cfg.LLMModel,
			Cache:   stageCache,
			Verbose: cfg.Verbose,
		}
		preflight(ctx, client)
	}
	return a, nil
}

// preflight is a best-effort connectivity check; failures are warnings so
// the run can still serve stages from cache.
func preflight(ctx context.Context, client llm.Client) {
	lister, ok := client.(llm.ModelLister)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	models, err := lister.ListModels(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("LLM model list failed; continuing")
		return
	}
	log.Info().Int("count", len(models.Models)).Msg("LLM models available")
}

func (a *App) Run(ctx context.Context) error {
	req, reqErr := a.searchRequest()

	var res *search.Response
	var searchErr error
	if reqErr != nil {
		searchErr = &search.Failure{Reason: search.ReasonInvalidInput, Err: reqErr}
	} else {
		log.Info().Str("role", req.Role).Str("location", req.Location).Int("results", req.NumResults).Msg("searching job listings")
		res, searchErr = a.provider.Search(ctx, req)
	}
	report := aggregate.Render(req, res, searchErr)
	a.record("job_listings", report)

	if searchErr != nil {
		if err := a.writeReport(report); err != nil {
			return err
		}
		log.Error().Err(searchErr).Msg("job search ended in terminal failure")
		return ErrSearchFailed
	}
	if len(res.Listings) == 0 {
		if err := a.writeReport(report); err != nil {
			return err
		}
		log.Warn().Str("role", req.Role).Str("location", req.Location).Msg("no listings matched; skipping advisory stages")
		return nil
	}
	if a.cfg.DryRun {
		if err := a.writeReport(report); err != nil {
			return err
		}
		log.Info().Str("out", a.cfg.OutputPath).Msg("dry run complete, advisory stages skipped")
		return nil
	}

	in := advisor.Input{
		Role:           req.Role,
		Location:       req.Location,
		NumResults:     req.NumResults,
		ListingsReport: report,
	}
	stages := []struct {
		name  string
		title string
		run   func(context.Context, advisor.Input) (string, error)
	}{
		{"job_search", "Market Summary", a.advisor.SearchSummary},
		{"skills_analysis", "Skills Development Roadmap", a.advisor.SkillsRoadmap},
		{"interview_prep", "Interview Preparation Guide", a.advisor.InterviewPrep},
		{"career_advisory", "Career Strategy Advice", a.advisor.CareerAdvice},
	}

	var combined strings.Builder
	fmt.Fprintf(&combined, "# careerscout report\n\n%s\n\nRole: %s\nLocation: %s\n\n## Job Listings\n\n%s\n",
		time.Now().Format("2006-01-02"), req.Role, req.Location, report)
	for _, st := range stages {
		out, err := st.run(ctx, in)
		if err != nil {
			log.Warn().Err(err).Str("stage", st.name).Msg("advisory stage failed; continuing")
			continue
		}
		a.record(st.name, out)
		fmt.Fprintf(&combined, "\n## %s\n\n%s\n", st.title, out)
	}

	if err := a.writeReport(combined.String()); err != nil {
		return err
	}
	if a.cfg.OutputPDFPath != "" {
		if err := writeReportPDF(combined.String(), a.cfg.OutputPDFPath); err != nil {
			log.Warn().Err(err).Str("out", a.cfg.OutputPDFPath).Msg("PDF export failed")
		} else {
			log.Info().Str("out", a.cfg.OutputPDFPath).Msg("wrote PDF report")
		}
	}
	log.Info().Str("out", a.cfg.OutputPath).Msg("wrote report")
	return nil
}

// searchRequest builds the request from the request document when one is
// configured, otherwise from the inline config fields.
func (a *App) searchRequest() (search.Request, error) {
	if strings.TrimSpace(a.cfg.RequestPath) != "" {
		raw, err := os.ReadFile(a.cfg.RequestPath)
		if err != nil {
			return search.Request{}, fmt.Errorf("read request: %w", err)
		}
		return validate.ParseRequest(raw)
	}
	req := search.Request{
		Role:       a.cfg.Role,
		Location:   a.cfg.Location,
		NumResults: a.cfg.NumResults,
	}
	if err := validate.Validate(req); err != nil {
		return req, err
	}
	return req, nil
}

// record forwards a stage output to the sink. Sink failures are logged, not
// fatal: losing an artifact should not abort a run.
func (a *App) record(name, content string) {
	if a.sink == nil {
		return
	}
	if err := a.sink.Record(name, content); err != nil {
		log.Warn().Err(err).Str("stage", name).Msg("failed to record stage output")
	}
}

func (a *App) writeReport(content string) error {
	if err := os.WriteFile(a.cfg.OutputPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
