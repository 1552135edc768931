package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/careerscout/internal/cache"
	"github.com/hyperifyio/careerscout/internal/llm"
	"github.com/rs/zerolog/log"
)

// ErrNoContent indicates the model produced no usable text.
var ErrNoContent = errors.New("no substantive content")

// Input bundles the context shared by all advisory stages: the original
// search parameters and the stage-1 listings report they analyze.
type Input struct {
	Role           string
	Location       string
	NumResults     int
	ListingsReport string
}

// Advisor runs the LLM advisory stages over a job listings report. Stages
// are independent single calls; chaining and ordering belong to the caller.
type Advisor struct {
	Client  llm.Client
	Model   string
	Cache   *cache.LLMCache
	Verbose bool
}

// SearchSummary writes the market summary a recruiter would produce from the
// retrieved listings.
func (a *Advisor) SearchSummary(ctx context.Context, in Input) (string, error) {
	return a.run(ctx, "job_search", searcherSystem, buildSearchSummaryPrompt(in))
}

// SkillsRoadmap produces a prioritized skills analysis and learning plan.
func (a *Advisor) SkillsRoadmap(ctx context.Context, in Input) (string, error) {
	return a.run(ctx, "skills_analysis", skillsSystem, buildSkillsPrompt(in))
}

// InterviewPrep produces per-listing interview questions with answering
// guidance.
func (a *Advisor) InterviewPrep(ctx context.Context, in Input) (string, error) {
	return a.run(ctx, "interview_prep", interviewSystem, buildInterviewPrompt(in))
}

// CareerAdvice produces resume, LinkedIn, and application strategy advice.
func (a *Advisor) CareerAdvice(ctx context.Context, in Input) (string, error) {
	return a.run(ctx, "career_advisory", careerSystem, buildCareerPrompt(in))
}

func (a *Advisor) run(ctx context.Context, stage, system, user string) (string, error) {
	if a == nil || a.Client == nil || strings.TrimSpace(a.Model) == "" {
		return "", errors.New("advisor not configured")
	}

	key := cache.KeyFrom(a.Model, system+"\n\n"+user)
	if a.Cache != nil {
		if raw, ok, _ := a.Cache.Get(ctx, key); ok {
			var out struct {
				Text string `json:"text"`
			}
			if err := json.Unmarshal(raw, &out); err == nil && strings.TrimSpace(out.Text) != "" {
				log.Debug().Str("stage", stage).Msg("stage served from cache")
				return out.Text, nil
			}
		}
	}

	if a.Verbose {
		// Log prompt sizes only; the report may embed listing text.
		log.Debug().Str("stage", stage).Str("model", a.Model).Int("system_len", len(system)).Int("user_len", len(user)).Msg("advisory prompt")
	}

	req := openai.ChatCompletionRequest{
		Model: a.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.7,
		N:           1,
	}
	resp, err := a.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		// One short retry for transient backend hiccups; the context
		// deadline still bounds the second call.
		a.sleep(100 * time.Millisecond)
		resp, err = a.Client.CreateChatCompletion(ctx, req)
		if err != nil {
			return "", fmt.Errorf("%s call (after retry): %w", stage, err)
		}
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoContent
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", ErrNoContent
	}
	if a.Cache != nil {
		if payload, err := json.Marshal(map[string]string{"text": out}); err == nil {
			_ = a.Cache.Save(ctx, key, payload)
		}
	}
	return out, nil
}

// sleepFunc lets tests replace the retry pause.
var sleepFunc func(time.Duration)

func (a *Advisor) sleep(d time.Duration) {
	if sleepFunc != nil {
		sleepFunc(d)
		return
	}
	time.Sleep(d)
}
