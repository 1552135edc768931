package search

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/careerscout/internal/fetch"
	"github.com/hyperifyio/careerscout/internal/listing"
)

const (
	DefaultBaseURL = "https://api.adzuna.com/v1/api/jobs"
	DefaultCountry = "us"
)

// Adzuna implements Provider against the Adzuna jobs search endpoint.
type Adzuna struct {
	AppID   string
	AppKey  string
	BaseURL string // defaults to DefaultBaseURL
	Country string // defaults to DefaultCountry
	Fetcher *fetch.Client
}

func (a *Adzuna) Name() string { return "adzuna" }

// Search issues one GET against the search endpoint. Credentials are checked
// before any network I/O so a misconfigured environment fails distinctly and
// cheaply. Retry behavior lives entirely in the fetcher.
func (a *Adzuna) Search(ctx context.Context, req Request) (*Response, error) {
	if strings.TrimSpace(a.AppID) == "" || strings.TrimSpace(a.AppKey) == "" {
		return nil, &Failure{
			Reason: ReasonMissingCredentials,
			Err:    errors.New("adzuna credentials not configured"),
		}
	}

	u, err := a.searchURL(req)
	if err != nil {
		return nil, &Failure{Reason: ReasonInvalidInput, Err: err}
	}

	f := a.Fetcher
	if f == nil {
		f = &fetch.Client{}
	}
	log.Debug().Str("provider", a.Name()).Str("role", req.Role).Str("location", req.Location).Int("results", req.NumResults).Msg("search request")
	payload, err := f.GetJSON(ctx, u)
	if err != nil {
		return nil, &Failure{Reason: reasonFor(err), Err: err}
	}

	rawResults, ok := payload["results"].([]any)
	if !ok {
		return nil, &Failure{
			Reason: ReasonMalformedResponse,
			Err:    errors.New("response missing results array"),
		}
	}
	out := make([]listing.Raw, 0, len(rawResults))
	for _, item := range rawResults {
		if m, ok := item.(map[string]any); ok {
			out = append(out, listing.Raw(m))
		}
	}
	total := len(out)
	if n, ok := payload["count"].(float64); ok {
		total = int(n)
	}
	return &Response{Listings: out, TotalCount: total}, nil
}

func (a *Adzuna) searchURL(req Request) (string, error) {
	base := a.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	country := a.Country
	if country == "" {
		country = DefaultCountry
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/" + country + "/search/1"
	q := u.Query()
	q.Set("app_id", a.AppID)
	q.Set("app_key", a.AppKey)
	q.Set("results_per_page", strconv.Itoa(req.NumResults))
	q.Set("what", req.Role)
	q.Set("where", req.Location)
	q.Set("content-type", "application/json")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// reasonFor maps a classified fetch error onto the failure taxonomy.
func reasonFor(err error) Reason {
	var se *fetch.StatusError
	if errors.As(err, &se) {
		if se.Code >= 400 && se.Code < 500 && se.Code != http.StatusTooManyRequests {
			return ReasonClientRejected
		}
		return ReasonNetwork
	}
	if errors.Is(err, fetch.ErrMalformedJSON) {
		return ReasonMalformedResponse
	}
	return ReasonNetwork
}
