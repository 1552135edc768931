package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

// Defaults for the retry policy. The delay is deliberately constant rather
// than exponential: with a small fixed attempt budget a backoff curve buys
// nothing.
const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 2 * time.Second
	DefaultTimeout     = 30 * time.Second
)

// ErrMalformedJSON marks a response body that could not be decoded. Parsing
// is deterministic, so this is never retried.
var ErrMalformedJSON = errors.New("malformed json response")

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d", e.Code)
}

// Client issues GET requests against JSON endpoints with a bounded,
// fixed-delay retry policy keyed on failure class.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// MaxAttempts includes the initial attempt. Minimum 1.
	MaxAttempts int
	// RetryDelay is the constant pause between attempts.
	RetryDelay time.Duration
	// PerRequestTimeout bounds each individual attempt.
	PerRequestTimeout time.Duration

	// Sleep is overridable in tests; nil means time.Sleep.
	Sleep func(time.Duration)
}

// class is the outcome classification of one attempt. The table below is the
// whole retry policy; GetJSON only walks it.
type class int

const (
	classSuccess class = iota
	// classRetry spends an attempt and sleeps the fixed delay:
	// HTTP 429 and 5xx.
	classRetry
	// classRetryUnlessLast retries like classRetry but gives up immediately
	// when the budget is spent: timeouts and connection errors.
	classRetryUnlessLast
	// classTerminal is never retried: other 4xx statuses, malformed JSON,
	// and caller cancellation.
	classTerminal
)

func classify(err error) class {
	if err == nil {
		return classSuccess
	}
	var se *StatusError
	if errors.As(err, &se) {
		switch {
		case se.Code == http.StatusTooManyRequests:
			return classRetry
		case se.Code >= 500:
			return classRetry
		default:
			return classTerminal
		}
	}
	if errors.Is(err, ErrMalformedJSON) {
		return classTerminal
	}
	if errors.Is(err, context.Canceled) {
		return classTerminal
	}
	if isTimeout(err) {
		return classRetryUnlessLast
	}
	if isConnection(err) {
		return classRetryUnlessLast
	}
	return classTerminal
}

// GetJSON fetches url and decodes the body as a JSON object, retrying
// transient failures within the attempt budget. The returned error is
// classified and can be inspected with errors.As/Is; beyond that the
// contract is binary, payload or no payload.
func (c *Client) GetJSON(ctx context.Context, rawURL string) (map[string]any, error) {
	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	delay := c.RetryDelay
	if delay <= 0 {
		delay = DefaultRetryDelay
	}

	var lastErr error
	for i := 1; i <= attempts; i++ {
		payload, err := c.tryOnce(ctx, rawURL)
		switch classify(err) {
		case classSuccess:
			return payload, nil
		case classTerminal:
			log.Warn().Err(err).Int("attempt", i).Msg("terminal API failure, not retrying")
			return nil, err
		case classRetry:
			lastErr = err
			if i == attempts {
				log.Warn().Err(err).Int("attempt", i).Msg("retry budget exhausted")
				return nil, err
			}
			log.Warn().Err(err).Int("attempt", i).Int("max", attempts).Dur("delay", delay).Msg("transient API failure, backing off")
			c.sleep(delay)
		case classRetryUnlessLast:
			lastErr = err
			if i == attempts {
				log.Warn().Err(err).Int("attempt", i).Msg("retry budget exhausted")
				return nil, err
			}
			log.Warn().Err(err).Int("attempt", i).Int("max", attempts).Dur("delay", delay).Msg("request failed, backing off")
			c.sleep(delay)
		}
	}
	if lastErr == nil {
		lastErr = errors.New("retry budget exhausted")
	}
	return nil, lastErr
}

func (c *Client) tryOnce(ctx context.Context, rawURL string) (map[string]any, error) {
	if c.PerRequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.PerRequestTimeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	req.Header.Set("Accept", "application/json")

	hc := c.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}
	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return payload, nil
}

func (c *Client) sleep(d time.Duration) {
	if c.Sleep != nil {
		c.Sleep(d)
		return
	}
	time.Sleep(d)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func isConnection(err error) bool {
	var oe *net.OpError
	if errors.As(err, &oe) {
		return true
	}
	// http.Client wraps transport failures in *url.Error, but so are
	// deterministic faults like an unsupported scheme. Classify on the
	// wrapped error, not the wrapper.
	var ue *url.Error
	if !errors.As(err, &ue) {
		return false
	}
	if errors.Is(ue.Err, io.EOF) || errors.Is(ue.Err, io.ErrUnexpectedEOF) {
		return true
	}
	var ne net.Error
	return errors.As(ue.Err, &ne)
}
