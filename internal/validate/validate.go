package validate

import (
	"errors"
	"fmt"
	"math"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/careerscout/internal/search"
)

const (
	MinResults = 1
	MaxResults = 50
)

// Validate checks a typed search request against structural and range
// constraints. The first violation found is returned as a human-readable
// error, in fixed order: role, location, result count. It has no side
// effects and never panics.
func Validate(req search.Request) error {
	if strings.TrimSpace(req.Role) == "" {
		return errors.New("role must be a non-empty string")
	}
	if strings.TrimSpace(req.Location) == "" {
		return errors.New("location must be a non-empty string")
	}
	if req.NumResults < MinResults || req.NumResults > MaxResults {
		return fmt.Errorf("num_results must be between %d and %d", MinResults, MaxResults)
	}
	return nil
}

// ParseRequest decodes a YAML or JSON search request document and applies
// the full validation chain. Working on the loose decoded mapping preserves
// the missing-field and type checks that the typed Request cannot express:
// missing fields are reported first, in field order, then per-field type and
// emptiness, then range.
func ParseRequest(raw []byte) (search.Request, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return search.Request{}, fmt.Errorf("parse request: %w", err)
	}
	for _, field := range []string{"role", "location", "num_results"} {
		if _, ok := doc[field]; !ok {
			return search.Request{}, fmt.Errorf("missing required field: %q", field)
		}
	}
	role, ok := doc["role"].(string)
	if !ok || strings.TrimSpace(role) == "" {
		return search.Request{}, errors.New("role must be a non-empty string")
	}
	location, ok := doc["location"].(string)
	if !ok || strings.TrimSpace(location) == "" {
		return search.Request{}, errors.New("location must be a non-empty string")
	}
	numResults, ok := intValue(doc["num_results"])
	if !ok {
		return search.Request{}, errors.New("num_results must be an integer")
	}
	req := search.Request{Role: role, Location: location, NumResults: numResults}
	if err := Validate(req); err != nil {
		return search.Request{}, err
	}
	return req, nil
}

// intValue accepts the integer shapes the decoders produce: YAML yields int,
// JSON yields float64. Fractional values are not integers.
func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
