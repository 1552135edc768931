package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Sink receives each stage's raw text output. The pipeline itself stays free
// of persistence concerns; callers inject whatever sink they need.
type Sink interface {
	Record(name, content string) error
}

// FileSink writes one timestamped text file per stage under Dir.
type FileSink struct {
	Dir string
	// Now is overridable in tests; nil means time.Now.
	Now func() time.Time
}

func (s *FileSink) Record(name, content string) error {
	if s == nil || strings.TrimSpace(s.Dir) == "" {
		return errors.New("sink dir not configured")
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("mkdir sink dir: %w", err)
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	stamp := now.Format("20060102_150405")
	path := filepath.Join(s.Dir, fmt.Sprintf("%s_%s.txt", slugify(name), stamp))

	rule := strings.Repeat("=", 80)
	var b strings.Builder
	fmt.Fprintf(&b, "Stage: %s\nTimestamp: %s\n%s\n\n", name, stamp, rule)
	b.WriteString(content)
	fmt.Fprintf(&b, "\n\n%s\n", rule)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write stage output: %w", err)
	}
	log.Info().Str("stage", name).Str("file", path).Msg("recorded stage output")
	return nil
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugRe.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		s = "stage"
	}
	return s
}
