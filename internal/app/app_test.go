package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hyperifyio/careerscout/internal/listing"
	"github.com/hyperifyio/careerscout/internal/search"
)

type stubProvider struct {
	calls int
	res   *search.Response
	err   error
}

func (s *stubProvider) Search(context.Context, search.Request) (*search.Response, error) {
	s.calls++
	return s.res, s.err
}

func (s *stubProvider) Name() string { return "stub" }

type memSink struct {
	names    []string
	contents []string
}

func (m *memSink) Record(name, content string) error {
	m.names = append(m.names, name)
	m.contents = append(m.contents, content)
	return nil
}

func testApp(t *testing.T, p search.Provider) (*App, *memSink, string) {
	t.Helper()
	sink := &memSink{}
	out := filepath.Join(t.TempDir(), "report.md")
	a := &App{
		cfg: Config{
			Role:       "Data Scientist",
			Location:   "Los Angeles",
			NumResults: 5,
			OutputPath: out,
			DryRun:     true,
		},
		provider: p,
		sink:     sink,
	}
	return a, sink, out
}

func TestRun_TerminalFailureSignalsAndRecords(t *testing.T) {
	p := &stubProvider{err: &search.Failure{Reason: search.ReasonNetwork, Err: errors.New("boom")}}
	a, sink, out := testApp(t, p)

	err := a.Run(context.Background())
	if !errors.Is(err, ErrSearchFailed) {
		t.Fatalf("err = %v, want ErrSearchFailed", err)
	}
	if len(sink.names) != 1 || sink.names[0] != "job_listings" {
		t.Fatalf("recorded stages = %v", sink.names)
	}
	if !strings.Contains(sink.contents[0], "ERROR") {
		t.Fatalf("recorded text should be the categorized failure:\n%s", sink.contents[0])
	}
	b, readErr := os.ReadFile(out)
	if readErr != nil {
		t.Fatalf("report not written: %v", readErr)
	}
	if !strings.Contains(string(b), "ERROR") {
		t.Fatal("report should carry the failure text")
	}
}

func TestRun_InvalidInputShortCircuitsProvider(t *testing.T) {
	p := &stubProvider{}
	a, sink, _ := testApp(t, p)
	a.cfg.Role = "   "

	err := a.Run(context.Background())
	if !errors.Is(err, ErrSearchFailed) {
		t.Fatalf("err = %v, want ErrSearchFailed", err)
	}
	if p.calls != 0 {
		t.Fatalf("provider called %d times, want 0", p.calls)
	}
	if len(sink.contents) != 1 || !strings.Contains(sink.contents[0], "invalid search parameters") {
		t.Fatalf("recorded = %v", sink.contents)
	}
}

func TestRun_EmptyResultsSkipsAdvisoryStages(t *testing.T) {
	p := &stubProvider{res: &search.Response{TotalCount: 0}}
	a, sink, out := testApp(t, p)
	a.cfg.DryRun = false // stages would run if listings existed

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("empty results must not be an error: %v", err)
	}
	if len(sink.names) != 1 || sink.names[0] != "job_listings" {
		t.Fatalf("recorded stages = %v", sink.names)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(string(b), "No job listings found") {
		t.Fatalf("report:\n%s", b)
	}
}

func TestRun_DryRunWritesListingsOnly(t *testing.T) {
	p := &stubProvider{res: &search.Response{
		Listings:   []listing.Raw{{"title": "Data Scientist"}},
		TotalCount: 1,
	}}
	a, sink, out := testApp(t, p)

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sink.names) != 1 || sink.names[0] != "job_listings" {
		t.Fatalf("recorded stages = %v", sink.names)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(string(b), "<title>Data Scientist</title>") {
		t.Fatalf("report:\n%s", b)
	}
}

func TestRun_RequestDocumentPath(t *testing.T) {
	reqPath := filepath.Join(t.TempDir(), "request.yaml")
	doc := "role: SRE\nlocation: Remote\nnum_results: 3\n"
	if err := os.WriteFile(reqPath, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	p := &stubProvider{res: &search.Response{TotalCount: 0}}
	a, sink, _ := testApp(t, p)
	a.cfg.RequestPath = reqPath
	a.cfg.Role = "" // request document wins over inline fields

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", p.calls)
	}
	if !strings.Contains(sink.contents[0], `"SRE"`) {
		t.Fatalf("no-results text should echo the document role:\n%s", sink.contents[0])
	}
}

func TestRun_AdvisoryFailuresDoNotAbortRun(t *testing.T) {
	// advisor is nil, so every stage fails its configuration check and is
	// skipped; the run still writes the listings portion of the report.
	p := &stubProvider{res: &search.Response{
		Listings:   []listing.Raw{{"title": "Data Scientist"}},
		TotalCount: 1,
	}}
	a, sink, out := testApp(t, p)
	a.cfg.DryRun = false

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sink.names) != 1 {
		t.Fatalf("recorded stages = %v", sink.names)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(string(b), "## Job Listings") {
		t.Fatalf("report:\n%s", b)
	}
}
