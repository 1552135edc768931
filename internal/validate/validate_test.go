package validate

import (
	"strings"
	"testing"

	"github.com/hyperifyio/careerscout/internal/search"
)

func TestValidate_AcceptsWellFormedRequest(t *testing.T) {
	req := search.Request{Role: "Data Scientist", Location: "Los Angeles", NumResults: 5}
	if err := Validate(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_RangeBoundaries(t *testing.T) {
	for _, n := range []int{1, 50} {
		req := search.Request{Role: "r", Location: "l", NumResults: n}
		if err := Validate(req); err != nil {
			t.Fatalf("num_results=%d should pass: %v", n, err)
		}
	}
	for _, n := range []int{0, 51} {
		req := search.Request{Role: "r", Location: "l", NumResults: n}
		err := Validate(req)
		if err == nil {
			t.Fatalf("num_results=%d should fail", n)
		}
		if !strings.Contains(err.Error(), "num_results") {
			t.Fatalf("error should name num_results, got %q", err)
		}
	}
}

func TestValidate_FirstViolationWins(t *testing.T) {
	// role is checked before location and range, whitespace counts as empty
	err := Validate(search.Request{Role: "   ", Location: "", NumResults: 0})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "role") {
		t.Fatalf("expected role violation first, got %q", err)
	}

	err = Validate(search.Request{Role: "r", Location: " ", NumResults: 0})
	if err == nil || !strings.Contains(err.Error(), "location") {
		t.Fatalf("expected location violation, got %v", err)
	}
}

func TestParseRequest_NamesFirstMissingField(t *testing.T) {
	cases := []struct {
		doc  string
		want string
	}{
		{"{}", "role"},
		{"role: Data Scientist", "location"},
		{"role: Data Scientist\nlocation: Los Angeles", "num_results"},
	}
	for _, tc := range cases {
		_, err := ParseRequest([]byte(tc.doc))
		if err == nil {
			t.Fatalf("doc %q: expected error", tc.doc)
		}
		if !strings.Contains(err.Error(), "missing required field") || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("doc %q: expected missing %q, got %q", tc.doc, tc.want, err)
		}
	}
}

func TestParseRequest_TypeChecks(t *testing.T) {
	_, err := ParseRequest([]byte("role: r\nlocation: l\nnum_results: five"))
	if err == nil || !strings.Contains(err.Error(), "integer") {
		t.Fatalf("expected integer type error, got %v", err)
	}
	// JSON numbers decode as float64; fractional values are not integers.
	_, err = ParseRequest([]byte(`{"role":"r","location":"l","num_results":5.5}`))
	if err == nil || !strings.Contains(err.Error(), "integer") {
		t.Fatalf("expected integer type error for 5.5, got %v", err)
	}
	// role present but not a string
	_, err = ParseRequest([]byte(`{"role":7,"location":"l","num_results":5}`))
	if err == nil || !strings.Contains(err.Error(), "role") {
		t.Fatalf("expected role type error, got %v", err)
	}
}

func TestParseRequest_AcceptsYAMLAndJSON(t *testing.T) {
	want := search.Request{Role: "Data Scientist", Location: "Los Angeles", NumResults: 5}

	got, err := ParseRequest([]byte("role: Data Scientist\nlocation: Los Angeles\nnum_results: 5"))
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if got != want {
		t.Fatalf("yaml: got %+v", got)
	}

	got, err = ParseRequest([]byte(`{"role":"Data Scientist","location":"Los Angeles","num_results":5}`))
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if got != want {
		t.Fatalf("json: got %+v", got)
	}
}
