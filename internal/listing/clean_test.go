package listing

import "testing"

func TestCleanDescription(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "Build data pipelines.", "Build data pipelines."},
		{"strips markup", "<p>Build <b>data</b> pipelines.</p>", "Build data pipelines."},
		{"decodes entities", "Work at AT&amp;T &amp; partners", "Work at AT&T & partners"},
		{"collapses whitespace", "too   many\n\tspaces", "too many spaces"},
		{"separates adjacent elements", "<li>Go</li><li>SQL</li>", "Go SQL"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		if got := CleanDescription(tc.in); got != tc.want {
			t.Errorf("%s: CleanDescription(%q) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestRawAccessors(t *testing.T) {
	r := Raw{
		"title":      "Engineer",
		"company":    map[string]any{"display_name": "Acme"},
		"salary_min": 90000.0,
		"count":      7,
	}
	if got := r.Str("title", "N/A"); got != "Engineer" {
		t.Errorf("Str = %q", got)
	}
	if got := r.Str("missing", "N/A"); got != "N/A" {
		t.Errorf("Str default = %q", got)
	}
	if got := r.Nested("company", "display_name", "N/A"); got != "Acme" {
		t.Errorf("Nested = %q", got)
	}
	if got := r.Nested("company", "missing", "N/A"); got != "N/A" {
		t.Errorf("Nested inner default = %q", got)
	}
	if v, ok := r.Num("salary_min"); !ok || v != 90000 {
		t.Errorf("Num float = %v, %v", v, ok)
	}
	if v, ok := r.Num("count"); !ok || v != 7 {
		t.Errorf("Num int = %v, %v", v, ok)
	}
	if _, ok := r.Num("title"); ok {
		t.Error("Num should reject non-numeric values")
	}
}
