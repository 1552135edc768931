package listing

import (
	"strings"

	"golang.org/x/net/html"
)

// CleanDescription strips HTML markup that job boards commonly embed in
// listing descriptions, decodes character entities, and collapses runs of
// whitespace into single spaces. Plain text passes through unchanged apart
// from whitespace normalization.
func CleanDescription(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return collapseWhitespace(s)
	}
	tok := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		tt := tok.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			b.WriteString(tok.Token().Data)
			// Separator so adjacent elements do not run words together.
			b.WriteByte(' ')
		}
	}
	return collapseWhitespace(b.String())
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
