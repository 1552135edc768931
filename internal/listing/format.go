package listing

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// maxDescriptionRunes caps the description field so a single listing stays a
// bounded, display-safe block.
const maxDescriptionRunes = 500

const ellipsis = "..."

var salaryPrinter = message.NewPrinter(language.English)

// tagSanitizer replaces the output tag delimiters with single-rune
// lookalikes. API-sourced text therefore cannot open or close a tag in the
// formatted block, and because the substitution is rune-for-rune the
// truncation guarantee on character counts is unaffected.
var tagSanitizer = strings.NewReplacer("<", "‹", ">", "›")

// Format renders one listing into a fixed-order tag block. It is a total
// function: every missing or oddly typed field resolves to a default instead
// of an error.
func Format(r Raw) string {
	title := tagSanitizer.Replace(r.Str("title", "N/A"))
	company := tagSanitizer.Replace(r.Nested("company", "display_name", "N/A"))
	location := tagSanitizer.Replace(r.Nested("location", "display_name", "N/A"))
	created := tagSanitizer.Replace(r.Str("created", "N/A"))
	applyURL := tagSanitizer.Replace(r.Str("redirect_url", "N/A"))

	description := r.Str("description", "No description available")
	description = tagSanitizer.Replace(CleanDescription(description))
	description = truncate(description, maxDescriptionRunes)

	var b strings.Builder
	b.WriteString("<job>\n")
	writeField(&b, "title", title)
	writeField(&b, "company", company)
	writeField(&b, "location", location)
	writeField(&b, "salary", salaryText(r))
	writeField(&b, "posted_date", created)
	b.WriteString("    <description>\n        ")
	b.WriteString(description)
	b.WriteString("\n    </description>\n")
	writeField(&b, "apply_url", applyURL)
	b.WriteString("</job>")
	return b.String()
}

func writeField(b *strings.Builder, tag, value string) {
	b.WriteString("    <")
	b.WriteString(tag)
	b.WriteString(">")
	b.WriteString(value)
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">\n")
}

// salaryText renders the salary range in fixed precedence: both bounds, then
// min only, then max only, then a placeholder. Zero values count as absent;
// the API habitually sends 0 for postings with no salary data.
func salaryText(r Raw) string {
	min, okMin := r.Num("salary_min")
	max, okMax := r.Num("salary_max")
	if okMin && min == 0 {
		okMin = false
	}
	if okMax && max == 0 {
		okMax = false
	}
	switch {
	case okMin && okMax:
		return salaryPrinter.Sprintf("$%.0f - $%.0f", min, max)
	case okMin:
		return salaryPrinter.Sprintf("From $%.0f", min)
	case okMax:
		return salaryPrinter.Sprintf("Up to $%.0f", max)
	default:
		return "Not specified"
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + ellipsis
}
