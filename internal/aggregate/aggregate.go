package aggregate

import (
	"fmt"
	"strings"

	"github.com/hyperifyio/careerscout/internal/listing"
	"github.com/hyperifyio/careerscout/internal/search"
)

var separator = strings.Repeat("=", 80)

// Render turns a search outcome into the final user-facing text block. It is
// total over its inputs: classified failures become categorized guidance, an
// empty page becomes a "no results" message echoing the request, and a
// non-empty page becomes numbered, formatted listing blocks under a summary
// line. Raw errors never leak through.
func Render(req search.Request, res *search.Response, err error) string {
	if err != nil {
		return renderFailure(err)
	}
	if res == nil || len(res.Listings) == 0 {
		return renderEmpty(req)
	}
	return renderListings(req, res)
}

func renderFailure(err error) string {
	switch search.ReasonOf(err) {
	case search.ReasonInvalidInput:
		return fmt.Sprintf(`ERROR: invalid search parameters.

%s

Provide:
- role: job title (non-empty string)
- location: search location (non-empty string)
- num_results: number of results (1-50)`, err.Error())
	case search.ReasonMissingCredentials:
		return `ERROR: job search API credentials are not configured.

Set the following environment variables (or add them to your .env file):
- ADZUNA_APP_ID
- ADZUNA_API_KEY`
	case search.ReasonClientRejected:
		return fmt.Sprintf(`ERROR: the job search API rejected the request.

%s

Check the search parameters and API credentials; retrying will not help.`, err.Error())
	case search.ReasonMalformedResponse:
		return fmt.Sprintf(`ERROR: the job search API returned an unreadable response.

%s

This is not recoverable by retrying. If it persists, the API response format
may have changed.`, err.Error())
	default:
		return `ERROR: failed to fetch job listings.

Possible causes:
- network connection issues
- API service temporarily unavailable
- rate limit exceeded

Try again in a few moments.`
	}
}

func renderEmpty(req search.Request) string {
	return fmt.Sprintf(`No job listings found for %q in %s.

Suggestions:
- try a broader search term (e.g. "Data" instead of "Senior Data Scientist")
- try a different location
- try searching for related roles`, req.Role, req.Location)
}

func renderListings(req search.Request, res *search.Response) string {
	n := len(res.Listings)
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d job listings (of %d total matches)\n\n", n, res.TotalCount)
	fmt.Fprintf(&b, "Search parameters:\n- Role: %s\n- Location: %s\n\n", req.Role, req.Location)
	b.WriteString(separator)
	b.WriteString("\n")
	for i, l := range res.Listings {
		fmt.Fprintf(&b, "[%d/%d]\n%s\n%s\n", i+1, n, listing.Format(l), separator)
	}
	return strings.TrimRight(b.String(), "\n")
}
