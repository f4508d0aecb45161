// Package report filters, renders, and exports scored leads.
package report

import (
	"strings"

	"github.com/vantage-bio/prospect-cli/internal/model"
)

// FilterOptions narrows the lead list before rendering.
type FilterOptions struct {
	MinScore int
	Location string
	Company  string
}

// Filter returns the leads passing every set criterion. MinScore is an
// inclusive floor; location and company match as case-insensitive
// substrings. The input order is preserved.
func Filter(leads []model.ScoredLead, opts FilterOptions) []model.ScoredLead {
	out := make([]model.ScoredLead, 0, len(leads))
	for _, lead := range leads {
		if lead.Score < opts.MinScore {
			continue
		}
		if opts.Location != "" && !containsFold(lead.Location, opts.Location) {
			continue
		}
		if opts.Company != "" && !containsFold(lead.Company, opts.Company) {
			continue
		}
		out = append(out, lead)
	}
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
