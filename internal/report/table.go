package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/vantage-bio/prospect-cli/internal/model"
)

// WriteTable renders leads as a fixed-width text table.
func WriteTable(w io.Writer, leads []model.ScoredLead) error {
	header := fmt.Sprintf("%-24s %-12s %-28s %-20s %-10s %5s\n",
		"Name", "Title", "Company", "Location", "Source", "Score")
	if _, err := fmt.Fprint(w, header); err != nil {
		return eris.Wrap(err, "report: write table header")
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 104)); err != nil {
		return eris.Wrap(err, "report: write table separator")
	}

	for _, lead := range leads {
		line := fmt.Sprintf("%-24s %-12s %-28s %-20s %-10s %5d\n",
			clip(lead.Name, 24),
			clip(lead.Title, 12),
			clip(lead.Company, 28),
			clip(lead.Location, 20),
			lead.Source,
			lead.Score)
		if _, err := fmt.Fprint(w, line); err != nil {
			return eris.Wrap(err, "report: write table row")
		}
	}
	return nil
}

func clip(s string, max int) string {
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}
