package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/vantage-bio/prospect-cli/internal/model"
)

// WriteCSV writes leads as CSV with a header row.
func WriteCSV(w io.Writer, leads []model.ScoredLead) error {
	cw := csv.NewWriter(w)

	header := []string{"name", "title", "company", "location", "source", "score", "contact_email", "profile_url"}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "report: write CSV header")
	}

	for _, lead := range leads {
		row := []string{
			lead.Name,
			lead.Title,
			lead.Company,
			lead.Location,
			string(lead.Source),
			strconv.Itoa(lead.Score),
			lead.ContactEmail,
			lead.ProfileURL,
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "report: write CSV row")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "report: flush CSV")
	}
	return nil
}
