package report

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/vantage-bio/prospect-cli/internal/model"
)

// WriteJSON writes the full run summary as indented JSON.
func WriteJSON(w io.Writer, summary *model.RunSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return eris.Wrap(err, "report: encode summary")
	}
	return nil
}

// ReadRunFile loads a run summary previously saved with WriteJSON.
func ReadRunFile(path string) (*model.RunSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "report: read run file %s", path)
	}

	var summary model.RunSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, eris.Wrapf(err, "report: parse run file %s", path)
	}
	return &summary, nil
}
