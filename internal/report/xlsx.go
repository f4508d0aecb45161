package report

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/vantage-bio/prospect-cli/internal/model"
)

var xlsxHeader = []string{"Name", "Title", "Company", "Location", "Source", "Score", "Email", "Profile"}

// WriteXLSX saves leads to a single-sheet XLSX workbook at path.
func WriteXLSX(path string, leads []model.ScoredLead) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Leads")
	if err != nil {
		return eris.Wrap(err, "report: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range xlsxHeader {
		header.AddCell().SetString(col)
	}

	for _, lead := range leads {
		row := sheet.AddRow()
		row.AddCell().SetString(lead.Name)
		row.AddCell().SetString(lead.Title)
		row.AddCell().SetString(lead.Company)
		row.AddCell().SetString(lead.Location)
		row.AddCell().SetString(string(lead.Source))
		row.AddCell().SetInt(lead.Score)
		row.AddCell().SetString(lead.ContactEmail)
		row.AddCell().SetString(lead.ProfileURL)
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "report: save xlsx %s", path)
	}
	return nil
}
