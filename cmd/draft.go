package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/vantage-bio/prospect-cli/internal/model"
	"github.com/vantage-bio/prospect-cli/internal/report"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Draft an outreach email for a scored lead",
	Long: `Render a personalized outreach email for one lead from a saved run.

Reads the JSON summary written by 'run --format json --out run.json',
looks the lead up by name, and prints the draft along with a mailto
link ready to open in an email client. Works offline; no API keys
required.

Examples:
  # Draft for a lead from the default run file
  draft --name "Jane Doe"

  # Only the mailto link, from a custom run file
  draft --in q3-leads.json --name "Jane Doe" --mailto`,
	RunE: runDraft,
}

func init() {
	f := draftCmd.Flags()
	f.String("in", "run.json", "run summary JSON file to read")
	f.String("name", "", "lead name to draft for (required)")
	f.Bool("mailto", false, "print only the mailto link")
	_ = draftCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(draftCmd)
}

func runDraft(cmd *cobra.Command, _ []string) error {
	if err := cfg.Validate("draft"); err != nil {
		return err
	}

	inPath, _ := cmd.Flags().GetString("in")
	name, _ := cmd.Flags().GetString("name")
	mailtoOnly, _ := cmd.Flags().GetBool("mailto")

	summary, err := report.ReadRunFile(inPath)
	if err != nil {
		return err
	}

	lead, ok := findLead(summary.Leads, name)
	if !ok {
		return eris.Errorf("draft: no lead named %q in %s", name, inPath)
	}

	sender := report.Sender{
		Name:    cfg.Outreach.SenderName,
		Title:   cfg.Outreach.SenderTitle,
		Company: cfg.Outreach.SenderCompany,
		Contact: cfg.Outreach.SenderContact,
	}
	d := report.DraftEmail(lead, sender)

	if mailtoOnly {
		fmt.Println(report.Mailto(lead.ContactEmail, d))
		return nil
	}

	fmt.Printf("To:      %s\n", lead.ContactEmail)
	fmt.Printf("Subject: %s\n\n", d.Subject)
	fmt.Println(d.Body)
	fmt.Printf("\n%s\n", report.Mailto(lead.ContactEmail, d))
	return nil
}

// findLead matches by name, case-insensitively.
func findLead(leads []model.ScoredLead, name string) (model.ScoredLead, bool) {
	for _, l := range leads {
		if strings.EqualFold(l.Name, name) {
			return l, true
		}
	}
	return model.ScoredLead{}, false
}
