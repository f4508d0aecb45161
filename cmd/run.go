package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vantage-bio/prospect-cli/internal/config"
	"github.com/vantage-bio/prospect-cli/internal/model"
	"github.com/vantage-bio/prospect-cli/internal/pipeline"
	"github.com/vantage-bio/prospect-cli/internal/report"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Identify, enrich, and score leads",
	Long: `Run the full lead generation pipeline.

Identification collects recent publication authors for the configured
topic keywords plus conference speakers found via web search. Enrichment
gathers contact evidence for each lead, synthesizing a best guess when
the public record is thin. Scoring ranks every lead 0-100 using the
extraction model and rule-based signals.

Examples:
  # Full run with config defaults, table to stdout
  run

  # Custom topic, live lookups for the first ten leads only
  run --keywords "Organ-on-chip,Hepatic spheroids" --batch-limit 10

  # Export strong leads to a spreadsheet
  run --min-score 60 --format xlsx --out leads.xlsx

  # Machine-readable summary for later outreach drafting
  run --format json --out run.json`,
	RunE: runPipeline,
}

func init() {
	f := runCmd.Flags()
	f.StringSlice("keywords", nil, "topic keywords (overrides config)")
	f.String("conference", "", "conference speaker search topic (overrides config)")
	f.Int("max-citations", 0, "maximum citation records to pull (overrides config)")
	f.Int("batch-limit", 0, "maximum leads enriched with live searches (overrides config)")
	f.String("scoring-mode", "", "scoring mode: additive or fallback (overrides config)")
	f.Int("min-score", 0, "only output leads scoring at or above this")
	f.String("location", "", "only output leads whose location contains this")
	f.String("company", "", "only output leads whose company contains this")
	f.String("format", "table", "output format: table, json, csv, or xlsx")
	f.String("out", "", "output file path (default: stdout; required for xlsx)")

	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("run"); err != nil {
		return err
	}

	log := zap.L().With(zap.String("command", "run"))

	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")

	switch format {
	case "table", "json", "csv", "xlsx":
	default:
		return eris.Errorf("run: --format must be table, json, csv, or xlsx (got %q)", format)
	}
	if format == "xlsx" && outPath == "" {
		return eris.New("run: --out is required with --format xlsx")
	}

	opts := applyRunOverrides(cmd, cfg.Pipeline, cfg.Scoring.Mode)
	if opts.ScoringMode != pipeline.ScoringModeAdditive && opts.ScoringMode != pipeline.ScoringModeFallback {
		return eris.Errorf("run: --scoring-mode must be additive or fallback (got %q)", opts.ScoringMode)
	}

	env, err := initPipeline(ctx)
	if err != nil {
		return err
	}

	log.Info("starting pipeline run",
		zap.Strings("topic_keywords", opts.TopicKeywords),
		zap.String("conference_topic", opts.ConferenceTopic),
		zap.Int("max_citation_results", opts.MaxCitationResults),
		zap.Int("batch_limit", opts.BatchLimit),
		zap.String("scoring_mode", string(opts.ScoringMode)),
	)

	summary, err := env.pipeline(opts).Run(ctx)
	if err != nil {
		return err
	}

	var filter report.FilterOptions
	filter.MinScore, _ = cmd.Flags().GetInt("min-score")
	filter.Location, _ = cmd.Flags().GetString("location")
	filter.Company, _ = cmd.Flags().GetString("company")
	leads := report.Filter(summary.Leads, filter)

	if err := outputLeads(summary, leads, format, outPath); err != nil {
		return err
	}

	if format == "table" {
		printRunFooter(summary, len(leads))
	}
	return nil
}

// applyRunOverrides returns pipeline options built from config with CLI flag overrides applied.
func applyRunOverrides(cmd *cobra.Command, base config.PipelineConfig, scoringMode string) pipeline.Options {
	opts := optionsFromConfig(base, scoringMode)

	if v, _ := cmd.Flags().GetStringSlice("keywords"); len(v) > 0 {
		opts.TopicKeywords = v
	}
	if v, _ := cmd.Flags().GetString("conference"); v != "" {
		opts.ConferenceTopic = v
	}
	if v, _ := cmd.Flags().GetInt("max-citations"); v > 0 {
		opts.MaxCitationResults = v
	}
	if v, _ := cmd.Flags().GetInt("batch-limit"); v > 0 {
		opts.BatchLimit = v
	}
	if v, _ := cmd.Flags().GetString("scoring-mode"); v != "" {
		opts.ScoringMode = pipeline.ScoringMode(v)
	}

	return opts
}

func outputLeads(summary *model.RunSummary, leads []model.ScoredLead, format, outPath string) error {
	if format == "xlsx" {
		return report.WriteXLSX(outPath, leads)
	}

	var w *os.File
	if outPath != "" {
		var err error
		w, err = os.Create(outPath)
		if err != nil {
			return eris.Wrapf(err, "run: create output file %s", outPath)
		}
		defer w.Close() //nolint:errcheck
	} else {
		w = os.Stdout
	}

	switch format {
	case "json":
		out := *summary
		out.Leads = leads
		return report.WriteJSON(w, &out)
	case "csv":
		return report.WriteCSV(w, leads)
	default:
		return report.WriteTable(w, leads)
	}
}

func printRunFooter(summary *model.RunSummary, shown int) {
	fmt.Printf("\n--- Run %s ---\n", summary.RunID)
	fmt.Printf("Identified: %d\n", summary.Counts.Identified)
	fmt.Printf("Enriched:   %d\n", summary.Counts.Enriched)
	fmt.Printf("Scored:     %d\n", summary.Counts.Scored)
	fmt.Printf("Shown:      %d\n", shown)
	if summary.QuotaExhausted {
		fmt.Println("Extraction quota exhausted during run; heuristic fallbacks were used.")
	}
}
