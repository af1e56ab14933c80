package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joescharf/rubriq/internal/audit"
	"github.com/joescharf/rubriq/internal/models"
	"github.com/joescharf/rubriq/internal/normalize"
	"github.com/joescharf/rubriq/internal/prompt"
)

var (
	rubricsFile     string
	rubricsDiff     string
	rubricsRepoDesc string
	rubricsShape    string
	rubricsFormat   string
	rubricsShowRaw  bool
	showPrompt      bool
)

var rubricsCmd = &cobra.Command{
	Use:   "rubrics",
	Short: "Audit rubric quality against PR evidence",
	Long: `Audit a rubric set for quality before it is used for grading.

Each rubric is checked against six criteria (atomic, specific, accurate,
categorized, grounded, self-contained) using the supplied repository
description and PR diff as the only admissible evidence.

The rubrics file is a JSON array of objects, each with at least a "text"
field. Use --shape annotations for exported rubrics that nest their
metadata under an "annotations" object.

Requires an API key for the configured engine provider; use --dry-run to
inspect the compiled prompt without one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rubricsRun(cmd.Context())
	},
}

func init() {
	rubricsCmd.Flags().StringVar(&rubricsFile, "rubrics", "", "Path to the rubric JSON file (required)")
	rubricsCmd.Flags().StringVar(&rubricsDiff, "pr-diff", "", "Path to a file containing the PR diff or summary (required)")
	rubricsCmd.Flags().StringVar(&rubricsRepoDesc, "repo-description", "", "Path to a short repo description file (required)")
	rubricsCmd.Flags().StringVar(&rubricsShape, "shape", "native", "Rubric input shape: native or annotations")
	rubricsCmd.Flags().StringVar(&rubricsFormat, "format", "report", "Output format: report, json, or raw")
	rubricsCmd.Flags().BoolVar(&rubricsShowRaw, "show-raw", false, "Also print the engine's raw response")
	rubricsCmd.Flags().BoolVar(&showPrompt, "show-prompt", false, "Echo the prompt before sending it to the engine")
	rubricsCmd.Flags().StringVar(&engineAPIKey, "api-key", "", "Override the configured API key")
	rubricsCmd.Flags().StringVar(&engineModel, "model", "", "Override the configured model")
	_ = rubricsCmd.MarkFlagRequired("rubrics")
	_ = rubricsCmd.MarkFlagRequired("pr-diff")
	_ = rubricsCmd.MarkFlagRequired("repo-description")
	rootCmd.AddCommand(rubricsCmd)
}

// parseShape maps the --shape flag onto a normalization strategy.
func parseShape(flag string) (normalize.Shape, error) {
	switch flag {
	case "native":
		return normalize.ShapeNative, nil
	case "annotations":
		return normalize.ShapeAnnotations, nil
	default:
		return 0, fmt.Errorf("unknown rubric shape: %s", flag)
	}
}

func loadEvidence(repoDescPath, diffPath, summaryPath string) (models.EvidenceContext, error) {
	var evidence models.EvidenceContext
	var err error
	if evidence.RepoDescription, err = normalize.LoadEvidenceFile(repoDescPath); err != nil {
		return evidence, err
	}
	if evidence.PRDiff, err = normalize.LoadEvidenceFile(diffPath); err != nil {
		return evidence, err
	}
	if evidence.ResponseSummary, err = normalize.LoadEvidenceFile(summaryPath); err != nil {
		return evidence, err
	}
	return evidence, nil
}

func rubricsRun(ctx context.Context) error {
	shape, err := parseShape(rubricsShape)
	if err != nil {
		return err
	}
	rubrics, err := normalize.LoadRubricsFile(rubricsFile, shape)
	if err != nil {
		return err
	}
	evidence, err := loadEvidence(rubricsRepoDesc, rubricsDiff, "")
	if err != nil {
		return err
	}

	doc := prompt.CompileRubricAudit(evidence, rubrics)
	if dryRun {
		fmt.Fprint(ui.Out, doc.Render())
		fmt.Fprintln(ui.Out, "\n(dry-run mode: no engine call made)")
		return nil
	}
	if showPrompt {
		fmt.Fprint(ui.Out, doc.Render())
		fmt.Fprintln(ui.Out, "\n(engine call follows)")
	}

	eng, err := newEngine(ctx)
	if err != nil {
		return err
	}
	ui.VerboseLog("engine: %s", eng.Name())

	run, err := audit.NewRunner(eng).Rubrics(ctx, evidence, rubrics)
	if err != nil {
		return err
	}

	switch rubricsFormat {
	case "json":
		data, err := json.MarshalIndent(run, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(ui.Out, string(data))
	case "raw":
		fmt.Fprintln(ui.Out, run.Result.Raw)
	default:
		ui.RubricReport(run.RunID, run.Result)
		if rubricsShowRaw {
			fmt.Fprintln(ui.Out)
			fmt.Fprintln(ui.Out, run.Result.Raw)
		}
	}
	return nil
}
