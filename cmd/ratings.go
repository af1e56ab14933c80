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
	ratingsFile     string
	ratingsRubrics  string
	ratingsDiff     string
	ratingsRepoDesc string
	ratingsSummary  string
	ratingsShape    string
	ratingsFormat   string
)

var ratingsCmd = &cobra.Command{
	Use:   "ratings",
	Short: "Audit rubric ratings against PR evidence",
	Long: `Audit the ratings an automated reviewer produced by applying rubrics to
a response.

Every (response, rubric) pair in the ratings file is checked for
grounding (citations verifiable in the evidence) and consistency
(score/title/color align with the justification); clarity decides the
verdict only when both pass.

The ratings file is a JSON object mapping response ids to rubric-id ->
{title, score, color, justification} tuples. Pass the rubric definitions
with --rubrics so the engine can check categorization against them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return ratingsRun(cmd.Context())
	},
}

func init() {
	ratingsCmd.Flags().StringVar(&ratingsFile, "ratings", "", "Path to the ratings JSON file (required)")
	ratingsCmd.Flags().StringVar(&ratingsRubrics, "rubrics", "", "Path to the rubric definitions JSON file")
	ratingsCmd.Flags().StringVar(&ratingsDiff, "pr-diff", "", "Path to a file containing the PR diff or summary (required)")
	ratingsCmd.Flags().StringVar(&ratingsRepoDesc, "repo-description", "", "Path to a short repo description file")
	ratingsCmd.Flags().StringVar(&ratingsSummary, "response-summary", "", "Path to the response summary file (required)")
	ratingsCmd.Flags().StringVar(&ratingsShape, "shape", "native", "Rubric input shape: native or annotations")
	ratingsCmd.Flags().StringVar(&ratingsFormat, "format", "report", "Output format: report, json, or raw")
	ratingsCmd.Flags().BoolVar(&showPrompt, "show-prompt", false, "Echo the prompt before sending it to the engine")
	ratingsCmd.Flags().StringVar(&engineAPIKey, "api-key", "", "Override the configured API key")
	ratingsCmd.Flags().StringVar(&engineModel, "model", "", "Override the configured model")
	_ = ratingsCmd.MarkFlagRequired("ratings")
	_ = ratingsCmd.MarkFlagRequired("pr-diff")
	_ = ratingsCmd.MarkFlagRequired("response-summary")
	rootCmd.AddCommand(ratingsCmd)
}

func ratingsRun(ctx context.Context) error {
	ratings, err := normalize.LoadRatingsFile(ratingsFile)
	if err != nil {
		return err
	}

	var rubrics []models.Rubric
	if ratingsRubrics != "" {
		shape, err := parseShape(ratingsShape)
		if err != nil {
			return err
		}
		if rubrics, err = normalize.LoadRubricsFile(ratingsRubrics, shape); err != nil {
			return err
		}
	}

	evidence, err := loadEvidence(ratingsRepoDesc, ratingsDiff, ratingsSummary)
	if err != nil {
		return err
	}

	doc := prompt.CompileRatingAudit(evidence, ratings, rubrics)
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

	run, err := audit.NewRunner(eng).Ratings(ctx, evidence, ratings, rubrics)
	if err != nil {
		return err
	}

	switch ratingsFormat {
	case "json":
		data, err := json.MarshalIndent(run, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(ui.Out, string(data))
	case "raw":
		fmt.Fprintln(ui.Out, run.Result.Raw)
	default:
		ui.RatingReport(run.RunID, run.Result)
	}
	return nil
}
