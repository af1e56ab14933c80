package output

import (
	"fmt"

	"github.com/joescharf/rubriq/internal/reconcile"
)

// RubricReport renders the per-rubric breakdown of a reconciled rubric
// audit: verdict, quality flags, issues, and suggested fix for every input
// rubric, then any diagnostics. Every record shows up, matched or not.
func (u *UI) RubricReport(runID string, res reconcile.RubricResult) {
	u.Info("audit run %s", runID)

	table := u.Table([]string{"ID", "VERDICT", "ATOMIC", "SPECIFIC", "ACCURATE", "CATEGORIZED", "GROUNDED", "SELF-CONT"})
	for _, item := range res.Items {
		if item.Feedback == nil {
			_ = table.Append([]string{item.Rubric.ID, Yellow("no feedback"), "", "", "", "", "", ""})
			continue
		}
		fb := item.Feedback
		_ = table.Append([]string{
			item.Rubric.ID,
			VerdictColor(string(fb.Verdict)),
			FlagMark(fb.Flags.Atomic),
			FlagMark(fb.Flags.Specific),
			FlagMark(fb.Flags.Accurate),
			FlagMark(fb.Flags.Categorized),
			FlagMark(fb.Flags.Grounded),
			FlagMark(fb.Flags.SelfContained),
		})
	}
	_ = table.Render()
	fmt.Fprintln(u.Out)

	for _, item := range res.Items {
		fmt.Fprintf(u.Out, "%s %s\n", Cyan(item.Rubric.ID), item.Rubric.Text)
		if item.Feedback == nil {
			fmt.Fprintf(u.Out, "  %s\n", Yellow(item.Diagnostic))
			continue
		}
		fb := item.Feedback
		fmt.Fprintf(u.Out, "  verdict: %s\n", VerdictColor(string(fb.Verdict)))
		for _, issue := range fb.Issues {
			fmt.Fprintf(u.Out, "  - %s\n", issue)
		}
		if fb.SuggestedFix != "" {
			fmt.Fprintf(u.Out, "  suggested fix: %s\n", fb.SuggestedFix)
		}
	}

	u.renderDiagnostics(res.Diagnostics)
	if len(res.Unmatched) > 0 {
		u.Warning("%d feedback item(s) did not correspond to any input rubric", len(res.Unmatched))
	}
}

// RatingReport renders the per-rating breakdown of a reconciled rating
// audit.
func (u *UI) RatingReport(runID string, res reconcile.RatingResult) {
	u.Info("audit run %s", runID)

	table := u.Table([]string{"RESPONSE", "RUBRIC", "SCORE", "VERDICT"})
	for _, item := range res.Items {
		verdict := Yellow("no feedback")
		if item.Feedback != nil {
			verdict = VerdictColor(string(item.Feedback.Verdict))
		}
		_ = table.Append([]string{item.Key.ResponseID, item.Key.RubricID, item.Rating.Score, verdict})
	}
	_ = table.Render()
	fmt.Fprintln(u.Out)

	for _, item := range res.Items {
		fmt.Fprintf(u.Out, "%s / %s (%s)\n", Cyan(item.Key.ResponseID), Cyan(item.Key.RubricID), item.Rating.Title)
		if item.Feedback == nil {
			fmt.Fprintf(u.Out, "  %s\n", Yellow(item.Diagnostic))
			continue
		}
		fb := item.Feedback
		fmt.Fprintf(u.Out, "  verdict: %s\n", VerdictColor(string(fb.Verdict)))
		for _, issue := range fb.Issues {
			fmt.Fprintf(u.Out, "  - %s\n", issue)
		}
		if fb.SuggestedFix != "" {
			fmt.Fprintf(u.Out, "  suggested fix: %s\n", fb.SuggestedFix)
		}
	}

	u.renderDiagnostics(res.Diagnostics)
	if len(res.Unmatched) > 0 {
		u.Warning("%d feedback item(s) did not correspond to any input rating", len(res.Unmatched))
	}
}

func (u *UI) renderDiagnostics(diags []reconcile.Diagnostic) {
	for _, d := range diags {
		u.Warning("[%s] %s", d.Kind, d.Message)
		if d.Raw != "" && u.Verbose {
			u.VerboseLog("raw engine output:\n%s", d.Raw)
		}
	}
}
