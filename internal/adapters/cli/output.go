package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/andrescamacho/blueprint-optimizer/internal/application/evaluation/commands"
	"github.com/andrescamacho/blueprint-optimizer/internal/domain/evaluation"
	"github.com/andrescamacho/blueprint-optimizer/internal/domain/production"
	"github.com/andrescamacho/blueprint-optimizer/pkg/utils"
)

// evaluationView is the printable form of an evaluation, fresh or persisted
type evaluationView struct {
	RunID       string          `json:"run_id,omitempty"`
	Source      string          `json:"source,omitempty"`
	Mode        string          `json:"mode"`
	Horizon     int             `json:"horizon"`
	PrefixLimit int             `json:"prefix_limit,omitempty"`
	Answer      uint64          `json:"answer"`
	StartedAt   time.Time       `json:"started_at"`
	DurationMs  int64           `json:"duration_ms"`
	Blueprints  []blueprintView `json:"blueprints"`
}

type blueprintView struct {
	ID           int    `json:"id"`
	MaxYield     uint64 `json:"max_yield"`
	Explored     int    `json:"explored"`
	Deduplicated int    `json:"deduplicated"`
	BoundPruned  int    `json:"bound_pruned"`
	PeakFrontier int    `json:"peak_frontier"`
	DurationMs   int64  `json:"duration_ms"`
}

func viewFromResponse(resp *commands.EvaluateBlueprintsResponse) evaluationView {
	eval := resp.Evaluation
	view := evaluationView{
		RunID:       resp.RunID,
		Mode:        eval.Mode.String(),
		Horizon:     eval.Horizon,
		PrefixLimit: eval.PrefixLimit,
		Answer:      eval.Aggregate,
		StartedAt:   resp.StartedAt,
		DurationMs:  resp.Duration.Milliseconds(),
		Blueprints:  make([]blueprintView, 0, len(eval.Results)),
	}
	for _, r := range eval.Results {
		view.Blueprints = append(view.Blueprints, blueprintView{
			ID:           r.BlueprintID,
			MaxYield:     r.MaxYield,
			Explored:     r.Explored,
			Deduplicated: r.Deduplicated,
			BoundPruned:  r.BoundPruned,
			PeakFrontier: r.PeakFrontier,
			DurationMs:   r.Duration.Milliseconds(),
		})
	}
	return view
}

func viewFromRun(run *evaluation.Run) evaluationView {
	view := evaluationView{
		RunID:       run.ID(),
		Source:      run.Source(),
		Mode:        run.Mode().String(),
		Horizon:     run.Horizon(),
		PrefixLimit: run.PrefixLimit(),
		Answer:      run.Aggregate(),
		StartedAt:   run.StartedAt(),
		DurationMs:  run.Duration().Milliseconds(),
		Blueprints:  make([]blueprintView, 0, len(run.Results())),
	}
	for _, r := range run.Results() {
		view.Blueprints = append(view.Blueprints, blueprintView{
			ID:           r.BlueprintID,
			MaxYield:     r.Yield,
			Explored:     r.Explored,
			Deduplicated: r.Deduplicated,
			BoundPruned:  r.BoundPruned,
			PeakFrontier: r.PeakFrontier,
			DurationMs:   r.Duration.Milliseconds(),
		})
	}
	return view
}

// writeEvaluations prints solve results in the requested format
func writeEvaluations(w io.Writer, format string, results []*commands.EvaluateBlueprintsResponse) error {
	views := make([]evaluationView, 0, len(results))
	for _, r := range results {
		views = append(views, viewFromResponse(r))
	}

	switch format {
	case "json":
		return writeJSON(w, views)
	case "plain":
		for _, v := range views {
			fmt.Fprintln(w, v.Answer)
		}
		return nil
	default:
		for i, v := range views {
			if i > 0 {
				fmt.Fprintln(w)
			}
			writeEvaluationTable(w, v)
		}
		return nil
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeEvaluationTable prints one evaluation with per-blueprint statistics
func writeEvaluationTable(w io.Writer, v evaluationView) {
	title := fmt.Sprintf("Mode: %s  Horizon: %d", v.Mode, v.Horizon)
	if v.Mode == production.AggregateProduct.String() && v.PrefixLimit > 0 {
		title += fmt.Sprintf("  Prefix: %d", v.PrefixLimit)
	}
	fmt.Fprintln(w, title)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BLUEPRINT\tMAX YIELD\tEXPLORED\tDEDUPED\tBOUND PRUNED\tPEAK FRONTIER\tDURATION")
	for _, b := range v.Blueprints {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d (%.1f%%)\t%d\t%d\t%dms\n",
			b.ID, b.MaxYield, b.Explored,
			b.Deduplicated, utils.Percent(b.Deduplicated, b.Explored+b.Deduplicated),
			b.BoundPruned, b.PeakFrontier, b.DurationMs)
	}
	tw.Flush()

	fmt.Fprintf(w, "Answer: %d\n", v.Answer)
	if v.RunID != "" {
		fmt.Fprintf(w, "Run ID: %s\n", v.RunID)
	}
}

// writeRunList prints a run listing
func writeRunList(w io.Writer, format string, runs []*evaluation.Run) error {
	if format == "json" {
		views := make([]evaluationView, 0, len(runs))
		for _, r := range runs {
			views = append(views, viewFromRun(r))
		}
		return writeJSON(w, views)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No evaluation runs found")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN ID\tMODE\tHORIZON\tBLUEPRINTS\tANSWER\tSTARTED\tDURATION\tSOURCE")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\t%s\t%s\n",
			r.ID(), r.Mode(), r.Horizon(), len(r.Results()), r.Aggregate(),
			r.StartedAt().Format("2006-01-02 15:04:05"),
			r.Duration().Round(time.Millisecond), r.Source())
	}
	return tw.Flush()
}

// writeRun prints one persisted run
func writeRun(w io.Writer, format string, run *evaluation.Run) error {
	view := viewFromRun(run)
	if format == "json" {
		return writeJSON(w, view)
	}

	fmt.Fprintf(w, "Run ID:   %s\n", view.RunID)
	fmt.Fprintf(w, "Source:   %s\n", view.Source)
	fmt.Fprintf(w, "Started:  %s\n", view.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Duration: %dms\n\n", view.DurationMs)
	view.RunID = ""
	writeEvaluationTable(w, view)
	return nil
}
