package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/blueprint-optimizer/internal/application/evaluation/queries"
)

// NewRunsCommand creates the runs command with subcommands
func NewRunsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect persisted evaluation runs",
		Long: `List and show evaluations recorded with 'solve --persist'.

Runs are stored in the database configured under database.* (sqlite by default).

Examples:
  blueprint-optimizer runs list
  blueprint-optimizer runs list --mode product --limit 5
  blueprint-optimizer runs show quality-a3f8e2b1 --output json`,
	}

	cmd.AddCommand(newRunsListCommand())
	cmd.AddCommand(newRunsShowCommand())

	return cmd
}

// newRunsListCommand creates the runs list subcommand
func newRunsListCommand() *cobra.Command {
	var (
		mode   string
		limit  int
		offset int
		output string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List evaluation runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(output)
			if err != nil {
				return err
			}

			app, err := newApplication(appOptions{withDatabase: true})
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.mediator.Send(app.context(context.Background()), &queries.ListEvaluationRunsQuery{
				Mode:   mode,
				Limit:  limit,
				Offset: offset,
			})
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}

			return writeRunList(cmd.OutOrStdout(), format, resp.(*queries.ListEvaluationRunsResponse).Runs)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Filter by aggregation mode (quality or product)")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of runs to skip")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table or json")

	return cmd
}

// newRunsShowCommand creates the runs show subcommand
func newRunsShowCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one evaluation run with per-blueprint results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(output)
			if err != nil {
				return err
			}

			app, err := newApplication(appOptions{withDatabase: true})
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.mediator.Send(app.context(context.Background()), &queries.GetEvaluationRunQuery{RunID: args[0]})
			if err != nil {
				return err
			}

			return writeRun(cmd.OutOrStdout(), format, resp.(*queries.GetEvaluationRunResponse).Run)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table or json")

	return cmd
}
