package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/blueprint-optimizer/internal/adapters/blueprints"
	"github.com/andrescamacho/blueprint-optimizer/internal/application/evaluation/commands"
	"github.com/andrescamacho/blueprint-optimizer/internal/domain/production"
	"github.com/andrescamacho/blueprint-optimizer/internal/infrastructure/config"
)

// solveFlags holds the flags of the solve command
type solveFlags struct {
	part         int
	mode         string
	horizon      int
	prefixLimit  int
	workers      int
	persist      bool
	output       string
	exhaustive   bool
	noUpperBound bool
}

// NewSolveCommand creates the solve command
func NewSolveCommand() *cobra.Command {
	var flags solveFlags

	cmd := &cobra.Command{
		Use:   "solve [blueprint-file]",
		Short: "Evaluate a blueprint list",
		Long: `Search every blueprint for its maximum geode output and combine the results.

Without --part or --mode both presets run:
  part 1  quality: sum of id × max geodes over every blueprint, 24 minutes
  part 2  product: product of max geodes over the first 3 blueprints, 32 minutes

The blueprint file is read from standard input when omitted or "-".

Output formats:
  table  per-blueprint search statistics followed by the answer (default)
  json   machine-readable evaluation
  plain  only the answer, one line per scenario

Examples:
  blueprint-optimizer solve blueprints.txt
  blueprint-optimizer solve blueprints.txt --part 2 --workers 3
  blueprint-optimizer solve blueprints.txt --mode quality --horizon 20 --output plain
  blueprint-optimizer solve blueprints.txt --part 1 --persist`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return runSolve(cmd, path, flags)
		},
	}

	cmd.Flags().IntVar(&flags.part, "part", 0, "Preset scenario: 1 (quality) or 2 (product)")
	cmd.Flags().StringVar(&flags.mode, "mode", "", "Aggregation mode: quality or product")
	cmd.Flags().IntVar(&flags.horizon, "horizon", 0, "Number of time steps (1-64)")
	cmd.Flags().IntVar(&flags.prefixLimit, "prefix-limit", 0, "Blueprints scored in product mode (0 = all)")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "Concurrent blueprint searches (default: one per CPU)")
	cmd.Flags().BoolVar(&flags.persist, "persist", false, "Record the evaluation in the run store")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "table", "Output format: table, json or plain")
	cmd.Flags().BoolVar(&flags.exhaustive, "exhaustive", false, "Branch on every affordable machine, even when a geode machine is affordable")
	cmd.Flags().BoolVar(&flags.noUpperBound, "no-upper-bound", false, "Disable the optimistic upper bound prune")

	return cmd
}

// runSolve executes the solve command
func runSolve(cmd *cobra.Command, path string, flags solveFlags) error {
	format, err := parseOutputFormat(flags.output)
	if err != nil {
		return err
	}

	bps, err := readBlueprints(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	var scenarios []config.Scenario
	app, err := newApplication(appOptions{
		withDatabase: flags.persist,
		configure: func(cfg *config.Config) error {
			applySolveOverrides(cmd, &cfg.Optimizer, flags)
			resolved, resolveErr := resolveScenarios(cfg.Optimizer, flags, cmd.Flags().Changed)
			scenarios = resolved
			return resolveErr
		},
	})
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx = app.context(ctx)

	source := path
	if path == "-" {
		source = "stdin"
	}

	results := make([]*commands.EvaluateBlueprintsResponse, 0, len(scenarios))
	for _, sc := range scenarios {
		resp, err := app.mediator.Send(ctx, &commands.EvaluateBlueprintsCommand{
			Blueprints:  bps,
			Source:      source,
			Mode:        sc.Mode,
			Horizon:     sc.Horizon,
			PrefixLimit: sc.PrefixLimit,
			Persist:     flags.persist,
		})
		if err != nil {
			return err
		}
		results = append(results, resp.(*commands.EvaluateBlueprintsResponse))
	}

	return writeEvaluations(cmd.OutOrStdout(), format, results)
}

// readBlueprints parses path, reading in when path is "-"
func readBlueprints(in io.Reader, path string) ([]*production.Blueprint, error) {
	if path == "-" {
		bps, err := blueprints.Parse(in)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		return bps, nil
	}
	return blueprints.LoadFile(path)
}

// applySolveOverrides copies explicitly set search flags onto cfg
func applySolveOverrides(cmd *cobra.Command, cfg *config.OptimizerConfig, flags solveFlags) {
	if cmd.Flags().Changed("workers") {
		cfg.Workers = flags.workers
	}
	if flags.exhaustive {
		cfg.ExhaustiveBranching = true
	}
	if flags.noUpperBound {
		cfg.DisableUpperBound = true
	}
}

// resolveScenarios turns --part, --mode, --horizon and --prefix-limit into
// the list of evaluations to run
func resolveScenarios(cfg config.OptimizerConfig, flags solveFlags, changed func(string) bool) ([]config.Scenario, error) {
	if changed("part") && changed("mode") {
		return nil, fmt.Errorf("--part and --mode cannot be combined")
	}

	var scenarios []config.Scenario
	switch {
	case changed("mode"):
		mode, err := production.ParseAggregationMode(flags.mode)
		if err != nil {
			return nil, err
		}
		if mode == production.AggregateProduct {
			scenarios = []config.Scenario{cfg.ProductScenario()}
		} else {
			scenarios = []config.Scenario{cfg.QualityScenario()}
		}
	case changed("part"):
		switch flags.part {
		case 1:
			scenarios = []config.Scenario{cfg.QualityScenario()}
		case 2:
			scenarios = []config.Scenario{cfg.ProductScenario()}
		default:
			return nil, fmt.Errorf("--part must be 1 or 2, got %d", flags.part)
		}
	default:
		if changed("horizon") || changed("prefix-limit") {
			return nil, fmt.Errorf("--horizon and --prefix-limit require --part or --mode")
		}
		return []config.Scenario{cfg.QualityScenario(), cfg.ProductScenario()}, nil
	}

	if changed("horizon") {
		if err := production.ValidateHorizon(flags.horizon); err != nil {
			return nil, err
		}
		scenarios[0].Horizon = flags.horizon
	}
	if changed("prefix-limit") {
		if flags.prefixLimit < 0 {
			return nil, fmt.Errorf("--prefix-limit must not be negative")
		}
		if scenarios[0].Mode != production.AggregateProduct {
			return nil, fmt.Errorf("--prefix-limit only applies to product mode")
		}
		scenarios[0].PrefixLimit = flags.prefixLimit
	}
	return scenarios, nil
}

func parseOutputFormat(s string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(s))
	switch format {
	case "table", "json", "plain":
		return format, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use table, json or plain)", s)
	}
}

