package cli

import (
	"fmt"
	"io"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/blueprint-optimizer/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
		Long: `Inspect blueprint-optimizer configuration.

Configuration is loaded from multiple sources with priority:
1. Environment variables (BO_* prefix, e.g. BO_OPTIMIZER_WORKERS=4)
2. Config file (config.yaml)
3. Default values

Examples:
  blueprint-optimizer config show
  blueprint-optimizer config show --config ./configs/prod.yaml`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(cmd.ErrOrStderr(), "Using default configuration.")
				cfg = config.DefaultConfig()
			}

			writeConfig(cmd.OutOrStdout(), cfg)
			return nil
		},
	}

	return cmd
}

func writeConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Blueprint Optimizer Configuration")
	fmt.Fprintln(w, "=================================")

	fmt.Fprintln(w, "Optimizer:")
	fmt.Fprintf(w, "  Workers:          %d\n", cfg.Optimizer.Workers)
	fmt.Fprintf(w, "  Quality Horizon:  %d\n", cfg.Optimizer.QualityHorizon)
	fmt.Fprintf(w, "  Product Horizon:  %d\n", cfg.Optimizer.ProductHorizon)
	fmt.Fprintf(w, "  Prefix Limit:     %d\n", cfg.Optimizer.PrefixLimit)
	fmt.Fprintf(w, "  Greedy Geode:     %t\n", !cfg.Optimizer.ExhaustiveBranching)
	fmt.Fprintf(w, "  Upper Bound:      %t\n", !cfg.Optimizer.DisableUpperBound)
	fmt.Fprintf(w, "  Progress Every:   %s\n", cfg.Optimizer.ProgressInterval)

	fmt.Fprintln(w, "\nDatabase:")
	fmt.Fprintf(w, "  Type:             %s\n", cfg.Database.Type)
	switch {
	case cfg.Database.Type == "sqlite":
		fmt.Fprintf(w, "  Path:             %s\n", cfg.Database.Path)
	case cfg.Database.URL != "":
		fmt.Fprintf(w, "  URL:              %s\n", maskPassword(cfg.Database.URL))
	default:
		fmt.Fprintf(w, "  Host:             %s\n", cfg.Database.Host)
		fmt.Fprintf(w, "  Port:             %d\n", cfg.Database.Port)
		fmt.Fprintf(w, "  Database:         %s\n", cfg.Database.Name)
		fmt.Fprintf(w, "  User:             %s\n", cfg.Database.User)
	}

	fmt.Fprintln(w, "\nLogging:")
	fmt.Fprintf(w, "  Level:            %s\n", cfg.Logging.Level)
	fmt.Fprintf(w, "  Format:           %s\n", cfg.Logging.Format)
	fmt.Fprintf(w, "  Output:           %s\n", cfg.Logging.Output)

	fmt.Fprintln(w, "\nMetrics:")
	fmt.Fprintf(w, "  Enabled:          %t\n", cfg.Metrics.Enabled)
	if cfg.Metrics.Enabled {
		fmt.Fprintf(w, "  Endpoint:         http://%s%s\n", cfg.Metrics.Address(), cfg.Metrics.Path)
	}
}

// maskPassword hides the password of a connection URL
func maskPassword(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.User == nil {
		return rawURL
	}
	if _, hasPassword := u.User.Password(); hasPassword {
		u.User = url.UserPassword(u.User.Username(), "****")
	}
	return u.String()
}
