package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "blueprint-optimizer",
		Short: "Find the best production schedule for each factory blueprint",
		Long: `blueprint-optimizer searches, for every blueprint in a list, the build
schedule that yields the most geodes within a fixed number of minutes,
then combines the per-blueprint maxima into one answer.

Configuration is read from config.yaml (., ./configs, /etc/blueprint-optimizer)
and BO_* environment variables.

Examples:
  blueprint-optimizer solve blueprints.txt
  blueprint-optimizer solve blueprints.txt --part 1
  blueprint-optimizer solve blueprints.txt --mode product --horizon 32 --prefix-limit 3
  cat blueprints.txt | blueprint-optimizer solve - --output json
  blueprint-optimizer solve blueprints.txt --persist
  blueprint-optimizer runs list --mode quality
  blueprint-optimizer runs show quality-a3f8e2b1`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to config file (default: search ./config.yaml, ./configs, /etc/blueprint-optimizer)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewSolveCommand())
	rootCmd.AddCommand(NewRunsCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
