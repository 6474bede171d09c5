package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wesleyorama2/k6gen/internal/output"
)

var version = "0.1.0"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "k6gen",
	Short:   "Generate k6 load-test scripts from a test configuration",
	Version: version,
	Long: `k6gen compiles a YAML or JSON load-test description (load profile,
requests, request chaining and environment profiles) into a ready-to-run
k6 script, and imports captured curl commands as requests.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print help
		cmd.Help()
	},
}

// Execute runs the root command and reports a failure on stderr.
// This is called by main.main().
func Execute() error {
	cmd, err := RootCmd.ExecuteC()
	if err != nil {
		p, _ := environment(cmd)
		p.Error(err)
	}
	return err
}

// environment builds the printer and diagnostics logger for a command from
// the persistent --no-color and --verbose flags.
func environment(cmd *cobra.Command) (*output.Printer, *zap.Logger) {
	noColor, _ := cmd.Flags().GetBool("no-color")
	verbose, _ := cmd.Flags().GetBool("verbose")

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	p := output.NewPrinter(out, errOut, output.UseColor(errOut, noColor))
	return p, output.NewLogger(errOut, verbose)
}

func init() {
	RootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose diagnostics on stderr")

	// Add subcommands to root command
	RootCmd.AddCommand(generateCmd)
	RootCmd.AddCommand(importCurlCmd)
	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(convertCmd)
	RootCmd.AddCommand(validateCmd)
	RootCmd.AddCommand(extractCmd)
}
