package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wesleyorama2/k6gen/internal/config"
	"github.com/wesleyorama2/k6gen/internal/output"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a test configuration between YAML and JSON",
	Long: `Convert a test configuration between YAML and JSON. The formats are
chosen by file extension.

Examples:
  k6gen convert -c test.yaml -o test.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, log := environment(cmd)
		defer log.Sync()

		in, _ := cmd.Flags().GetString("config")
		out, _ := cmd.Flags().GetString("output")
		return runConvert(in, out, p, log)
	},
}

func runConvert(in, out string, p *output.Printer, log *zap.Logger) error {
	if in == "" || out == "" {
		return fmt.Errorf("both --config and --output are required")
	}

	cfg, err := config.LoadConfig(in)
	if err != nil {
		return err
	}
	if err := config.SaveConfig(cfg, out); err != nil {
		return err
	}
	log.Debug("converted configuration",
		zap.String("from", string(config.FormatFromPath(in))),
		zap.String("to", string(config.FormatFromPath(out))))

	p.Success("Converted %s to %s", in, out)
	return nil
}

func init() {
	convertCmd.Flags().StringP("config", "c", "", "Source configuration file")
	convertCmd.Flags().StringP("output", "o", "", "Destination file (.json or .yaml)")
}
