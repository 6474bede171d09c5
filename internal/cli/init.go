package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wesleyorama2/k6gen/internal/config"
	"github.com/wesleyorama2/k6gen/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an example test configuration",
	Long: `Write the example configuration: a login request that extracts a
token, a profile fetch that uses it and a settings update, with dev,
staging and prod environment profiles.

Examples:
  k6gen init
  k6gen init -o test.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, log := environment(cmd)
		defer log.Sync()

		opts := initOptions{}
		opts.OutputPath, _ = cmd.Flags().GetString("output")
		opts.Format, _ = cmd.Flags().GetString("format")
		opts.Force, _ = cmd.Flags().GetBool("force")

		return runInit(opts, p, log)
	},
}

type initOptions struct {
	OutputPath string
	Format     string
	Force      bool
}

func runInit(opts initOptions, p *output.Printer, log *zap.Logger) error {
	cfg := config.ExampleTemplate()

	if opts.OutputPath == "-" {
		format := config.FormatYAML
		if opts.Format != "" {
			var err error
			if format, err = config.ParseFormat(opts.Format); err != nil {
				return err
			}
		}
		data, err := config.MarshalConfig(cfg, format)
		if err != nil {
			return err
		}
		_, err = p.Out.Write(data)
		return err
	}

	if opts.OutputPath == "" {
		opts.OutputPath = "k6gen.yaml"
	}
	if opts.Format != "" {
		format, err := config.ParseFormat(opts.Format)
		if err != nil {
			return err
		}
		if format != config.FormatFromPath(opts.OutputPath) {
			return fmt.Errorf("--format %s does not match the extension of %s", format, opts.OutputPath)
		}
	}

	if _, err := os.Stat(opts.OutputPath); err == nil && !opts.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", opts.OutputPath)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to check %s: %w", opts.OutputPath, err)
	}

	if err := config.SaveConfig(cfg, opts.OutputPath); err != nil {
		return err
	}
	log.Debug("wrote example configuration", zap.String("path", opts.OutputPath))

	p.Success("Created %s", opts.OutputPath)
	p.Info("Generate a script with: k6gen generate -c %s -o script.js", opts.OutputPath)
	return nil
}

func init() {
	initCmd.Flags().StringP("output", "o", "k6gen.yaml", "File to create (- for stdout)")
	initCmd.Flags().String("format", "", "yaml or json; must match the file extension")
	initCmd.Flags().Bool("force", false, "Overwrite an existing file")
}
