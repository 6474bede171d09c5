package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wesleyorama2/k6gen/internal/config"
	"github.com/wesleyorama2/k6gen/internal/output"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a test configuration without generating a script",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, log := environment(cmd)
		defer log.Sync()

		path, _ := cmd.Flags().GetString("config")
		return runValidate(path, p, log)
	},
}

// runValidate reports every problem of the configuration, one per line.
func runValidate(path string, p *output.Printer, log *zap.Logger) error {
	if path == "" {
		return fmt.Errorf("--config is required")
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return err
	}

	err = cfg.Validate()
	var verrs *config.ValidationErrors
	if errors.As(err, &verrs) {
		for _, e := range verrs.Errors {
			p.Warn("%s: %s", e.Field, e.Message)
		}
		return fmt.Errorf("%s has %d problem(s)", path, len(verrs.Errors))
	}
	if err != nil {
		return err
	}

	log.Debug("configuration is valid", zap.String("path", path))
	p.Success("%s is valid", path)
	p.Title("Summary")
	p.Field("Test", cfg.TestName)
	p.Field("Requests", fmt.Sprintf("%d", len(cfg.APIs)))
	p.Field("Load type", string(cfg.WithDefaults().LoadType))
	return nil
}

func init() {
	validateCmd.Flags().StringP("config", "c", "", "Configuration file to check")
}
