package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wesleyorama2/k6gen/internal/config"
	"github.com/wesleyorama2/k6gen/internal/output"
	"github.com/wesleyorama2/k6gen/internal/script"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Compile a test configuration into a k6 script",
	Long: `Compile a YAML or JSON test configuration into a k6 script.

The configuration is validated first (disable with --skip-validation).
Variables of the selected environment profile become overridable
constants in the script.

Examples:
  k6gen generate -c test.yaml -o script.js
  k6gen generate -c test.json -p staging > staging.js`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, log := environment(cmd)
		defer log.Sync()

		opts := generateOptions{}
		opts.ConfigPath, _ = cmd.Flags().GetString("config")
		opts.Profile, _ = cmd.Flags().GetString("profile")
		opts.OutputPath, _ = cmd.Flags().GetString("output")
		opts.SkipValidation, _ = cmd.Flags().GetBool("skip-validation")
		opts.NoTimestamp, _ = cmd.Flags().GetBool("no-timestamp")

		return runGenerate(opts, p, log)
	},
}

type generateOptions struct {
	ConfigPath     string
	Profile        string
	OutputPath     string
	SkipValidation bool
	NoTimestamp    bool
	// Now stamps the script header; defaults to time.Now
	Now func() time.Time
}

// runGenerate loads, validates and compiles a configuration. The script is
// written to OutputPath, or to the printer's output when it is empty or "-".
func runGenerate(opts generateOptions, p *output.Printer, log *zap.Logger) error {
	if opts.ConfigPath == "" {
		return fmt.Errorf("--config is required")
	}

	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	log.Debug("loaded configuration",
		zap.String("path", opts.ConfigPath),
		zap.Int("requests", len(cfg.APIs)),
		zap.String("loadType", string(cfg.LoadType)))

	if !opts.SkipValidation {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("configuration is incomplete: %w", err)
		}
	} else if len(cfg.APIs) == 0 {
		p.Warn("no API requests configured; the script will do nothing")
	}

	profile := opts.Profile
	if profile == "" {
		profile = config.DefaultProfile
	}
	if len(cfg.EnvVars) > 0 && len(cfg.EnvVars.Vars(profile)) == 0 {
		p.Warn("profile %q declares no variables", profile)
	}

	for _, name := range script.UndeclaredEnv(cfg, profile) {
		p.Warn("${%s} is not declared by profile %q; pass it with -e %s=...", name, profile, name)
	}

	compileOpts := script.Options{Profile: profile}
	if toFile(opts.OutputPath) {
		compileOpts.ScriptName = filepath.Base(opts.OutputPath)
	}
	if !opts.NoTimestamp {
		now := opts.Now
		if now == nil {
			now = time.Now
		}
		compileOpts.GeneratedAt = now()
	}

	src := script.Compile(cfg, compileOpts)
	log.Debug("compiled script",
		zap.String("profile", profile),
		zap.Bool("scenarios", script.ScenarioMode(cfg)),
		zap.Int("bytes", len(src)))

	if !toFile(opts.OutputPath) {
		_, err := fmt.Fprint(p.Out, src)
		return err
	}

	if err := writeFile(opts.OutputPath, []byte(src)); err != nil {
		return err
	}
	p.Success("Generated %s from %s (profile %s, %d requests)", opts.OutputPath, opts.ConfigPath, profile, len(cfg.APIs))
	return nil
}

func toFile(path string) bool {
	return path != "" && path != "-"
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func init() {
	generateCmd.Flags().StringP("config", "c", "", "Test configuration file (YAML or JSON)")
	generateCmd.Flags().StringP("profile", "p", config.DefaultProfile, "Environment profile to embed")
	generateCmd.Flags().StringP("output", "o", "", "Output script file (default: stdout)")
	generateCmd.Flags().Bool("skip-validation", false, "Compile even if the configuration is incomplete")
	generateCmd.Flags().Bool("no-timestamp", false, "Omit the generation date for reproducible output")
}
