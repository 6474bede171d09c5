package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wesleyorama2/k6gen/internal/config"
	"github.com/wesleyorama2/k6gen/internal/curl"
	"github.com/wesleyorama2/k6gen/internal/output"
)

var importCurlCmd = &cobra.Command{
	Use:   "import-curl [command]",
	Short: "Import a curl command as an API request",
	Long: `Import a curl command (for example one copied from browser devtools)
as an API request of a test configuration.

The command is read from the arguments, or from a file with -f
("-f -" reads stdin). With -c the request is added to a configuration
file; without it the resulting configuration is printed.

Examples:
  k6gen import-curl "curl -X POST https://api.example.com/login -d '{}'"
  k6gen import-curl -f request.sh -c test.yaml --append
  pbpaste | k6gen import-curl -f - --strict`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, log := environment(cmd)
		defer log.Sync()

		opts := importCurlOptions{Command: strings.Join(args, " ")}
		opts.File, _ = cmd.Flags().GetString("file")
		opts.ConfigPath, _ = cmd.Flags().GetString("config")
		opts.Append, _ = cmd.Flags().GetBool("append")
		opts.Strict, _ = cmd.Flags().GetBool("strict")
		opts.Format, _ = cmd.Flags().GetString("format")
		opts.Stdin = cmd.InOrStdin()

		return runImportCurl(opts, p, log)
	},
}

type importCurlOptions struct {
	Command    string
	File       string
	ConfigPath string
	Append     bool
	Strict     bool
	Format     string
	Stdin      io.Reader
}

func runImportCurl(opts importCurlOptions, p *output.Printer, log *zap.Logger) error {
	text, err := readCurlInput(opts)
	if err != nil {
		return err
	}

	parse := curl.Parse
	if opts.Strict {
		parse = curl.ParseStrict
	}
	req, err := parse(text)
	if err != nil {
		return fmt.Errorf("failed to import curl command: %w", err)
	}
	log.Debug("parsed curl command",
		zap.Bool("strict", opts.Strict),
		zap.String("method", string(req.Method)),
		zap.String("url", req.URL),
		zap.Int("headers", len(req.Headers)))

	if req.Form != nil && req.Form.HasFile {
		p.Warn("file uploads are not reproduced; form fields are sent as an encoded body")
	}

	api := req.APIRequest()

	var cfg *config.TestConfig
	exists := false
	if opts.ConfigPath != "" {
		if _, err := os.Stat(opts.ConfigPath); err == nil {
			exists = true
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to check %s: %w", opts.ConfigPath, err)
		}
	}

	switch {
	case exists && !opts.Append:
		return fmt.Errorf("%s already exists (use --append to add the request to it)", opts.ConfigPath)
	case exists:
		cfg, err = config.LoadConfig(opts.ConfigPath)
		if err != nil {
			return err
		}
	default:
		cfg = config.Default()
		cfg.TestName = "Imported Test"
	}
	cfg.APIs = append(cfg.APIs, api)

	if opts.ConfigPath == "" {
		format := config.FormatYAML
		if opts.Format != "" {
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

	if err := config.SaveConfig(cfg, opts.ConfigPath); err != nil {
		return err
	}
	p.Success("Imported %s %s into %s (request %d)", api.Method, api.URL, opts.ConfigPath, len(cfg.APIs))
	return nil
}

// readCurlInput returns the command text from the file, stdin or arguments.
func readCurlInput(opts importCurlOptions) (string, error) {
	if opts.File == "" {
		if strings.TrimSpace(opts.Command) == "" {
			return "", fmt.Errorf("no curl command given (pass it as an argument or use --file)")
		}
		return opts.Command, nil
	}
	if opts.Command != "" {
		return "", fmt.Errorf("pass the curl command either as an argument or with --file, not both")
	}

	var data []byte
	var err error
	if opts.File == "-" {
		if opts.Stdin == nil {
			return "", fmt.Errorf("no standard input available")
		}
		data, err = io.ReadAll(opts.Stdin)
	} else {
		data, err = os.ReadFile(opts.File)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read curl command: %w", err)
	}
	return string(data), nil
}

func init() {
	importCurlCmd.Flags().StringP("file", "f", "", "Read the curl command from a file (- for stdin)")
	importCurlCmd.Flags().StringP("config", "c", "", "Configuration file to write the request to")
	importCurlCmd.Flags().Bool("append", false, "Append to an existing configuration file")
	importCurlCmd.Flags().Bool("strict", false, "Lex the command like a POSIX shell and reject malformed quoting")
	importCurlCmd.Flags().String("format", "", "Output format when printing: yaml or json (default yaml)")
}
