package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wesleyorama2/k6gen/internal/output"
	"github.com/wesleyorama2/k6gen/internal/script"
	"github.com/wesleyorama2/k6gen/pkg/jsonpath"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Try extraction paths against a sample response",
	Long: `Evaluate extraction paths against a sample JSON response and show the
value each one yields together with the expression the generated script
uses for it.

Examples:
  k6gen extract --response login.json --path '$.token'
  curl -s https://api.example.com/users | k6gen extract --path '$.data[0].id'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, log := environment(cmd)
		defer log.Sync()

		paths, _ := cmd.Flags().GetStringArray("path")
		response, _ := cmd.Flags().GetString("response")
		return runExtract(paths, response, cmd.InOrStdin(), p, log)
	},
}

// runExtract prints one block per path. It fails if any path did not match.
func runExtract(paths []string, response string, stdin io.Reader, p *output.Printer, log *zap.Logger) error {
	if len(paths) == 0 {
		return fmt.Errorf("at least one --path is required")
	}

	var data []byte
	var err error
	if response == "" || response == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(response)
	}
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	named := make(map[string]string, len(paths))
	keys := make([]string, len(paths))
	for i, path := range paths {
		keys[i] = fmt.Sprintf("%03d", i)
		named[keys[i]] = path
	}

	values, err := jsonpath.ExtractMultiple(strings.TrimSpace(string(data)), named)
	if values == nil {
		return err
	}

	p.Title("Extraction preview (%d paths)", len(paths))
	for i, path := range paths {
		fmt.Fprintln(p.Out, p.Scheme.Path.Sprint(path))
		p.SelectorField("selector", jsonpath.ToSelector(path))
		p.Field("script", script.RenderExpr(script.ExtractionValue(path)))
		v, found := values[keys[i]]
		if found {
			p.Field("value", v)
		} else {
			p.Field("value", p.Scheme.Error.Sprint("not found"))
		}
		log.Debug("evaluated path", zap.String("path", path), zap.Bool("found", found))
	}
	return err
}

func init() {
	extractCmd.Flags().StringArray("path", nil, "Extraction path to evaluate (repeatable)")
	extractCmd.Flags().String("response", "", "JSON response file (default: stdin)")
}
