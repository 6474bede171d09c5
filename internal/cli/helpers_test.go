package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wesleyorama2/k6gen/internal/config"
	"github.com/wesleyorama2/k6gen/internal/output"
)

// testPrinter returns an uncolored printer and its captured streams.
func testPrinter() (*output.Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return output.NewPrinter(&out, &errOut, false), &out, &errOut
}

var nopLog = zap.NewNop()

// writeExample saves the example configuration under dir and returns its path.
func writeExample(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, config.SaveConfig(config.ExampleTemplate(), path))
	return path
}

func writeText(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}
