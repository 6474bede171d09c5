package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{"token":"abc123","user":{"id":7,"roles":["admin","dev"]}}`

func TestRunExtract(t *testing.T) {
	p, out, _ := testPrinter()
	paths := []string{"$.token", "$.user.roles[1]", "user.id"}

	err := runExtract(paths, "", strings.NewReader(sampleResponse), p, nopLog)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Extraction preview (3 paths)\n$.token\n")
	assert.Contains(t, text, "script: res.json('token')")
	assert.Contains(t, text, "value: abc123")
	assert.Contains(t, text, "selector: user.roles.1")
	assert.Contains(t, text, "value: dev")
	assert.Contains(t, text, "script: res.json().user.id")
	assert.Contains(t, text, "value: 7")
}

func TestRunExtract_File(t *testing.T) {
	path := writeText(t, t.TempDir(), "resp.json", sampleResponse)
	p, out, _ := testPrinter()

	require.NoError(t, runExtract([]string{"$.token"}, path, nil, p, nopLog))
	assert.Contains(t, out.String(), "value: abc123")
}

func TestRunExtract_Errors(t *testing.T) {
	t.Run("no paths", func(t *testing.T) {
		p, _, _ := testPrinter()
		assert.ErrorContains(t, runExtract(nil, "", strings.NewReader(sampleResponse), p, nopLog), "--path")
	})

	t.Run("missing path", func(t *testing.T) {
		p, out, _ := testPrinter()
		err := runExtract([]string{"$.token", "$.missing"}, "", strings.NewReader(sampleResponse), p, nopLog)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "path not found: $.missing")
		assert.Contains(t, out.String(), "value: abc123")
		assert.Contains(t, out.String(), "value: not found")
	})

	t.Run("invalid json", func(t *testing.T) {
		p, _, _ := testPrinter()
		err := runExtract([]string{"$.token"}, "", strings.NewReader("{nope"), p, nopLog)
		assert.ErrorContains(t, err, "invalid JSON document")
	})
}
