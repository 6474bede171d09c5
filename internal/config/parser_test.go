package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDurationString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{name: "standard seconds", input: "30s", expected: 30 * time.Second},
		{name: "standard minutes", input: "2m", expected: 2 * time.Minute},
		{name: "combined duration", input: "1h30m", expected: 90 * time.Minute},
		{name: "integer as seconds", input: "30", expected: 30 * time.Second},
		{name: "empty string", input: "", expected: 0},
		{name: "invalid format", input: "abc", wantErr: true},
		{name: "trailing garbage after seconds", input: "10abc", wantErr: true},
		{name: "seconds with space", input: "10 s", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDurationString(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDurationString() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.expected {
				t.Errorf("ParseDurationString() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseConfig_YAMLPlainScalars(t *testing.T) {
	yamlConfig := `
testName: 2024
vus: 5
duration: 30
envVars:
  dev:
    - key: PORT
      value: 8080
    - key: DEBUG
      value: true
scenarios:
  - name: smoke
    apis: 1
apis:
  - method: GET
    url: /health
    headers:
      - key: X-Retry
        value: 2
    extraction:
      enabled: true
      path: $.id
      varName: id
`
	cfg, err := ParseConfig([]byte(yamlConfig), "test.yaml")
	require.NoError(t, err)

	assert.Equal(t, "2024", cfg.TestName)
	assert.Equal(t, 5, cfg.VUs)
	assert.Equal(t, "30", cfg.Duration)
	assert.Equal(t, []EnvVar{{Key: "PORT", Value: "8080"}, {Key: "DEBUG", Value: "true"}}, cfg.EnvVars["dev"])
	assert.Equal(t, "1", cfg.Scenarios[0].APIs)
	assert.Equal(t, []Header{{Key: "X-Retry", Value: "2"}}, cfg.APIs[0].Headers)
	assert.True(t, cfg.APIs[0].Extraction.Enabled)
}

func TestParseConfig_YAML(t *testing.T) {
	yamlConfig := `
testName: "Checkout Flow"
baseUrl: "https://shop.example.com"
vus: 25
duration: 1m
loadType: ramping-up
executionMode: random
rampDuration: 20s
targetVUs: 40
envVars:
  dev:
    - key: API_KEY
      value: first
    - key: REGION
      value: eu
    - key: API_KEY
      value: second
thinkTime:
  mode: random
  min: 1
  max: 4
apis:
  - name: "List products"
    method: GET
    url: /products
    checks:
      - name: ok
        condition: r.status === 200
  - name: "Add to cart"
    method: POST
    url: /cart
    body: '{"sku": "${sku}"}'
    extraction:
      enabled: true
      path: $.cart.id
      varName: cartId
thresholds:
  enabled: true
  p95: 300
  p99: 900
  errorRate: 2.5
`
	cfg, err := ParseConfig([]byte(yamlConfig), "test.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Checkout Flow", cfg.TestName)
	assert.Equal(t, 25, cfg.VUs)
	assert.Equal(t, LoadRampUp, cfg.LoadType, "legacy load type spelling should be normalized")
	assert.Equal(t, ModeRandom, cfg.ExecutionMode)
	assert.Equal(t, 40, cfg.TargetVUs)
	assert.Equal(t, ThinkTime{Mode: ThinkRandom, Min: 1, Max: 4}, cfg.ThinkTime)

	// duplicate keys collapse: first position, last value
	assert.Equal(t, []EnvVar{
		{Key: "API_KEY", Value: "second"},
		{Key: "REGION", Value: "eu"},
	}, cfg.EnvVars["dev"])

	require.Len(t, cfg.APIs, 2)
	assert.Equal(t, MethodPost, cfg.APIs[1].Method)
	assert.Equal(t, `{"sku": "${sku}"}`, cfg.APIs[1].Body)
	assert.True(t, cfg.APIs[1].Extraction.Active())
	assert.Equal(t, 2.5, cfg.Thresholds.ErrorRate)
}

func TestParseConfig_JSON(t *testing.T) {
	jsonConfig := `{
		"testName": "Exported",
		"baseUrl": "${BASE_URL}",
		"vus": 10,
		"duration": "30s",
		"loadType": "constant",
		"executionMode": "sequential",
		"stages": [],
		"scenarios": [],
		"enableScenarios": false,
		"envVars": {"dev": [{"key": "BASE_URL", "value": "https://dev"}], "staging": [], "prod": []},
		"thinkTime": {"mode": "fixed", "fixed": 1, "min": 1, "max": 5},
		"apis": [{
			"name": "Ping", "method": "GET", "url": "/ping", "body": "", "thinkTime": 0,
			"authType": "basic", "basicAuth": {"username": "u", "password": "p"},
			"headers": [], "checks": [], "extraction": {"enabled": false, "path": "", "varName": ""}
		}],
		"thresholds": {"enabled": true, "p95": 500, "p99": 1000, "errorRate": 1}
	}`

	cfg, err := ParseConfig([]byte(jsonConfig), "k6-config.json")
	require.NoError(t, err)
	assert.Equal(t, "Exported", cfg.TestName)
	require.Len(t, cfg.APIs, 1)
	require.NotNil(t, cfg.APIs[0].BasicAuth)
	assert.Equal(t, "u", cfg.APIs[0].BasicAuth.Username)
	assert.True(t, cfg.EnvVars.Has("dev", "BASE_URL"))
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		path   string
		errMsg string
	}{
		{name: "malformed JSON", data: `{"testName": `, path: "c.json", errMsg: "invalid config document"},
		{name: "wrong type", data: `{"vus": "many"}`, path: "c.json", errMsg: "/vus"},
		{name: "error rate out of range", data: `{"thresholds": {"errorRate": 400}}`, path: "c.json", errMsg: "/thresholds/errorRate"},
		{name: "malformed YAML", data: "apis: [unclosed", path: "c.yaml", errMsg: "failed to parse YAML config"},
		{name: "empty YAML", data: "", path: "c.yml", errMsg: "document is empty"},
		{name: "YAML wrong type", data: "apis: 12\n", path: "c.yaml", errMsg: "/apis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig([]byte(tt.data), tt.path)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestMarshalConfig_RoundTrip(t *testing.T) {
	original := ExampleTemplate()

	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := MarshalConfig(original, format)
			require.NoError(t, err)

			parsed, err := ParseConfig(data, "config."+string(format))
			require.NoError(t, err)
			assert.Equal(t, original, parsed)
		})
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "k6gen.json")

	require.NoError(t, SaveConfig(ExampleTemplate(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"testName": "DemoAPI Test"`)

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ExampleTemplate(), loaded)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("toml")
	assert.Error(t, err)

	assert.Equal(t, FormatJSON, FormatFromPath("a/B.JSON"))
	assert.Equal(t, FormatYAML, FormatFromPath("a/b.yml"))
	assert.Equal(t, FormatYAML, FormatFromPath("noext"))
}
