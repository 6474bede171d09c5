package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/k6gen/pkg/jsonschema"
)

//go:embed testconfig.schema.json
var documentSchema string

// Format is a configuration file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension.
// Anything other than .json is treated as YAML.
func FormatFromPath(path string) Format {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return FormatJSON
	}
	return FormatYAML
}

// ParseFormat parses a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q (want json or yaml)", s)
}

// LoadConfig loads a test configuration from a file.
//
// The file format is determined by extension:
//   - .json -> JSON
//   - anything else -> YAML
func LoadConfig(path string) (*TestConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data, path)
}

// ParseConfig parses configuration data.
//
// The document is checked against the embedded JSON Schema before it is
// decoded, so a malformed document never yields a partially filled config.
func ParseConfig(data []byte, path string) (*TestConfig, error) {
	format := FormatFromPath(path)

	doc := data
	if format == FormatYAML {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
		doc = converted
	}

	if err := ValidateDocument(doc); err != nil {
		return nil, fmt.Errorf("invalid config document: %w", err)
	}

	var config TestConfig
	if err := json.Unmarshal(doc, &config); err != nil {
		return nil, fmt.Errorf("failed to parse %s config: %w", format, err)
	}

	config.LoadType = config.LoadType.Normalize()
	normalizeProfiles(config.EnvVars)

	return &config, nil
}

// yamlToJSON converts a YAML document into the JSON the schema checks.
// Plain scalars under string-typed properties (value: 8080) are kept as
// strings, the way decoding YAML straight into the struct would read them.
func yamlToJSON(data []byte) ([]byte, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("document is empty")
	}

	retagStringScalars(&root, stringProperties())

	var raw interface{}
	if err := root.Decode(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("document is empty")
	}
	return json.Marshal(raw)
}

func retagStringScalars(n *yaml.Node, names map[string]bool) {
	if n.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			if value.Kind == yaml.ScalarNode && names[key.Value] && value.Style == 0 {
				switch value.Tag {
				case "!!int", "!!float", "!!bool":
					value.Tag = "!!str"
				}
			}
		}
	}
	for _, c := range n.Content {
		retagStringScalars(c, names)
	}
}

// stringProperties lists every property the schema declares as a string.
var stringProperties = sync.OnceValue(func() map[string]bool {
	var schema interface{}
	if err := json.Unmarshal([]byte(documentSchema), &schema); err != nil {
		panic(fmt.Sprintf("embedded schema: %v", err))
	}
	names := make(map[string]bool)
	collectStringProperties(schema, names)
	return names
})

func collectStringProperties(v interface{}, names map[string]bool) {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return
	}
	if props, ok := obj["properties"].(map[string]interface{}); ok {
		for name, prop := range props {
			if p, ok := prop.(map[string]interface{}); ok && p["type"] == "string" {
				names[name] = true
			}
		}
	}
	for _, child := range obj {
		collectStringProperties(child, names)
	}
}

// ValidateDocument checks a JSON document against the configuration schema.
func ValidateDocument(doc []byte) error {
	schema, err := jsonschema.Compile("testconfig.schema.json", documentSchema)
	if err != nil {
		return err
	}
	return schema.ValidateDocument(doc)
}

// MarshalConfig serializes the configuration in the given format.
func MarshalConfig(cfg *TestConfig, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON config: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, fmt.Errorf("failed to encode YAML config: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode YAML config: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

// SaveConfig writes the configuration to path, choosing the format by extension.
func SaveConfig(cfg *TestConfig, path string) error {
	data, err := MarshalConfig(cfg, FormatFromPath(path))
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ParseDurationString parses a duration string with support for common formats.
//
// Supported formats:
//   - Standard Go duration: "30s", "2m", "1h30m", "500ms"
//   - Seconds as integer: "30" (treated as 30 seconds)
//
// Returns the parsed duration or an error.
func ParseDurationString(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}

	// Try standard Go duration parsing first
	d, err := time.ParseDuration(s)
	if err == nil {
		return d, nil
	}

	// Try parsing as integer seconds
	if seconds, err := strconv.Atoi(s); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}

	return 0, fmt.Errorf("invalid duration format: %s", s)
}
