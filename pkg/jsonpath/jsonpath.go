// Package jsonpath translates the JSONPath subset used by extractions into
// gjson selectors, the syntax k6 accepts in Response.json(selector).
package jsonpath

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// RootSelector is the gjson selector for the whole document.
const RootSelector = "@this"

// Extract extracts a value from a JSON string using a JSONPath expression
func Extract(json string, path string) (string, error) {
	if json == "" {
		return "", fmt.Errorf("empty JSON string")
	}
	if path == "" {
		return "", fmt.Errorf("empty JSONPath expression")
	}
	if !gjson.Valid(json) {
		return "", fmt.Errorf("invalid JSON document")
	}

	// JSONPath: $.users[0].name
	// gjson:    users.0.name
	result := gjson.Get(json, ToSelector(path))
	if !result.Exists() {
		return "", fmt.Errorf("path not found: %s", path)
	}

	if result.Type == gjson.Null {
		return "null", nil
	}

	return result.String(), nil
}

// ExtractMultiple extracts multiple values from a JSON string using a map of JSONPath expressions
func ExtractMultiple(json string, paths map[string]string) (map[string]string, error) {
	if json == "" {
		return nil, fmt.Errorf("empty JSON string")
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no JSONPath expressions provided")
	}

	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make(map[string]string)
	var errors []string
	for _, name := range names {
		value, err := Extract(json, paths[name])
		if err != nil {
			errors = append(errors, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		results[name] = value
	}

	if len(errors) > 0 {
		return results, fmt.Errorf("extraction errors: %s", strings.Join(errors, "; "))
	}

	return results, nil
}

// ToSelector converts a JSONPath expression ($.a.b[0]['c.d']) into a gjson
// selector (a.b.0.c\.d). Quoted bracket keys have gjson metacharacters
// escaped; a bare "$" or "$." selects the whole document.
func ToSelector(path string) string {
	path = strings.TrimSpace(path)
	path = strings.TrimPrefix(path, "$")
	path = strings.TrimPrefix(path, ".")
	if path == "" {
		return RootSelector
	}

	var parts []string
	var seg strings.Builder
	flush := func() {
		if seg.Len() > 0 {
			parts = append(parts, seg.String())
			seg.Reset()
		}
	}

	for i := 0; i < len(path); i++ {
		c := path[i]
		switch c {
		case '.':
			flush()
		case '[':
			flush()
			end := strings.IndexByte(path[i:], ']')
			if end < 0 {
				seg.WriteString(path[i+1:])
				i = len(path)
				continue
			}
			inner := path[i+1 : i+end]
			if n := len(inner); n >= 2 && (inner[0] == '\'' || inner[0] == '"') && inner[n-1] == inner[0] {
				parts = append(parts, escapeKey(inner[1:n-1]))
			} else if inner == "*" {
				parts = append(parts, "#")
			} else if inner != "" {
				parts = append(parts, inner)
			}
			i += end
		default:
			seg.WriteByte(c)
		}
	}
	flush()

	if len(parts) == 0 {
		return RootSelector
	}
	return strings.Join(parts, ".")
}

func escapeKey(key string) string {
	var sb strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
