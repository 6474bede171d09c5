package jsonpath

import (
	"testing"
)

const loginResponse = `{
	"token": "eyJhbGciOi",
	"expiresIn": 3600,
	"user": {
		"id": 42,
		"email": "tester@example.com",
		"roles": ["admin", "viewer"]
	},
	"sessions": [
		{"id": "s-1", "device": "web"},
		{"id": "s-2", "device": "mobile"}
	],
	"meta.version": "v2",
	"refresh": null
}`

func TestExtract(t *testing.T) {
	tests := []struct {
		name          string
		path          string
		expected      string
		expectedError bool
	}{
		{name: "Top-level string", path: "$.token", expected: "eyJhbGciOi"},
		{name: "Number", path: "$.expiresIn", expected: "3600"},
		{name: "Nested property", path: "$.user.email", expected: "tester@example.com"},
		{name: "Array element", path: "$.user.roles[1]", expected: "viewer"},
		{name: "Object in array", path: "$.sessions[1].device", expected: "mobile"},
		{name: "Quoted key with dot", path: "$['meta.version']", expected: "v2"},
		{name: "Wildcard", path: "$.sessions[*].id", expected: `["s-1","s-2"]`},
		{name: "Null value", path: "$.refresh", expected: "null"},
		{name: "Missing property", path: "$.user.phone", expectedError: true},
		{name: "Index out of bounds", path: "$.sessions[5]", expectedError: true},
		{name: "Empty path", path: "", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Extract(loginResponse, tt.path)

			if tt.expectedError && err == nil {
				t.Errorf("Expected error, got nil")
			}
			if !tt.expectedError && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
			if !tt.expectedError && result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}

	if _, err := Extract("", "$.token"); err == nil {
		t.Errorf("Expected error for empty JSON, got nil")
	}
	if _, err := Extract("{not json", "$.token"); err == nil {
		t.Errorf("Expected error for invalid JSON, got nil")
	}
}

func TestExtractMultiple(t *testing.T) {
	tests := []struct {
		name          string
		paths         map[string]string
		expected      map[string]string
		expectedError bool
	}{
		{
			name: "All paths resolve",
			paths: map[string]string{
				"authToken": "$.token",
				"userId":    "$.user.id",
				"sessionId": "$.sessions[0].id",
			},
			expected: map[string]string{
				"authToken": "eyJhbGciOi",
				"userId":    "42",
				"sessionId": "s-1",
			},
		},
		{
			name: "One path missing",
			paths: map[string]string{
				"authToken": "$.token",
				"phone":     "$.user.phone",
			},
			expected:      map[string]string{"authToken": "eyJhbGciOi"},
			expectedError: true,
		},
		{
			name:          "No paths",
			paths:         map[string]string{},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := ExtractMultiple(loginResponse, tt.paths)

			if tt.expectedError && err == nil {
				t.Errorf("Expected error, got nil")
			}
			if !tt.expectedError && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}

			for name, expected := range tt.expected {
				if result, ok := results[name]; !ok {
					t.Errorf("Missing expected result for %s", name)
				} else if result != expected {
					t.Errorf("Expected %s=%q, got %q", name, expected, result)
				}
			}
		})
	}
}

func TestToSelector(t *testing.T) {
	tests := []struct {
		jsonPath string
		selector string
	}{
		{"$.token", "token"},
		{"$['token']", "token"},
		{`$["token"]`, "token"},
		{"$.user.id", "user.id"},
		{"$.items[0]", "items.0"},
		{"$.data.items[0].id", "data.items.0.id"},
		{"$.a[1][2].b", "a.1.2.b"},
		{"$.items[*].id", "items.#.id"},
		{"$['meta.version']", `meta\.version`},
		{"$", RootSelector},
		{"$.", RootSelector},
		{"$[0]", "0"},
		{"$[0].name", "0.name"},
	}

	for _, tt := range tests {
		t.Run(tt.jsonPath, func(t *testing.T) {
			if got := ToSelector(tt.jsonPath); got != tt.selector {
				t.Errorf("ToSelector(%q) = %q, want %q", tt.jsonPath, got, tt.selector)
			}
		})
	}
}
