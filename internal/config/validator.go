package config

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []*ValidationError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Add adds an error to the collection.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, &ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are any errors.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// IsIdentifier reports whether s is a legal JavaScript identifier
// (ASCII subset).
func IsIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// reservedWords cannot name a declaration in a generated script.
var reservedWords = map[string]bool{
	"await": true, "break": true, "case": true, "catch": true, "class": true,
	"const": true, "continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "enum": true, "export": true, "extends": true,
	"false": true, "finally": true, "for": true, "function": true, "if": true,
	"implements": true, "import": true, "in": true, "instanceof": true, "interface": true,
	"let": true, "new": true, "null": true, "package": true, "private": true,
	"protected": true, "public": true, "return": true, "static": true, "super": true,
	"switch": true, "this": true, "throw": true, "true": true, "try": true,
	"typeof": true, "var": true, "void": true, "while": true, "with": true,
	"yield": true, "arguments": true, "eval": true, "undefined": true, "NaN": true,
	"Infinity": true,
}

// scriptGlobals are the top-level names every generated script declares or uses.
var scriptGlobals = map[string]bool{
	"http": true, "check": true, "group": true, "sleep": true, "encoding": true,
	"options": true, "extractedVars": true, "__ENV": true, "__VU": true, "__ITER": true,
	"Math": true, "console": true,
}

var helperPattern = regexp.MustCompile(`^api[0-9]+$`)

// ScriptNameProblem explains why name cannot be declared at the top level
// of a generated script, or returns "" when it can.
func ScriptNameProblem(name string) string {
	switch {
	case !IsIdentifier(name):
		return "is not a valid identifier"
	case reservedWords[name]:
		return "is a reserved word"
	case scriptGlobals[name], helperPattern.MatchString(name):
		return "is already used by the generated script"
	}
	return ""
}

// Validate checks that the configuration is complete enough to produce a
// runnable script. The compiler itself never requires this; callers run it
// before compiling.
//
// Returns nil if valid, or a *ValidationErrors containing all validation errors.
func (c *TestConfig) Validate() error {
	errs := &ValidationErrors{}

	if len(c.APIs) == 0 {
		errs.Add("apis", "at least one API request must be added")
	}

	if c.VUs < 1 {
		errs.Add("vus", "virtual users must be greater than 0")
	}

	if strings.TrimSpace(c.Duration) == "" {
		errs.Add("duration", "test duration must be defined")
	} else if _, err := ParseDurationString(c.Duration); err != nil {
		errs.Add("duration", fmt.Sprintf("invalid duration: %v", err))
	}

	validateLoadShape(c, errs)

	switch c.ExecutionMode {
	case "", ModeSequential, ModeParallel, ModeRandom:
	default:
		errs.Add("executionMode", fmt.Sprintf("unknown execution mode: %s", c.ExecutionMode))
	}

	if c.EnableScenarios || c.LoadType.Normalize() == LoadScenarioBased {
		validateScenarios(c, errs)
	}

	profiles := make([]string, 0, len(c.EnvVars))
	for profile := range c.EnvVars {
		profiles = append(profiles, profile)
	}
	sort.Strings(profiles)
	for _, profile := range profiles {
		for i, v := range c.EnvVars[profile] {
			if problem := ScriptNameProblem(v.Key); problem != "" {
				errs.Add(fmt.Sprintf("envVars.%s[%d].key", profile, i), fmt.Sprintf("%q %s", v.Key, problem))
			}
		}
	}

	validateThinkTime(&c.ThinkTime, errs)

	for i, api := range c.APIs {
		validateRequest(fmt.Sprintf("apis[%d]", i), &api, errs)
	}

	if c.Thresholds.Enabled {
		validateThresholds(&c.Thresholds, errs)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// validateLoadShape validates the load type and the fields it reads.
func validateLoadShape(c *TestConfig, errs *ValidationErrors) {
	switch c.LoadType.Normalize() {
	case "", LoadConstant, LoadScenarioBased:
	case LoadStages:
		for i, stage := range c.Stages {
			validateStage(fmt.Sprintf("stages[%d]", i), &stage, errs)
		}
	case LoadRampUp, LoadRampDown, LoadSpike:
		if c.RampDuration != "" {
			if _, err := ParseDurationString(c.RampDuration); err != nil {
				errs.Add("rampDuration", fmt.Sprintf("invalid duration: %v", err))
			}
		}
		if c.TargetVUs < 0 {
			errs.Add("targetVUs", "targetVUs cannot be negative")
		}
	default:
		errs.Add("loadType", fmt.Sprintf("unknown load type: %s", c.LoadType))
	}
}

// validateStage validates a single stage configuration.
func validateStage(prefix string, stage *Stage, errs *ValidationErrors) {
	if stage.Duration == "" {
		errs.Add(prefix+".duration", "duration is required")
	} else if _, err := ParseDurationString(stage.Duration); err != nil {
		errs.Add(prefix+".duration", fmt.Sprintf("invalid duration: %v", err))
	}

	if stage.Target < 0 {
		errs.Add(prefix+".target", "target cannot be negative")
	}
}

// validateScenarios validates scenario definitions and their exec names.
func validateScenarios(c *TestConfig, errs *ValidationErrors) {
	if len(c.Scenarios) == 0 {
		errs.Add("scenarios", "at least one scenario is required when scenarios are enabled")
		return
	}

	validExecutors := map[Executor]bool{
		ExecutorRampingVUs:       true,
		ExecutorConstantVUs:      true,
		ExecutorPerVUIterations:  true,
		ExecutorSharedIterations: true,
	}

	envKeys := make(map[string]bool)
	for _, vars := range c.EnvVars {
		for _, v := range vars {
			envKeys[v.Key] = true
		}
	}

	seen := make(map[string]int)
	for i, sc := range c.Scenarios {
		prefix := fmt.Sprintf("scenarios[%d]", i)

		if strings.TrimSpace(sc.Name) == "" {
			errs.Add(prefix+".name", "scenario name is required")
		} else {
			fn := sc.FuncName()
			if problem := ScriptNameProblem(fn); problem != "" {
				errs.Add(prefix+".name", fmt.Sprintf("%q does not form a valid function name (%q %s)", sc.Name, fn, problem))
			} else if envKeys[fn] {
				errs.Add(prefix+".name", fmt.Sprintf("function name %q collides with an environment variable", fn))
			} else if prev, ok := seen[fn]; ok {
				errs.Add(prefix+".name", fmt.Sprintf("function name %q collides with scenarios[%d]", fn, prev))
			} else {
				seen[fn] = i
			}
		}

		if sc.Executor == "" {
			errs.Add(prefix+".executor", "executor type is required")
		} else if !validExecutors[sc.Executor] {
			errs.Add(prefix+".executor", fmt.Sprintf("unknown executor type: %s", sc.Executor))
		}

		if sc.VUs < 1 {
			errs.Add(prefix+".vus", "vus must be at least 1")
		}

		if strings.TrimSpace(sc.Duration) == "" {
			errs.Add(prefix+".duration", "duration is required")
		} else if _, err := ParseDurationString(sc.Duration); err != nil {
			errs.Add(prefix+".duration", fmt.Sprintf("invalid duration: %v", err))
		}

		if sc.StartTime != "" {
			if _, err := ParseDurationString(sc.StartTime); err != nil {
				errs.Add(prefix+".startTime", fmt.Sprintf("invalid start time: %v", err))
			}
		}

		validateSelector(prefix+".apis", sc.APIs, len(c.APIs), errs)
	}
}

// validateSelector validates a comma-separated 1-based request selector.
func validateSelector(field, selector string, n int, errs *ValidationErrors) {
	if strings.TrimSpace(selector) == "" {
		return
	}
	for _, part := range strings.Split(selector, ",") {
		part = strings.TrimSpace(part)
		idx, err := strconv.Atoi(part)
		if err != nil {
			errs.Add(field, fmt.Sprintf("%q is not a request number", part))
			continue
		}
		if idx < 1 || idx > n {
			errs.Add(field, fmt.Sprintf("request %d does not exist (have %d)", idx, n))
		}
	}
}

// validateThinkTime validates the think-time policy.
func validateThinkTime(tt *ThinkTime, errs *ValidationErrors) {
	switch tt.Mode {
	case "", ThinkFixed:
		if tt.Fixed < 0 {
			errs.Add("thinkTime.fixed", "fixed think time cannot be negative")
		}
	case ThinkRandom:
		if tt.Min < 0 {
			errs.Add("thinkTime.min", "min cannot be negative")
		}
		if tt.Min > tt.Max {
			errs.Add("thinkTime", "min must be less than or equal to max")
		}
	case ThinkPerAPI:
	default:
		errs.Add("thinkTime.mode", fmt.Sprintf("unknown think time mode: %s", tt.Mode))
	}
}

// validateRequest validates a single request configuration.
func validateRequest(prefix string, req *APIRequest, errs *ValidationErrors) {
	validMethods := map[Method]bool{
		MethodGet: true, MethodPost: true, MethodPut: true,
		MethodDelete: true, MethodPatch: true,
	}

	method := Method(strings.ToUpper(string(req.Method)))
	if method == "" {
		errs.Add(prefix+".method", "method is required")
	} else if !validMethods[method] {
		errs.Add(prefix+".method", fmt.Sprintf("invalid HTTP method: %s", req.Method))
	}

	if strings.TrimSpace(req.URL) == "" {
		errs.Add(prefix+".url", "url is required")
	}

	if req.ThinkTime < 0 {
		errs.Add(prefix+".thinkTime", "think time cannot be negative")
	}

	switch req.AuthType {
	case "", AuthNone, AuthCustom:
	case AuthBearer:
		if req.BearerToken == "" {
			errs.Add(prefix+".bearerToken", "bearer token is required for bearer auth")
		}
	case AuthBasic:
		if req.BasicAuth == nil || req.BasicAuth.Username == "" {
			errs.Add(prefix+".basicAuth.username", "username is required for basic auth")
		}
	default:
		errs.Add(prefix+".authType", fmt.Sprintf("unknown auth type: %s", req.AuthType))
	}

	for i, h := range req.Headers {
		if strings.TrimSpace(h.Key) == "" {
			errs.Add(fmt.Sprintf("%s.headers[%d].key", prefix, i), "header key is required")
		}
	}

	for i, chk := range req.Checks {
		if chk.Name == "" || chk.Condition == "" {
			errs.Add(fmt.Sprintf("%s.checks[%d]", prefix, i), "check needs both a name and a condition")
		}
	}

	if req.Extraction.Enabled {
		if req.Extraction.Path == "" {
			errs.Add(prefix+".extraction.path", "path is required when extraction is enabled")
		}
		if !IsIdentifier(req.Extraction.VarName) {
			errs.Add(prefix+".extraction.varName", fmt.Sprintf("%q is not a valid variable name", req.Extraction.VarName))
		} else if reservedWords[req.Extraction.VarName] {
			errs.Add(prefix+".extraction.varName", fmt.Sprintf("%q is a reserved word", req.Extraction.VarName))
		}
	}
}

// validateThresholds validates threshold bounds.
func validateThresholds(t *Thresholds, errs *ValidationErrors) {
	if t.P95 < 0 {
		errs.Add("thresholds.p95", "p95 cannot be negative")
	}
	if t.P99 < 0 {
		errs.Add("thresholds.p99", "p99 cannot be negative")
	}
	if t.ErrorRate < 0 || t.ErrorRate > 100 {
		errs.Add("thresholds.errorRate", "errorRate must be between 0 and 100")
	}
}
