// Package config provides the load-test configuration model, its JSON/YAML
// persistence and the validation a caller runs before compiling a script.
package config

// TestConfig is the root configuration for a generated k6 test.
//
// Example YAML:
//
//	testName: "API Load Test"
//	baseUrl: "${BASE_URL}"
//	vus: 20
//	duration: 2m
//	loadType: ramp-up
//	rampDuration: 1m
//	targetVUs: 50
//	envVars:
//	  dev:
//	    - key: BASE_URL
//	      value: https://dev.api.example.com
//	apis:
//	  - name: "Get Users"
//	    method: GET
//	    url: /users
type TestConfig struct {
	// TestName is printed in the script header
	TestName string `json:"testName" yaml:"testName"`

	// BaseURL is prefixed to relative request URLs; may itself be a placeholder
	BaseURL string `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty"`

	// VUs is the target virtual user count
	VUs int `json:"vus" yaml:"vus"`

	// Duration is the target duration (e.g., "30s", "2m")
	Duration string `json:"duration" yaml:"duration"`

	// LoadType selects the load shape
	LoadType LoadType `json:"loadType" yaml:"loadType"`

	// ExecutionMode controls the default entry point when scenarios are off
	ExecutionMode ExecutionMode `json:"executionMode" yaml:"executionMode"`

	// RampDuration is the ramp length for ramp-up and ramp-down shapes
	RampDuration string `json:"rampDuration,omitempty" yaml:"rampDuration,omitempty"`

	// TargetVUs is the peak for ramp-up and spike shapes
	TargetVUs int `json:"targetVUs,omitempty" yaml:"targetVUs,omitempty"`

	// Stages are used verbatim by the stages shape
	Stages []Stage `json:"stages" yaml:"stages"`

	// Scenarios are named execution units, active when EnableScenarios is set
	Scenarios []Scenario `json:"scenarios" yaml:"scenarios"`

	EnableScenarios bool `json:"enableScenarios" yaml:"enableScenarios"`

	// EnvVars maps a profile name (dev, staging, prod) to its variables
	EnvVars EnvironmentProfiles `json:"envVars" yaml:"envVars"`

	ThinkTime ThinkTime `json:"thinkTime" yaml:"thinkTime"`

	// APIs are the requests, in execution order
	APIs []APIRequest `json:"apis" yaml:"apis"`

	Thresholds Thresholds `json:"thresholds" yaml:"thresholds"`
}

// LoadType is the load-shape kind.
type LoadType string

const (
	LoadConstant      LoadType = "constant"
	LoadStages        LoadType = "stages"
	LoadRampUp        LoadType = "ramp-up"
	LoadRampDown      LoadType = "ramp-down"
	LoadSpike         LoadType = "spike"
	LoadScenarioBased LoadType = "scenario-based"
)

// Normalize maps the legacy "ramping-up"/"ramping-down" spellings onto the
// current names.
func (l LoadType) Normalize() LoadType {
	switch l {
	case "ramping-up":
		return LoadRampUp
	case "ramping-down":
		return LoadRampDown
	}
	return l
}

// ExecutionMode controls how the default function runs the requests.
type ExecutionMode string

const (
	ModeSequential ExecutionMode = "sequential"
	ModeParallel   ExecutionMode = "parallel"
	ModeRandom     ExecutionMode = "random"
)

// Stage is a single {duration, target} step.
type Stage struct {
	Duration string `json:"duration" yaml:"duration"`
	Target   int    `json:"target" yaml:"target"`
}

// Executor is the k6 executor kind of a scenario.
type Executor string

const (
	ExecutorRampingVUs       Executor = "ramping-vus"
	ExecutorConstantVUs      Executor = "constant-vus"
	ExecutorPerVUIterations  Executor = "per-vu-iterations"
	ExecutorSharedIterations Executor = "shared-iterations"
)

// SharedIterationsMultiplier is the iterations-per-VU used for
// shared-iterations scenarios.
const SharedIterationsMultiplier = 10

// Scenario is an independently scheduled execution unit.
type Scenario struct {
	// Name is the display label; with whitespace replaced it is the exec function name
	Name string `json:"name" yaml:"name"`

	Executor Executor `json:"executor" yaml:"executor"`

	// StartTime is the offset from test start (e.g., "0s")
	StartTime string `json:"startTime" yaml:"startTime"`

	// VUs is the VU count, and the iteration basis for iteration executors
	VUs int `json:"vus" yaml:"vus"`

	Duration string `json:"duration" yaml:"duration"`

	// APIs selects requests by 1-based index, comma-separated; empty means all
	APIs string `json:"apis" yaml:"apis"`
}

// Method is a supported HTTP method.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
	MethodPatch  Method = "PATCH"
)

// HasBody reports whether requests with this method carry a payload.
func (m Method) HasBody() bool {
	switch m {
	case MethodPost, MethodPut, MethodPatch:
		return true
	}
	return false
}

// AuthType is the request authentication kind.
type AuthType string

const (
	AuthNone   AuthType = "none"
	AuthBearer AuthType = "bearer"
	AuthBasic  AuthType = "basic"
	AuthCustom AuthType = "custom"
)

// APIRequest describes one HTTP request of the test.
type APIRequest struct {
	Name   string `json:"name" yaml:"name"`
	Method Method `json:"method" yaml:"method"`

	// URL is absolute or relative to the base URL
	URL string `json:"url" yaml:"url"`

	// Body is passed through as a template literal, never parsed
	Body string `json:"body,omitempty" yaml:"body,omitempty"`

	// ThinkTime in seconds, used only in per-api think-time mode
	ThinkTime float64 `json:"thinkTime,omitempty" yaml:"thinkTime,omitempty"`

	AuthType    AuthType   `json:"authType,omitempty" yaml:"authType,omitempty"`
	BearerToken string     `json:"bearerToken,omitempty" yaml:"bearerToken,omitempty"`
	BasicAuth   *BasicAuth `json:"basicAuth,omitempty" yaml:"basicAuth,omitempty"`

	Headers    []Header   `json:"headers" yaml:"headers"`
	Checks     []Check    `json:"checks" yaml:"checks"`
	Extraction Extraction `json:"extraction" yaml:"extraction"`
}

// BasicAuth holds basic authentication credentials.
type BasicAuth struct {
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
}

// Header is a single request header; the value may hold placeholders.
type Header struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Extraction binds a value from the response body to a chained variable.
type Extraction struct {
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path is "$.a.b" style or a raw member path
	Path string `json:"path" yaml:"path"`

	VarName string `json:"varName" yaml:"varName"`
}

// Active reports whether the extraction should be emitted.
func (e Extraction) Active() bool {
	return e.Enabled && e.Path != "" && e.VarName != ""
}

// Check is a named assertion; Condition is JavaScript referencing the response as r.
type Check struct {
	Name      string `json:"name" yaml:"name"`
	Condition string `json:"condition" yaml:"condition"`
}

// ThinkTimeMode selects the pacing policy.
type ThinkTimeMode string

const (
	ThinkFixed  ThinkTimeMode = "fixed"
	ThinkRandom ThinkTimeMode = "random"
	ThinkPerAPI ThinkTimeMode = "per-api"
)

// ThinkTime is the pacing policy between iterations or requests.
type ThinkTime struct {
	Mode  ThinkTimeMode `json:"mode" yaml:"mode"`
	Fixed float64       `json:"fixed" yaml:"fixed"`
	Min   float64       `json:"min" yaml:"min"`
	Max   float64       `json:"max" yaml:"max"`
}

// Thresholds are the pass/fail criteria written into the options block.
type Thresholds struct {
	Enabled bool `json:"enabled" yaml:"enabled"`

	// P95 and P99 are latency bounds in milliseconds
	P95 int `json:"p95" yaml:"p95"`
	P99 int `json:"p99" yaml:"p99"`

	// ErrorRate is a percentage, 0-100
	ErrorRate float64 `json:"errorRate" yaml:"errorRate"`
}
