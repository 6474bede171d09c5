package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Documented fallbacks applied by WithDefaults.
const (
	DefaultTestName     = "Performance Test"
	DefaultVUs          = 10
	DefaultDuration     = "30s"
	DefaultRampDuration = "1m"
	DefaultRampTarget   = 50
	DefaultSpikeTarget  = 100
	DefaultStartTime    = "0s"
	DefaultP95          = 500
	DefaultP99          = 1000
	DefaultErrorRate    = 1
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// FuncName is the exported function name the scenario executes:
// every whitespace run in the name becomes an underscore.
func (s Scenario) FuncName() string {
	return whitespaceRun.ReplaceAllString(s.Name, "_")
}

// Selection resolves the scenario's API selector against n requests and
// returns zero-based indices in selector order. An empty selector selects
// every request; entries that are not numbers or are out of range are skipped.
func (s Scenario) Selection(n int) []int {
	if strings.TrimSpace(s.APIs) == "" {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all
	}

	var out []int
	for _, part := range strings.Split(s.APIs, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || idx < 1 || idx > n {
			continue
		}
		out = append(out, idx-1)
	}
	return out
}

// Default returns the configuration a new test starts from.
func Default() *TestConfig {
	return &TestConfig{
		TestName:      "",
		VUs:           DefaultVUs,
		Duration:      DefaultDuration,
		LoadType:      LoadConstant,
		ExecutionMode: ModeSequential,
		Stages:        []Stage{},
		Scenarios:     []Scenario{},
		EnvVars: EnvironmentProfiles{
			"dev":     {},
			"staging": {},
			"prod":    {},
		},
		ThinkTime: ThinkTime{
			Mode:  ThinkFixed,
			Fixed: 1,
			Min:   1,
			Max:   5,
		},
		APIs: []APIRequest{},
		Thresholds: Thresholds{
			Enabled:   true,
			P95:       DefaultP95,
			P99:       DefaultP99,
			ErrorRate: DefaultErrorRate,
		},
	}
}

// DefaultCheck is the check every new request starts with.
func DefaultCheck() Check {
	return Check{Name: "status is 200", Condition: "r.status === 200"}
}

// ExampleTemplate returns a three-request demo: a login that extracts a
// token, a profile fetch using it, and a settings update.
func ExampleTemplate() *TestConfig {
	cfg := Default()
	cfg.TestName = "DemoAPI Test"
	cfg.BaseURL = "${BASE_URL}"
	cfg.VUs = 20
	cfg.Duration = "2m"
	cfg.LoadType = LoadRampUp
	cfg.RampDuration = "1m"
	cfg.TargetVUs = 50
	cfg.ThinkTime = ThinkTime{Mode: ThinkRandom, Fixed: 1, Min: 1, Max: 3}
	cfg.EnvVars = EnvironmentProfiles{
		"dev": {
			{Key: "BASE_URL", Value: "https://dev.api.example.com"},
			{Key: "API_KEY", Value: "dev-api-key-123"},
		},
		"staging": {
			{Key: "BASE_URL", Value: "https://staging.api.example.com"},
			{Key: "API_KEY", Value: "staging-api-key-456"},
		},
		"prod": {
			{Key: "BASE_URL", Value: "https://api.example.com"},
			{Key: "API_KEY", Value: "prod-api-key-789"},
		},
	}
	cfg.APIs = []APIRequest{
		{
			Name:     "Login - Get Auth Token",
			Method:   MethodPost,
			URL:      "/auth/login",
			Body:     `{"username": "testuser", "password": "testpass"}`,
			AuthType: AuthNone,
			Headers:  []Header{},
			Checks:   []Check{DefaultCheck()},
			Extraction: Extraction{
				Enabled: true,
				Path:    "$.token",
				VarName: "authToken",
			},
		},
		{
			Name:        "Get User Profile",
			Method:      MethodGet,
			URL:         "/user/profile",
			AuthType:    AuthBearer,
			BearerToken: "${authToken}",
			Headers:     []Header{{Key: "X-API-Key", Value: "${API_KEY}"}},
			Checks:      []Check{DefaultCheck()},
		},
		{
			Name:        "Update User Settings",
			Method:      MethodPut,
			URL:         "/user/settings",
			Body:        `{"theme": "dark", "notifications": true}`,
			AuthType:    AuthBearer,
			BearerToken: "${authToken}",
			Headers:     []Header{},
			Checks:      []Check{DefaultCheck()},
		},
	}
	return cfg
}

// WithDefaults returns a copy of the configuration with empty or
// out-of-range scalar fields replaced by the documented fallbacks.
// The receiver is not modified.
func (c *TestConfig) WithDefaults() *TestConfig {
	out := *c

	if strings.TrimSpace(out.TestName) == "" {
		out.TestName = DefaultTestName
	}
	if out.VUs < 1 {
		out.VUs = DefaultVUs
	}
	if strings.TrimSpace(out.Duration) == "" {
		out.Duration = DefaultDuration
	}

	out.LoadType = out.LoadType.Normalize()
	if out.LoadType == "" {
		out.LoadType = LoadConstant
	}
	if out.ExecutionMode == "" {
		out.ExecutionMode = ModeSequential
	}
	if strings.TrimSpace(out.RampDuration) == "" {
		out.RampDuration = DefaultRampDuration
	}
	if out.TargetVUs <= 0 {
		if out.LoadType == LoadSpike {
			out.TargetVUs = DefaultSpikeTarget
		} else {
			out.TargetVUs = DefaultRampTarget
		}
	}

	if out.ThinkTime.Mode == "" {
		out.ThinkTime.Mode = ThinkFixed
	}

	if out.Thresholds.P95 <= 0 {
		out.Thresholds.P95 = DefaultP95
	}
	if out.Thresholds.P99 <= 0 {
		out.Thresholds.P99 = DefaultP99
	}
	if out.Thresholds.ErrorRate <= 0 {
		out.Thresholds.ErrorRate = DefaultErrorRate
	}

	if len(c.Scenarios) > 0 {
		out.Scenarios = make([]Scenario, len(c.Scenarios))
		for i, sc := range c.Scenarios {
			out.Scenarios[i] = scenarioDefaults(i, sc)
		}
	}

	if len(c.APIs) > 0 {
		out.APIs = make([]APIRequest, len(c.APIs))
		for i, api := range c.APIs {
			out.APIs[i] = requestDefaults(i, api)
		}
	}

	return &out
}

func scenarioDefaults(i int, sc Scenario) Scenario {
	if strings.TrimSpace(sc.Name) == "" {
		sc.Name = fmt.Sprintf("Scenario %d", i+1)
	}
	if sc.Executor == "" {
		sc.Executor = ExecutorRampingVUs
	}
	if strings.TrimSpace(sc.StartTime) == "" {
		sc.StartTime = DefaultStartTime
	}
	if sc.VUs < 1 {
		sc.VUs = DefaultVUs
	}
	if strings.TrimSpace(sc.Duration) == "" {
		sc.Duration = DefaultDuration
	}
	return sc
}

func requestDefaults(i int, api APIRequest) APIRequest {
	if strings.TrimSpace(api.Name) == "" {
		api.Name = fmt.Sprintf("API %d", i+1)
	}
	api.Method = Method(strings.ToUpper(strings.TrimSpace(string(api.Method))))
	if api.Method == "" {
		api.Method = MethodGet
	}
	if api.AuthType == "" {
		api.AuthType = AuthNone
	}
	if api.ThinkTime < 0 {
		api.ThinkTime = 0
	}
	return api
}
