package script

import (
	"fmt"

	"github.com/wesleyorama2/k6gen/internal/config"
)

// Spike shape timings.
const (
	spikeHold  = "10s"
	spikeBurst = "30s"
)

// ScenarioMode reports whether the script runs named scenarios instead of a
// default entry point: scenarios are switched on (by flag or by the
// scenario-based load type) and at least one is declared.
func ScenarioMode(cfg *config.TestConfig) bool {
	if len(cfg.Scenarios) == 0 {
		return false
	}
	return cfg.EnableScenarios || cfg.LoadType.Normalize() == config.LoadScenarioBased
}

// BuildOptions builds the exported options object: the load shape (or the
// scenario table in scenario mode) followed by thresholds when enabled.
// cfg is expected to have its defaults applied.
func BuildOptions(cfg *config.TestConfig) *Object {
	opts := &Object{}

	if ScenarioMode(cfg) {
		opts.Props = append(opts.Props, Prop{Key: "scenarios", Value: scenarioTable(cfg.Scenarios)})
	} else {
		opts.Props = append(opts.Props, loadShape(cfg)...)
	}

	if cfg.Thresholds.Enabled {
		opts.Props = append(opts.Props, Prop{Key: "thresholds", Value: thresholds(cfg.Thresholds)})
	}
	return opts
}

// Stages returns the synthesized stages of the load type, or nil when the
// load shape is a constant VU count.
func Stages(cfg *config.TestConfig) []config.Stage {
	switch cfg.LoadType.Normalize() {
	case config.LoadStages:
		return cfg.Stages
	case config.LoadRampUp:
		return []config.Stage{
			{Duration: cfg.RampDuration, Target: cfg.TargetVUs},
			{Duration: cfg.Duration, Target: cfg.TargetVUs},
		}
	case config.LoadRampDown:
		return []config.Stage{
			{Duration: cfg.Duration, Target: cfg.VUs},
			{Duration: cfg.RampDuration, Target: 0},
		}
	case config.LoadSpike:
		return []config.Stage{
			{Duration: spikeHold, Target: cfg.VUs},
			{Duration: spikeBurst, Target: cfg.TargetVUs},
			{Duration: spikeHold, Target: cfg.VUs},
		}
	}
	return nil
}

func loadShape(cfg *config.TestConfig) []Prop {
	stages := Stages(cfg)
	if len(stages) == 0 {
		return []Prop{
			{Key: "vus", Value: Int(cfg.VUs)},
			{Key: "duration", Value: Str(cfg.Duration)},
		}
	}

	arr := Array{}
	for _, s := range stages {
		arr.Elems = append(arr.Elems, &Object{Inline: true, Props: []Prop{
			{Key: "duration", Value: Str(s.Duration)},
			{Key: "target", Value: Int(s.Target)},
		}})
	}
	return []Prop{{Key: "stages", Value: arr}}
}

// Iterations is the iteration count of an iteration-based executor, or 0
// for time-based executors.
func Iterations(sc config.Scenario) int {
	switch sc.Executor {
	case config.ExecutorPerVUIterations:
		return sc.VUs
	case config.ExecutorSharedIterations:
		return sc.VUs * config.SharedIterationsMultiplier
	}
	return 0
}

func scenarioTable(scenarios []config.Scenario) *Object {
	table := &Object{}
	for _, sc := range scenarios {
		entry := &Object{Props: []Prop{
			{Key: "executor", Value: Str(string(sc.Executor))},
			{Key: "startTime", Value: Str(sc.StartTime)},
			{Key: "vus", Value: Int(sc.VUs)},
		}}
		if n := Iterations(sc); n > 0 {
			entry.Props = append(entry.Props, Prop{Key: "iterations", Value: Int(n)})
		} else {
			entry.Props = append(entry.Props, Prop{Key: "duration", Value: Str(sc.Duration)})
		}
		entry.Props = append(entry.Props, Prop{Key: "exec", Value: Str(sc.FuncName())})

		table.Props = append(table.Props, Prop{Key: sc.Name, Value: entry})
	}
	return table
}

func thresholds(t config.Thresholds) *Object {
	return &Object{Props: []Prop{
		{Key: "http_req_duration", Value: Array{Inline: true, Elems: []Expr{
			Str(fmt.Sprintf("p(95)<%d", t.P95)),
			Str(fmt.Sprintf("p(99)<%d", t.P99)),
		}}},
		{Key: "http_req_failed", Value: Array{Inline: true, Elems: []Expr{
			Str("rate<" + formatNumber(t.ErrorRate/100)),
		}}},
	}}
}
