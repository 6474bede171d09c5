package script

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/wesleyorama2/k6gen/internal/config"
)

// DefaultScriptName is the file name used in the generated run hint.
const DefaultScriptName = "script.js"

// Options controls a compile pass.
type Options struct {
	// Profile selects the environment profile; empty means config.DefaultProfile
	Profile string
	// GeneratedAt is printed in the header; the zero time omits the date line
	GeneratedAt time.Time
	// ScriptName is used in the "k6 run" hint; defaults to script.js
	ScriptName string
}

// Compile renders cfg as a k6 script. It never fails: missing fields take
// their documented defaults and an empty request list yields a script whose
// entry point only carries a comment. Compile is a pure function of its
// arguments.
func Compile(cfg *config.TestConfig, opts Options) string {
	return Render(Assemble(cfg, opts))
}

// Assemble builds the statement list Compile renders.
func Assemble(cfg *config.TestConfig, opts Options) []Stmt {
	if cfg == nil {
		cfg = &config.TestConfig{}
	}
	cfg = cfg.WithDefaults()

	profile := opts.Profile
	if profile == "" {
		profile = config.DefaultProfile
	}
	scriptName := opts.ScriptName
	if scriptName == "" {
		scriptName = DefaultScriptName
	}

	a := &assembler{cfg: cfg}

	a.header(opts.GeneratedAt)
	a.imports()
	a.environment(profile, scriptName)
	a.baseURL(profile)
	a.chainStore()

	a.emit(Decl{Kind: "const", Name: "options", Value: BuildOptions(cfg), Export: true}, Blank{})

	if ScenarioMode(cfg) {
		a.scenarioFuncs()
	} else {
		if cfg.ExecutionMode == config.ModeParallel {
			a.helperFuncs()
		}
		a.defaultFunc()
	}

	return a.out
}

type assembler struct {
	cfg *config.TestConfig
	out []Stmt
}

func (a *assembler) emit(stmts ...Stmt) {
	a.out = append(a.out, stmts...)
}

func (a *assembler) header(at time.Time) {
	lines := []string{a.cfg.TestName, "Generated by k6gen"}
	if !at.IsZero() {
		lines = append(lines, "Date: "+at.Format(time.RFC3339))
	}
	a.emit(BlockComment{Lines: lines}, Blank{})

	if len(a.cfg.APIs) == 0 {
		a.emit(BlockComment{Doc: true, Lines: []string{
			"WARNING: No API requests configured!",
			"Add at least one API request to generate a useful k6 script.",
		}}, Blank{})
	}
}

func (a *assembler) imports() {
	a.emit(
		Import{Default: "http", From: "k6/http"},
		Import{Names: []string{"check", "group", "sleep"}, From: "k6"},
	)
	for _, api := range a.cfg.APIs {
		if UsesBasicAuth(api) {
			a.emit(Import{Default: "encoding", From: "k6/encoding"})
			break
		}
	}
	a.emit(Blank{})
}

// environment declares one overridable constant per profile variable.
func (a *assembler) environment(profile, scriptName string) {
	vars := a.cfg.EnvVars.Vars(profile)
	if len(vars) == 0 {
		return
	}

	var hint strings.Builder
	hint.WriteString("Run with: k6 run " + scriptName)
	for _, v := range vars {
		fmt.Fprintf(&hint, " -e %s=%q", v.Key, v.Value)
	}

	a.emit(
		Comment(fmt.Sprintf("Environment Variables (Profile: %s)", profile)),
		Comment(hint.String()),
	)
	for _, v := range vars {
		a.emit(Const(v.Key, Binary{
			Op: "||",
			X:  Member{X: Ident("__ENV"), Name: v.Key},
			Y:  Str(v.Value),
		}))
	}
	a.emit(Blank{})
}

// baseURL declares BASE_URL unless the profile or the base URL itself
// already supplies it.
func (a *assembler) baseURL(profile string) {
	if !declaresBaseURL(a.cfg, profile) {
		return
	}
	a.emit(Const("BASE_URL", Resolve(a.cfg.BaseURL)), Blank{})
}

func declaresBaseURL(cfg *config.TestConfig, profile string) bool {
	base := cfg.BaseURL
	return base != "" && !cfg.EnvVars.Has(profile, "BASE_URL") && !strings.Contains(base, baseURLPlaceholder)
}

// UndeclaredEnv lists the environment placeholders the script compiled for
// profile would reference without declaring, in order of first use. k6
// fails such a script with a ReferenceError.
func UndeclaredEnv(cfg *config.TestConfig, profile string) []string {
	if cfg == nil {
		return nil
	}

	declared := make(map[string]bool)
	for _, v := range cfg.EnvVars.Vars(profile) {
		declared[v.Key] = true
	}

	var values []string
	if declaresBaseURL(cfg, profile) {
		declared["BASE_URL"] = true
		values = append(values, cfg.BaseURL)
	}
	for _, api := range cfg.APIs {
		values = append(values, RequestURL(cfg.BaseURL, api.URL), api.Body)
		switch api.AuthType {
		case config.AuthBearer:
			values = append(values, api.BearerToken)
		case config.AuthBasic:
			if api.BasicAuth != nil {
				values = append(values, api.BasicAuth.Username, api.BasicAuth.Password)
			}
		}
		for _, h := range api.Headers {
			values = append(values, h.Value)
		}
	}

	var missing []string
	for _, value := range values {
		for _, name := range Placeholders(value) {
			if IsEnvName(name) && !declared[name] {
				declared[name] = true
				missing = append(missing, name)
			}
		}
	}
	return missing
}

func (a *assembler) chainStore() {
	for _, api := range a.cfg.APIs {
		if api.Extraction.Active() {
			a.emit(
				Comment("Variables for request chaining"),
				Decl{Kind: "let", Name: ChainStore, Value: &Object{}},
				Blank{},
			)
			return
		}
	}
}

func (a *assembler) request(i int) []Stmt {
	return EmitRequest(a.cfg.APIs[i], i, a.cfg.BaseURL, a.cfg.ThinkTime)
}

// requests emits the given requests separated by blank lines.
func (a *assembler) requests(indices []int) []Stmt {
	var body []Stmt
	for n, i := range indices {
		if n > 0 {
			body = append(body, Blank{})
		}
		body = append(body, a.request(i)...)
	}
	return body
}

func (a *assembler) scenarioFuncs() {
	for _, sc := range a.cfg.Scenarios {
		body := a.requests(sc.Selection(len(a.cfg.APIs)))
		if len(body) == 0 {
			body = []Stmt{Comment("No APIs selected for this scenario")}
		}
		a.emit(Func{Name: sc.FuncName(), Export: true, Body: body}, Blank{})
	}
}

// helperFuncs emits api0, api1, ... for the parallel entry point.
func (a *assembler) helperFuncs() {
	for i := range a.cfg.APIs {
		a.emit(Func{Name: helperName(i), Body: a.request(i)}, Blank{})
	}
}

func helperName(i int) string {
	return fmt.Sprintf("api%d", i)
}

func (a *assembler) defaultFunc() {
	n := len(a.cfg.APIs)
	var body []Stmt

	switch {
	case n == 0:
		body = append(body, Comment("No APIs configured"))

	case a.cfg.ExecutionMode == config.ModeParallel:
		body = append(body, Comment("Parallel execution - every API helper runs each iteration"))
		for i := 0; i < n; i++ {
			body = append(body, CallStmt(Ident(helperName(i))))
		}

	case a.cfg.ExecutionMode == config.ModeRandom:
		sw := Switch{Tag: Ident("apiIndex")}
		for i := 0; i < n; i++ {
			sw.Cases = append(sw.Cases, Case{Value: Int(i), Body: a.request(i)})
		}
		body = append(body,
			Comment("Randomized execution - pick one API per iteration"),
			Const("apiIndex", CallExpr(
				Member{X: Ident("Math"), Name: "floor"},
				Binary{Op: "*", X: CallExpr(Member{X: Ident("Math"), Name: "random"}), Y: Int(n)},
			)),
			sw,
		)

	default:
		body = append(body, a.requests(allIndices(n))...)
	}

	if pause := ThinkTimeStmt(a.cfg.ThinkTime); pause != nil {
		body = append(body, Blank{}, pause)
	}

	a.emit(Func{Default: true, Export: true, Body: body})
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// ThinkTimeStmt is the iteration-level pause of a think-time policy, or nil
// when the policy pauses per request or not at all.
func ThinkTimeStmt(tt config.ThinkTime) Stmt {
	switch tt.Mode {
	case config.ThinkFixed, "":
		if tt.Fixed <= 0 {
			return nil
		}
		return CallStmt(Ident("sleep"), Float(tt.Fixed))

	case config.ThinkRandom:
		if tt.Max <= tt.Min {
			if tt.Min <= 0 {
				return nil
			}
			return CallStmt(Ident("sleep"), Float(tt.Min))
		}
		spread := math.Round((tt.Max-tt.Min)*1e6) / 1e6
		return CallStmt(Ident("sleep"), Binary{
			Op: "+",
			X:  Float(tt.Min),
			Y:  Binary{Op: "*", X: CallExpr(Member{X: Ident("Math"), Name: "random"}), Y: Float(spread)},
		})
	}
	return nil
}
