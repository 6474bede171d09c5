package script

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// ChainStore is the script-level object that holds extracted values.
const ChainStore = "extractedVars"

var placeholderPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// IsEnvName reports whether a placeholder name refers to an environment
// constant. Names starting with an upper-case letter or an underscore do;
// everything else is a chained variable.
func IsEnvName(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return r == '_' || unicode.IsUpper(r)
}

// Reference returns the expression a placeholder name stands for: a bare
// constant for environment names, extractedVars.<name> otherwise.
func Reference(name string) Expr {
	if IsEnvName(name) {
		return Ident(name)
	}
	return Member{X: Ident(ChainStore), Name: name}
}

// Resolve turns a configured value into an expression. A value without
// placeholders is a quoted literal; otherwise every ${name} is rewritten
// through Reference inside a template literal and the text around it is
// kept verbatim.
func Resolve(value string) Expr {
	t, ok := resolveTemplate(value)
	if !ok {
		return Str(value)
	}
	return t
}

// ResolveTemplate is Resolve, but always yields a template literal.
// Request bodies use it so payloads read the same with or without
// placeholders.
func ResolveTemplate(value string) Template {
	if t, ok := resolveTemplate(value); ok {
		return t
	}
	if value == "" {
		return Template{}
	}
	return Template{Parts: []TemplatePart{{Text: value}}}
}

// Placeholders lists the distinct placeholder names in value, in order of
// first appearance.
func Placeholders(value string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range placeholderPattern.FindAllStringSubmatch(value, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

func resolveTemplate(value string) (Template, bool) {
	matches := placeholderPattern.FindAllStringSubmatchIndex(value, -1)
	if len(matches) == 0 {
		return Template{}, false
	}

	var parts []TemplatePart
	last := 0
	for _, m := range matches {
		if m[0] > last {
			parts = append(parts, TemplatePart{Text: value[last:m[0]]})
		}
		parts = append(parts, TemplatePart{Expr: Reference(value[m[2]:m[3]])})
		last = m[1]
	}
	if last < len(value) {
		parts = append(parts, TemplatePart{Text: value[last:]})
	}
	return Template{Parts: parts}, true
}
