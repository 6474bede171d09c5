package curl

import (
	"regexp"
	"strings"
)

// quoted matches a single- or double-quoted argument. Double-quoted
// arguments may contain backslash escapes.
const quoted = `(?:'([^']*)'|"((?:[^"\\]|\\.)*)")`

var (
	continuation   = regexp.MustCompile(`\\\r?\n`)
	commandPrefix  = regexp.MustCompile(`^curl(?:\s|$)`)
	methodFlag     = regexp.MustCompile(`(?i)(?:^|\s)(?:--request|-X)\s*['"]?(GET|POST|PUT|DELETE|PATCH)\b`)
	quotedArg      = regexp.MustCompile(quoted)
	headerFlag     = regexp.MustCompile(`(?:^|\s)(?:--header|-H)\s+` + quoted)
	userFlag       = regexp.MustCompile(`(?:^|\s)(?:--user|-u)\s+(?:` + quoted + `|(\S+))`)
	rawDataFlag    = regexp.MustCompile(`(?:^|\s)--data-raw\s+(?:` + quoted + `|(\S+))`)
	dataFlag       = regexp.MustCompile(`(?:^|\s)(?:--data-binary|--data|-d)\s+(?:` + quoted + `|(\S+))`)
	formFlag       = regexp.MustCompile(`(?:^|\s)(?:--form|-F)\s+(?:` + quoted + `|(\S+))`)
	shellUnescaper = strings.NewReplacer(`\"`, `"`, `\\`, `\`, "\\`", "`", `\$`, `$`)
)

// Parse extracts a request from a curl command with regular expressions.
//
// The scan is heuristic: it does not expand shell variables or handle
// nested quoting, and beyond folding backslash-newline continuations it
// takes the text as written. Flags it cannot read are ignored.
func Parse(text string) (*Request, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	s := strings.TrimSpace(continuation.ReplaceAllString(text, " "))
	if !commandPrefix.MatchString(s) {
		return nil, ErrNotCurl
	}

	b := newBuilder()

	if m := methodFlag.FindStringSubmatch(s); m != nil {
		b.setMethod(m[1])
	}

	b.req.URL = findURL(s)

	// Values may span lines, so they are read from the original text.
	for _, m := range headerFlag.FindAllStringSubmatch(text, -1) {
		b.addHeader(argValue(m[1:]))
	}

	if m := userFlag.FindStringSubmatch(text); m != nil {
		b.setUser(argValue(m[1:]))
	}

	if m := rawDataFlag.FindStringSubmatch(text); m != nil {
		b.setRawBody(argValue(m[1:]))
	} else if m := dataFlag.FindStringSubmatch(text); m != nil {
		b.setDataBody(argValue(m[1:]))
	}

	for _, m := range formFlag.FindAllStringSubmatch(text, -1) {
		b.addFormField(argValue(m[1:]))
	}

	return b.finish(), nil
}

// findURL picks the first quoted argument that starts with http, then the
// first quoted argument, then the first bare word that starts with http.
func findURL(s string) string {
	var args []string
	for _, m := range quotedArg.FindAllStringSubmatch(s, -1) {
		if v := argValue(m[1:]); v != "" {
			args = append(args, v)
		}
	}

	if len(args) > 0 {
		for _, a := range args {
			if strings.HasPrefix(a, "http") {
				return a
			}
		}
		return args[0]
	}

	for _, word := range strings.Fields(s) {
		if strings.HasPrefix(word, "http") {
			return strings.NewReplacer(`'`, "", `"`, "").Replace(word)
		}
	}
	return ""
}

// argValue returns the matched alternative of a quoted-or-bare capture:
// groups are single-quoted, double-quoted, then an optional bare word.
func argValue(groups []string) string {
	if len(groups) > 0 && groups[0] != "" {
		return groups[0]
	}
	if len(groups) > 1 && groups[1] != "" {
		return shellUnescaper.Replace(groups[1])
	}
	if len(groups) > 2 {
		return groups[2]
	}
	return ""
}
