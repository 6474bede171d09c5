package curl

import (
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
)

// valueFlags are curl options that take an argument this package ignores.
// Their argument is skipped so it is not mistaken for the URL.
var valueFlags = map[string]bool{
	"-o": true, "--output": true,
	"-A": true, "--user-agent": true,
	"-b": true, "--cookie": true,
	"-c": true, "--cookie-jar": true,
	"-e": true, "--referer": true,
	"-m": true, "--max-time": true,
	"-x": true, "--proxy": true,
	"-w": true, "--write-out": true,
	"--connect-timeout": true,
	"--retry":           true,
	"--cacert":          true,
	"--cert":            true,
	"--key":             true,
}

// ParseStrict extracts a request from a curl command split by a POSIX
// shell lexer. It reads the same flags as Parse and returns the same
// shape, but quoting is interpreted exactly and the URL is taken from the
// positional arguments only. Unbalanced quotes yield ErrMalformed.
func ParseStrict(text string) (*Request, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	words, err := shellquote.Split(continuation.ReplaceAllString(text, " "))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(words) == 0 || words[0] != "curl" {
		return nil, ErrNotCurl
	}

	b := newBuilder()
	var urls []string

	args := words[1:]
	for i := 0; i < len(args); i++ {
		word := args[i]
		next := func() (string, bool) {
			if i+1 >= len(args) {
				return "", false
			}
			i++
			return args[i], true
		}

		flag, attached := splitFlag(word)
		switch flag {
		case "-X", "--request":
			if v, ok := flagValue(attached, next); ok {
				b.setMethod(v)
			}
		case "-H", "--header":
			if v, ok := flagValue(attached, next); ok {
				b.addHeader(v)
			}
		case "-u", "--user":
			if v, ok := flagValue(attached, next); ok {
				b.setUser(v)
			}
		case "--data-raw":
			if v, ok := flagValue(attached, next); ok {
				b.setRawBody(v)
			}
		case "-d", "--data", "--data-binary":
			if v, ok := flagValue(attached, next); ok {
				b.setDataBody(v)
			}
		case "-F", "--form":
			if v, ok := flagValue(attached, next); ok {
				b.addFormField(v)
			}
		case "--url":
			if v, ok := flagValue(attached, next); ok {
				urls = append(urls, v)
			}
		default:
			switch {
			case valueFlags[flag]:
				if attached == "" {
					next()
				}
			case strings.HasPrefix(word, "-"):
			default:
				urls = append(urls, word)
			}
		}
	}

	b.req.URL = pickURL(urls)
	return b.finish(), nil
}

// splitFlag separates "--flag=value" and short "-Xvalue" forms.
func splitFlag(word string) (flag, attached string) {
	if strings.HasPrefix(word, "--") {
		if k, v, ok := strings.Cut(word, "="); ok {
			return k, v
		}
		return word, ""
	}
	if len(word) > 2 && word[0] == '-' {
		return word[:2], word[2:]
	}
	return word, ""
}

func flagValue(attached string, next func() (string, bool)) (string, bool) {
	if attached != "" {
		return attached, true
	}
	return next()
}

func pickURL(candidates []string) string {
	for _, u := range candidates {
		if strings.HasPrefix(u, "http") {
			return u
		}
	}
	if len(candidates) > 0 {
		return candidates[0]
	}
	return ""
}
