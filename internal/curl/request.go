// Package curl imports captured curl commands as API requests.
//
// Parse is a best-effort regular-expression scan that tolerates partial or
// oddly quoted commands. ParseStrict lexes the command the way a POSIX shell
// would and reads the same flags; it rejects input with unbalanced quotes.
// Both return the same Request shape.
package curl

import (
	"errors"
	"strings"

	"github.com/wesleyorama2/k6gen/internal/config"
)

var (
	// ErrEmptyInput is returned for blank input.
	ErrEmptyInput = errors.New("empty cURL input")
	// ErrNotCurl is returned when the text does not start with curl.
	ErrNotCurl = errors.New("not a cURL command")
	// ErrMalformed is returned by ParseStrict when the command cannot be lexed.
	ErrMalformed = errors.New("malformed cURL command")
)

// ImportedName is the name given to imported requests.
const ImportedName = "Imported from cURL"

// Content types synthesized for form fields.
const (
	FormURLEncoded = "application/x-www-form-urlencoded"
	MultipartForm  = "multipart/form-data"
)

// FormField is one -F/--form entry. IsFile is set for the first @-prefixed
// value and every field after it.
type FormField struct {
	Key    string
	Value  string
	IsFile bool
}

// Form describes the form fields of a command.
type Form struct {
	Entries []FormField
	HasFile bool
}

// Request is the result of parsing a curl command.
type Request struct {
	Method    config.Method
	URL       string
	Headers   []config.Header
	Body      string
	BasicAuth *config.BasicAuth
	Form      *Form
}

// HasHeader reports whether a header with the given key exists, ignoring case.
func (r *Request) HasHeader(key string) bool {
	for _, h := range r.Headers {
		if strings.EqualFold(h.Key, key) {
			return true
		}
	}
	return false
}

// APIRequest maps the parsed command onto a new API request with the
// default status check. A file-bearing form gets a multipart content type
// when the command declared none.
func (r *Request) APIRequest() config.APIRequest {
	api := config.APIRequest{
		Name:     ImportedName,
		Method:   r.Method,
		URL:      r.URL,
		Body:     r.Body,
		AuthType: config.AuthNone,
		Headers:  append([]config.Header{}, r.Headers...),
		Checks:   []config.Check{config.DefaultCheck()},
	}

	if r.BasicAuth != nil {
		auth := *r.BasicAuth
		api.AuthType = config.AuthBasic
		api.BasicAuth = &auth
	}

	if r.Form != nil && r.Form.HasFile && !r.HasHeader("Content-Type") {
		api.Headers = append(api.Headers, config.Header{Key: "Content-Type", Value: MultipartForm})
	}
	return api
}

// builder collects flag values; both parsers feed it and share finish.
type builder struct {
	req      Request
	fields   []FormField
	hasFile  bool
	hasForm  bool
	rawBody  *string
	dataBody *string
}

func newBuilder() *builder {
	return &builder{req: Request{Method: config.MethodGet}}
}

func (b *builder) setMethod(m string) {
	switch method := config.Method(strings.ToUpper(m)); method {
	case config.MethodGet, config.MethodPost, config.MethodPut, config.MethodDelete, config.MethodPatch:
		b.req.Method = method
	}
}

func (b *builder) addHeader(raw string) {
	key, value, ok := strings.Cut(raw, ":")
	if !ok {
		return
	}
	b.req.Headers = append(b.req.Headers, config.Header{
		Key:   strings.TrimSpace(key),
		Value: strings.TrimSpace(value),
	})
}

func (b *builder) setUser(raw string) {
	if b.req.BasicAuth != nil {
		return
	}
	user, pass, ok := strings.Cut(raw, ":")
	if !ok {
		return
	}
	b.req.BasicAuth = &config.BasicAuth{Username: user, Password: pass}
}

func (b *builder) setRawBody(v string) {
	if b.rawBody == nil {
		b.rawBody = &v
	}
}

func (b *builder) setDataBody(v string) {
	if b.dataBody == nil {
		b.dataBody = &v
	}
}

func (b *builder) addFormField(raw string) {
	b.hasForm = true
	key, value, ok := strings.Cut(raw, "=")
	if !ok {
		return
	}
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "@") {
		b.hasFile = true
		value = value[1:]
	}
	if n := len(value); n >= 2 && (value[0] == '"' || value[0] == '\'') && value[n-1] == value[0] {
		value = value[1 : n-1]
	}
	b.fields = append(b.fields, FormField{Key: strings.TrimSpace(key), Value: value, IsFile: b.hasFile})
}

func (b *builder) finish() *Request {
	req := b.req
	switch {
	case b.rawBody != nil:
		req.Body = strings.TrimSpace(*b.rawBody)
	case b.dataBody != nil:
		req.Body = strings.TrimSpace(*b.dataBody)
	}

	if !b.hasForm {
		return &req
	}
	req.Form = &Form{Entries: b.fields, HasFile: b.hasFile}

	if req.Body != "" || len(b.fields) == 0 {
		return &req
	}

	parts := make([]string, 0, len(b.fields))
	if !b.hasFile {
		for _, f := range b.fields {
			parts = append(parts, EncodeURIComponent(f.Key)+"="+EncodeURIComponent(f.Value))
		}
		req.Body = strings.Join(parts, "&")
		if !req.HasHeader("Content-Type") {
			req.Headers = append(req.Headers, config.Header{Key: "Content-Type", Value: FormURLEncoded})
		}
		return &req
	}

	for _, f := range b.fields {
		if f.IsFile {
			parts = append(parts, f.Key+"=@"+f.Value)
		} else {
			parts = append(parts, f.Key+"="+f.Value)
		}
	}
	req.Body = strings.Join(parts, "&")
	if !req.HasHeader("Content-Type") {
		req.Headers = append(req.Headers, config.Header{Key: "Content-Type", Value: MultipartForm})
	}
	return &req
}
