package script

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wesleyorama2/k6gen/internal/config"
	"github.com/wesleyorama2/k6gen/pkg/jsonpath"
)

const baseURLPlaceholder = "${BASE_URL}"

var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// GroupLabel is the group name of the request at index.
func GroupLabel(req config.APIRequest, index int) string {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Sprintf("API %d", index+1)
	}
	return req.Name
}

// RequestURL joins the request URL onto the base URL. Absolute URLs and
// URLs that start with a placeholder are returned unchanged. The prefix is
// ${BASE_URL}, or the base URL itself when it already embeds ${BASE_URL}.
// Exactly one slash separates the two.
func RequestURL(baseURL, url string) string {
	if baseURL == "" || schemePattern.MatchString(url) || strings.HasPrefix(url, "${") {
		return url
	}

	prefix := baseURLPlaceholder
	if strings.Contains(baseURL, baseURLPlaceholder) {
		prefix = baseURL
	}
	if url == "" {
		return prefix
	}
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(url, "/")
}

// Headers builds the ordered header map of a request: the Authorization
// entry from bearer or basic auth, then the custom headers, then a JSON
// content type for methods that carry a body when none was declared.
// A repeated key keeps its first position and takes the later value.
func Headers(req config.APIRequest) []Prop {
	var props []Prop
	set := func(key string, value Expr) {
		for i := range props {
			if props[i].Key == key {
				props[i].Value = value
				return
			}
		}
		props = append(props, Prop{Key: key, Value: value, Quoted: true})
	}

	switch req.AuthType {
	case config.AuthBearer:
		if req.BearerToken != "" {
			set("Authorization", Resolve("Bearer "+req.BearerToken))
		}
	case config.AuthBasic:
		if req.BasicAuth != nil && req.BasicAuth.Username != "" {
			creds := req.BasicAuth.Username + ":" + req.BasicAuth.Password
			set("Authorization", Binary{
				Op: "+",
				X:  Str("Basic "),
				Y:  CallExpr(Member{X: Ident("encoding"), Name: "b64encode"}, Resolve(creds)),
			})
		}
	}

	for _, h := range req.Headers {
		if strings.TrimSpace(h.Key) == "" {
			continue
		}
		set(h.Key, Resolve(h.Value))
	}

	if req.Method.HasBody() && !hasHeader(props, "Content-Type") {
		set("Content-Type", Str("application/json"))
	}
	return props
}

func hasHeader(props []Prop, key string) bool {
	for _, p := range props {
		if strings.EqualFold(p.Key, key) {
			return true
		}
	}
	return false
}

// UsesBasicAuth reports whether the request emits a basic Authorization
// header, which needs k6/encoding.
func UsesBasicAuth(req config.APIRequest) bool {
	return req.AuthType == config.AuthBasic && req.BasicAuth != nil && req.BasicAuth.Username != ""
}

// CallExpr builds fn(args...).
func CallExpr(fn Expr, args ...Expr) Call {
	return Call{Fn: fn, Args: args}
}

// ExtractionValue is the expression bound by an extraction. A path rooted
// at "$" becomes a gjson selector for res.json(); any other path is read
// as a member path on the parsed body.
func ExtractionValue(path string) Expr {
	res := Ident("res")
	if strings.HasPrefix(path, "$") {
		sel := jsonpath.ToSelector(path)
		if sel == jsonpath.RootSelector {
			return CallExpr(Member{X: res, Name: "json"})
		}
		return CallExpr(Member{X: res, Name: "json"}, Str(sel))
	}
	return Member{X: CallExpr(Member{X: res, Name: "json"}), Name: path}
}

// EmitRequest emits the group block for one request. index is the request's
// position in the configuration; baseURL is the configured base URL; the
// think-time policy decides whether a per-request sleep is appended.
func EmitRequest(req config.APIRequest, index int, baseURL string, tt config.ThinkTime) []Stmt {
	method := config.Method(strings.ToUpper(string(req.Method)))
	if method == "" {
		method = config.MethodGet
	}
	req.Method = method

	var body []Stmt
	body = append(body,
		Const("params", &Object{Props: []Prop{
			{Key: "headers", Value: &Object{Props: Headers(req)}},
		}}),
		Blank{},
	)

	url := Resolve(RequestURL(baseURL, req.URL))
	fn := Member{X: Ident("http"), Name: httpFunc(method)}
	if method.HasBody() {
		body = append(body,
			Const("payload", ResolveTemplate(req.Body)),
			Const("res", CallExpr(fn, url, Ident("payload"), Ident("params"))),
		)
	} else if method == config.MethodDelete {
		body = append(body, Const("res", CallExpr(fn, url, Raw("null"), Ident("params"))))
	} else {
		body = append(body, Const("res", CallExpr(fn, url, Ident("params"))))
	}

	if req.Extraction.Active() {
		target := Member{X: Ident(ChainStore), Name: req.Extraction.VarName}
		body = append(body,
			Blank{},
			Comment("Extract data for request chaining"),
			If{
				Cond: Binary{
					Op: "||",
					X:  Binary{Op: "===", X: Member{X: Ident("res"), Name: "status"}, Y: Int(200)},
					Y:  Binary{Op: "===", X: Member{X: Ident("res"), Name: "status"}, Y: Int(201)},
				},
				Then: []Stmt{
					Assign{Target: target, Value: ExtractionValue(req.Extraction.Path)},
					CallStmt(Member{X: Ident("console"), Name: "log"},
						Str("Extracted "+req.Extraction.VarName+":"), target),
				},
			},
		)
	}

	if checks := checkProps(req.Checks); len(checks) > 0 {
		body = append(body,
			Blank{},
			CallStmt(Ident("check"), Ident("res"), &Object{Props: checks}),
		)
	}

	if tt.Mode == config.ThinkPerAPI && req.ThinkTime > 0 {
		body = append(body, CallStmt(Ident("sleep"), Float(req.ThinkTime)))
	}

	return []Stmt{
		CallStmt(Ident("group"), Str(GroupLabel(req, index)), FuncExpr{Body: body}),
	}
}

// RenderRequest prints EmitRequest's output indented by level steps.
func RenderRequest(req config.APIRequest, index int, baseURL string, tt config.ThinkTime, level int) string {
	return RenderAt(EmitRequest(req, index, baseURL, tt), level)
}

// checkProps maps checks to name: (r) => condition. Checks with a blank
// name or condition are skipped.
func checkProps(checks []config.Check) []Prop {
	var props []Prop
	for _, c := range checks {
		if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Condition) == "" {
			continue
		}
		props = append(props, Prop{
			Key:    c.Name,
			Value:  Arrow{Params: []string{"r"}, Body: Raw(c.Condition)},
			Quoted: true,
		})
	}
	return props
}

// httpFunc is the k6/http function for a method; DELETE is http.del.
func httpFunc(m config.Method) string {
	if m == config.MethodDelete {
		return "del"
	}
	return strings.ToLower(string(m))
}
