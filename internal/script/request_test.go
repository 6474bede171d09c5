package script

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wesleyorama2/k6gen/internal/config"
)

func TestRequestURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		url     string
		want    string
	}{
		{name: "no base URL", baseURL: "", url: "/users", want: "/users"},
		{name: "leading slash", baseURL: "https://api.example.com", url: "/users", want: "${BASE_URL}/users"},
		{name: "no leading slash", baseURL: "https://api.example.com", url: "users", want: "${BASE_URL}/users"},
		{name: "absolute https", baseURL: "https://api.example.com", url: "https://other.example.com/x", want: "https://other.example.com/x"},
		{name: "other scheme", baseURL: "https://api.example.com", url: "ws://host/socket", want: "ws://host/socket"},
		{name: "starts with placeholder", baseURL: "https://api.example.com", url: "${AUTH_HOST}/token", want: "${AUTH_HOST}/token"},
		{name: "placeholder base URL", baseURL: "${BASE_URL}", url: "/users", want: "${BASE_URL}/users"},
		{name: "base URL embeds placeholder", baseURL: "${BASE_URL}/v2/", url: "/users", want: "${BASE_URL}/v2/users"},
		{name: "empty path", baseURL: "https://api.example.com", url: "", want: "${BASE_URL}"},
		{name: "path that looks like http", baseURL: "https://api.example.com", url: "httpbin/get", want: "${BASE_URL}/httpbin/get"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RequestURL(tt.baseURL, tt.url))
		})
	}
}

func headerText(props []Prop) []string {
	var out []string
	for _, p := range props {
		out = append(out, p.Key+"="+renderExpr(p.Value))
	}
	return out
}

func TestHeaders(t *testing.T) {
	tests := []struct {
		name string
		req  config.APIRequest
		want []string
	}{
		{
			name: "get without auth",
			req:  config.APIRequest{Method: config.MethodGet},
			want: nil,
		},
		{
			name: "post adds content type",
			req:  config.APIRequest{Method: config.MethodPost},
			want: []string{"Content-Type='application/json'"},
		},
		{
			name: "declared content type wins regardless of case",
			req: config.APIRequest{
				Method:  config.MethodPatch,
				Headers: []config.Header{{Key: "content-type", Value: "text/plain"}},
			},
			want: []string{"content-type='text/plain'"},
		},
		{
			name: "bearer first then custom headers",
			req: config.APIRequest{
				Method:      config.MethodGet,
				AuthType:    config.AuthBearer,
				BearerToken: "${authToken}",
				Headers: []config.Header{
					{Key: "X-API-Key", Value: "${API_KEY}"},
					{Key: "Accept", Value: "application/json"},
				},
			},
			want: []string{
				"Authorization=`Bearer ${extractedVars.authToken}`",
				"X-API-Key=`${API_KEY}`",
				"Accept='application/json'",
			},
		},
		{
			name: "literal bearer token",
			req:  config.APIRequest{Method: config.MethodGet, AuthType: config.AuthBearer, BearerToken: "abc"},
			want: []string{"Authorization='Bearer abc'"},
		},
		{
			name: "duplicate key keeps position and takes later value",
			req: config.APIRequest{
				Method: config.MethodDelete,
				Headers: []config.Header{
					{Key: "X-A", Value: "1"},
					{Key: "X-B", Value: "2"},
					{Key: "X-A", Value: "3"},
					{Key: " ", Value: "dropped"},
				},
			},
			want: []string{"X-A='3'", "X-B='2'"},
		},
		{
			name: "custom Authorization overrides bearer",
			req: config.APIRequest{
				Method:      config.MethodGet,
				AuthType:    config.AuthBearer,
				BearerToken: "abc",
				Headers:     []config.Header{{Key: "Authorization", Value: "Token ${API_TOKEN}"}},
			},
			want: []string{"Authorization=`Token ${API_TOKEN}`"},
		},
		{
			name: "basic auth",
			req: config.APIRequest{
				Method:    config.MethodGet,
				AuthType:  config.AuthBasic,
				BasicAuth: &config.BasicAuth{Username: "admin", Password: "${ADMIN_PASSWORD}"},
			},
			want: []string{"Authorization='Basic ' + encoding.b64encode(`admin:${ADMIN_PASSWORD}`)"},
		},
		{
			name: "custom auth adds nothing",
			req:  config.APIRequest{Method: config.MethodGet, AuthType: config.AuthCustom, BearerToken: "ignored"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, headerText(Headers(tt.req)))
		})
	}
}

func TestRenderRequest_Post(t *testing.T) {
	req := config.APIRequest{
		Name:      "Login",
		Method:    config.MethodPost,
		URL:       "/auth/login",
		Body:      `{"user": "${USERNAME}", "pass": "p"}`,
		ThinkTime: 2,
		Headers:   []config.Header{{Key: "X-Trace", Value: "${traceId}"}},
		Checks:    []config.Check{config.DefaultCheck()},
		Extraction: config.Extraction{
			Enabled: true,
			Path:    "$.data.token",
			VarName: "authToken",
		},
	}

	want := "  group('Login', function () {\n" +
		"    const params = {\n" +
		"      headers: {\n" +
		"        'X-Trace': `${extractedVars.traceId}`,\n" +
		"        'Content-Type': 'application/json',\n" +
		"      },\n" +
		"    };\n" +
		"\n" +
		"    const payload = `{\"user\": \"${USERNAME}\", \"pass\": \"p\"}`;\n" +
		"    const res = http.post(`${BASE_URL}/auth/login`, payload, params);\n" +
		"\n" +
		"    // Extract data for request chaining\n" +
		"    if (res.status === 200 || res.status === 201) {\n" +
		"      extractedVars.authToken = res.json('data.token');\n" +
		"      console.log('Extracted authToken:', extractedVars.authToken);\n" +
		"    }\n" +
		"\n" +
		"    check(res, {\n" +
		"      'status is 200': (r) => r.status === 200,\n" +
		"    });\n" +
		"    sleep(2);\n" +
		"  });\n"

	got := RenderRequest(req, 0, "https://api.example.com", config.ThinkTime{Mode: config.ThinkPerAPI}, 1)
	assert.Equal(t, want, got)
}

func TestRenderRequest_GetWithoutExtras(t *testing.T) {
	req := config.APIRequest{Method: "get", URL: "https://api.example.com/health"}

	want := "group('API 3', function () {\n" +
		"  const params = {\n" +
		"    headers: {},\n" +
		"  };\n" +
		"\n" +
		"  const res = http.get('https://api.example.com/health', params);\n" +
		"});\n"

	got := RenderRequest(req, 2, "", config.ThinkTime{Mode: config.ThinkFixed, Fixed: 1}, 0)
	assert.Equal(t, want, got)
}

func TestRenderRequest_Delete(t *testing.T) {
	req := config.APIRequest{Name: "Remove", Method: config.MethodDelete, URL: "/users/${userId}"}

	got := RenderRequest(req, 0, "https://api.example.com", config.ThinkTime{}, 0)
	assert.Contains(t, got, "const res = http.del(`${BASE_URL}/users/${extractedVars.userId}`, null, params);\n")
	assert.NotContains(t, got, "payload")
	assert.NotContains(t, got, "Content-Type")
}

func TestRenderRequest_BodyMethods(t *testing.T) {
	for _, m := range []config.Method{config.MethodPost, config.MethodPut, config.MethodPatch} {
		t.Run(string(m), func(t *testing.T) {
			req := config.APIRequest{Name: "write", Method: m, URL: "/items", Body: "a`b\\c"}
			got := RenderRequest(req, 0, "", config.ThinkTime{}, 0)
			assert.Contains(t, got, "const payload = `a\\`b\\\\c`;\n")
			assert.Contains(t, got, "http."+strings.ToLower(string(m))+"('/items', payload, params);\n")
		})
	}
}

func TestRenderRequest_Extraction(t *testing.T) {
	tests := []struct {
		name       string
		extraction config.Extraction
		want       string
	}{
		{
			name:       "root selector path",
			extraction: config.Extraction{Enabled: true, Path: "$.items[0].id", VarName: "itemId"},
			want:       "extractedVars.itemId = res.json('items.0.id');",
		},
		{
			name:       "whole document",
			extraction: config.Extraction{Enabled: true, Path: "$", VarName: "body"},
			want:       "extractedVars.body = res.json();",
		},
		{
			name:       "root index path",
			extraction: config.Extraction{Enabled: true, Path: "$[0].id", VarName: "firstId"},
			want:       "extractedVars.firstId = res.json('0.id');",
		},
		{
			name:       "member path",
			extraction: config.Extraction{Enabled: true, Path: "data.user.id", VarName: "userId"},
			want:       "extractedVars.userId = res.json().data.user.id;",
		},
		{
			name:       "indexed member path",
			extraction: config.Extraction{Enabled: true, Path: "[0].id", VarName: "firstId"},
			want:       "extractedVars.firstId = res.json()[0].id;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := config.APIRequest{Name: "x", Method: config.MethodGet, URL: "/x", Extraction: tt.extraction}
			got := RenderRequest(req, 0, "", config.ThinkTime{}, 0)
			assert.Contains(t, got, tt.want)
		})
	}

	inactive := []config.Extraction{
		{Enabled: false, Path: "$.id", VarName: "id"},
		{Enabled: true, Path: "", VarName: "id"},
		{Enabled: true, Path: "$.id", VarName: ""},
	}
	for _, ex := range inactive {
		req := config.APIRequest{Name: "x", Method: config.MethodGet, URL: "/x", Extraction: ex}
		assert.NotContains(t, RenderRequest(req, 0, "", config.ThinkTime{}, 0), "res.status === 200")
	}
}

func TestRenderRequest_ChecksAndThinkTime(t *testing.T) {
	req := config.APIRequest{
		Name:      "Checked",
		Method:    config.MethodGet,
		URL:       "/x",
		ThinkTime: 1.5,
		Checks: []config.Check{
			{Name: "status is 200", Condition: "r.status === 200"},
			{Name: "has body's id", Condition: "r.json('id') !== undefined"},
			{Name: "", Condition: "true"},
		},
	}

	got := RenderRequest(req, 0, "", config.ThinkTime{Mode: config.ThinkPerAPI}, 0)
	assert.Contains(t, got, "  check(res, {\n"+
		"    'status is 200': (r) => r.status === 200,\n"+
		"    'has body\\'s id': (r) => r.json('id') !== undefined,\n"+
		"  });\n")
	assert.Contains(t, got, "  sleep(1.5);\n")

	for _, tt := range []config.ThinkTime{{Mode: config.ThinkFixed, Fixed: 3}, {Mode: config.ThinkRandom, Min: 1, Max: 2}} {
		assert.NotContains(t, RenderRequest(req, 0, "", tt, 0), "sleep(")
	}

	req.ThinkTime = 0
	assert.NotContains(t, RenderRequest(req, 0, "", config.ThinkTime{Mode: config.ThinkPerAPI}, 0), "sleep(")
}

func TestRenderRequest_GroupLabelEscaped(t *testing.T) {
	req := config.APIRequest{Name: "User's profile", Method: config.MethodGet, URL: "/me"}
	got := RenderRequest(req, 0, "", config.ThinkTime{}, 0)
	assert.True(t, strings.HasPrefix(got, "group('User\\'s profile', function () {\n"))
}
