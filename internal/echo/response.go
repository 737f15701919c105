package echo

import (
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Response mirrors one inbound request. It is built once per request and
// never modified afterwards.
type Response struct {
	Method  string            `json:"method"`
	Path    string            `json:"path"`
	Headers map[string]string `json:"headers"`
	Body    string            `json:"body"`
	Args    map[string]string `json:"args"`
}

func NewResponse(r *http.Request, body []byte) Response {
	return Response{
		Method:  r.Method,
		Path:    MatchedPath(r.URL.Path),
		Headers: FlattenHeaders(r.Host, r.Header),
		Body:    DecodeBody(body),
		Args:    FlattenArgs(r.URL.Query()),
	}
}

// MatchedPath is the request path without its leading slash, so the root
// yields "".
func MatchedPath(p string) string {
	return strings.TrimPrefix(p, "/")
}

// FlattenHeaders joins repeated values with ", ". net/http lifts Host out of
// the header map; it is put back so callers see what was sent.
func FlattenHeaders(host string, h http.Header) map[string]string {
	out := make(map[string]string, len(h)+1)
	if host != "" {
		out["Host"] = host
	}
	for k, vs := range h {
		out[k] = strings.Join(vs, ", ")
	}
	return out
}

// FlattenArgs keeps the last value of a repeated query key.
func FlattenArgs(q url.Values) map[string]string {
	out := make(map[string]string, len(q))
	for k, vs := range q {
		if len(vs) == 0 {
			continue
		}
		out[k] = vs[len(vs)-1]
	}
	return out
}

// DecodeBody reads b as UTF-8, replacing invalid sequences with U+FFFD.
func DecodeBody(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}
