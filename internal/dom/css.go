package dom

import "strings"

// cssURL extracts the target of a url("...") value, or returns "" when v is
// not a single url() value.
func cssURL(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "url(") || !strings.HasSuffix(v, ")") {
		return ""
	}
	u := strings.TrimSpace(v[len("url(") : len(v)-1])
	if len(u) >= 2 && (u[0] == '"' || u[0] == '\'') && u[len(u)-1] == u[0] {
		u = u[1 : len(u)-1]
	}
	return u
}
