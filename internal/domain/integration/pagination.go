package integration

import "strings"

// ParseNextLink extracts the rel="next" target from Link header values (RFC 8288).
//
// Targets are taken verbatim from between the angle brackets, so commas inside the
// URL (order_state_codes=A,B) do not split entries. A header value that carries a bare
// URL without angle brackets is returned as-is. Returns "" when no next relation exists.
func ParseNextLink(values []string) string {
	for _, value := range values {
		rest := strings.TrimSpace(value)
		if rest == "" {
			continue
		}
		if !strings.HasPrefix(rest, "<") {
			return rest
		}

		for {
			start := strings.IndexByte(rest, '<')
			if start < 0 {
				break
			}
			end := strings.IndexByte(rest[start:], '>')
			if end < 0 {
				break
			}
			end += start

			target := strings.TrimSpace(rest[start+1 : end])
			rest = rest[end+1:]

			params := rest
			if next := strings.IndexByte(rest, '<'); next >= 0 {
				params = rest[:next]
			}
			if hasRelation(params, "next") {
				return target
			}
		}
	}
	return ""
}

// hasRelation reports whether the link-params segment declares relation rel.
func hasRelation(params, rel string) bool {
	for _, param := range strings.Split(params, ";") {
		name, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(name), "rel") {
			continue
		}
		value = strings.TrimSpace(value)
		value = strings.TrimRight(value, ", ")
		value = strings.Trim(value, `"`)
		for _, r := range strings.Fields(value) {
			if strings.EqualFold(r, rel) {
				return true
			}
		}
	}
	return false
}
