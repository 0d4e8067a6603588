package csvmap

import "strings"

// normalizeHeader trims whitespace, strips a leading byte-order-mark and
// lowercases a CSV header for comparison.
func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
}

// FindColumn returns the first header whose normalized form equals one of
// the aliases. Aliases are tried in list order, so when several headers
// match different aliases the earlier alias wins ("alias priority", not
// header order). The header is returned verbatim, surrounding whitespace
// included, so it can be used as the row-map key. The second return is
// false when no header matches.
func FindColumn(headers []string, aliases []string) (string, bool) {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = normalizeHeader(h)
	}

	for _, alias := range aliases {
		want := strings.ToLower(alias)
		for i, h := range normalized {
			if h == want {
				return headers[i], true
			}
		}
	}
	return "", false
}
