package cache

import (
	"net/url"
	"strings"
)

// safe escapes a key part reversibly, so distinct inputs never share a key.
// Slugs made of [a-z0-9-] pass through unchanged.
func safe(s string) string {
	return url.QueryEscape(s)
}

// key joins namespace and parts into a colon-separated Redis key, escaping each part.
func key(namespace string, parts ...string) string {
	var b strings.Builder
	b.WriteString(namespace)
	for _, p := range parts {
		b.WriteByte(':')
		b.WriteString(safe(p))
	}
	return b.String()
}
