package apiclient

import (
	"net/url"
	"strings"
)

// ResolveAssetURL resolves a path returned by the shop API against the asset
// base URL for previews. Absolute, data: and blob: URLs pass through unchanged.
func ResolveAssetURL(base, p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	lower := strings.ToLower(p)
	if strings.HasPrefix(lower, "data:") || strings.HasPrefix(lower, "blob:") {
		return p
	}
	if u, err := url.Parse(p); err == nil && u.IsAbs() {
		return p
	}
	if strings.HasPrefix(p, "//") {
		return p
	}

	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return p
	}
	return base + "/" + strings.TrimLeft(p, "/")
}
