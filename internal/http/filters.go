package httpx

import (
	"net/url"
	"strings"

	"github.com/target/shop-admin/internal/ports"
)

// paramRefresh asks a list page to refetch instead of serving its cached copy.
const paramRefresh = "refresh"

// ParseFilters reads the allowed filter names from q. Blank values are dropped
// so they never reach the API or a cache key.
func ParseFilters(q url.Values, allowed ...string) ports.Filters {
	f := ports.Filters{}
	for _, name := range allowed {
		if v := strings.TrimSpace(q.Get(name)); v != "" {
			f[name] = v
		}
	}
	return f
}

// cleanQuery clones q without htmx bookkeeping params, one-shot actions and blank values.
func cleanQuery(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, vs := range q {
		if strings.HasPrefix(k, "hx-") || strings.HasPrefix(k, "hx_") || k == "return" || k == paramRefresh {
			continue
		}
		kept := make([]string, 0, len(vs))
		for _, v := range vs {
			if strings.TrimSpace(v) != "" {
				kept = append(kept, v)
			}
		}
		if len(kept) > 0 {
			out[k] = kept
		}
	}
	return out
}

// listURL returns the path and query the operator was looking at, for returning
// after a dialog closes.
func listURL(basePath string, q url.Values) string {
	if enc := cleanQuery(q).Encode(); enc != "" {
		return basePath + "?" + enc
	}
	return basePath
}
