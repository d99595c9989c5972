package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/target/shop-admin/internal/apiclient"
	"github.com/target/shop-admin/internal/domain/model"
	"github.com/target/shop-admin/internal/jalali"
	"github.com/target/shop-admin/internal/richtext"
	"github.com/target/shop-admin/internal/util"
)

// Deps holds optional dependencies for constructing the core template func map.
type Deps struct {
	Template           **template.Template
	ContentTemplateFor func(string) string
	Format             *util.Formatter
	// AssetBaseURL resolves relative upload paths returned by the shop API.
	AssetBaseURL string
	// StaticPrefix is the URL prefix the embedded static files are served under.
	StaticPrefix string
}

// Funcs returns a template.FuncMap containing helpers that are broadly useful across templates.
func Funcs(deps Deps) template.FuncMap {
	f := deps.Format
	if f == nil {
		f = util.NewFormatter("fa", nil)
	}
	static := strings.TrimSuffix(deps.StaticPrefix, "/")
	if static == "" {
		static = "/static"
	}

	funcs := template.FuncMap{
		"sectionTmpl": deps.ContentTemplateFor,
		"add":         func(a, b int) int { return a + b },
		"sub":         func(a, b int) int { return a - b },
		"contains":    strings.Contains,
		"list":        func(v ...any) []any { return v },
		"dict":        dict,
		"formatPrice": func(v any) string { return f.Price(toFloat(v)) },
		"formatCount": func(v any) string { return f.Count(toFloat(v)) },
		"formatDate":  func(v any) string { return f.Date(toTime(v)) },
		"formatDateTime": func(v any) string {
			return f.DateTime(toTime(v))
		},
		"faDigits":     func(v any) string { return jalali.ToPersianDigits(fmt.Sprint(v)) },
		"truncateText": TruncateText,
		"assetURL": func(p string) string {
			return apiclient.ResolveAssetURL(deps.AssetBaseURL, p)
		},
		"static":    func(p string) string { return static + "/" + strings.TrimPrefix(p, "/") },
		"plainText": richtext.PlainText,
		// #nosec G203 - content passes through the allow-list sanitizer first.
		"safeHTML": func(s string) template.HTML { return template.HTML(richtext.Sanitize(s)) },
		"joinTags": func(tags []string) string { return strings.Join(tags, "، ") },
		"expired":  func(d model.Deal) bool { return d.Expired(time.Now()) },
		"shortID":  ShortID,
	}
	for k, v := range labelFuncs() {
		funcs[k] = v
	}

	addRenderFuncs(funcs, deps)
	return funcs
}

func addRenderFuncs(funcs template.FuncMap, deps Deps) {
	funcs["renderSection"] = func(page string, data any) (template.HTML, error) {
		return execute(deps.Template, deps.ContentTemplateFor(page), data)
	}

	// renderDialog executes a form body template chosen at request time.
	funcs["renderDialog"] = func(name string, data any) (template.HTML, error) {
		return execute(deps.Template, name, data)
	}

	funcs["toJSON"] = func(v any) (string, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

func execute(t **template.Template, name string, data any) (template.HTML, error) {
	if t == nil || *t == nil {
		return "", errors.New("template not initialized")
	}
	var buf bytes.Buffer
	if err := (*t).ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	// #nosec G203 - The HTML here is rendered by our own trusted templates (html/template),
	// and is embedded back into the same template set. User-provided values were already
	// auto-escaped during ExecuteTemplate above.
	return template.HTML(buf.String()), nil
}

// dict builds a map from alternating key/value arguments so partials can take
// several named inputs.
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}

func toFloat(v any) float64 {
	switch x := v.(type) {
	case model.Number:
		return x.Float()
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case string:
		return model.ParseNumber(x)
	default:
		return 0
	}
}

func toTime(v any) time.Time {
	switch x := v.(type) {
	case time.Time:
		return x
	case *time.Time:
		if x != nil {
			return *x
		}
	}
	return time.Time{}
}

// ShortID returns the last six characters of an order id, as shown in tables.
func ShortID(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}

// TruncateText truncates a string to a maximum number of runes (not bytes).
// Adds an ellipsis (…) when truncated for visual clarity.
// The maxLen parameter can be any numeric type for template flexibility.
func TruncateText(s string, maxLen any) string {
	n, ok := toIntSafe(maxLen)
	if !ok || n <= 0 {
		return s
	}

	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	if n > 1 {
		return string(runes[:n-1]) + "…"
	}

	return string(runes[:1])
}

func toIntSafe(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		return int(val), true
	default:
		return 0, false
	}
}
