package apiclient

import (
	"encoding/json"
	"fmt"
	"strconv"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// listExprs returns the candidate locations of a collection inside a list reply:
// bare array, common envelopes, then a key named after the resource.
func listExprs(resource string) []string {
	return []string{
		"@",
		"data",
		"data.items",
		"items",
		"results",
		strconv.Quote(resource),
		"data." + strconv.Quote(resource),
	}
}

// recordExprs locate a single record inside a create/update reply.
var recordExprs = []string{"data", "@"}

// decodeList extracts the collection from raw and decodes it into []T.
// A reply with no recognizable collection decodes to an empty list.
func decodeList[T any](raw []byte, resource string) ([]T, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", resource, err)
	}

	items := []any{}
	for _, expr := range listExprs(resource) {
		res, err := jmespath.Search(expr, doc)
		if err != nil {
			continue
		}
		if arr, ok := res.([]any); ok {
			items = arr
			break
		}
	}

	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("re-encode %s list: %w", resource, err)
	}
	out := make([]T, 0, len(items))
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode %s items: %w", resource, err)
	}
	return out, nil
}

// decodeRecord extracts a single record from raw. An empty reply yields the zero value.
func decodeRecord[T any](raw []byte, resource string) (T, error) {
	var zero T
	if len(raw) == 0 {
		return zero, nil
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return zero, fmt.Errorf("decode %s record: %w", resource, err)
	}

	var obj any
	for _, expr := range recordExprs {
		res, err := jmespath.Search(expr, doc)
		if err != nil {
			continue
		}
		if m, ok := res.(map[string]any); ok {
			obj = m
			break
		}
	}
	if obj == nil {
		return zero, nil
	}

	b, err := json.Marshal(obj)
	if err != nil {
		return zero, fmt.Errorf("re-encode %s record: %w", resource, err)
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return zero, fmt.Errorf("decode %s record: %w", resource, err)
	}
	return out, nil
}

// searchString returns the first non-empty string found by exprs in doc.
func searchString(doc any, exprs ...string) string {
	for _, expr := range exprs {
		res, err := jmespath.Search(expr, doc)
		if err != nil {
			continue
		}
		if s, ok := res.(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// searchObject returns the object found by expr in doc, or nil.
func searchObject(doc any, expr string) map[string]any {
	res, err := jmespath.Search(expr, doc)
	if err != nil {
		return nil
	}
	m, _ := res.(map[string]any)
	return m
}
