package table

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLanguage is the operator language used for collation when none is configured.
var DefaultLanguage = language.Persian

// Comparator orders two records; negative means a sorts before b.
type Comparator[T any] func(a, b T) int

// Sorter builds comparators for one operator language.
type Sorter struct {
	lang language.Tag
}

// NewSorter returns a Sorter for lang, falling back to DefaultLanguage for an unparsable tag.
func NewSorter(lang string) Sorter {
	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil || tag == language.Und {
		tag = DefaultLanguage
	}
	return Sorter{lang: tag}
}

// CompareBy returns the ascending comparator for the column with id, or nil
// when no sortable column matches. The returned func is not safe for concurrent use.
func CompareBy[T any](s Sorter, cols []Column[T], id string) Comparator[T] {
	col, ok := Find(cols, id)
	if !ok || !col.Sortable || col.Accessor == nil {
		return nil
	}
	if col.Kind == Number {
		return func(a, b T) int {
			return compareFloat(ToNumber(col.Accessor(a)), ToNumber(col.Accessor(b)))
		}
	}
	coll := collate.New(s.lang, collate.IgnoreCase, collate.IgnoreDiacritics)
	return func(a, b T) int {
		return coll.CompareString(ToString(col.Accessor(a)), ToString(col.Accessor(b)))
	}
}

// Sort returns a stably sorted copy of items. An inactive state or unknown
// column returns the input order. Descending reverses ascending for distinct
// keys while equal keys keep their input order.
func Sort[T any](s Sorter, items []T, cols []Column[T], state SortState) []T {
	out := slices.Clone(items)
	if !state.Active() {
		return out
	}
	cmp := CompareBy(s, cols, state.OrderBy)
	if cmp == nil {
		return out
	}
	if state.Order == Desc {
		slices.SortStableFunc(out, func(a, b T) int { return -cmp(a, b) })
	} else {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// ToString coerces a sort value to a string. nil becomes "".
func ToString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case *string:
		if x == nil {
			return ""
		}
		return *x
	case fmt.Stringer:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return ""
		}
		return x.String()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	default:
		return ""
	}
}

// ToNumber coerces a sort value to float64. nil, NaN and unparsable values become 0.
func ToNumber(v any) float64 {
	if v == nil {
		return 0
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return 0
		}
		rv = rv.Elem()
	}
	var f float64
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f = float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f = float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		f = rv.Float()
	case reflect.Bool:
		if rv.Bool() {
			f = 1
		}
	case reflect.String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(rv.String()), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) {
		return 0
	}
	return f
}
