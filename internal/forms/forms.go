// Package forms holds the editable drafts behind every record dialog. A draft
// is a detached copy of a record (or of a fixed empty template) that knows how
// to validate itself and how to normalize into the payload the shop API takes.
// Nothing in this package performs network calls.
package forms

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/target/shop-admin/internal/domain/model"
	apperrors "github.com/target/shop-admin/internal/errors"
)

// Field error messages shown under inputs.
const (
	MsgRequired = "این فیلد الزامی است"
	MsgNumber   = "یک عدد معتبر وارد کنید"
	MsgNegative = "مقدار نمی‌تواند منفی باشد"
	MsgPercent  = "درصد باید بین ۰ تا ۱۰۰ باشد"
	MsgChoice   = "گزینه انتخاب‌شده معتبر نیست"
	MsgEmail    = "ایمیل معتبر نیست"
	MsgDate     = "تاریخ معتبر نیست"
)

// ErrInvalidDraft is returned when a draft with field errors is submitted.
var ErrInvalidDraft = apperrors.Validation("لطفا خطاهای فرم را برطرف کنید")

// FieldErrors maps an input name to the message rendered under it.
type FieldErrors map[string]string

// Has reports whether field has an error.
func (f FieldErrors) Has(field string) bool {
	_, ok := f[field]
	return ok
}

// Get returns the message for field, or "".
func (f FieldErrors) Get(field string) string { return f[field] }

// Err returns nil for an empty set, else ErrInvalidDraft naming the fields.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	fields := slices.Sorted(maps.Keys(f))
	return fmt.Errorf("%w: %s", ErrInvalidDraft, strings.Join(fields, ", "))
}

func (f FieldErrors) required(field, v string) {
	if strings.TrimSpace(v) == "" {
		f[field] = MsgRequired
	}
}

// number records an error when v is set but not numeric, or negative.
func (f FieldErrors) number(field, v string, required bool) {
	if strings.TrimSpace(v) == "" {
		if required {
			f[field] = MsgRequired
		}
		return
	}
	n, ok := parseNumber(v)
	switch {
	case !ok:
		f[field] = MsgNumber
	case n < 0:
		f[field] = MsgNegative
	}
}

func (f FieldErrors) percent(field, v string) {
	f.number(field, v, false)
	if f.Has(field) {
		return
	}
	if n, _ := parseNumber(v); n > 100 {
		f[field] = MsgPercent
	}
}

func (f FieldErrors) choice(field string, ok bool) {
	if !ok {
		f[field] = MsgChoice
	}
}

// Draft is implemented by every dialog draft.
type Draft interface {
	// Validate returns the current field errors; an empty map means submittable.
	Validate() FieldErrors
	// Release frees staged uploads. It is safe to call more than once.
	Release()
}

// noUploads is embedded by drafts without image fields.
type noUploads struct{}

func (noUploads) Release() {}

func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(model.NormalizeDigits(s)), ",", "")
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// toNumber coerces s, treating empty or malformed input as 0.
func toNumber(s string) float64 {
	n, _ := parseNumber(s)
	return n
}

// optionalNumber returns nil for blank input.
func optionalNumber(s string) *float64 {
	n, ok := parseNumber(s)
	if !ok {
		return nil
	}
	return &n
}

func formatNumber(n model.Number) string {
	return strconv.FormatFloat(n.Float(), 'f', -1, 64)
}

// formatOptional renders zero as blank for fields the API omits when unset.
func formatOptional(n model.Number) string {
	if n == 0 {
		return ""
	}
	return formatNumber(n)
}

// SplitList splits a comma separated input into trimmed, non-empty items.
// Persian commas are accepted.
func SplitList(s string) []string {
	s = strings.ReplaceAll(s, "،", ",")
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// JoinList is the inverse of SplitList.
func JoinList(items []string) string { return strings.Join(items, ", ") }

func splitLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func joinLines(items []string) string { return strings.Join(items, "\n") }

// parseSpecs reads "key: value" lines. Lines without a separator are skipped.
func parseSpecs(s string) map[string]string {
	out := map[string]string{}
	for _, line := range splitLines(s) {
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if k = strings.TrimSpace(k); k != "" {
			out[k] = strings.TrimSpace(v)
		}
	}
	return out
}

func formatSpecs(m map[string]string) string {
	lines := make([]string, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		lines = append(lines, k+": "+m[k])
	}
	return joinLines(lines)
}
