//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Ref carries the identifier pair every shop API record exposes.
// Newer endpoints return "id"; older ones only "_id".
type Ref struct {
	ID       string `json:"id,omitempty"`
	LegacyID string `json:"_id,omitempty"`
}

// Key returns the record identifier, preferring id over the legacy _id alias.
func (r Ref) Key() string {
	if r.ID != "" {
		return r.ID
	}
	return r.LegacyID
}

// Keyed is implemented by every record that can be addressed by id.
type Keyed interface {
	Key() string
}

// Number is a lenient numeric field. It decodes JSON numbers, numeric strings
// and null; anything else decodes to zero instead of failing the whole record.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	*n = 0
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		*n = Number(ParseNumber(s))
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = Number(f)
	}
	return nil
}

// Float returns n as float64.
func (n Number) Float() float64 { return float64(n) }

// Int returns n truncated to int.
func (n Number) Int() int { return int(n) }

// ParseNumber coerces s to a number, treating empty or non-numeric input as 0.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(NormalizeDigits(s))
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// NormalizeDigits maps Persian and Arabic-Indic digits to ASCII.
func NormalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '۰' && r <= '۹':
			return '0' + (r - '۰')
		case r >= '٠' && r <= '٩':
			return '0' + (r - '٠')
		case r == '٬':
			return ','
		case r == '٫':
			return '.'
		default:
			return r
		}
	}, s)
}

// NamedRef is a reference to another record that the API returns either as a
// bare id string or as a populated object with a name.
type NamedRef struct {
	Ref
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *NamedRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = NamedRef{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = NamedRef{Ref: Ref{ID: s}}
		return nil
	}
	type plain NamedRef
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*r = NamedRef(p)
	return nil
}

// Label returns the human label for the reference, falling back to its id.
func (r NamedRef) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Key()
}
