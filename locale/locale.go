// Package locale resolves per-language record fields to a single display value.
package locale

import "strings"

// Locale is a supported display language.
type Locale string

const (
	En  Locale = "en"
	Ar  Locale = "ar"
	Ckb Locale = "ckb"

	Default = En
)

// Supported lists every locale records carry text for.
var Supported = []Locale{En, Ar, Ckb}

// Parse maps a header value to a supported locale, falling back to Default.
func Parse(s string) Locale {
	switch l := Locale(strings.ToLower(strings.TrimSpace(s))); l {
	case En, Ar, Ckb:
		return l
	default:
		return Default
	}
}

// Record exposes a record's localized text by key, e.g. "arName".
type Record interface {
	Field(key string) string
}

// Resolve returns rec's loc+base field, then the English one, then "".
func Resolve(rec Record, loc Locale, base string) string {
	if rec == nil {
		return ""
	}
	if v := rec.Field(string(loc) + base); v != "" {
		return v
	}
	return rec.Field(string(En) + base)
}

// Map is a Record backed by a plain map.
type Map map[string]string

func (m Map) Field(key string) string { return m[key] }
