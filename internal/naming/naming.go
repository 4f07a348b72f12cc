// Package naming derives the lower-snake identifiers used to name commands and steps.
package naming

import (
	"reflect"
	"strings"
	"unicode"
)

// Snake converts an identifier such as "SayMyName", "HTTPRequest" or "pkg.MakeItSo"
// to lower-snake form ("say_my_name", "http_request", "make_it_so").
// Only the last dot-separated segment is kept.
func Snake(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	runes := []rune(strings.TrimSpace(name))

	var b strings.Builder
	for i, r := range runes {
		switch {
		case r == '-' || r == ' ':
			b.WriteByte('_')
		case unicode.IsUpper(r):
			if i > 0 && runes[i-1] != '_' && runes[i-1] != '-' {
				prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if prevLower || (unicode.IsUpper(runes[i-1]) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TypeName returns the lower-snake name of v's dynamic type, dereferencing pointers.
// Unnamed types yield "".
func TypeName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	name := t.Name()
	// Strip generic instantiation, e.g. "Greeter[string]".
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return Snake(name)
}
