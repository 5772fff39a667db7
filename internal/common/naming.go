package common

import (
	"strconv"
	"strings"
	"unicode"
)

// UpperFirst returns s with its first rune upper-cased.
func UpperFirst(s string) string {
	if s == "" {
		return s
	}

	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])

	return string(r)
}

// LowerFirst returns s with its leading word lower-cased.
// A leading initialism is lowered as a whole: "ID" -> "id", "URLPath" -> "urlPath".
func LowerFirst(s string) string {
	if s == "" {
		return s
	}

	r := []rune(s)

	n := 0
	for n < len(r) && unicode.IsUpper(r[n]) {
		n++
	}

	switch {
	case n == 0:
		return s
	case n == 1, n == len(r):
		// "Name" -> "name", "ID" -> "id"
	default:
		// "URLPath": keep the P that starts the next word.
		n--
	}

	for i := range n {
		r[i] = unicode.ToLower(r[i])
	}

	return string(r)
}

// SnakeCase converts a camel-case identifier into snake_case.
// Runs of capitals are kept together: "PersonUpdateObject" -> "person_update_object",
// "HTTPServer" -> "http_server".
func SnakeCase(s string) string {
	r := []rune(s)

	var b strings.Builder
	for i, c := range r {
		if unicode.IsUpper(c) {
			prevLower := i > 0 && (unicode.IsLower(r[i-1]) || unicode.IsDigit(r[i-1]))
			nextLower := i+1 < len(r) && unicode.IsLower(r[i+1])
			prevUpper := i > 0 && unicode.IsUpper(r[i-1])

			if i > 0 && (prevLower || (prevUpper && nextLower)) {
				b.WriteByte('_')
			}

			b.WriteRune(unicode.ToLower(c))

			continue
		}

		b.WriteRune(c)
	}

	return b.String()
}

// UniqueName returns base, or base with the smallest numeric suffix, such that the
// result is not a key of taken.
func UniqueName(base string, taken map[string]bool) string {
	if !taken[base] {
		return base
	}

	for i := 1; ; i++ {
		candidate := base + strconv.Itoa(i)
		if !taken[candidate] {
			return candidate
		}
	}
}

// IsIdentifier reports whether s is a letter or underscore followed by letters,
// digits and underscores. Keywords are not checked.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}

	return true
}
