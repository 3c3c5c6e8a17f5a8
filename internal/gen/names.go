package gen

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// exportName returns name with its first letter upper-cased.
func exportName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 || unicode.IsUpper(r) {
		return name
	}

	return string(unicode.ToUpper(r)) + name[size:]
}

// unexportName lower-cases the leading capitals of name, keeping the last
// one of a run when it starts the next word: ID -> id, URLPath -> urlPath.
func unexportName(name string) string {
	runes := []rune(name)

	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}

	switch {
	case n == 0:
		return name
	case n > 1 && n < len(runes) && unicode.IsLower(runes[n]):
		n--
	}

	for i := range n {
		runes[i] = unicode.ToLower(runes[i])
	}

	return string(runes)
}

// snakeCase converts a Go identifier to snake_case: OrderSummary ->
// order_summary, HTTPServer -> http_server.
func snakeCase(name string) string {
	runes := []rune(name)

	var sb strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && !unicode.IsUpper(runes[i-1]) && runes[i-1] != '_'
			nextLower := i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1])

			if prevLower || nextLower {
				sb.WriteByte('_')
			}

			r = unicode.ToLower(r)
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

// receiverName returns the method receiver for type name.
func receiverName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return "x"
	}

	return string(unicode.ToLower(r))
}

// nameSet hands out identifiers that are unique within one type.
type nameSet map[string]bool

// claim reserves name, appending "Value" until it is free and not a keyword.
func (s nameSet) claim(name string) string {
	for s[name] || token.IsKeyword(name) {
		name += "Value"
	}

	s[name] = true

	return name
}
