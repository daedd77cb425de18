package schematic

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// renamers maps renameAll rule names to property name converters.
var renamers = map[string]func(string) string{
	"lowercase":            func(s string) string { return strings.Join(lowerWords(s), "") },
	"UPPERCASE":            func(s string) string { return strings.Join(upperWords(s), "") },
	"snake_case":           func(s string) string { return strings.Join(lowerWords(s), "_") },
	"kebab-case":           func(s string) string { return strings.Join(lowerWords(s), "-") },
	"SCREAMING_SNAKE_CASE": func(s string) string { return strings.Join(upperWords(s), "_") },
	"camelCase": func(s string) string {
		ws := titleWords(s)
		if len(ws) > 0 {
			ws[0] = strings.ToLower(ws[0])
		}
		return strings.Join(ws, "")
	},
	"PascalCase": func(s string) string { return strings.Join(titleWords(s), "") },
}

// Casers are stateful, so each conversion builds its own.
func lowerWords(s string) []string { return mapWords(s, cases.Lower(language.Und)) }
func upperWords(s string) []string { return mapWords(s, cases.Upper(language.Und)) }
func titleWords(s string) []string { return mapWords(s, cases.Title(language.Und)) }

func mapWords(s string, c cases.Caser) []string {
	ws := splitWords(s)
	for i, w := range ws {
		ws[i] = c.String(w)
	}
	return ws
}

// splitWords breaks a Go identifier into words: "HTTPServerID" gives
// HTTP, Server, ID and "user_name2" gives user, name2.
func splitWords(s string) []string {
	var (
		words []string
		start = -1
	)
	rs := []rune(s)
	for i, r := range rs {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			if start >= 0 {
				words = append(words, string(rs[start:i]))
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		prev := rs[i-1]
		boundary := unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev) ||
			(unicode.IsUpper(prev) && i+1 < len(rs) && unicode.IsLower(rs[i+1])))
		if boundary {
			words = append(words, string(rs[start:i]))
			start = i
		}
	}
	if start >= 0 {
		words = append(words, string(rs[start:]))
	}
	return words
}
