// Package naming derives generated member names from declared ones.
package naming

import (
	"strings"
	"unicode"
)

// PropertyName infers a property name from a backing field name: the first
// matching prefix is stripped and the first letter upper-cased, so firstName
// and _firstName both become FirstName.
func PropertyName(field string, prefixes []string) string {
	name := field
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(name, p) && len(name) > len(p) {
			name = name[len(p):]
			break
		}
	}
	return UpperFirst(name)
}

// FieldName returns the backing field name for a property declared without a
// field (class-level annotations).
func FieldName(property string) string {
	return CamelCase(property)
}

// CommandName derives the command property name from the method it wraps.
// OnSave, SaveAsync and Save all map to SaveCommand.
func CommandName(method string) string {
	name := strings.TrimSuffix(method, "Async")
	if rest, ok := strings.CutPrefix(name, "On"); ok && rest != "" && unicode.IsUpper([]rune(rest)[0]) {
		name = rest
	}
	return WithCommandSuffix(UpperFirst(name))
}

// WithCommandSuffix appends "Command" unless name already ends with it.
func WithCommandSuffix(name string) string {
	if strings.HasSuffix(name, "Command") {
		return name
	}
	return name + "Command"
}

// UpperFirst upper-cases the first rune.
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// LowerFirst lower-cases the first rune.
func LowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// CamelCase converts to camelCase.
func CamelCase(s string) string {
	if s == "" {
		return s
	}
	return LowerFirst(PascalCase(s))
}

// PascalCase converts to PascalCase. Words keep their inner casing so
// acronyms such as ID survive.
func PascalCase(s string) string {
	words := SplitWords(s)
	for i, word := range words {
		words[i] = UpperFirst(word)
	}
	return strings.Join(words, "")
}

// SplitWords splits a string into words (handles camelCase, PascalCase, snake_case, etc.).
func SplitWords(s string) []string {
	var words []string
	var current []rune

	runes := []rune(s)
	for i, r := range runes {
		if r == '_' || r == '-' || r == ' ' || r == '.' {
			if len(current) > 0 {
				words = append(words, string(current))
				current = nil
			}
			continue
		}

		if unicode.IsUpper(r) && i > 0 {
			// Check if this is the start of a new word
			prev := runes[i-1]
			if unicode.IsLower(prev) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(prev)) {
				if len(current) > 0 {
					words = append(words, string(current))
					current = nil
				}
			}
		}

		current = append(current, r)
	}

	if len(current) > 0 {
		words = append(words, string(current))
	}

	return words
}

// IsIdentifier reports whether s is a usable C# identifier.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
