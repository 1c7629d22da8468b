package model

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)
	acronymPattern    = regexp.MustCompile(`([A-Z])([A-Z]+)($|[A-Z])`)
)

// DefaultLabeler converts a field name into a human-friendly label. It splits
// on underscores, dashes and camelCase boundaries and title-cases each word.
func DefaultLabeler(name string) string {
	if name == "" {
		return ""
	}

	words := splitWordsPattern.Split(name, -1)
	var segments []string
	for _, word := range words {
		if word == "" {
			continue
		}
		segments = append(segments, splitCamel(word))
	}
	return strings.TrimSpace(strings.Join(segments, " "))
}

// ToCamelCase lowercases the leading rune and collapses upper-case runs so
// "FirstName" becomes "firstName" and "ID" becomes "id".
func ToCamelCase(s string) string {
	if s == "" {
		return ""
	}
	s = acronymPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := acronymPattern.FindStringSubmatch(match)
		return parts[1] + strings.ToLower(parts[2]) + parts[3]
	})
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

func splitCamel(input string) string {
	var out strings.Builder
	for i, r := range input {
		if i > 0 && isBoundary(input, i, r) {
			out.WriteRune(' ')
		}
		if i == 0 {
			r = unicode.ToUpper(r)
		}
		out.WriteRune(r)
	}
	return out.String()
}

func isBoundary(input string, index int, r rune) bool {
	prev, _ := utf8.DecodeLastRuneInString(input[:index])
	next := rune(0)
	if rest := input[index+utf8.RuneLen(r):]; rest != "" {
		next, _ = utf8.DecodeRuneInString(rest)
	}
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(r):
		return true
	case unicode.IsUpper(prev) && unicode.IsUpper(r) && unicode.IsLower(next):
		return true
	case unicode.IsLetter(prev) && unicode.IsDigit(r), unicode.IsDigit(prev) && unicode.IsLetter(r):
		return true
	}
	return false
}
