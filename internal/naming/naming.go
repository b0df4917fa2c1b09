// Package naming turns column and table names into Go identifiers.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// title upper-cases the first letter of a token and leaves the rest alone, so
// acronyms such as "HP" survive. Casers keep state and are not shared.
func title(tok string) string {
	return cases.Title(language.Und, cases.NoLower).String(tok)
}

// Exported converts a name into an exported Go identifier.
// Examples:
//   - "hp" -> "Hp"
//   - "maxHP" -> "MaxHP"
//   - "attack_power" -> "AttackPower"
//   - "HP" -> "HP"
func Exported(s string) string {
	var sb strings.Builder

	for _, tok := range Tokenize(s) {
		sb.WriteString(title(tok))
	}

	return sb.String()
}

// Unexported converts a name into an unexported Go identifier by lowering its
// first token.
func Unexported(s string) string {
	tokens := Tokenize(s)
	if len(tokens) == 0 {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(strings.ToLower(tokens[0]))

	for _, tok := range tokens[1:] {
		sb.WriteString(title(tok))
	}

	return sb.String()
}

// Snake converts a name into snake_case, used for generated file names.
func Snake(s string) string {
	tokens := Tokenize(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return strings.Join(tokens, "_")
}

// Tokenize splits a CamelCase, camelCase or separated identifier into tokens.
// Examples:
//   - "OrderID" -> ["Order", "ID"]
//   - "attack_power" -> ["attack", "power"]
//   - "XMLParser" -> ["XML", "Parser"]
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i := range runes {
		r := runes[i]

		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// shouldStartNewToken determines if a new token should start at position i.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]
	isUpper := unicode.IsUpper(r)
	isPrevUpper := unicode.IsUpper(prev)

	// "orderID" -> split before 'I'
	if isUpper && !isPrevUpper && !isSeparator(prev) {
		return true
	}

	// "XMLParser" -> "XML" + "Parser", split before 'P'
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

	return isUpper && isPrevUpper && hasNextLower
}
