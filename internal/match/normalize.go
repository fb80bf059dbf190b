package match

import (
	"strings"
	"unicode"
)

// noiseWords are trailing words that say little about which property a column
// feeds: customer_id and customer both point at a Customer property.
var noiseWords = map[string]bool{
	"id":        true,
	"ids":       true,
	"at":        true,
	"on":        true,
	"ts":        true,
	"utc":       true,
	"timestamp": true,
}

// Tokenize splits a column or property name into lower-case words.
//
// Quoting ("name", `name`, [name]) and a table qualifier (o.name) are removed
// first; the rest is split at separators and case changes:
//   - "o.customer_id" -> ["customer", "id"]
//   - "OrderID" -> ["order", "id"]
//   - "XMLPayload" -> ["xml", "payload"]
//   - "CUSTOMERID" -> ["customerid"]
func Tokenize(name string) []string {
	runes := []rune(unquote(unqualify(strings.TrimSpace(name))))

	var (
		words   []string
		current []rune
	)

	flush := func() {
		if len(current) > 0 {
			words = append(words, strings.ToLower(string(current)))
			current = current[:0]
		}
	}

	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsWord(runes, i) {
			flush()
		}

		current = append(current, r)
	}

	flush()

	return words
}

// NormalizeColumn reduces a name to its lower-case words joined together, so
// "customer_id", "CustomerID" and "CUSTOMER-ID" compare equal.
func NormalizeColumn(name string) string {
	return strings.Join(Tokenize(name), "")
}

// NormalizeColumnStem is NormalizeColumn without a trailing noise word
// (id, at, ts, ...). A name made of a single word is kept whole.
func NormalizeColumnStem(name string) string {
	words := Tokenize(name)
	if len(words) > 1 && noiseWords[words[len(words)-1]] {
		words = words[:len(words)-1]
	}

	return strings.Join(words, "")
}

func unquote(s string) string {
	if len(s) < 2 {
		return s
	}

	switch first, last := s[0], s[len(s)-1]; {
	case first == '"' && last == '"', first == '`' && last == '`', first == '[' && last == ']':
		return s[1 : len(s)-1]
	}

	return s
}

func unqualify(s string) string {
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}

	return s
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '$'
}

// startsWord reports whether runes[i] begins a new word: a lower-to-upper or
// digit-to-letter change, or the last capital of an acronym followed by lower case.
func startsWord(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]

	switch {
	case isSeparator(prev):
		return false
	case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
		return true
	case unicode.IsUpper(r) && unicode.IsUpper(prev):
		return i+1 < len(runes) && unicode.IsLower(runes[i+1])
	}

	return false
}
