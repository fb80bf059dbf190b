package common

import (
	"strings"
	"unicode"
)

// PkgAlias guesses the package name of an import path, for qualifying types in
// generated code and reports when the real name is unknown.
//
// Major version elements are skipped ("github.com/jackc/pgx/v5" -> "pgx"),
// gopkg.in versions and "go-" prefixes dropped ("gopkg.in/yaml.v3" -> "yaml",
// "github.com/google/go-cmp" -> "cmp"), and other characters that cannot
// appear in an identifier replaced by "_" ("rowmap-generator" -> "rowmap_generator").
func PkgAlias(pkgPath string) string {
	elems := strings.Split(strings.Trim(pkgPath, "/"), "/")

	last := elems[len(elems)-1]
	if isMajorVersion(last) && len(elems) > 1 {
		last = elems[len(elems)-2]
	}

	if i := strings.Index(last, ".v"); i > 0 && isMajorVersion(last[i+1:]) {
		last = last[:i]
	}

	last = strings.TrimPrefix(last, "go-")

	return identifier(last)
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}

	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

func identifier(s string) string {
	if s == "" {
		return ""
	}

	var sb strings.Builder

	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || r == '_':
			sb.WriteRune(r)
		case unicode.IsDigit(r) && i > 0:
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}

	return sb.String()
}
