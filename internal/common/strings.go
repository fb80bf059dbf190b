package common

import "strings"

// UnknownStr is printed for enum values outside their known range.
const UnknownStr = "unknown"

// InterfaceTypeStr is the spelling of the empty interface in generated code.
const InterfaceTypeStr = "any"

// Key normalizes a property or column name into its matching key.
func Key(name string) string {
	return strings.ToUpper(name)
}
