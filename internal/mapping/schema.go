package mapping

import (
	"rowmap-generator/internal/common"
)

// MappingFile is the YAML form of a mapping plan. It is written by the analyze
// command and can be read back to check column sets without reloading packages.
type MappingFile struct {
	// Version of the mapping schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Types lists one entry per mapped type, in target order.
	Types []TypeMapping `yaml:"types"`

	// Diagnostics holds planning messages that are not tied to a mapped type.
	Diagnostics []DiagnosticEntry `yaml:"diagnostics,omitempty"`
}

// TypeMapping describes the generated surface of one type.
type TypeMapping struct {
	// Type is the fully-qualified type, e.g. "rowmap-generator/store.Order".
	Type string `yaml:"type"`

	// Package is the declaring package name, e.g. "store".
	Package string `yaml:"package,omitempty"`

	// Setter is the name of the generated setter function.
	Setter string `yaml:"setter"`

	// Materializer is the name of the generated materializer; empty when none is generated.
	Materializer string `yaml:"materializer,omitempty"`

	// Constructor is the New<Type> function used by the materializer, if any.
	Constructor string `yaml:"constructor,omitempty"`

	// Properties lists every resolved property in matching order.
	Properties []PropertyEntry `yaml:"properties"`

	// Diagnostics lists planning messages about this type.
	Diagnostics []DiagnosticEntry `yaml:"diagnostics,omitempty"`
}

// PropertyEntry describes one resolved property.
type PropertyEntry struct {
	// Name is the selector of the property, e.g. "Audit.Revision".
	Name string `yaml:"name"`

	// Key is the upper-cased name the property is matched by.
	Key string `yaml:"key"`

	// Type is the declared Go type.
	Type string `yaml:"type"`

	// Category is the coercion category of the declared type.
	Category string `yaml:"category"`

	// Strategy is the coercion rule applied to assigned values.
	Strategy string `yaml:"strategy"`

	// Owner is the type declaring the property when it is promoted from an embedded type.
	Owner string `yaml:"owner,omitempty"`

	// Duplicate is set when an earlier property claims the same key.
	Duplicate bool `yaml:"duplicate,omitempty"`
}

// DiagnosticEntry is a serialized planning diagnostic.
type DiagnosticEntry struct {
	Severity string `yaml:"severity"`
	Code     string `yaml:"code"`
	Message  string `yaml:"message"`
	Field    string `yaml:"field,omitempty"`
}

// ShortName returns "package.Type", or the full type when the package is unknown.
func (tm *TypeMapping) ShortName() string {
	if tm.Package == "" {
		return tm.Type
	}

	return tm.Package + "." + typeName(tm.Type)
}

// Matches reports whether name refers to this type: full, short or bare name.
func (tm *TypeMapping) Matches(name string) bool {
	return name == tm.Type || name == tm.ShortName() || name == typeName(tm.Type)
}

// Lookup returns the property matching a column name, ignoring case.
// Duplicates never match.
func (tm *TypeMapping) Lookup(column string) (PropertyEntry, bool) {
	key := common.Key(column)

	for _, p := range tm.Properties {
		if p.Key == key && !p.Duplicate {
			return p, true
		}
	}

	return PropertyEntry{}, false
}

// FindType returns the mapping of the type name refers to.
func (mf *MappingFile) FindType(name string) (*TypeMapping, bool) {
	for i := range mf.Types {
		if mf.Types[i].Matches(name) {
			return &mf.Types[i], true
		}
	}

	return nil, false
}

func typeName(id string) string {
	for i := len(id) - 1; i >= 0; i-- {
		if id[i] == '.' {
			return id[i+1:]
		}
	}

	return id
}
