package mapping

import (
	"errors"
	"fmt"
	"slices"

	"rowmap-generator/internal/common"
	"rowmap-generator/internal/match"
)

// ErrInvalidMapping is wrapped by every validation failure.
var ErrInvalidMapping = errors.New("invalid mapping")

var (
	knownCategories = []string{"reference", "nullable-value", "enum", "primitive-value"}
	knownStrategies = []string{"assert_or_zero", "nullable_lift", "enum_convert", "value_convert"}
)

// Validate checks that a mapping file is internally consistent: every property
// has a known category and strategy, keys are upper-cased names, and exactly the
// properties after the first claimant of a key are marked duplicate.
func Validate(mf *MappingFile) error {
	var errs []error

	seenTypes := make(map[string]bool, len(mf.Types))

	for i := range mf.Types {
		tm := &mf.Types[i]

		if tm.Type == "" {
			errs = append(errs, fmt.Errorf("%w: types[%d]: type is required", ErrInvalidMapping, i))
			continue
		}

		if seenTypes[tm.Type] {
			errs = append(errs, fmt.Errorf("%w: %s: listed twice", ErrInvalidMapping, tm.Type))
		}

		seenTypes[tm.Type] = true

		errs = append(errs, validateType(tm)...)
	}

	return errors.Join(errs...)
}

func validateType(tm *TypeMapping) []error {
	var errs []error

	claimed := make(map[string]bool, len(tm.Properties))

	for _, p := range tm.Properties {
		where := tm.Type + "." + p.Name

		if !slices.Contains(knownCategories, p.Category) {
			errs = append(errs, fmt.Errorf("%w: %s: unknown category %q", ErrInvalidMapping, where, p.Category))
		}

		if !slices.Contains(knownStrategies, p.Strategy) {
			errs = append(errs, fmt.Errorf("%w: %s: unknown strategy %q", ErrInvalidMapping, where, p.Strategy))
		}

		if p.Key == "" || p.Key != common.Key(p.Key) {
			errs = append(errs, fmt.Errorf("%w: %s: key %q is not upper-cased", ErrInvalidMapping, where, p.Key))
		}

		if claimed[p.Key] != p.Duplicate {
			errs = append(errs, fmt.Errorf("%w: %s: duplicate flag does not match key %q", ErrInvalidMapping, where, p.Key))
		}

		claimed[p.Key] = true
	}

	return errs
}

// ColumnStatus is the outcome of matching one column.
type ColumnStatus string

const (
	// ColumnMatched - the column sets a property.
	ColumnMatched ColumnStatus = "matched"
	// ColumnIgnored - no property has the column's name; its values are dropped.
	ColumnIgnored ColumnStatus = "ignored"
)

// DefaultMinScore is the similarity a property needs to be suggested for an ignored column.
const DefaultMinScore = 0.6

// ColumnResult describes how one column of a result set maps onto a type.
type ColumnResult struct {
	Column   string
	Status   ColumnStatus
	Property string
	Strategy string
	// Suggestion names an unassigned property the column was probably meant for.
	Suggestion string
}

// CheckResult is the outcome of matching a column set against a type.
type CheckResult struct {
	Type    string
	Columns []ColumnResult
	// Unassigned lists properties no column sets, in property order.
	Unassigned []string
}

// Ignored returns the columns that set nothing.
func (r *CheckResult) Ignored() []ColumnResult {
	var out []ColumnResult

	for _, c := range r.Columns {
		if c.Status == ColumnIgnored {
			out = append(out, c)
		}
	}

	return out
}

// CheckColumns matches columns against the properties of tm the way the
// setter does: by upper-cased name, the first property with a key winning.
// Ignored columns get a suggestion among the unassigned properties when one is
// at least minScore similar and clearly ahead of the others.
func CheckColumns(tm *TypeMapping, columns []string, minScore float64) *CheckResult {
	res := &CheckResult{Type: tm.Type, Columns: make([]ColumnResult, 0, len(columns))}
	assigned := make(map[string]bool)

	for _, col := range columns {
		p, ok := tm.Lookup(col)
		if !ok {
			res.Columns = append(res.Columns, ColumnResult{Column: col, Status: ColumnIgnored})
			continue
		}

		assigned[p.Name] = true
		res.Columns = append(res.Columns, ColumnResult{
			Column:   col,
			Status:   ColumnMatched,
			Property: p.Name,
			Strategy: p.Strategy,
		})
	}

	var names []string

	for _, p := range tm.Properties {
		if !p.Duplicate && !assigned[p.Name] {
			res.Unassigned = append(res.Unassigned, p.Name)
			names = append(names, p.Key)
		}
	}

	for i := range res.Columns {
		c := &res.Columns[i]
		if c.Status != ColumnIgnored || len(names) == 0 {
			continue
		}

		if key, ok := match.Suggest(c.Column, names, minScore); ok {
			c.Suggestion = res.Unassigned[slices.Index(names, key)]
		}
	}

	return res
}
