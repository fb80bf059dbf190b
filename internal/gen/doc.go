// Package gen provides deterministic Go code generation for row mappers.
//
// Generation approach uses text/template + go/format for readable,
// reflection-free Go code. For every mapping unit one file is produced,
// holding:
//   - Set<Type>PropertyByName, the case-insensitive setter
//   - a key switch with one case per property, rendered by coercion strategy
//   - Materialize<Type>, when the type can be constructed without arguments
//
// Generated code calls into the rowmap runtime package for conversions,
// null handling and cursor closing.
package gen
