// Package rowmap maps untyped values and tabular cursors onto Go structs.
//
// Every exported field of a struct, including fields promoted from embedded
// structs, is a property matched case-insensitively by name. Values are
// coerced according to the declared type of the property:
//
//   - reference types (string, slices, maps, interfaces, pointers to structs)
//     take the value when it has exactly the declared type, and the zero value otherwise;
//   - pointers to scalars accept the pointer or the element and fall back to nil;
//   - enums (defined integer types) ignore absent values and convert other
//     integers through their underlying type;
//   - every other value type ignores absent values and converts mismatched ones.
//
// Unknown names are ignored. Conversion failures are reported as *FieldError.
//
// Mapping tables are built once per type with reflection and cached:
//
//	people, err := rowmap.Materialize[Person](cursor)
//
// The rowmap-generator command emits equivalent code ahead of time; generated
// files call into this package for conversions and cursor handling.
package rowmap
