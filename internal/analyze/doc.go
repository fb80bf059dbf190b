// Package analyze provides package loading and type graph extraction.
//
// It uses golang.org/x/tools/go/packages with AST and go/types
// to build a canonical in-memory model of structs and their fields,
// and to discover the struct types marked with the generate directive:
//
//	//rowmap:generate
//	type Person struct { ... }
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: describes kind (struct/basic/alias/pointer/slice/map/external)
//   - FieldInfo: describes field name, type, tags, and embedding
//   - Target: a marked type, its directive options and New<Type> constructor
package analyze
