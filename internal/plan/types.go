package plan

import (
	"reflect"
	"strings"

	"rowmap-generator/internal/common"
	"rowmap-generator/internal/diagnostic"
)

// TagName is the struct tag consulted while resolving properties.
// `rowmap:"-"` excludes a field, `rowmap:"name"` overrides its matching key.
const TagName = "rowmap"

// Category classifies the declared type of a property.
type Category int

const (
	// CategoryReference - strings, pointers to structs, slices, maps, interfaces, channels and funcs.
	CategoryReference Category = iota
	// CategoryNullableValue - pointers to basic types, defined basic types or time.Time.
	CategoryNullableValue
	// CategoryEnum - defined types over an integer kind (except time.Duration).
	CategoryEnum
	// CategoryPrimitiveValue - every other value type.
	CategoryPrimitiveValue
)

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case CategoryReference:
		return "reference"
	case CategoryNullableValue:
		return "nullable-value"
	case CategoryEnum:
		return "enum"
	case CategoryPrimitiveValue:
		return "primitive-value"
	default:
		return common.UnknownStr
	}
}

// CoercionStrategy describes how an untyped value is assigned to a property.
type CoercionStrategy int

const (
	// StrategyAssertOrZero - type assertion, zero value when the assertion fails.
	StrategyAssertOrZero CoercionStrategy = iota
	// StrategyNullableLift - pointer or element assertion, nil when both fail.
	StrategyNullableLift
	// StrategyEnumConvert - skip absent values, cast the underlying integer, convert otherwise.
	StrategyEnumConvert
	// StrategyValueConvert - skip absent values, assign exact types, convert otherwise.
	StrategyValueConvert
)

// String returns a human-readable strategy name.
func (s CoercionStrategy) String() string {
	switch s {
	case StrategyAssertOrZero:
		return "assert_or_zero"
	case StrategyNullableLift:
		return "nullable_lift"
	case StrategyEnumConvert:
		return "enum_convert"
	case StrategyValueConvert:
		return "value_convert"
	default:
		return common.UnknownStr
	}
}

// SkipsAbsent reports whether an absent value leaves the property untouched.
func (s CoercionStrategy) SkipsAbsent() bool {
	return s == StrategyEnumConvert || s == StrategyValueConvert
}

// Field is a field declared directly on a type, as reported by a Source.
type Field[T any] struct {
	Name     string
	Exported bool
	Embedded bool
	Index    int
	Tag      reflect.StructTag
	// Type is the declared type handle.
	Type T
	// Category is the coercion category of Type.
	Category Category
	// Base is set for embedded structs, or pointers to structs, whose fields are promoted.
	Base Source[T]
	// Pointer is true when Base is embedded through a pointer.
	Pointer bool
}

// Source exposes the members of a type to the property resolver.
type Source[T any] interface {
	// ID identifies the type; it is used to stop embedding cycles.
	ID() string
	// Fields returns the fields declared directly on the type, in declaration order.
	Fields() []Field[T]
}

// Step is one embedded base traversed to reach a promoted property.
type Step struct {
	Name     string
	Index    int
	Pointer  bool
	Exported bool
	// Owner is the ID of the type declaring the embedded field.
	Owner string
}

// OwnerPkgPath returns the package path of an ID in "pkgpath.Name" form.
func OwnerPkgPath(id string) string {
	if i := strings.LastIndex(id, "."); i >= 0 {
		return id[:i]
	}

	return ""
}

// Property is a settable property reachable on a type or one of its embedded bases.
type Property[T any] struct {
	// Name is the Go field name.
	Name string
	// Key is the upper-cased matching key.
	Key string
	// Type is the declared type handle.
	Type T
	// Category is the coercion category of Type.
	Category Category
	// Index is the field index within its declaring struct.
	Index int
	// Path lists the embedded bases traversed to reach the field, outermost first.
	Path []Step
	// Owner is the ID of the declaring type.
	Owner string
}

// Promoted reports whether the property is declared on an embedded base.
func (p Property[T]) Promoted() bool {
	return len(p.Path) > 0
}

// Selector renders the selector used to reach the property, e.g. "Person.ID".
func (p Property[T]) Selector() string {
	var sb strings.Builder
	for _, step := range p.Path {
		sb.WriteString(step.Name)
		sb.WriteString(".")
	}

	sb.WriteString(p.Name)

	return sb.String()
}

// IndexPath returns the reflect-style index chain from the target type to the field.
func (p Property[T]) IndexPath() []int {
	index := make([]int, 0, len(p.Path)+1)
	for _, step := range p.Path {
		index = append(index, step.Index)
	}

	return append(index, p.Index)
}

// TargetType describes the type a mapping unit is produced for.
type TargetType struct {
	// ID is the fully-qualified name, "pkgpath.Name".
	ID string
	// Name is the bare type name.
	Name string
	// PkgPath is the import path of the declaring package.
	PkgPath string
	// PkgName is the name of the declaring package.
	PkgName string
	// Constructible is true when instances can be created without arguments.
	Constructible bool
	// Constructor names the zero-argument New<Type> function, if any.
	Constructor string
	// ConstructorPointer is true when Constructor returns a pointer.
	ConstructorPointer bool
}

// PropertyMapping couples a resolved property with its coercion strategy.
type PropertyMapping[T any] struct {
	Property[T]
	// Strategy is the coercion rule chosen for the property's category.
	Strategy CoercionStrategy
	// Duplicate is true when an earlier property already claims Key.
	// Only the first property with a given key ever matches.
	Duplicate bool
	// Explanation describes why the strategy was chosen.
	Explanation string
}

// MappingUnit is everything needed to map values into one target type.
type MappingUnit[T any] struct {
	Target TargetType
	// Mappings lists every resolved property in resolution order.
	Mappings []PropertyMapping[T]
	// HasMaterializer is true when a bulk materializer can be produced.
	HasMaterializer bool
	// Diagnostics contains warnings and notes produced while planning.
	Diagnostics diagnostic.Diagnostics
}

// Active returns the mappings that can match a key, in resolution order.
func (u *MappingUnit[T]) Active() []PropertyMapping[T] {
	active := make([]PropertyMapping[T], 0, len(u.Mappings))
	for _, m := range u.Mappings {
		if !m.Duplicate {
			active = append(active, m)
		}
	}

	return active
}
