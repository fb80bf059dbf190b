package analyze

import (
	"go/token"
	"go/types"
	"reflect"
	"strings"

	"rowmap-generator/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "rowmap-generator/store"
	Name    string // e.g., "Person"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown  TypeKind = iota
	TypeKindBasic             // int, string, bool, etc.
	TypeKindStruct            // struct type
	TypeKindPointer           // pointer to another type
	TypeKindSlice             // slice of another type
	TypeKindArray             // array of another type
	TypeKindMap               // map type
	TypeKindAlias             // named type wrapping a non-struct type
	TypeKindExternal          // external/opaque type (e.g., time.Time)
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindAlias:
		return "alias"
	case TypeKindExternal:
		return "external"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes a Go type in the type graph.
type TypeInfo struct {
	ID         TypeID      // Unique identifier (empty for unnamed types like *T or []T)
	Kind       TypeKind    // Kind of type
	Underlying *TypeInfo   // For named types, the underlying type
	ElemType   *TypeInfo   // For pointers, slices, arrays and maps, the element type
	Fields     []FieldInfo // For structs, the list of fields
	GoType     types.Type  // The original go/types.Type
}

// IsNamed returns true if this type has a name (TypeID is set).
func (t *TypeInfo) IsNamed() bool {
	return t.ID.Name != ""
}

// StructBase returns the struct reached through t, following at most one pointer.
// It returns nil when t is neither a struct nor a pointer to a struct.
func (t *TypeInfo) StructBase() (*TypeInfo, bool) {
	if t == nil {
		return nil, false
	}

	switch t.Kind {
	case TypeKindStruct:
		return t, false
	case TypeKindPointer:
		if t.ElemType != nil && t.ElemType.Kind == TypeKindStruct {
			return t.ElemType, true
		}
	}

	return nil, false
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     *TypeInfo         // Field type
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
}

// HasTag returns true if the field has the specified tag.
func (f *FieldInfo) HasTag(key string) bool {
	return f.Tag.Get(key) != ""
}

// GetTag returns the value of the specified tag.
func (f *FieldInfo) GetTag(key string) string {
	return f.Tag.Get(key)
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
	// Targets lists the types marked with the generate directive, sorted by TypeID.
	Targets []Target
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// FindTarget looks a target up by "pkgname.Type", "pkg/path.Type" or bare "Type".
func (g *TypeGraph) FindTarget(name string) (Target, bool) {
	for _, t := range g.Targets {
		if t.ID.String() == name || t.ID.Name == name {
			return t, true
		}

		if pkg, ok := g.Packages[t.ID.PkgPath]; ok && pkg.Name+"."+t.ID.Name == name {
			return t, true
		}
	}

	return Target{}, false
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Dir   string   // Directory holding the package sources
	Types []TypeID // Named types defined in this package
}

// Target is a type marked for mapping generation.
type Target struct {
	ID TypeID
	// Options are the words following the directive, e.g. "nomaterialize".
	Options []string
	// Constructor is the name of a package-level New<Type> function, if one exists.
	Constructor string
	// ConstructorParams is the number of parameters Constructor takes.
	ConstructorParams int
	// ConstructorResults is the number of values Constructor returns.
	ConstructorResults int
	// ConstructorPointer is true when Constructor returns *Type.
	ConstructorPointer bool
	// Pos is the position of the type declaration.
	Pos token.Position
}

// HasOption reports whether the directive carries the given option.
func (t Target) HasOption(name string) bool {
	for _, opt := range t.Options {
		if strings.EqualFold(opt, name) {
			return true
		}
	}

	return false
}
