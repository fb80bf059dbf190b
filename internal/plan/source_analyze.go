package plan

import (
	"go/types"

	"rowmap-generator/internal/analyze"
)

// AnalyzedSource adapts an analyzed struct type to the property resolver.
type AnalyzedSource struct {
	Type *analyze.TypeInfo
}

// NewAnalyzedSource wraps an analyzed struct type.
func NewAnalyzedSource(t *analyze.TypeInfo) *AnalyzedSource {
	return &AnalyzedSource{Type: t}
}

// ID implements Source.
func (s *AnalyzedSource) ID() string {
	if s.Type.IsNamed() {
		return s.Type.ID.String()
	}

	return types.TypeString(s.Type.GoType, nil)
}

// Fields implements Source.
func (s *AnalyzedSource) Fields() []Field[*analyze.TypeInfo] {
	fields := make([]Field[*analyze.TypeInfo], 0, len(s.Type.Fields))

	for _, f := range s.Type.Fields {
		field := Field[*analyze.TypeInfo]{
			Name:     f.Name,
			Exported: f.Exported,
			Embedded: f.Embedded,
			Index:    f.Index,
			Tag:      f.Tag,
			Type:     f.Type,
			Category: CategoryOfType(f.Type.GoType),
		}

		if f.Embedded {
			if base, isPointer := f.Type.StructBase(); base != nil {
				field.Base = NewAnalyzedSource(base)
				field.Pointer = isPointer
			}
		}

		fields = append(fields, field)
	}

	return fields
}

// CategoryOfType classifies a go/types type.
func CategoryOfType(t types.Type) Category {
	if t == nil {
		return CategoryReference
	}

	t = types.Unalias(t)

	switch u := t.Underlying().(type) {
	case *types.Basic:
		return basicCategory(t, u)

	case *types.Pointer:
		if nullableElem(u.Elem()) {
			return CategoryNullableValue
		}

		return CategoryReference

	case *types.Struct, *types.Array:
		return CategoryPrimitiveValue

	default:
		// Slices, maps, interfaces, channels, funcs
		return CategoryReference
	}
}

func basicCategory(t types.Type, u *types.Basic) Category {
	_, named := t.(*types.Named)

	switch {
	case u.Info()&types.IsString != 0:
		if named {
			return CategoryPrimitiveValue
		}

		return CategoryReference

	case u.Info()&types.IsInteger != 0 && named && !isNamedType(t, "time", "Duration"):
		return CategoryEnum

	case u.Kind() == types.UnsafePointer:
		return CategoryReference

	default:
		return CategoryPrimitiveValue
	}
}

// nullableElem reports whether a pointer to elem is a nullable value.
func nullableElem(elem types.Type) bool {
	elem = types.Unalias(elem)
	if isNamedType(elem, "time", "Time") {
		return true
	}

	u, ok := elem.Underlying().(*types.Basic)

	return ok && u.Kind() != types.UnsafePointer
}

func isNamedType(t types.Type, pkgPath, name string) bool {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return false
	}

	return named.Obj().Pkg().Path() == pkgPath && named.Obj().Name() == name
}
