package analyze

import (
	"go/types"

	"rowmap-generator/internal/common"
)

// TypeStringer renders TypeInfo values for reports, qualifying named types by
// package name rather than import path.
type TypeStringer struct {
	// Local is the package path whose types are printed unqualified.
	Local string
}

// NewTypeStringer creates a new TypeStringer for types seen from package local.
func NewTypeStringer(local string) *TypeStringer {
	return &TypeStringer{Local: local}
}

// TypeString returns a human-readable string representation of a TypeInfo.
func (s *TypeStringer) TypeString(t *TypeInfo) string {
	if t == nil {
		return "<nil>"
	}

	if t.GoType != nil {
		return types.TypeString(t.GoType, s.qualify)
	}

	switch t.Kind {
	case TypeKindBasic:
		return t.ID.Name

	case TypeKindPointer:
		return "*" + s.TypeString(t.ElemType)

	case TypeKindSlice:
		return "[]" + s.TypeString(t.ElemType)

	case TypeKindStruct, TypeKindAlias, TypeKindExternal:
		if t.IsNamed() {
			return s.named(t.ID)
		}

		if t.Kind == TypeKindStruct {
			return "struct{...}"
		}

		return s.TypeString(t.Underlying)

	default:
		return "<unknown>"
	}
}

func (s *TypeStringer) named(id TypeID) string {
	if id.PkgPath == "" || id.PkgPath == s.Local {
		return id.Name
	}

	return common.PkgAlias(id.PkgPath) + "." + id.Name
}

func (s *TypeStringer) qualify(pkg *types.Package) string {
	if pkg.Path() == s.Local {
		return ""
	}

	return pkg.Name()
}
