package gen

import (
	"go/types"
	"strconv"

	"rowmap-generator/internal/analyze"
	"rowmap-generator/internal/common"
)

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
	// Name is the declared package name, empty when it was only guessed from Path.
	Name string
}

// Explicit reports whether the import needs its alias spelled out.
func (s importSpec) Explicit() bool {
	return s.Alias != s.Name
}

// getPkgName returns the declared name of a package in the type graph, or
// false when the package was not analyzed.
func (g *Generator) getPkgName(pkgPath string) (string, bool) {
	if g.graph != nil {
		if pkgInfo, ok := g.graph.Packages[pkgPath]; ok {
			return pkgInfo.Name, true
		}
	}

	return "", false
}

// addImport adds an import to the imports map and returns the name to qualify it with.
// Packages outside the type graph are imported under an alias derived from the path.
func (g *Generator) addImport(imports map[string]importSpec, pkgPath string) string {
	if name, ok := g.getPkgName(pkgPath); ok {
		return g.addNamedImport(imports, pkgPath, name)
	}

	return g.addImportAs(imports, pkgPath, common.PkgAlias(pkgPath), "")
}

// addNamedImport adds an import of a package whose declared name is known.
// Colliding package names get a numeric suffix.
func (g *Generator) addNamedImport(imports map[string]importSpec, pkgPath, name string) string {
	return g.addImportAs(imports, pkgPath, name, name)
}

func (g *Generator) addImportAs(imports map[string]importSpec, pkgPath, alias, name string) string {
	if pkgPath == "" || pkgPath == g.contextPkgPath {
		return ""
	}

	if imp, ok := imports[pkgPath]; ok {
		return imp.Alias
	}

	base := alias
	for i := 2; aliasTaken(imports, alias); i++ {
		alias = base + strconv.Itoa(i)
	}

	imports[pkgPath] = importSpec{
		Alias: alias,
		Path:  pkgPath,
		Name:  name,
	}

	return alias
}

func aliasTaken(imports map[string]importSpec, alias string) bool {
	for _, imp := range imports {
		if imp.Alias == alias {
			return true
		}
	}

	return false
}

// qualifier returns a types.Qualifier that records every package it qualifies.
func (g *Generator) qualifier(imports map[string]importSpec) types.Qualifier {
	return func(pkg *types.Package) string {
		return g.addNamedImport(imports, pkg.Path(), pkg.Name())
	}
}

// typeRefString returns the string representation of a type for use in generated code.
func (g *Generator) typeRefString(t *analyze.TypeInfo, imports map[string]importSpec) string {
	if t == nil {
		return common.InterfaceTypeStr
	}

	if t.GoType != nil {
		return types.TypeString(t.GoType, g.qualifier(imports))
	}

	switch t.Kind {
	case analyze.TypeKindBasic:
		return t.ID.Name

	case analyze.TypeKindPointer:
		return "*" + g.typeRefString(t.ElemType, imports)

	case analyze.TypeKindSlice:
		return "[]" + g.typeRefString(t.ElemType, imports)

	case analyze.TypeKindStruct, analyze.TypeKindExternal, analyze.TypeKindAlias:
		if t.ID.PkgPath != "" {
			// If we are generating code IN the same package as the type, omit prefix/import.
			if t.ID.PkgPath == g.contextPkgPath {
				return t.ID.Name
			}

			return g.addImport(imports, t.ID.PkgPath) + "." + t.ID.Name
		}

		return t.ID.Name

	default:
		return common.InterfaceTypeStr
	}
}
