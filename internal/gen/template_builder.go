package gen

import (
	"fmt"
	"go/types"
	"maps"
	"slices"
	"strings"

	"rowmap-generator/internal/analyze"
	"rowmap-generator/internal/common"
	"rowmap-generator/internal/plan"
)

// templateData holds all data needed for the mapper template.
type templateData struct {
	PackageName      string
	Filename         string
	Imports          []importSpec
	TypeRef          string
	SetterName       string
	KeySetterName    string
	MaterializerName string
	HasMaterializer  bool
	NewInstance      string
	Runtime          string
	Cases            []caseData
	GenerateComments bool
	Skipped          []string
}

// caseData is one case of the key switch.
type caseData struct {
	Key     string
	Comment string
	Body    string
}

// buildTemplateData constructs the template data from a mapping unit.
func (g *Generator) buildTemplateData(unit *plan.MappingUnit[*analyze.TypeInfo]) (*templateData, error) {
	tt := unit.Target

	imports := make(map[string]importSpec)
	runtime := g.addNamedImport(imports, g.config.RuntimeImport, runtimePkgName)

	pkgName := tt.PkgName
	if pkgName == "" {
		var ok bool
		if pkgName, ok = g.getPkgName(tt.PkgPath); !ok {
			pkgName = common.PkgAlias(tt.PkgPath)
		}

		tt.PkgName = pkgName
	}

	data := &templateData{
		PackageName:      pkgName,
		Filename:         g.filename(tt.Name),
		TypeRef:          tt.Name,
		SetterName:       SetterName(tt.Name),
		KeySetterName:    keySetterName(tt.Name),
		MaterializerName: MaterializerName(tt.Name),
		HasMaterializer:  unit.HasMaterializer,
		NewInstance:      newInstanceExpr(tt),
		Runtime:          runtime,
		GenerateComments: g.config.GenerateComments,
	}

	root := g.rootType(tt)

	for _, m := range unit.Active() {
		if !reachable(m.Property, tt.PkgPath) {
			data.Skipped = append(data.Skipped, m.Selector())
			continue
		}

		body, err := g.buildCaseBody(&m, root, tt, imports, runtime)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", m.Selector(), err)
		}

		data.Cases = append(data.Cases, caseData{
			Key:     m.Key,
			Comment: m.Selector() + ": " + m.Strategy.String(),
			Body:    body,
		})
	}

	// Convert imports map to sorted slice
	for _, path := range slices.Sorted(maps.Keys(imports)) {
		data.Imports = append(data.Imports, imports[path])
	}

	return data, nil
}

// rootType finds the analyzed struct of the target, needed to type embedded pointers.
func (g *Generator) rootType(tt plan.TargetType) *analyze.TypeInfo {
	if g.graph == nil {
		return nil
	}

	return g.graph.GetType(analyze.TypeID{PkgPath: tt.PkgPath, Name: tt.Name})
}

func newInstanceExpr(tt plan.TargetType) string {
	switch {
	case tt.Constructor != "" && tt.ConstructorPointer:
		return "*" + tt.Constructor + "()"
	case tt.Constructor != "":
		return tt.Constructor + "()"
	default:
		return tt.Name + "{}"
	}
}

// reachable reports whether code in pkgPath can spell the selector of p.
// An unexported embedded field is only reachable from its declaring package.
func reachable[T any](p plan.Property[T], pkgPath string) bool {
	for _, step := range p.Path {
		if !step.Exported && plan.OwnerPkgPath(step.Owner) != pkgPath {
			return false
		}
	}

	return true
}

// allocations returns the statements that allocate nil embedded pointers on the
// way to the property.
func (g *Generator) allocations(
	p plan.Property[*analyze.TypeInfo],
	root *analyze.TypeInfo,
	imports map[string]importSpec,
) ([]string, error) {
	var (
		stmts []string
		expr  = "t"
		cur   = root
	)

	for _, step := range p.Path {
		expr += "." + step.Name

		if cur == nil {
			return nil, fmt.Errorf("embedded field %s: declaring type unknown", expr)
		}

		field := findFieldByIndex(cur, step.Index)
		if field == nil {
			return nil, fmt.Errorf("embedded field %s not found in %s", expr, cur.ID)
		}

		base, isPointer := field.Type.StructBase()

		if step.Pointer && isPointer {
			elem := g.typeRefString(field.Type.ElemType, imports)
			stmts = append(stmts, fmt.Sprintf("if %s == nil {\n%s = new(%s)\n}", expr, expr, elem))
		}

		cur = base
	}

	return stmts, nil
}

func findFieldByIndex(t *analyze.TypeInfo, index int) *analyze.FieldInfo {
	for i := range t.Fields {
		if t.Fields[i].Index == index {
			return &t.Fields[i]
		}
	}

	return nil
}

// enumBase returns the name of the predeclared integer type underlying an enum.
func enumBase(t *analyze.TypeInfo) string {
	if t != nil && t.GoType != nil {
		if b, ok := t.GoType.Underlying().(*types.Basic); ok {
			return b.Name()
		}
	}

	if t != nil && t.Underlying != nil && t.Underlying.Kind == analyze.TypeKindBasic {
		return t.Underlying.ID.Name
	}

	return "int"
}

// nullableElem returns the element type of a nullable property.
func nullableElem(t *analyze.TypeInfo) *analyze.TypeInfo {
	if t.Kind == analyze.TypeKindPointer {
		return t.ElemType
	}

	if t.Underlying != nil {
		return t.Underlying.ElemType
	}

	return nil
}

// indent prefixes every non-empty line with tabs so bodies read well before gofmt.
func indent(s string, tabs int) string {
	prefix := strings.Repeat("\t", tabs)
	lines := strings.Split(s, "\n")

	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}

	return strings.Join(lines, "\n")
}
