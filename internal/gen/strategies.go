package gen

import (
	"fmt"
	"go/types"
	"strings"

	"rowmap-generator/internal/analyze"
	"rowmap-generator/internal/plan"
)

// buildCaseBody renders the statements of one switch case according to the
// coercion strategy of m.
func (g *Generator) buildCaseBody(
	m *plan.PropertyMapping[*analyze.TypeInfo],
	root *analyze.TypeInfo,
	tt plan.TargetType,
	imports map[string]importSpec,
	runtime string,
) (string, error) {
	allocs, err := g.allocations(m.Property, root, imports)
	if err != nil {
		return "", err
	}

	target := "t." + m.Selector()
	typ := g.typeRefString(m.Type, imports)

	var sb strings.Builder

	if m.Strategy.SkipsAbsent() {
		sb.WriteString("if value == nil {\nreturn nil\n}\n")
	}

	for _, a := range allocs {
		sb.WriteString(a)
		sb.WriteString("\n")
	}

	fieldErr := fmt.Sprintf("return %s.NewFieldError(%q, %q, value, err)",
		runtime, tt.PkgName+"."+tt.Name, m.Selector())

	switch m.Strategy {
	case plan.StrategyAssertOrZero:
		g.applyAssertOrZero(&sb, target, typ)

	case plan.StrategyNullableLift:
		elem, ok := g.nullableElemString(m.Type, imports)
		if !ok {
			return "", fmt.Errorf("nullable property of type %s has no element type", typ)
		}

		g.applyNullableLift(&sb, target, typ, elem)

	case plan.StrategyEnumConvert:
		g.applyEnumConvert(&sb, target, typ, enumBase(m.Type), runtime, fieldErr)

	case plan.StrategyValueConvert:
		g.applyValueConvert(&sb, target, typ, runtime, fieldErr)
	}

	return indent(strings.TrimSuffix(sb.String(), "\n"), 2), nil
}

func (g *Generator) nullableElemString(t *analyze.TypeInfo, imports map[string]importSpec) (string, bool) {
	if elem := nullableElem(t); elem != nil {
		return g.typeRefString(elem, imports), true
	}

	if t.GoType != nil {
		if ptr, ok := t.GoType.Underlying().(*types.Pointer); ok {
			return types.TypeString(ptr.Elem(), g.qualifier(imports)), true
		}
	}

	return "", false
}

// applyAssertOrZero assigns the value when it has the declared type and the zero value otherwise.
func (g *Generator) applyAssertOrZero(sb *strings.Builder, target, typ string) {
	fmt.Fprintf(sb, "v, _ := value.(%s)\n", typ)
	fmt.Fprintf(sb, "%s = v\n", target)
}

// applyNullableLift accepts the pointer or its element and stores nil otherwise.
func (g *Generator) applyNullableLift(sb *strings.Builder, target, typ, elem string) {
	sb.WriteString("switch v := value.(type) {\n")
	fmt.Fprintf(sb, "case %s:\n%s = v\n", typ, target)
	fmt.Fprintf(sb, "case %s:\n%s = &v\n", elem, target)
	fmt.Fprintf(sb, "default:\n%s = nil\n", target)
	sb.WriteString("}\n")
}

// applyEnumConvert casts the enum or its underlying integer and converts anything else
// through the underlying integer.
func (g *Generator) applyEnumConvert(sb *strings.Builder, target, typ, base, runtime, fieldErr string) {
	sb.WriteString("switch v := value.(type) {\n")
	fmt.Fprintf(sb, "case %s:\n%s = v\n", typ, target)
	fmt.Fprintf(sb, "case %s:\n%s = %s(v)\n", base, target, typ)
	sb.WriteString("default:\n")
	fmt.Fprintf(sb, "n, err := %s.Convert[%s](value)\n", runtime, base)
	fmt.Fprintf(sb, "if err != nil {\n%s\n}\n", fieldErr)
	fmt.Fprintf(sb, "%s = %s(n)\n", target, typ)
	sb.WriteString("}\n")
}

// applyValueConvert converts the value to the declared type.
func (g *Generator) applyValueConvert(sb *strings.Builder, target, typ, runtime, fieldErr string) {
	fmt.Fprintf(sb, "v, err := %s.Convert[%s](value)\n", runtime, typ)
	fmt.Fprintf(sb, "if err != nil {\n%s\n}\n", fieldErr)
	fmt.Fprintf(sb, "%s = v\n", target)
}
