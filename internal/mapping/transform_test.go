package mapping

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rowmap-generator/internal/analyze"
	"rowmap-generator/internal/diagnostic"
	"rowmap-generator/internal/plan"
)

const shopPkg = "example/shop"

// shopPlan plans:
//
//	type Base struct { Name string }
//	type Item struct {
//		Base
//		ID   int64
//		NAME string
//	}
func shopPlan(t *testing.T) *plan.ResolvedMappingPlan {
	t.Helper()

	basic := func(kind types.BasicKind) *analyze.TypeInfo {
		return &analyze.TypeInfo{
			ID:     analyze.TypeID{Name: types.Typ[kind].Name()},
			Kind:   analyze.TypeKindBasic,
			GoType: types.Typ[kind],
		}
	}

	base := &analyze.TypeInfo{
		ID:   analyze.TypeID{PkgPath: shopPkg, Name: "Base"},
		Kind: analyze.TypeKindStruct,
		Fields: []analyze.FieldInfo{
			{Name: "Name", Exported: true, Index: 0, Type: basic(types.String)},
		},
	}

	item := &analyze.TypeInfo{
		ID:   analyze.TypeID{PkgPath: shopPkg, Name: "Item"},
		Kind: analyze.TypeKindStruct,
		Fields: []analyze.FieldInfo{
			{Name: "Base", Exported: true, Embedded: true, Index: 0, Type: base},
			{Name: "ID", Exported: true, Index: 1, Type: basic(types.Int64)},
			{Name: "NAME", Exported: true, Index: 2, Type: basic(types.String)},
		},
	}

	graph := analyze.NewTypeGraph()
	graph.Types[base.ID] = base
	graph.Types[item.ID] = item
	graph.Packages[shopPkg] = &analyze.PackageInfo{Path: shopPkg, Name: "shop"}

	target := analyze.Target{ID: item.ID, Constructor: "NewItem", ConstructorParams: 1}

	unit, diags := plan.PlanTarget(graph, target)
	require.NotNil(t, unit)

	p := &plan.ResolvedMappingPlan{
		Units:     []plan.MappingUnit[*analyze.TypeInfo]{*unit},
		TypeGraph: graph,
	}
	p.Diagnostics.Merge(diags)
	p.Diagnostics.Merge(unit.Diagnostics)
	p.Diagnostics.AddError(plan.CodeNotAStruct, "Status is a basic", shopPkg+".Status", "")

	return p
}

func TestFromPlan(t *testing.T) {
	mf := FromPlan(shopPlan(t))

	require.NoError(t, Validate(mf))
	require.Len(t, mf.Types, 1)

	item := mf.Types[0]
	assert.Equal(t, "example/shop.Item", item.Type)
	assert.Equal(t, "shop.Item", item.ShortName())
	assert.Equal(t, "SetItemPropertyByName", item.Setter)
	assert.Empty(t, item.Materializer)
	assert.Empty(t, item.Constructor)

	assert.Equal(t, []PropertyEntry{
		{Name: "ID", Key: "ID", Type: "int64", Category: "primitive-value", Strategy: "value_convert"},
		{Name: "NAME", Key: "NAME", Type: "string", Category: "reference", Strategy: "assert_or_zero"},
		{
			Name: "Base.Name", Key: "NAME", Type: "string", Category: "reference", Strategy: "assert_or_zero",
			Owner: "example/shop.Base", Duplicate: true,
		},
	}, item.Properties)

	var codes []string
	for _, d := range item.Diagnostics {
		codes = append(codes, d.Code)
	}

	assert.Contains(t, codes, plan.CodeConstructorArg)
	assert.Contains(t, codes, plan.CodeDuplicateKey)

	require.Len(t, mf.Diagnostics, 1)
	assert.Equal(t, DiagnosticEntry{
		Severity: diagnostic.SeverityError.String(),
		Code:     plan.CodeNotAStruct,
		Message:  "Status is a basic",
	}, mf.Diagnostics[0])
}

func TestFromPlan_RoundTrip(t *testing.T) {
	mf := FromPlan(shopPlan(t))

	data, err := Marshal(mf)
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, mf, parsed)

	res := CheckColumns(&parsed.Types[0], []string{"name", "Id"}, DefaultMinScore)
	assert.Equal(t, "NAME", res.Columns[0].Property)
	assert.Equal(t, "ID", res.Columns[1].Property)
	assert.Empty(t, res.Unassigned)
}
