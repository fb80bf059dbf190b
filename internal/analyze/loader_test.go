package analyze

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storePkg = "rowmap-generator/store"

func loadStore(t *testing.T) *TypeGraph {
	t.Helper()

	graph, err := NewAnalyzer().LoadPackages(storePkg)
	require.NoError(t, err)
	require.NotNil(t, graph)

	return graph
}

func findField(t *testing.T, info *TypeInfo, name string) *FieldInfo {
	t.Helper()

	for i := range info.Fields {
		if info.Fields[i].Name == name {
			return &info.Fields[i]
		}
	}

	require.Failf(t, "field not found", "%s has no field %s", info.ID, name)

	return nil
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	graph := loadStore(t)

	// Check that packages were loaded
	require.Contains(t, graph.Packages, storePkg)
	assert.Equal(t, "store", graph.Packages[storePkg].Name)
	assert.NotEmpty(t, graph.Packages[storePkg].Dir)

	// Check that types were extracted
	assert.Contains(t, graph.Types, TypeID{PkgPath: storePkg, Name: "Order"})
	assert.Contains(t, graph.Types, TypeID{PkgPath: storePkg, Name: "Audit"})
}

func TestAnalyzer_Targets(t *testing.T) {
	graph := loadStore(t)

	names := make([]string, 0, len(graph.Targets))
	for _, target := range graph.Targets {
		names = append(names, target.ID.Name)
	}

	// Audit carries no directive
	assert.Equal(t, []string{"Customer", "Order", "OrderItem", "Product", "Session", "Shipment", "VIPCustomer"}, names)

	order, ok := graph.FindTarget("store.Order")
	require.True(t, ok)
	assert.Equal(t, "NewOrder", order.Constructor)
	assert.Zero(t, order.ConstructorParams)
	assert.Equal(t, 1, order.ConstructorResults)
	assert.True(t, order.ConstructorPointer)
	assert.Positive(t, order.Pos.Line)

	item, ok := graph.FindTarget("OrderItem")
	require.True(t, ok)
	assert.Equal(t, "NewOrderItem", item.Constructor)
	assert.Equal(t, 2, item.ConstructorParams)
	assert.False(t, item.ConstructorPointer)

	shipment, ok := graph.FindTarget("Shipment")
	require.True(t, ok)
	assert.Equal(t, "NewShipment", shipment.Constructor)
	assert.Zero(t, shipment.ConstructorParams)
	assert.Equal(t, 2, shipment.ConstructorResults)

	session, ok := graph.FindTarget(storePkg + ".Session")
	require.True(t, ok)
	assert.Equal(t, []string{"nomaterialize"}, session.Options)
	assert.True(t, session.HasOption("NoMaterialize"))
	assert.Empty(t, session.Constructor)

	_, ok = graph.FindTarget("Audit")
	assert.False(t, ok)
}

func TestAnalyzer_FieldTags(t *testing.T) {
	graph := loadStore(t)

	product := graph.GetType(TypeID{PkgPath: storePkg, Name: "Product"})
	require.NotNil(t, product)

	price := findField(t, product, "PriceCents")
	assert.Equal(t, "price_cents", price.GetTag("rowmap"))
	assert.True(t, price.HasTag("rowmap"))
	assert.False(t, findField(t, product, "SKU").HasTag("rowmap"))
}

func TestAnalyzer_EmbeddedPointer(t *testing.T) {
	graph := loadStore(t)

	order := graph.GetType(TypeID{PkgPath: storePkg, Name: "Order"})
	require.NotNil(t, order)

	audit := findField(t, order, "Audit")
	assert.True(t, audit.Embedded)
	assert.Equal(t, 0, audit.Index)
	assert.Equal(t, TypeKindPointer, audit.Type.Kind)

	base, isPointer := audit.Type.StructBase()
	require.NotNil(t, base)
	assert.True(t, isPointer)
	assert.Equal(t, "Audit", base.ID.Name)
}

func TestAnalyzer_SliceField(t *testing.T) {
	graph := loadStore(t)

	order := graph.GetType(TypeID{PkgPath: storePkg, Name: "Order"})
	require.NotNil(t, order)

	// Items should be a slice of structs
	items := findField(t, order, "Items")
	assert.Equal(t, TypeKindSlice, items.Type.Kind)
	require.NotNil(t, items.Type.ElemType)
	assert.Equal(t, TypeKindStruct, items.Type.ElemType.Kind)
}

func TestAnalyzer_PointerField(t *testing.T) {
	graph := loadStore(t)

	customer := graph.GetType(TypeID{PkgPath: storePkg, Name: "Customer"})
	require.NotNil(t, customer)

	// Address is *string
	address := findField(t, customer, "Address")
	assert.Equal(t, TypeKindPointer, address.Type.Kind)
	require.NotNil(t, address.Type.ElemType)
	assert.Equal(t, TypeKindBasic, address.Type.ElemType.Kind)
}

func TestAnalyzer_DefinedBasicTypes(t *testing.T) {
	graph := loadStore(t)

	status := graph.GetType(TypeID{PkgPath: storePkg, Name: "OrderStatus"})
	require.NotNil(t, status)
	assert.Equal(t, TypeKindAlias, status.Kind)

	priority := graph.GetType(TypeID{PkgPath: storePkg, Name: "Priority"})
	require.NotNil(t, priority)
	assert.Equal(t, TypeKindAlias, priority.Kind)
	require.NotNil(t, priority.Underlying)
	assert.Equal(t, "int8", priority.Underlying.ID.Name)
}

func TestAnalyzer_GetStruct(t *testing.T) {
	a := NewAnalyzer()
	_, err := a.LoadPackages(storePkg)
	require.NoError(t, err)

	_, err = a.GetStruct(storePkg, "Customer")
	require.NoError(t, err)

	_, err = a.GetStruct(storePkg, "Priority")
	require.Error(t, err)

	_, err = a.GetStruct(storePkg, "Missing")
	require.Error(t, err)
}

func TestFindDirective(t *testing.T) {
	src := `package p

//rowmap:generate
type A struct{}

// B is documented.
//
//rowmap:generate nomaterialize extra
type B struct{}

//rowmap:generated
type C struct{}

type (
	//rowmap:generate
	D struct{}
	E struct{}
)
`
	file, err := parser.ParseFile(token.NewFileSet(), "p.go", src, parser.ParseComments)
	require.NoError(t, err)

	got := map[string][]string{}

	for _, decl := range file.Decls {
		gen := decl.(*ast.GenDecl)
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			if opts, ok := findDirective(ts.Doc, gen.Doc, len(gen.Specs) == 1); ok {
				got[ts.Name.Name] = opts
			}
		}
	}

	assert.Equal(t, map[string][]string{
		"A": {},
		"B": {"nomaterialize", "extra"},
		"D": {},
	}, got)
}

func TestTypeID_String(t *testing.T) {
	id := TypeID{PkgPath: storePkg, Name: "Order"}
	assert.Equal(t, "rowmap-generator/store.Order", id.String())

	// Empty package path
	idNoPkg := TypeID{Name: "int"}
	assert.Equal(t, "int", idNoPkg.String())
}

func TestTypeKind_String(t *testing.T) {
	assert.Equal(t, "basic", TypeKindBasic.String())
	assert.Equal(t, "struct", TypeKindStruct.String())
	assert.Equal(t, "pointer", TypeKindPointer.String())
	assert.Equal(t, "slice", TypeKindSlice.String())
	assert.Equal(t, "map", TypeKindMap.String())
	assert.Equal(t, "alias", TypeKindAlias.String())
	assert.Equal(t, "external", TypeKindExternal.String())
	assert.Equal(t, "unknown", TypeKindUnknown.String())
}
