package plan

import (
	"go/types"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rowmap-generator/internal/analyze"
)

type Role int

type Audit struct {
	CreatedAt time.Time
	UpdatedBy string
	Version   int
}

type Person struct {
	ID    int
	Name  string
	Role  Role
	notes string
}

type Employee struct {
	Person
	*Audit
	Name   string // shadows Person.Name
	Salary *float64
}

type Renamed struct {
	ID     int    `rowmap:"person_id"`
	Secret string `rowmap:"-"`
	Label  string `rowmap:",omitempty"`
}

type CaseTwin struct {
	Code string
	Base
}

type Base struct {
	CODE string
	Note string
}

type Cyclic struct {
	*Cyclic
	Value int
}

type deepCode struct {
	Code string
}

type Outer struct {
	deepCode
}

type Inner struct {
	Code string
}

// Multi promotes Code from two bases at different depths.
type Multi struct {
	Outer
	Inner
}

type Excluding struct {
	Base
	Note string `rowmap:"-"`
}

type hidden struct {
	Promoted int
}

type WithHidden struct {
	hidden
	*hiddenPtr
	Own string
}

type hiddenPtr struct {
	Unreachable int
}

func names[T any](props []Property[T]) []string {
	out := make([]string, 0, len(props))
	for _, p := range props {
		out = append(out, p.Selector())
	}

	return out
}

func TestResolve_OwnFields(t *testing.T) {
	props := Resolve[reflect.Type](NewReflectSource(reflect.TypeFor[Person]()))

	assert.Equal(t, []string{"ID", "Name", "Role"}, names(props))
	assert.Equal(t, "ID", props[0].Key)
	assert.Equal(t, "NAME", props[1].Key)
	assert.Equal(t, CategoryPrimitiveValue, props[0].Category)
	assert.Equal(t, CategoryReference, props[1].Category)
	assert.Equal(t, CategoryEnum, props[2].Category)
	assert.False(t, props[0].Promoted())
}

func TestResolve_DerivedFirstWithShadowing(t *testing.T) {
	props := Resolve[reflect.Type](NewReflectSource(reflect.TypeFor[Employee]()))

	assert.Equal(t, []string{
		"Name", "Salary",
		"Person.ID", "Person.Role",
		"Audit.CreatedAt", "Audit.UpdatedBy", "Audit.Version",
	}, names(props))

	salary := props[1]
	assert.Equal(t, CategoryNullableValue, salary.Category)

	version := props[6]
	require.Len(t, version.Path, 1)
	assert.True(t, version.Path[0].Pointer)
	assert.Equal(t, []int{1, 2}, version.IndexPath())
	assert.Equal(t, "rowmap-generator/internal/plan.Audit", version.Owner)
}

func TestResolve_Tags(t *testing.T) {
	props := Resolve[reflect.Type](NewReflectSource(reflect.TypeFor[Renamed]()))

	require.Len(t, props, 2)
	assert.Equal(t, "ID", props[0].Name)
	assert.Equal(t, "PERSON_ID", props[0].Key)
	assert.Equal(t, "LABEL", props[1].Key)
}

func TestResolve_CaseTwinsAreKept(t *testing.T) {
	props := Resolve[reflect.Type](NewReflectSource(reflect.TypeFor[CaseTwin]()))

	assert.Equal(t, []string{"Code", "Base.CODE", "Base.Note"}, names(props))
	assert.Equal(t, props[0].Key, props[1].Key)
}

func TestResolve_ShallowestDeclarationWins(t *testing.T) {
	props := Resolve[reflect.Type](NewReflectSource(reflect.TypeFor[Multi]()))

	require.Equal(t, []string{"Inner.Code"}, names(props))
	assert.Equal(t, []int{1, 0}, props[0].IndexPath())
	assert.Equal(t, "rowmap-generator/internal/plan.Inner", props[0].Owner)
}

func TestResolve_ExcludedFieldStillShadows(t *testing.T) {
	props := Resolve[reflect.Type](NewReflectSource(reflect.TypeFor[Excluding]()))

	assert.Equal(t, []string{"Base.CODE"}, names(props))
}

func TestResolve_CycleTerminates(t *testing.T) {
	props := Resolve[reflect.Type](NewReflectSource(reflect.TypeFor[Cyclic]()))

	assert.Equal(t, []string{"Value"}, names(props))
}

func TestResolve_UnexportedBases(t *testing.T) {
	props := Resolve[reflect.Type](NewReflectSource(reflect.TypeFor[WithHidden]()))

	assert.Equal(t, []string{"Own", "hidden.Promoted"}, names(props))
}

func TestResolve_Empty(t *testing.T) {
	props := Resolve[reflect.Type](NewReflectSource(reflect.TypeFor[struct{ x int }]()))

	assert.Empty(t, props)
}

// basicTypeInfo creates a TypeInfo for a predeclared basic type.
func basicTypeInfo(kind types.BasicKind) *analyze.TypeInfo {
	return &analyze.TypeInfo{
		ID:     analyze.TypeID{Name: types.Typ[kind].Name()},
		Kind:   analyze.TypeKindBasic,
		GoType: types.Typ[kind],
	}
}

func TestResolve_AnalyzedSource(t *testing.T) {
	pkg := types.NewPackage("example/store", "store")
	roleObj := types.NewTypeName(0, pkg, "Role", nil)
	roleType := types.NewNamed(roleObj, types.Typ[types.Int], nil)

	base := &analyze.TypeInfo{
		ID:   analyze.TypeID{PkgPath: "example/store", Name: "Base"},
		Kind: analyze.TypeKindStruct,
		Fields: []analyze.FieldInfo{
			{Name: "ID", Exported: true, Type: basicTypeInfo(types.Int64), Index: 0},
			{Name: "Name", Exported: true, Type: basicTypeInfo(types.String), Index: 1},
		},
	}

	derived := &analyze.TypeInfo{
		ID:   analyze.TypeID{PkgPath: "example/store", Name: "User"},
		Kind: analyze.TypeKindStruct,
		Fields: []analyze.FieldInfo{
			{Name: "Base", Exported: true, Embedded: true, Type: base, Index: 0},
			{Name: "Name", Exported: true, Type: basicTypeInfo(types.String), Index: 1},
			{Name: "Role", Exported: true, Index: 2, Type: &analyze.TypeInfo{
				ID:     analyze.TypeID{PkgPath: "example/store", Name: "Role"},
				Kind:   analyze.TypeKindAlias,
				GoType: roleType,
			}},
			{Name: "internal", Exported: false, Type: basicTypeInfo(types.String), Index: 3},
		},
	}

	props := Resolve[*analyze.TypeInfo](NewAnalyzedSource(derived))

	assert.Equal(t, []string{"Name", "Role", "Base.ID"}, names(props))
	assert.Equal(t, CategoryEnum, props[1].Category)
	assert.Equal(t, "example/store.Base", props[2].Owner)
	assert.Equal(t, []int{0, 0}, props[2].IndexPath())
}
