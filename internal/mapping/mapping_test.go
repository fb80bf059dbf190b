package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderYAML = `version: "1"
types:
  - type: rowmap-generator/store.Order
    package: store
    setter: SetOrderPropertyByName
    materializer: MaterializeOrder
    constructor: NewOrder
    properties:
      - name: ID
        key: ID
        type: int64
        category: primitive-value
        strategy: value_convert
      - name: CustomerID
        key: CUSTOMERID
        type: int64
        category: primitive-value
        strategy: value_convert
      - name: Status
        key: STATUS
        type: OrderStatus
        category: reference
        strategy: assert_or_zero
      - name: Audit.CreatedAt
        key: CREATEDAT
        type: time.Time
        category: primitive-value
        strategy: value_convert
        owner: rowmap-generator/store.Audit
      - name: Audit.Status
        key: STATUS
        type: string
        category: reference
        strategy: assert_or_zero
        owner: rowmap-generator/store.Audit
        duplicate: true
`

func TestParse(t *testing.T) {
	mf, err := Parse([]byte(orderYAML))
	require.NoError(t, err)

	require.Len(t, mf.Types, 1)
	tm := mf.Types[0]

	assert.Equal(t, "store.Order", tm.ShortName())
	assert.Equal(t, "MaterializeOrder", tm.Materializer)
	assert.Len(t, tm.Properties, 5)
	assert.True(t, tm.Properties[4].Duplicate)
	assert.Equal(t, "rowmap-generator/store.Audit", tm.Properties[3].Owner)
}

func TestParse_DefaultVersion(t *testing.T) {
	mf, err := Parse([]byte("types: []\n"))
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, mf.Version)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "unknown strategy",
			yaml: `types:
  - type: a.T
    properties:
      - {name: X, key: X, type: int, category: primitive-value, strategy: guess}
`,
		},
		{
			name: "lower-case key",
			yaml: `types:
  - type: a.T
    properties:
      - {name: X, key: x, type: int, category: primitive-value, strategy: value_convert}
`,
		},
		{
			name: "unmarked duplicate",
			yaml: `types:
  - type: a.T
    properties:
      - {name: X, key: X, type: int, category: primitive-value, strategy: value_convert}
      - {name: Base.X, key: X, type: int, category: primitive-value, strategy: value_convert}
`,
		},
		{
			name: "missing type",
			yaml: "types:\n  - setter: SetT\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.ErrorIs(t, err, ErrInvalidMapping)
		})
	}

	_, err := Parse([]byte("types: ["))
	require.Error(t, err)
}

func TestWriteFile_LoadFile(t *testing.T) {
	mf, err := Parse([]byte(orderYAML))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "order.yaml")
	require.NoError(t, WriteFile(mf, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, mf, loaded)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindType(t *testing.T) {
	mf, err := Parse([]byte(orderYAML))
	require.NoError(t, err)

	for _, name := range []string{"rowmap-generator/store.Order", "store.Order", "Order"} {
		tm, ok := mf.FindType(name)
		require.True(t, ok, name)
		assert.Equal(t, "rowmap-generator/store.Order", tm.Type)
	}

	_, ok := mf.FindType("Customer")
	assert.False(t, ok)
}

func TestCheckColumns(t *testing.T) {
	mf, err := Parse([]byte(orderYAML))
	require.NoError(t, err)

	res := CheckColumns(&mf.Types[0], []string{"id", "STATUS", "customer_id", "comment"}, DefaultMinScore)

	assert.Equal(t, []ColumnResult{
		{Column: "id", Status: ColumnMatched, Property: "ID", Strategy: "value_convert"},
		{Column: "STATUS", Status: ColumnMatched, Property: "Status", Strategy: "assert_or_zero"},
		{Column: "customer_id", Status: ColumnIgnored, Suggestion: "CustomerID"},
		{Column: "comment", Status: ColumnIgnored},
	}, res.Columns)

	assert.Equal(t, []string{"CustomerID", "Audit.CreatedAt"}, res.Unassigned)
	assert.Len(t, res.Ignored(), 2)
}
