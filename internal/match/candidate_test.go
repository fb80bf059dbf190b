package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankCandidates(t *testing.T) {
	properties := []string{"CustomerID", "CustomerName", "CreatedAt", "Total"}

	candidates := RankCandidates("customer_ident", properties)
	require.Len(t, candidates, len(properties))

	best := candidates.Best()
	require.NotNil(t, best)
	assert.Equal(t, "CustomerID", best.Property)
	assert.Equal(t, "customerident", best.NormalizedColumn)

	for i := 1; i < len(candidates); i++ {
		assert.GreaterOrEqual(t, candidates[i-1].Score, candidates[i].Score)
	}
}

func TestRankCandidates_TieBreaksByName(t *testing.T) {
	candidates := RankCandidates("zzz", []string{"Bbb", "Aaa"})

	require.Len(t, candidates, 2)
	assert.Equal(t, "Aaa", candidates[0].Property)
	assert.True(t, candidates.IsAmbiguous(0.01))
}

func TestCandidateList_Filters(t *testing.T) {
	candidates := CandidateList{
		{Property: "A", Score: 0.9},
		{Property: "B", Score: 0.5},
		{Property: "C", Score: 0.1},
	}

	assert.Len(t, candidates.Top(2), 2)
	assert.Len(t, candidates.Top(10), 3)
	assert.Len(t, candidates.AboveThreshold(0.5), 2)
	assert.Nil(t, CandidateList{}.Best())

	require.NotNil(t, candidates.HighConfidence(0.8, 0.2))
	assert.Nil(t, candidates.HighConfidence(0.95, 0.2))
	assert.Nil(t, CandidateList{{Score: 0.9}, {Score: 0.88}}.HighConfidence(0.5, 0.1))
}

func TestSuggest(t *testing.T) {
	properties := []string{"ID", "FullName", "Role", "CreatedAt"}

	got, ok := Suggest("full_nme", properties, 0.6)
	require.True(t, ok)
	assert.Equal(t, "FullName", got)

	_, ok = Suggest("completely_unrelated", properties, 0.6)
	assert.False(t, ok)
}
