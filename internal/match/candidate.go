package match

import (
	"sort"
)

// Candidate is a property a column name could have been meant for.
type Candidate struct {
	Column   string
	Property string

	// Score is the Similarity of the two names (0-1, higher is better).
	Score float64

	// Metadata for debugging/explanation
	NormalizedColumn   string
	NormalizedProperty string
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankCandidates ranks properties by how closely their names resemble column.
// Returns candidates sorted by score (descending).
func RankCandidates(column string, properties []string) CandidateList {
	candidates := make(CandidateList, 0, len(properties))
	columnNorm := NormalizeColumn(column)

	for _, property := range properties {
		candidates = append(candidates, Candidate{
			Column:             column,
			Property:           property,
			Score:              Similarity(column, property),
			NormalizedColumn:   columnNorm,
			NormalizedProperty: NormalizeColumn(property),
		})
	}

	// Sort by score (descending), then by name for determinism
	sort.Sort(candidates)

	return candidates
}

// Suggest returns the property column most likely refers to, if one is a
// clear winner with at least minScore.
func Suggest(column string, properties []string, minScore float64) (string, bool) {
	best := RankCandidates(column, properties).HighConfidence(minScore, minGap)
	if best == nil {
		return "", false
	}

	return best.Property, true
}

// minGap is the score lead the best candidate needs over the runner-up.
const minGap = 0.05

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by property name for determinism.
func (c CandidateList) Less(i, j int) bool {
	// Higher score comes first
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}
	// Tie-breaker: alphabetical by property name
	return c[i].Property < c[j].Property
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}
	return c[:n]
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}
	return &c[0]
}

// IsAmbiguous returns true if the top two candidates are within the threshold.
func (c CandidateList) IsAmbiguous(threshold float64) bool {
	if len(c) < 2 {
		return false
	}
	diff := c[0].Score - c[1].Score
	return diff < threshold
}

// AboveThreshold returns candidates with score above the threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList
	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}
	return result
}

// HighConfidence returns the best candidate if it's significantly better than alternatives.
// Returns nil if no clear winner exists.
func (c CandidateList) HighConfidence(minScore, minGap float64) *Candidate {
	best := c.Best()
	if best == nil || best.Score < minScore {
		return nil
	}

	if c.IsAmbiguous(minGap) {
		return nil
	}

	return best
}
