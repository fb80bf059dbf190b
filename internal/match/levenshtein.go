package match

// Levenshtein returns the number of single-rune insertions, deletions and
// substitutions needed to turn a into b.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	// Keep the row as short as the shorter input.
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	if len(ra) == 0 {
		return len(rb)
	}

	row := make([]int, len(ra)+1)
	for i := range row {
		row[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		diag := row[0]
		row[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			next := min(row[i]+1, row[i-1]+1, diag+cost)
			diag, row[i] = row[i], next
		}
	}

	return row[len(ra)]
}

// Ratio turns the edit distance into a similarity between 0 (nothing in common)
// and 1 (equal).
func Ratio(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}

	return 1 - float64(Levenshtein(a, b))/float64(longest)
}

// Similarity compares a column name with a property name: the better of the
// Ratio of their normalized forms and the Ratio of their stems.
func Similarity(column, property string) float64 {
	return max(
		Ratio(NormalizeColumn(column), NormalizeColumn(property)),
		Ratio(NormalizeColumnStem(column), NormalizeColumnStem(property)),
	)
}
