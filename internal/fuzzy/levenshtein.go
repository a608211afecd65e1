// Package fuzzy resolves item names that were typed without a group.
package fuzzy

// Distance returns the Levenshtein distance between a and b, counting
// insertions, deletions and substitutions of Unicode code points at unit
// cost. It keeps a single row of costs sized by the shorter string.
func Distance(a, b string) int {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	row := make([]int, len(ra)+1)
	for i := range row {
		row[i] = i
	}
	for j := 1; j <= len(rb); j++ {
		diag := row[0]
		row[0] = j
		for i := 1; i <= len(ra); i++ {
			above := row[i]
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			row[i] = min(above+1, row[i-1]+1, diag+cost)
			diag = above
		}
	}
	return row[len(ra)]
}
