package search

// Level bounds how aggressively the Driver enumerates candidate rank
// pairs. Zero means unrestricted (every rank pair is tried); a positive
// level restricts enumeration to a window of ranks around each source
// position, trading completeness of the neighborhood for speed on large
// instances. Termination is guaranteed regardless of level: a smaller
// window can only ever find fewer improving moves, never loop forever.
type Level int

// Unrestricted enumerates every candidate rank pair for every operator.
const Unrestricted Level = 0

// window returns up to 2*l+1 candidate ranks spread across [0, size), with
// the first and last rank always included so boundary behavior (start/end
// adjacency) is never skipped.
func (l Level) window(size int) []int {
	if l <= 0 || size <= int(l)*2+1 {
		ranks := make([]int, size)
		for i := range ranks {
			ranks[i] = i
		}
		return ranks
	}
	n := int(l)*2 + 1
	ranks := make([]int, 0, n)
	seen := make(map[int]bool, n)
	add := func(r int) {
		if !seen[r] {
			seen[r] = true
			ranks = append(ranks, r)
		}
	}
	add(0)
	add(size - 1)
	step := size / n
	if step < 1 {
		step = 1
	}
	for r := 0; r < size && len(ranks) < n; r += step {
		add(r)
	}
	return ranks
}
