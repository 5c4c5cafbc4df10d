// internal/pairs/pairs.go

// Package pairs enumerates the unordered index pairs of an all-vs-all run.
package pairs

// Count returns the number of unordered pairs over n items: n*(n-1)/2.
func Count(n int) int {
	return n * (n - 1) / 2
}

// ForEachPair calls visit for every unordered pair (i, j) with i < j,
// exactly once per pair, in lexicographic index order. Self-pairs are
// excluded; callers handle self-hits separately. Enumeration stops at the
// first visit error, which is returned.
func ForEachPair(n int, visit func(i, j int) error) error {
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if err := visit(i, j); err != nil {
				return err
			}
		}
	}
	return nil
}
