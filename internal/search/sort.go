package search

import "sort"

// SortResults sorts results by score (descending). Equal scores keep their
// relative order.
func SortResults(results []ScoredPage) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}
