package fault

import (
	"sort"

	"github.com/agext/levenshtein"
)

// maxHintDistance bounds how different a candidate may be and still be offered.
const maxHintDistance = 2

// Suggest returns the candidate closest to name, or "" when none is close.
// Ties resolve to the lexically smallest candidate.
func Suggest(name string, candidates []string) string {
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)

	best, bestDist := "", maxHintDistance+1
	for _, c := range sorted {
		if c == name {
			continue
		}
		if d := levenshtein.Distance(name, c, nil); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
