package match

import (
	"sort"
)

// MinSimilarity is the similarity below which a candidate is not suggested.
const MinSimilarity = 0.5

// Candidate is a known name scored against the wanted one.
type Candidate struct {
	Name  string
	Score float64
}

// Rank scores every candidate against name, best first. Ties keep the input
// order.
func Rank(name string, candidates []string) []Candidate {
	want := Normalize(name)

	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, Candidate{Name: c, Score: Similarity(want, Normalize(c))})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	return out
}

// Suggest returns the candidate closest to name, if any is close enough.
// An exact match is never suggested.
func Suggest(name string, candidates []string) (string, bool) {
	for _, c := range Rank(name, candidates) {
		if c.Name == name {
			continue
		}

		if c.Score < MinSimilarity {
			break
		}

		return c.Name, true
	}

	return "", false
}
