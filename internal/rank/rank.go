// Package rank selects and orders repository files for context inclusion.
//
// A raw tree listing passes through three pure stages: the exclusion
// filter discards files that can never be useful (binary, huge, generated,
// locked), the scorer assigns each survivor a priority (lower is more
// important), and the selector produces a deterministic total order on
// (score, depth, path). Everything downstream depends on that order being
// stable for identical inputs.
package rank

import "sort"

// FileEntry is one record from a repository tree listing.
type FileEntry struct {
	Path string
	Size int
}

// Candidate is a FileEntry that survived the exclusion filter.
type Candidate struct {
	FileEntry
	Score int
	Depth int
}

// Order filters, scores, and sorts a tree listing into fetch priority
// order. The sort key (score, depth, path) is total, so identical input
// always yields identical output.
func Order(entries []FileEntry, maxBytes int) []Candidate {
	candidates := make([]Candidate, 0, len(entries))
	for _, e := range entries {
		if !Keep(e.Path, e.Size, maxBytes) {
			continue
		}
		candidates = append(candidates, Candidate{
			FileEntry: e,
			Score:     Score(e.Path),
			Depth:     Depth(e.Path),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score != b.Score {
			return a.Score < b.Score
		}
		if a.Depth != b.Depth {
			return a.Depth < b.Depth
		}
		return a.Path < b.Path
	})

	return candidates
}
