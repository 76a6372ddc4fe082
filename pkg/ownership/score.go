// Package ownership attributes line ownership of files and directory
// subtrees to authors, based on a single blame snapshot of the repository.
// Scores are exact integer fractions so that aggregation up the tree stays
// associative; division happens only at query and render time.
package ownership

import "sort"

// Score is an immutable line-weighted attribution value: Lines out of Total
// lines of a path belong to one author. Path records where the score was
// computed and carries no ownership semantics of its own.
type Score struct {
	Path  string
	Lines int
	Total int
}

// Fraction returns Lines/Total, or 0 for an empty denominator.
func (s Score) Fraction() float64 {
	if s.Total == 0 {
		return 0
	}

	return float64(s.Lines) / float64(s.Total)
}

// Ownership binds an author identity to a score. Identities are the exact
// strings reported by blame; consolidation of aliases is assumed done
// upstream, if at all.
type Ownership struct {
	Author string
	Score  Score
}

// OwnershipSet is the attribution result for one path: owners sorted by
// descending fraction, ties broken by author ascending so that output is
// reproducible across runs.
type OwnershipSet struct {
	Path   string
	Total  int
	Owners []Ownership
}

// IsEmpty reports whether the set attributes no lines at all.
func (s OwnershipSet) IsEmpty() bool {
	return len(s.Owners) == 0
}

// Owner returns the ownership entry for the given author identity.
func (s OwnershipSet) Owner(author string) (Ownership, bool) {
	for _, owner := range s.Owners {
		if owner.Author == author {
			return owner, true
		}
	}

	return Ownership{}, false
}

// NewOwnershipSet builds a sorted set from per-author line counts. The
// denominator is the sum of all counts, so owner fractions sum to 1 for any
// non-empty set.
func NewOwnershipSet(path string, lines map[string]int) OwnershipSet {
	total := 0
	for _, count := range lines {
		total += count
	}

	owners := make([]Ownership, 0, len(lines))
	for author, count := range lines {
		owners = append(owners, Ownership{
			Author: author,
			Score:  Score{Path: path, Lines: count, Total: total},
		})
	}

	sortOwners(owners)

	return OwnershipSet{Path: path, Total: total, Owners: owners}
}

// sortOwners orders by fraction descending, then author ascending. All
// owners in one set share a denominator, so comparing numerators avoids
// float comparisons entirely.
func sortOwners(owners []Ownership) {
	sort.Slice(owners, func(i, j int) bool {
		if owners[i].Score.Lines != owners[j].Score.Lines {
			return owners[i].Score.Lines > owners[j].Score.Lines
		}

		return owners[i].Author < owners[j].Author
	})
}
