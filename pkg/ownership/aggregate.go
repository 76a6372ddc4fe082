package ownership

// Aggregate combines child ownership sets (files, or subdirectories already
// aggregated) into one parent-level set. Per-author numerators are summed
// across children, with an author absent from a child contributing zero, and
// the parent denominator is the sum of child denominators.
//
// The operation is commutative and associative: aggregating a flat list of
// files equals aggregating any partition of that list into groups followed
// by aggregating the group results. Children with zero tracked lines are
// valid inputs; no division happens here.
func Aggregate(path string, children ...OwnershipSet) OwnershipSet {
	lines := make(map[string]int)

	for _, child := range children {
		for _, owner := range child.Owners {
			lines[owner.Author] += owner.Score.Lines
		}
	}

	// Every line of every child is attributed to exactly one author, so the
	// summed numerators already equal the summed denominators.
	return NewOwnershipSet(path, lines)
}
