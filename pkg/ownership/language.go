package ownership

import (
	"path"
	"sort"

	"github.com/src-d/enry/v2"
)

// OtherLanguage buckets files enry cannot classify by name alone.
const OtherLanguage = "Other"

// LanguageBreakdown partitions the index's file-level sets by detected
// language and aggregates each group. Because aggregation is associative,
// the per-language denominators sum to the root denominator exactly as the
// directory partition does.
//
// Detection is filename-based; blame output carries no file contents and the
// breakdown must not re-read the working tree.
func LanguageBreakdown(idx *Index) []OwnershipSet {
	groups := make(map[string][]OwnershipSet)

	for _, file := range idx.FilePaths() {
		set, ok := idx.Get(file)
		if !ok {
			continue
		}

		lang := enry.GetLanguage(path.Base(file), nil)
		if lang == "" {
			lang = OtherLanguage
		}

		groups[lang] = append(groups[lang], set)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}

	sort.Strings(names)

	breakdown := make([]OwnershipSet, 0, len(names))
	for _, name := range names {
		breakdown = append(breakdown, Aggregate(name, groups[name]...))
	}

	// Largest language first; name order breaks ties via the stable sort.
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Total > breakdown[j].Total
	})

	return breakdown
}
