package pipeline

import (
	"github.com/keebindex/keebindex/app/catalog"
)

// Merge unions freshly scraped batches into the previously persisted items.
// The first occurrence of a URL wins: existing items are never reordered or
// rewritten by a later run, and a URL appearing in several batches (even
// from different sources) is counted once, in batch order. Returns the
// merged slice and the number of newly appended items.
//
// Invariant on the result: URLs are pairwise distinct. This is the single
// load-bearing uniqueness guarantee of the pipeline; id collisions across
// sources are tolerated.
func Merge(existing []catalog.Item, batches ...[]catalog.Item) ([]catalog.Item, int) {
	seen := make(map[string]struct{}, len(existing))
	merged := make([]catalog.Item, 0, len(existing))

	for _, item := range existing {
		if _, dup := seen[item.URL]; dup {
			continue
		}
		seen[item.URL] = struct{}{}
		merged = append(merged, item)
	}

	added := 0
	for _, batch := range batches {
		for _, item := range batch {
			if item.URL == "" {
				continue
			}
			if _, dup := seen[item.URL]; dup {
				continue
			}
			seen[item.URL] = struct{}{}
			merged = append(merged, item)
			added++
		}
	}

	return merged, added
}
