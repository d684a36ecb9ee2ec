package pipeline

import (
	"time"

	"github.com/keebindex/keebindex/app/catalog"
)

// StaleAfter is the freshness window for non-promotional listings. A product
// not refreshed by its source within this window is presumed untrustworthy
// for availability and dropped. There is no tombstoning: once aged out, an
// item is gone until its source returns it again.
const StaleAfter = 30 * 24 * time.Hour

// Retain applies the staleness policy over the entire accumulated set.
// Promotional categories are exempt; their lifecycle is tracked via status.
// Returns the surviving items and the number pruned.
func Retain(items []catalog.Item, now time.Time) ([]catalog.Item, int) {
	kept := make([]catalog.Item, 0, len(items))
	pruned := 0

	for _, item := range items {
		if item.Category.Promotional() || now.Sub(item.ScrapedAt) <= StaleAfter {
			kept = append(kept, item)
			continue
		}
		pruned++
	}

	return kept, pruned
}
