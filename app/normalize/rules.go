package normalize

import (
	"strconv"
	"strings"

	"github.com/keebindex/keebindex/app/catalog"
)

// Availability and category rules are ordered predicate lists evaluated
// top-down; the first matching rule wins. Keeping them as explicit tables
// (rather than fallback chains) is deliberate: the precedence is part of the
// contract.

// Markers whose presence in the stripped description means the listing
// redirects elsewhere or was cancelled.
var cancelMarkers = []string{
	"has been cancelled",
	"has been canceled",
	"this listing has moved",
	"please see the new listing",
	"redirects to",
}

// Tags that mark a product as archival.
var archivalTags = []string{
	"archived",
	"discontinued",
}

// Substrings in name or description that indicate a dead listing.
var unavailableMarkers = []string{
	"sold out",
	"out of stock",
	"no longer available",
	"group buy ended",
	"gb ended",
}

// rejectProduct applies the availability filter. A rejected candidate is
// silently omitted.
func rejectProduct(c ProductCandidate, description string) bool {
	available := false
	for _, variant := range c.Variants {
		if variant.Available {
			available = true
			break
		}
	}
	if !available {
		return true
	}

	lowerDesc := strings.ToLower(description)
	for _, marker := range cancelMarkers {
		if strings.Contains(lowerDesc, marker) {
			return true
		}
	}

	for _, tag := range c.Tags {
		for _, archival := range archivalTags {
			if strings.EqualFold(strings.TrimSpace(tag), archival) {
				return true
			}
		}
	}

	lowerName := strings.ToLower(c.Title)
	for _, marker := range unavailableMarkers {
		if strings.Contains(lowerName, marker) || strings.Contains(lowerDesc, marker) {
			return true
		}
	}

	return false
}

var keycapMarkers = []string{
	"keycap",
	"keyset",
	"gmk",
	"artisan cap",
}

// Split and ergo board families recognized by name even when the title
// omits the word "split".
var splitBoardMarkers = []string{
	"split",
	"ergo",
	"alice",
	"corne",
	"lily58",
	"sofle",
	"kyria",
	"iris",
	"ergodox",
	"moonlander",
}

// Price threshold separating a bare case from a full keyboard kit inside a
// layout-family collection.
const caseThresholdPrice = 100.0

// inferProductCategory applies the ordered category inference rules for
// product-like candidates.
func inferProductCategory(c ProductCandidate) catalog.Category {
	// Collection hints override inference (e.g. an artisans collection).
	if c.CollectionCategory.Valid() {
		return c.CollectionCategory
	}

	title := strings.ToLower(c.Title)
	tags := strings.ToLower(strings.Join(c.Tags, " "))

	for _, marker := range keycapMarkers {
		if strings.Contains(title, marker) || strings.Contains(tags, marker) {
			return catalog.CategoryKeycaps
		}
	}

	for _, marker := range splitBoardMarkers {
		if strings.Contains(title, marker) {
			return catalog.CategoryKeyboard
		}
	}

	// Declared-type classification: type string, then tag set, then title,
	// first match wins.
	if category, ok := classifyByType(strings.ToLower(c.Type)); ok {
		return disambiguateCase(category, c, title)
	}
	if category, ok := classifyByType(tags); ok {
		return disambiguateCase(category, c, title)
	}
	if category, ok := classifyByType(title); ok {
		return disambiguateCase(category, c, title)
	}

	if c.LayoutFamily && belowCaseThreshold(c.Variants) && !strings.Contains(title, "keyboard") {
		return catalog.CategoryCase
	}

	return catalog.CategoryAccessories
}

func classifyByType(value string) (catalog.Category, bool) {
	switch {
	case strings.Contains(value, "switch"):
		return catalog.CategorySwitches, true
	case strings.Contains(value, "case"):
		return catalog.CategoryCase, true
	case strings.Contains(value, "keyboard"):
		return catalog.CategoryKeyboard, true
	case strings.Contains(value, "artisan"):
		return catalog.CategoryArtisan, true
	case strings.Contains(value, "parts"), strings.Contains(value, "pcb"), strings.Contains(value, "plate"):
		return catalog.CategoryParts, true
	}
	return "", false
}

// disambiguateCase resolves the case-vs-keyboard ambiguity: a cheap item in a
// layout-family collection that is not explicitly titled "keyboard" is a case.
func disambiguateCase(category catalog.Category, c ProductCandidate, title string) catalog.Category {
	if category != catalog.CategoryKeyboard {
		return category
	}
	if c.LayoutFamily && belowCaseThreshold(c.Variants) && !strings.Contains(title, "keyboard") {
		return catalog.CategoryCase
	}
	return category
}

func belowCaseThreshold(variants []ProductVariant) bool {
	if len(variants) == 0 {
		return false
	}
	price, err := strconv.ParseFloat(variants[0].Price, 64)
	if err != nil {
		return false
	}
	return price < caseThresholdPrice
}
