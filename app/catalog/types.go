package catalog

import (
	"time"
)

// Category is the closed set of listing categories. Unknown inputs are
// mapped to CategoryAccessories by the normalizer, never stored verbatim.
type Category string

const (
	CategoryKeyboard      Category = "keyboard"
	CategoryKeycaps       Category = "keycaps"
	CategorySwitches      Category = "switches"
	CategoryAccessories   Category = "accessories"
	CategoryCase          Category = "case"
	CategoryArtisan       Category = "artisan"
	CategoryGroupBuy      Category = "group_buy"
	CategoryInterestCheck Category = "interest_check"
	CategoryParts         Category = "parts"
)

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryKeyboard, CategoryKeycaps, CategorySwitches, CategoryAccessories,
		CategoryCase, CategoryArtisan, CategoryGroupBuy, CategoryInterestCheck, CategoryParts:
		return true
	}
	return false
}

// Promotional reports whether c is a promotional listing category. Promotional
// items are exempt from the staleness window; their lifecycle is tracked via
// status, not freshness.
func (c Category) Promotional() bool {
	return c == CategoryGroupBuy || c == CategoryInterestCheck
}

// Ingestion routes. Stored in Item.Source.
const (
	SourceVendor   = "vendor"
	SourceGeekhack = "geekhack"
	SourceReddit   = "reddit"
)

// Item statuses.
const (
	StatusActive            = "active"
	StatusInStock           = "in_stock"
	StatusLive              = "live"
	StatusEnded             = "ended"
	StatusGatheringInterest = "gathering_interest"
)

// Item is the canonical normalized listing, the unit of persistence.
//
// URL is the sole cross-run identity: two items with the same URL are the
// same logical entity regardless of differing IDs. ID is only required to be
// unique within a single ingestion run.
type Item struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Platform     string    `json:"platform"`
	Vendor       string    `json:"vendor"`
	Category     Category  `json:"category"`
	URL          string    `json:"url"`
	AffiliateURL string    `json:"affiliateUrl"`
	Price        string    `json:"price"`
	Image        string    `json:"image"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	ScrapedAt    time.Time `json:"scrapedAt"`
	Source       string    `json:"source"`

	// Social feed engagement, display only. Never used for classification.
	Upvotes  int `json:"upvotes,omitempty"`
	Comments int `json:"comments,omitempty"`
}

// Vendor describes a configured upstream vendor for the dataset's vendor list.
type Vendor struct {
	Name             string `json:"name"`
	URL              string `json:"url"`
	AffiliateProgram string `json:"affiliateProgram,omitempty"`
	Commission       string `json:"commission,omitempty"`
}

// Metadata is the per-run record written alongside the dataset.
type Metadata struct {
	RunID          string    `json:"runId"`
	ScrapedAt      time.Time `json:"scrapedAt"`
	Duration       string    `json:"duration"`
	TotalItems     int       `json:"totalItems"`
	NewItems       int       `json:"newItems"`
	Products       int       `json:"products"`
	InStock        int       `json:"inStock"`
	GroupBuys      int       `json:"groupBuys"`
	InterestChecks int       `json:"interestChecks"`
	Parts          int       `json:"parts"`
	FilteredStale  int       `json:"filteredStale"`
}

// Dataset is the persisted document. Items is the canonical superset; the
// remaining slices are derived views recomputed from Items every run and
// never hand-edited.
type Dataset struct {
	Items          []Item   `json:"items"`
	AllProducts    []Item   `json:"allProducts"`
	InStock        []Item   `json:"inStock"`
	GroupBuys      []Item   `json:"groupBuys"`
	InterestChecks []Item   `json:"interestChecks"`
	Parts          []Item   `json:"parts"`
	Vendors        []Vendor `json:"vendors"`
	Metadata       Metadata `json:"metadata"`
}

// Partition recomputes the derived views from Items, preserving item order.
func (d *Dataset) Partition() {
	d.AllProducts = d.AllProducts[:0]
	d.InStock = d.InStock[:0]
	d.GroupBuys = d.GroupBuys[:0]
	d.InterestChecks = d.InterestChecks[:0]
	d.Parts = d.Parts[:0]

	for _, item := range d.Items {
		switch item.Category {
		case CategoryGroupBuy:
			d.GroupBuys = append(d.GroupBuys, item)
		case CategoryInterestCheck:
			d.InterestChecks = append(d.InterestChecks, item)
		default:
			d.AllProducts = append(d.AllProducts, item)
			if item.Status == StatusInStock {
				d.InStock = append(d.InStock, item)
			}
			if item.Category == CategoryParts {
				d.Parts = append(d.Parts, item)
			}
		}
	}
}
