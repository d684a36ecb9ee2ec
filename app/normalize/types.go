package normalize

import (
	"github.com/keebindex/keebindex/app/catalog"
)

// Raw candidates, one per source kind. Produced by a single connector fetch,
// consumed immediately by the Normalizer, never persisted.

// ProductVariant is one purchasable variant of a catalog product.
type ProductVariant struct {
	Price     string
	Available bool
}

// ProductCandidate is a raw paginated-catalog product.
type ProductCandidate struct {
	Vendor   string
	Platform string
	NativeID int64
	Handle   string
	Title    string
	BodyHTML string
	Type     string
	Tags     []string
	Variants []ProductVariant
	Images   []string
	URL      string

	// Affiliate mapping carried down from the vendor configuration.
	AffiliateParam string
	AffiliateValue string

	// Collection-level hints.
	CollectionCategory catalog.Category
	LayoutFamily       bool
}

// ThreadCandidate is a raw forum board row. Category and status are decided
// by the listing connector's classification rules before normalization.
type ThreadCandidate struct {
	Title    string
	URL      string
	TopicID  string
	Author   string
	Replies  int
	Category catalog.Category
	Status   string
}

// PostCandidate is a raw social feed post that already matched the
// group-buy/interest-check bracket pattern.
type PostCandidate struct {
	Title     string
	URL       string
	PostID    string
	Author    string
	Subreddit string
	Body      string
	Upvotes   int
	Comments  int
	Category  catalog.Category
}
