package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/keebindex/keebindex/app/catalog"
)

const (
	// MaxDescriptionLength bounds stored descriptions so malformed upstream
	// content cannot grow the dataset without limit.
	MaxDescriptionLength = 500

	// MaxIDLength bounds derived item ids.
	MaxIDLength = 80
)

// Normalizer maps raw candidates into canonical catalog items. It carries the
// run-local id seen-set, so one Normalizer must be shared across every
// connector of a single ingestion run and discarded afterwards.
type Normalizer struct {
	seenIDs map[string]int
	now     func() time.Time
}

func New() *Normalizer {
	return &Normalizer{
		seenIDs: make(map[string]int),
		now:     time.Now,
	}
}

// Product normalizes a paginated-catalog candidate. The boolean is false when
// the candidate is rejected by the availability filter or fails validation;
// rejection is an expected filtering outcome, not an error.
func (n *Normalizer) Product(c ProductCandidate) (catalog.Item, bool) {
	if c.Title == "" || c.URL == "" {
		return catalog.Item{}, false
	}

	description := Truncate(StripHTML(c.BodyHTML), MaxDescriptionLength)

	if rejectProduct(c, description) {
		return catalog.Item{}, false
	}

	return catalog.Item{
		ID:           n.itemID(c.Vendor, c.Handle, c.NativeID),
		Name:         c.Title,
		Platform:     c.Platform,
		Vendor:       c.Vendor,
		Category:     inferProductCategory(c),
		URL:          c.URL,
		AffiliateURL: RewriteURL(c.URL, c.AffiliateParam, c.AffiliateValue),
		Price:        displayPrice(c.Variants),
		Image:        firstImage(c.Images),
		Description:  description,
		Status:       catalog.StatusInStock,
		ScrapedAt:    n.now().UTC(),
		Source:       catalog.SourceVendor,
	}, true
}

// Thread normalizes a forum board row.
func (n *Normalizer) Thread(c ThreadCandidate) (catalog.Item, bool) {
	if c.Title == "" || c.URL == "" {
		return catalog.Item{}, false
	}

	category := c.Category
	if !category.Valid() {
		category = catalog.CategoryInterestCheck
	}

	description := fmt.Sprintf("Started by %s, %d replies", c.Author, c.Replies)
	if c.Author == "" {
		description = fmt.Sprintf("%d replies", c.Replies)
	}

	return catalog.Item{
		ID:          n.threadID("geekhack", c.Title, c.TopicID),
		Name:        c.Title,
		Platform:    "GeekHack",
		Vendor:      c.Author,
		Category:    category,
		URL:         c.URL,
		Description: Truncate(description, MaxDescriptionLength),
		Status:      c.Status,
		ScrapedAt:   n.now().UTC(),
		Source:      catalog.SourceGeekhack,
	}, true
}

// Post normalizes a social feed post.
func (n *Normalizer) Post(c PostCandidate) (catalog.Item, bool) {
	if c.Title == "" || c.URL == "" {
		return catalog.Item{}, false
	}

	category := c.Category
	if !category.Valid() {
		category = catalog.CategoryInterestCheck
	}

	status := catalog.StatusGatheringInterest
	if category == catalog.CategoryGroupBuy {
		status = catalog.StatusLive
	}

	return catalog.Item{
		ID:          n.threadID("reddit", c.Title, c.PostID),
		Name:        c.Title,
		Platform:    "Reddit",
		Vendor:      c.Author,
		Category:    category,
		URL:         c.URL,
		Description: Truncate(StripHTML(c.Body), MaxDescriptionLength),
		Status:      status,
		ScrapedAt:   n.now().UTC(),
		Source:      catalog.SourceReddit,
		Upvotes:     c.Upvotes,
		Comments:    c.Comments,
	}, true
}

// itemID builds the deterministic product id
// {vendor-lowercased}-{slug}-{numeric-id}, bounded to MaxIDLength and made
// unique within the run via the seen-set. Stability across runs matters for
// downstream caches but is not load-bearing; URL uniqueness is.
func (n *Normalizer) itemID(vendor, handle string, nativeID int64) string {
	id := Slugify(vendor) + "-" + Slugify(handle)
	if nativeID != 0 {
		id += "-" + strconv.FormatInt(nativeID, 10)
	}
	return n.uniqueID(boundID(id))
}

func (n *Normalizer) threadID(prefix, title, nativeID string) string {
	id := prefix + "-" + Slugify(title)
	if nativeID != "" {
		id += "-" + Slugify(nativeID)
	}
	return n.uniqueID(boundID(id))
}

func (n *Normalizer) uniqueID(id string) string {
	count, seen := n.seenIDs[id]
	if !seen {
		n.seenIDs[id] = 1
		return id
	}
	n.seenIDs[id] = count + 1
	return fmt.Sprintf("%s-%d", id, count+1)
}

func boundID(id string) string {
	if len(id) > MaxIDLength {
		id = id[:MaxIDLength]
	}
	return strings.Trim(id, "-")
}

func displayPrice(variants []ProductVariant) string {
	if len(variants) == 0 || variants[0].Price == "" {
		return ""
	}
	return "$" + variants[0].Price
}

func firstImage(images []string) string {
	if len(images) == 0 {
		return ""
	}
	return images[0]
}
