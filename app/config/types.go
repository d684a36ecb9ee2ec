package config

// Sources is the parsed source configuration file. Product vendors are
// visited first, in declaration order, followed by the promotional listing
// sources (GeekHack board, then Reddit feeds). Merge order depends on this
// ordering, so it is load-bearing.
type Sources struct {
	Vendors  []Vendor `yaml:"vendors"`
	GeekHack GeekHack `yaml:"geekhack"`
	Reddit   Reddit   `yaml:"reddit"`
}

// Vendor describes one paginated-catalog vendor.
type Vendor struct {
	Name     string `yaml:"name"`
	Platform string `yaml:"platform"`
	BaseURL  string `yaml:"base_url"`

	// Collections to query. Empty means the storefront-wide product listing.
	Collections []Collection `yaml:"collections"`

	// Affiliate tracking parameter appended to outbound product URLs.
	// Both must be set for rewriting to apply.
	AffiliateParam string `yaml:"affiliate_param"`
	AffiliateValue string `yaml:"affiliate_value"`

	// Display metadata for the dataset's vendor list.
	AffiliateProgram string `yaml:"affiliate_program"`
	Commission       string `yaml:"commission"`

	// Hard upper bound on pages fetched per collection.
	MaxPages int `yaml:"max_pages"`
}

// Collection is a single product listing endpoint within a vendor.
type Collection struct {
	Handle string `yaml:"handle"`

	// Optional category override for everything in this collection
	// (e.g. an "artisans" or "parts" collection).
	Category string `yaml:"category"`

	// LayoutFamily marks collections built around one board layout, where
	// cheap untitled-keyboard listings are actually cases.
	LayoutFamily bool `yaml:"layout_family"`
}

// GeekHack describes the forum group-buy board source.
type GeekHack struct {
	URL string `yaml:"url"`
}

// Reddit describes the social feed source.
type Reddit struct {
	Feeds []string `yaml:"feeds"`
}
