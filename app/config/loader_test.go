package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSources(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidFile(t *testing.T) {
	path := writeSources(t, `
vendors:
  - name: NovelKeys
    platform: Shopify
    base_url: https://novelkeys.com
    affiliate_param: ref
    affiliate_value: keebindex
    collections:
      - handle: keycaps
      - handle: switches
        category: switches
  - name: CannonKeys
    base_url: https://cannonkeys.com
    max_pages: 3

geekhack:
  url: https://geekhack.org/index.php?board=70.0

reddit:
  feeds:
    - https://www.reddit.com/r/mechmarket/new.json
`)

	sources, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if len(sources.Vendors) != 2 {
		t.Fatalf("expected 2 vendors, got %d", len(sources.Vendors))
	}
	if sources.Vendors[0].MaxPages != defaultMaxPages {
		t.Errorf("expected default max_pages, got %d", sources.Vendors[0].MaxPages)
	}
	if sources.Vendors[1].MaxPages != 3 {
		t.Errorf("expected explicit max_pages preserved, got %d", sources.Vendors[1].MaxPages)
	}
	if sources.GeekHack.URL == "" {
		t.Error("geekhack URL not parsed")
	}
	if len(sources.Reddit.Feeds) != 1 {
		t.Errorf("expected 1 reddit feed, got %d", len(sources.Reddit.Feeds))
	}
}

func TestLoad_RejectsMissingBaseURL(t *testing.T) {
	path := writeSources(t, `
vendors:
  - name: Broken
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for missing base_url")
	}
}

func TestLoad_RejectsDuplicateVendor(t *testing.T) {
	path := writeSources(t, `
vendors:
  - name: NovelKeys
    base_url: https://novelkeys.com
  - name: NovelKeys
    base_url: https://novelkeys.com
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for duplicate vendor")
	}
}

func TestLoad_RejectsUnknownCollectionCategory(t *testing.T) {
	path := writeSources(t, `
vendors:
  - name: NovelKeys
    base_url: https://novelkeys.com
    collections:
      - handle: weird
        category: gadgets
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for unknown category")
	}
}

func TestLoad_RejectsPartialAffiliateMapping(t *testing.T) {
	path := writeSources(t, `
vendors:
  - name: NovelKeys
    base_url: https://novelkeys.com
    affiliate_param: ref
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for partial affiliate mapping")
	}
}

func TestVendorList(t *testing.T) {
	path := writeSources(t, `
vendors:
  - name: NovelKeys
    base_url: https://novelkeys.com
    affiliate_program: NovelKeys Partners
    commission: "5%"
`)

	sources, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	vendors := sources.VendorList()
	if len(vendors) != 1 {
		t.Fatalf("expected 1 vendor, got %d", len(vendors))
	}
	if vendors[0].Name != "NovelKeys" || vendors[0].URL != "https://novelkeys.com" {
		t.Errorf("unexpected vendor record: %+v", vendors[0])
	}
	if vendors[0].AffiliateProgram != "NovelKeys Partners" || vendors[0].Commission != "5%" {
		t.Errorf("display metadata lost: %+v", vendors[0])
	}
}
