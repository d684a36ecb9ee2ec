package connector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/keebindex/keebindex/app/config"
	"github.com/keebindex/keebindex/app/normalize"
)

func testProduct(id int64, title string) shopifyProduct {
	return shopifyProduct{
		ID:       id,
		Title:    title,
		Handle:   fmt.Sprintf("product-%d", id),
		Variants: []shopifyVariant{{ID: id * 10, Price: "99.00", Available: true}},
	}
}

func serveProducts(t *testing.T, products func(page int) []shopifyProduct, requests *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*requests++
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page == 0 {
			page = 1
		}
		if err := json.NewEncoder(w).Encode(shopifyPage{Products: products(page)}); err != nil {
			t.Errorf("encode failed: %v", err)
		}
	}))
}

func newTestShopify(baseURL string, maxPages, pageSize int) *Shopify {
	vendor := config.Vendor{
		Name:     "TestVendor",
		Platform: "Shopify",
		BaseURL:  baseURL,
		MaxPages: maxPages,
	}
	s := NewShopify(vendor, NewClient(5*time.Second, "keebindex-test/1.0"), normalize.New(), 0)
	s.pageSize = pageSize
	return s
}

func TestShopify_PaginationTerminatesAtMaxPages(t *testing.T) {
	requests := 0
	// An endpoint that always returns a full page must still terminate.
	server := serveProducts(t, func(page int) []shopifyProduct {
		return []shopifyProduct{
			testProduct(int64(page*2), "Full Page A"),
			testProduct(int64(page*2+1), "Full Page B"),
		}
	}, &requests)
	defer server.Close()

	s := newTestShopify(server.URL, 3, 2)
	items, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if requests != 3 {
		t.Errorf("expected exactly max_pages requests, got %d", requests)
	}
	if len(items) != 6 {
		t.Errorf("expected 6 items, got %d", len(items))
	}
}

func TestShopify_StopsOnShortPage(t *testing.T) {
	requests := 0
	server := serveProducts(t, func(page int) []shopifyProduct {
		if page == 1 {
			return []shopifyProduct{testProduct(1, "A"), testProduct(2, "B")}
		}
		return []shopifyProduct{testProduct(3, "C")}
	}, &requests)
	defer server.Close()

	s := newTestShopify(server.URL, 10, 2)
	items, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if requests != 2 {
		t.Errorf("expected 2 requests (full page then short page), got %d", requests)
	}
	if len(items) != 3 {
		t.Errorf("expected 3 items, got %d", len(items))
	}
}

func TestShopify_DedupAcrossCollections(t *testing.T) {
	requests := 0
	server := serveProducts(t, func(page int) []shopifyProduct {
		return []shopifyProduct{testProduct(42, "Shared Product")}
	}, &requests)
	defer server.Close()

	s := newTestShopify(server.URL, 5, 2)
	s.vendor.Collections = []config.Collection{
		{Handle: "keycaps"},
		{Handle: "featured"},
	}

	items, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	// The product appears in both collections but counts once.
	if len(items) != 1 {
		t.Errorf("expected 1 deduplicated item, got %d", len(items))
	}
}

func TestShopify_DropsUnavailableProducts(t *testing.T) {
	requests := 0
	server := serveProducts(t, func(page int) []shopifyProduct {
		dead := testProduct(2, "Sold Out Board")
		dead.Variants = []shopifyVariant{{ID: 20, Price: "99.00", Available: false}}
		return []shopifyProduct{testProduct(1, "Live Board"), dead}
	}, &requests)
	defer server.Close()

	s := newTestShopify(server.URL, 1, 250)
	items, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("expected only the available product, got %d items", len(items))
	}
	if items[0].Name != "Live Board" {
		t.Errorf("wrong survivor: %s", items[0].Name)
	}
}

func TestShopify_HTTPErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	s := newTestShopify(server.URL, 3, 2)
	if _, err := s.Fetch(context.Background()); err == nil {
		t.Fatal("expected an error for a failing endpoint")
	}
}
