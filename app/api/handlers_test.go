package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/keebindex/keebindex/app/catalog"
	"github.com/keebindex/keebindex/app/store"
)

func testServer(t *testing.T, dataset *catalog.Dataset) http.Handler {
	t.Helper()

	st := store.New(filepath.Join(t.TempDir(), "catalog.json"))
	if dataset != nil {
		dataset.Partition()
		if err := st.Save(dataset); err != nil {
			t.Fatal(err)
		}
	}

	return NewServer(NewHandler(st, "test"))
}

func testDataset() *catalog.Dataset {
	now := time.Now().UTC()
	return &catalog.Dataset{
		Items: []catalog.Item{
			{ID: "kb-1", Name: "NK65", Vendor: "NovelKeys", Category: catalog.CategoryKeyboard, URL: "https://a/1", Status: catalog.StatusInStock, Source: catalog.SourceVendor, ScrapedAt: now},
			{ID: "caps-1", Name: "GMK Olivia", Vendor: "NovelKeys", Category: catalog.CategoryKeycaps, URL: "https://a/2", Status: catalog.StatusActive, Source: catalog.SourceVendor, ScrapedAt: now},
			{ID: "gb-1", Name: "[GB] Dreamscape", Vendor: "keymaker", Category: catalog.CategoryGroupBuy, URL: "https://g/1", Status: catalog.StatusLive, Source: catalog.SourceGeekhack, ScrapedAt: now},
		},
		Vendors:  []catalog.Vendor{{Name: "NovelKeys", URL: "https://novelkeys.com"}},
		Metadata: catalog.Metadata{TotalItems: 3},
	}
}

func getJSON(t *testing.T, handler http.Handler, path string, out any) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("invalid JSON from %s: %v", path, err)
		}
	}
	return rec.Code
}

func TestGetItems_FilterByCategory(t *testing.T) {
	handler := testServer(t, testDataset())

	var resp pageResponse
	if code := getJSON(t, handler, "/api/items?category=keycaps", &resp); code != http.StatusOK {
		t.Fatalf("unexpected status %d", code)
	}

	if resp.Total != 1 || len(resp.Items) != 1 {
		t.Fatalf("expected 1 keycaps item, got %d", resp.Total)
	}
	if resp.Items[0].ID != "caps-1" {
		t.Errorf("wrong item: %s", resp.Items[0].ID)
	}
}

func TestGetItems_Pagination(t *testing.T) {
	handler := testServer(t, testDataset())

	var resp pageResponse
	if code := getJSON(t, handler, "/api/items?page=2&per_page=2", &resp); code != http.StatusOK {
		t.Fatalf("unexpected status %d", code)
	}

	if resp.Total != 3 {
		t.Errorf("expected total 3, got %d", resp.Total)
	}
	if len(resp.Items) != 1 {
		t.Errorf("expected 1 item on page 2, got %d", len(resp.Items))
	}
	if resp.Page != 2 || resp.PerPage != 2 {
		t.Errorf("pagination echo wrong: page=%d per_page=%d", resp.Page, resp.PerPage)
	}
}

func TestGetGroupBuys(t *testing.T) {
	handler := testServer(t, testDataset())

	var resp pageResponse
	if code := getJSON(t, handler, "/api/groupbuys", &resp); code != http.StatusOK {
		t.Fatalf("unexpected status %d", code)
	}

	if resp.Total != 1 || resp.Items[0].ID != "gb-1" {
		t.Errorf("group buy view wrong: %+v", resp.Items)
	}
}

func TestGetVendors(t *testing.T) {
	handler := testServer(t, testDataset())

	var resp struct {
		Vendors []catalog.Vendor `json:"vendors"`
	}
	if code := getJSON(t, handler, "/api/vendors", &resp); code != http.StatusOK {
		t.Fatalf("unexpected status %d", code)
	}

	if len(resp.Vendors) != 1 || resp.Vendors[0].Name != "NovelKeys" {
		t.Errorf("vendor list wrong: %+v", resp.Vendors)
	}
}

func TestHealthCheck_NoDataset(t *testing.T) {
	handler := testServer(t, nil)

	var resp map[string]string
	if code := getJSON(t, handler, "/health", &resp); code != http.StatusOK {
		t.Fatalf("unexpected status %d", code)
	}
	if resp["status"] != "ok" {
		t.Errorf("unexpected health payload: %+v", resp)
	}
}

func TestGetItems_EmptyDataset(t *testing.T) {
	handler := testServer(t, nil)

	var resp pageResponse
	if code := getJSON(t, handler, "/api/items", &resp); code != http.StatusOK {
		t.Fatalf("missing dataset must serve empty views, got %d", code)
	}
	if resp.Total != 0 {
		t.Errorf("expected empty result, got %d", resp.Total)
	}
}
