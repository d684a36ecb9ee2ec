package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/keebindex/keebindex/app/catalog"
	"github.com/keebindex/keebindex/app/store"
)

const (
	defaultPerPage = 50
	maxPerPage     = 250
)

// Handler serves read-only views of the persisted dataset. The document is
// cached in memory and reloaded when its modification time changes, so a
// scrape run replacing the file is picked up without a restart.
type Handler struct {
	store   *store.Store
	version string

	mu       sync.RWMutex
	cached   *catalog.Dataset
	loadedAt time.Time
}

func NewHandler(st *store.Store, version string) *Handler {
	return &Handler{
		store:   st,
		version: version,
	}
}

func (h *Handler) dataset() (*catalog.Dataset, error) {
	modTime, err := h.store.ModTime()
	if err != nil {
		return nil, err
	}

	h.mu.RLock()
	cached, loadedAt := h.cached, h.loadedAt
	h.mu.RUnlock()

	if cached != nil && !modTime.After(loadedAt) {
		return cached, nil
	}

	dataset, err := h.store.Load()
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	h.cached = dataset
	h.loadedAt = modTime
	h.mu.Unlock()

	return dataset, nil
}

func (h *Handler) GetItems(c *gin.Context) {
	dataset, err := h.dataset()
	if err != nil {
		slog.Error("Failed to load dataset", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	category := c.Query("category")
	vendor := c.Query("vendor")
	source := c.Query("source")

	filtered := make([]catalog.Item, 0, len(dataset.Items))
	for _, item := range dataset.Items {
		if category != "" && string(item.Category) != category {
			continue
		}
		if vendor != "" && !strings.EqualFold(item.Vendor, vendor) {
			continue
		}
		if source != "" && item.Source != source {
			continue
		}
		filtered = append(filtered, item)
	}

	page, perPage := pagination(c)
	c.JSON(http.StatusOK, paginate(filtered, page, perPage))
}

func (h *Handler) GetGroupBuys(c *gin.Context) {
	h.servePartition(c, func(d *catalog.Dataset) []catalog.Item { return d.GroupBuys })
}

func (h *Handler) GetInterestChecks(c *gin.Context) {
	h.servePartition(c, func(d *catalog.Dataset) []catalog.Item { return d.InterestChecks })
}

func (h *Handler) servePartition(c *gin.Context, view func(*catalog.Dataset) []catalog.Item) {
	dataset, err := h.dataset()
	if err != nil {
		slog.Error("Failed to load dataset", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	page, perPage := pagination(c)
	c.JSON(http.StatusOK, paginate(view(dataset), page, perPage))
}

func (h *Handler) GetVendors(c *gin.Context) {
	dataset, err := h.dataset()
	if err != nil {
		slog.Error("Failed to load dataset", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"vendors": dataset.Vendors})
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	dataset, err := h.dataset()
	if err != nil {
		slog.Error("Failed to load dataset", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dataset.Metadata)
}

type pageResponse struct {
	Items   []catalog.Item `json:"items"`
	Page    int            `json:"page"`
	PerPage int            `json:"perPage"`
	Total   int            `json:"total"`
}

func pagination(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

func paginate(items []catalog.Item, page, perPage int) pageResponse {
	start := (page - 1) * perPage
	if start > len(items) {
		start = len(items)
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}

	return pageResponse{
		Items:   items[start:end],
		Page:    page,
		PerPage: perPage,
		Total:   len(items),
	}
}
