package connector

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/keebindex/keebindex/app/catalog"
	"github.com/keebindex/keebindex/app/config"
	"github.com/keebindex/keebindex/app/normalize"
)

// defaultPageSize is the storefront listing page size.
const defaultPageSize = 250

// Shopify fetches a vendor's paginated product listing endpoints. Each
// configured collection is paginated independently; a vendor-level seen-id
// set drops products returned by more than one page or collection.
type Shopify struct {
	vendor   config.Vendor
	client   *resty.Client
	norm     *normalize.Normalizer
	delay    time.Duration
	pageSize int
}

func NewShopify(vendor config.Vendor, client *resty.Client, norm *normalize.Normalizer, delay time.Duration) *Shopify {
	return &Shopify{
		vendor:   vendor,
		client:   client,
		norm:     norm,
		delay:    delay,
		pageSize: defaultPageSize,
	}
}

func (s *Shopify) Name() string {
	return s.vendor.Name
}

func (s *Shopify) Kind() Kind {
	return KindCatalog
}

type shopifyVariant struct {
	ID        int64  `json:"id"`
	Price     string `json:"price"`
	Available bool   `json:"available"`
}

type shopifyImage struct {
	Src string `json:"src"`
}

type shopifyProduct struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Handle      string           `json:"handle"`
	BodyHTML    string           `json:"body_html"`
	ProductType string           `json:"product_type"`
	Tags        []string         `json:"tags"`
	Variants    []shopifyVariant `json:"variants"`
	Images      []shopifyImage   `json:"images"`
}

type shopifyPage struct {
	Products []shopifyProduct `json:"products"`
}

func (s *Shopify) Fetch(ctx context.Context) ([]catalog.Item, error) {
	seen := make(map[int64]struct{})
	var items []catalog.Item

	collections := s.vendor.Collections
	if len(collections) == 0 {
		collections = []config.Collection{{}}
	}

	first := true
	for _, collection := range collections {
		page := 1
		for page <= s.vendor.MaxPages {
			if !first {
				Sleep(ctx, s.delay)
			}
			first = false

			if err := ctx.Err(); err != nil {
				return nil, &SourceError{Source: s.vendor.Name, Err: err}
			}

			products, err := s.fetchPage(ctx, collection.Handle, page)
			if err != nil {
				return nil, &SourceError{Source: s.vendor.Name, Err: err}
			}

			for _, product := range products {
				if _, dup := seen[product.ID]; dup {
					continue
				}
				seen[product.ID] = struct{}{}

				item, ok := s.norm.Product(s.candidate(product, collection))
				if !ok {
					continue
				}
				items = append(items, item)
			}

			// A short page means the listing is exhausted. The page cap
			// bounds pagination against a misbehaving endpoint.
			if len(products) < s.pageSize {
				break
			}
			page++
		}
	}

	slog.Debug("Catalog fetch complete", "vendor", s.vendor.Name, "unique_products", len(seen), "items", len(items))
	return items, nil
}

func (s *Shopify) fetchPage(ctx context.Context, handle string, page int) ([]shopifyProduct, error) {
	url := s.vendor.BaseURL + "/products.json"
	if handle != "" {
		url = s.vendor.BaseURL + "/collections/" + handle + "/products.json"
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("limit", strconv.Itoa(s.pageSize)).
		SetQueryParam("page", strconv.Itoa(page)).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page %d: %w", page, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("HTTP %d for %s page %d", resp.StatusCode(), url, page)
	}

	var listing shopifyPage
	if err := json.Unmarshal(resp.Body(), &listing); err != nil {
		return nil, fmt.Errorf("failed to parse page %d: %w", page, err)
	}

	return listing.Products, nil
}

func (s *Shopify) candidate(product shopifyProduct, collection config.Collection) normalize.ProductCandidate {
	variants := make([]normalize.ProductVariant, 0, len(product.Variants))
	for _, v := range product.Variants {
		variants = append(variants, normalize.ProductVariant{Price: v.Price, Available: v.Available})
	}

	images := make([]string, 0, len(product.Images))
	for _, img := range product.Images {
		images = append(images, img.Src)
	}

	return normalize.ProductCandidate{
		Vendor:             s.vendor.Name,
		Platform:           s.vendor.Platform,
		NativeID:           product.ID,
		Handle:             product.Handle,
		Title:              product.Title,
		BodyHTML:           product.BodyHTML,
		Type:               product.ProductType,
		Tags:               product.Tags,
		Variants:           variants,
		Images:             images,
		URL:                s.vendor.BaseURL + "/products/" + product.Handle,
		AffiliateParam:     s.vendor.AffiliateParam,
		AffiliateValue:     s.vendor.AffiliateValue,
		CollectionCategory: catalog.Category(collection.Category),
		LayoutFamily:       collection.LayoutFamily,
	}
}
