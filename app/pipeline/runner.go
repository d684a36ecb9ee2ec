package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/keebindex/keebindex/app/catalog"
	"github.com/keebindex/keebindex/app/connector"
)

// DatasetStore is the persistence boundary the runner drives.
type DatasetStore interface {
	Load() (*catalog.Dataset, error)
	Save(*catalog.Dataset) error
}

// Runner drives one full ingestion pass:
// load -> fetch+normalize per source -> merge -> retain -> partition -> persist.
// Sources run strictly sequentially with a politeness delay between them; a
// failing source contributes nothing but never aborts the run. Only a
// persistence failure is fatal.
type Runner struct {
	store   DatasetStore
	sources []connector.Source
	vendors []catalog.Vendor
	delay   time.Duration
	now     func() time.Time
}

func NewRunner(store DatasetStore, sources []connector.Source, vendors []catalog.Vendor, delay time.Duration) *Runner {
	return &Runner{
		store:   store,
		sources: sources,
		vendors: vendors,
		delay:   delay,
		now:     time.Now,
	}
}

func (r *Runner) Run(ctx context.Context) (*catalog.Dataset, error) {
	start := r.now()

	dataset, err := r.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	slog.Info("Dataset loaded", "items", len(dataset.Items))

	batches := make([][]catalog.Item, 0, len(r.sources))
	for i, source := range r.sources {
		if i > 0 {
			connector.Sleep(ctx, r.delay)
		}

		items, err := source.Fetch(ctx)
		if err != nil {
			// Recovered locally: the source yields zero candidates and the
			// run continues for its siblings.
			slog.Error("Source fetch failed", "source", source.Name(), "kind", source.Kind(), "error", err)
			batches = append(batches, nil)
			continue
		}

		slog.Info("Source fetched", "source", source.Name(), "kind", source.Kind(), "items", len(items))
		batches = append(batches, items)
	}

	merged, added := Merge(dataset.Items, batches...)
	kept, pruned := Retain(merged, r.now())

	dataset.Items = kept
	dataset.Vendors = r.vendors
	dataset.Partition()
	dataset.Metadata = catalog.Metadata{
		RunID:          uuid.NewString(),
		ScrapedAt:      r.now().UTC(),
		Duration:       r.now().Sub(start).String(),
		TotalItems:     len(dataset.Items),
		NewItems:       added,
		Products:       len(dataset.AllProducts),
		InStock:        len(dataset.InStock),
		GroupBuys:      len(dataset.GroupBuys),
		InterestChecks: len(dataset.InterestChecks),
		Parts:          len(dataset.Parts),
		FilteredStale:  pruned,
	}

	if err := r.store.Save(dataset); err != nil {
		return nil, fmt.Errorf("failed to persist dataset: %w", err)
	}

	slog.Info("Run complete",
		"run_id", dataset.Metadata.RunID,
		"duration", dataset.Metadata.Duration,
		"total", dataset.Metadata.TotalItems,
		"new", dataset.Metadata.NewItems,
		"stale_pruned", dataset.Metadata.FilteredStale)

	return dataset, nil
}
