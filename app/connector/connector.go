package connector

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/keebindex/keebindex/app/catalog"
)

// Kind identifies the upstream shape a connector speaks.
type Kind string

const (
	KindCatalog Kind = "catalog"
	KindListing Kind = "listing"
	KindFeed    Kind = "feed"
)

// Source is implemented by each upstream connector. Fetch returns the fully
// normalized items for one source; any fetch or parse failure is reported as
// an error and the caller treats the source as having produced nothing. A
// connector never aborts the run for its siblings.
type Source interface {
	Name() string
	Kind() Kind
	Fetch(ctx context.Context) ([]catalog.Item, error)
}

// SourceError wraps a fetch/parse failure with the source it came from.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewClient builds the shared HTTP client used by all connectors.
func NewClient(timeout time.Duration, userAgent string) *resty.Client {
	return resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json, text/html")
}

// Sleep is the politeness delay between upstream requests. It is a pure
// suspension point: no side effects besides elapsed time, cut short only by
// context cancellation.
func Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
