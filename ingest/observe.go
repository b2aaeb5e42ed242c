package ingest

import (
	"context"
	"time"

	"github.com/stokaro/leaguesync/source"
)

// FetchObserver is told the duration and result of every fetch.
type FetchObserver interface {
	ObserveFetch(d time.Duration, err error)
}

// Observed wraps src so each fetch is reported to obs.
func Observed(src source.Source, obs FetchObserver) source.Source {
	return source.SourceFunc(func(ctx context.Context, req source.Request) (any, error) {
		start := time.Now()
		doc, err := src.Fetch(ctx, req)
		obs.ObserveFetch(time.Since(start), err)
		return doc, err
	})
}
