// Package images turns image references into embeddable raster data: fetch,
// decode with format fallbacks, and aspect-preserving fit.
package images

import (
	"context"
	"errors"
)

// ErrUnavailable marks an image that could not be fetched or decoded. It is
// never fatal to a report: the image is skipped.
var ErrUnavailable = errors.New("image unavailable")

// Fetcher returns the raw bytes behind an image reference. Implementations
// own the storage details such as signed URLs.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface
type FetcherFunc func(ctx context.Context, ref string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, ref string) ([]byte, error) {
	return f(ctx, ref)
}
