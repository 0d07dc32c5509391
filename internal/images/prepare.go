package images

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds a single image fetch
const DefaultTimeout = 15 * time.Second

// Task is one image to prepare. Inline Data skips the fetch.
type Task struct {
	Ref  string
	Data []byte
}

// Result is the outcome of one Task. Exactly one of Image and Err is set.
type Result struct {
	Index int
	Ref   string
	Image *Decoded
	Err   error
}

// Skipped reports whether the image must be left out of the document
func (r Result) Skipped() bool { return r.Image == nil }

// PrepareOptions tunes Prepare
type PrepareOptions struct {
	Timeout     time.Duration
	Concurrency int
}

// Prepare fetches and decodes every task, several at a time. Results are
// returned in task order regardless of completion order. Failures are logged
// and reported per result; Prepare itself never fails.
func Prepare(ctx context.Context, f Fetcher, tasks []Task, opts PrepareOptions) []Result {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}

	log := zerolog.Ctx(ctx)
	results := make([]Result, len(tasks))

	var g errgroup.Group
	g.SetLimit(opts.Concurrency)
	for i, task := range tasks {
		i, task := i, task // per-iteration copies; module targets go 1.21
		g.Go(func() error {
			img, err := prepareOne(ctx, f, task, opts.Timeout)
			results[i] = Result{Index: i, Ref: task.Ref, Image: img, Err: err}
			if err != nil {
				log.Warn().Err(err).Str("ref", task.Ref).Int("index", i).Msg("skipping image")
			}
			return nil
		})
	}
	_ = g.Wait()

	log.Debug().Int("images", len(tasks)).Msg("images prepared")
	return results
}

func prepareOne(ctx context.Context, f Fetcher, task Task, timeout time.Duration) (*Decoded, error) {
	data := task.Data
	if len(data) == 0 {
		if f == nil {
			return nil, fmt.Errorf("%w: no fetcher for %q", ErrUnavailable, task.Ref)
		}
		var err error
		data, err = fetchWithTimeout(ctx, f, task.Ref, timeout)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to fetch %q: %w", ErrUnavailable, task.Ref, err)
		}
	}
	return Decode(data, FormatHint(task.Ref))
}

// fetchWithTimeout also stops waiting on fetchers that ignore ctx
func fetchWithTimeout(ctx context.Context, f Fetcher, ref string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type fetched struct {
		data []byte
		err  error
	}
	done := make(chan fetched, 1)
	go func() {
		data, err := f.Fetch(ctx, ref)
		done <- fetched{data, err}
	}()

	select {
	case r := <-done:
		return r.data, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
