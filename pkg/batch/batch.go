package batch

import (
	"context"
	"iter"

	"github.com/adrianliechti/wenku/pkg/transport"

	"golang.org/x/sync/errgroup"
)

const DefaultLimit = 8

type slot[T any] struct {
	done chan struct{}

	value T
	err   error
}

// Ordered runs fn for every index in [0, n) on a pool of at most limit
// goroutines and yields the results in index order. All operations are
// submitted as soon as iteration starts; consuming result i blocks until
// operation i has finished, even when later ones completed earlier.
//
// Errors are yielded at the position of the failing operation. Stopping the
// iteration cancels the context passed to pending operations and waits for
// the pool to drain. The sequence must be consumed at most once.
func Ordered[T any](ctx context.Context, n, limit int, fn func(ctx context.Context, i int) (T, error)) iter.Seq2[T, error] {
	if limit < 1 {
		limit = DefaultLimit
	}

	return func(yield func(T, error) bool) {
		ctx, cancel := context.WithCancel(ctx)

		slots := make([]*slot[T], n)

		for i := range slots {
			slots[i] = &slot[T]{
				done: make(chan struct{}),
			}
		}

		var g errgroup.Group
		g.SetLimit(limit)

		submitted := make(chan struct{})

		go func() {
			defer close(submitted)

			for i, s := range slots {
				g.Go(func() error {
					defer close(s.done)

					if err := ctx.Err(); err != nil {
						s.err = err
						return nil
					}

					s.value, s.err = fn(ctx, i)
					return nil
				})
			}
		}()

		defer func() {
			cancel()

			<-submitted
			g.Wait()
		}()

		for _, s := range slots {
			<-s.done

			if !yield(s.value, s.err) {
				return
			}
		}
	}
}

// Fetch downloads urls through t with at most limit requests in flight and
// yields the response bodies in the order of urls.
func Fetch(ctx context.Context, t transport.Transport, urls []string, limit int) iter.Seq2[[]byte, error] {
	return Ordered(ctx, len(urls), limit, func(ctx context.Context, i int) ([]byte, error) {
		resp, err := t.Fetch(ctx, urls[i], nil)

		if err != nil {
			return nil, err
		}

		return resp.Body, nil
	})
}
