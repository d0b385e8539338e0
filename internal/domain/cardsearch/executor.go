package cardsearch

import (
	"context"
	"fmt"

	"github.com/sylvanlibrary/cardsearch/internal/domain/cards"
	"github.com/sylvanlibrary/cardsearch/internal/domain/logger"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const (
	defaultWorkers   = 1
	defaultChunkSize = 2048
)

// Filterer is implemented by catalogs able to evaluate a tree inside the
// store itself. Results must equal evaluating Parameter.Matches per card,
// in catalog enumeration order.
type Filterer interface {
	Filter(ctx context.Context, root Parameter) ([]*cards.Card, error)
}

// Named is implemented by catalogs that want a readable name in logs and
// cache keys.
type Named interface {
	Name() string
}

// Executor runs a finished tree against a catalog.
type Executor struct {
	workers   int
	chunkSize int
}

type ExecutorOption func(*Executor)

// WithWorkers sets how many goroutines evaluate in-memory catalogs.
func WithWorkers(n int) ExecutorOption {
	return func(e *Executor) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithChunkSize sets how many cards each worker evaluates at a time.
func WithChunkSize(n int) ExecutorOption {
	return func(e *Executor) {
		if n > 0 {
			e.chunkSize = n
		}
	}
}

func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{
		workers:   defaultWorkers,
		chunkSize: defaultChunkSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute returns every card of catalog matched by root, preserving the
// catalog's enumeration order. Errors raised by the catalog are returned
// to the caller.
func (e *Executor) Execute(ctx context.Context, root Parameter, catalog cards.Catalog) ([]*cards.Card, error) {
	if catalog == nil {
		return nil, ErrNilCatalog
	}

	var (
		operation string
		result    []*cards.Card
		err       error
	)

	ql := logger.NewQueryLogger("", CatalogName(catalog), root.String())

	switch c := catalog.(type) {
	case Filterer:
		operation = "pushdown"
		result, err = c.Filter(ctx, root)
	case cards.Lister:
		if e.workers > 1 {
			operation = "parallel"
			result, err = e.parallel(ctx, root, c.All())
			break
		}
		operation = "scan"
		result, err = e.stream(ctx, root, catalog)
	default:
		operation = "scan"
		result, err = e.stream(ctx, root, catalog)
	}

	ql.Operation = operation
	ql.Log(err, len(result))
	if err != nil {
		return nil, fmt.Errorf("failed to execute %s search: %w", operation, err)
	}
	return result, nil
}

func (e *Executor) stream(ctx context.Context, root Parameter, catalog cards.Catalog) ([]*cards.Card, error) {
	result := make([]*cards.Card, 0)
	err := catalog.Each(ctx, func(card *cards.Card) error {
		if root.Matches(card) {
			result = append(result, card)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (e *Executor) parallel(ctx context.Context, root Parameter, all []*cards.Card) ([]*cards.Card, error) {
	chunks := (len(all) + e.chunkSize - 1) / e.chunkSize
	matched := make([][]*cards.Card, chunks)

	sem := semaphore.NewWeighted(int64(e.workers))
	g, gctx := errgroup.WithContext(ctx)

	var acquireErr error
	for i := 0; i < chunks; i++ {
		if acquireErr = sem.Acquire(gctx, 1); acquireErr != nil {
			break
		}

		i := i
		start := i * e.chunkSize
		end := min(start+e.chunkSize, len(all))

		g.Go(func() error {
			defer sem.Release(1)
			if err := gctx.Err(); err != nil {
				return err
			}

			var out []*cards.Card
			for _, card := range all[start:end] {
				if root.Matches(card) {
					out = append(out, card)
				}
			}
			matched[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if acquireErr != nil {
		return nil, acquireErr
	}

	total := 0
	for _, chunk := range matched {
		total += len(chunk)
	}
	result := make([]*cards.Card, 0, total)
	for _, chunk := range matched {
		result = append(result, chunk...)
	}
	return result, nil
}

// CatalogName returns the catalog's Name if it has one, otherwise its type.
func CatalogName(catalog cards.Catalog) string {
	if n, ok := catalog.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", catalog)
}
