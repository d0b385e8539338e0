package sylvan

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sylvanlibrary/cardsearch/internal/domain/cards"
	"github.com/sylvanlibrary/cardsearch/internal/domain/cardsearch"
	"github.com/sylvanlibrary/cardsearch/internal/gateways/database"
	"github.com/sylvanlibrary/cardsearch/internal/gateways/database/repositories"
	"github.com/sylvanlibrary/cardsearch/internal/gateways/memory"
	"github.com/sylvanlibrary/cardsearch/internal/gateways/mongo"
	"github.com/sylvanlibrary/cardsearch/internal/gateways/mtgjson"
	"github.com/sylvanlibrary/cardsearch/internal/gateways/spaces"
	"github.com/sylvanlibrary/cardsearch/sylvan/logger"
)

// App holds the catalog and search service built from a Config.
type App struct {
	Config  *Config
	Catalog cards.Catalog
	Search  cardsearch.Service

	closers []func()
}

// Writer is implemented by catalogs that can store imported cards.
type Writer interface {
	BulkCreate(ctx context.Context, list []*cards.Card) (int, error)
}

// Counter is implemented by catalogs that can report their size.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

func New(ctx context.Context, cfg *Config) (*App, error) {
	app := &App{Config: cfg}

	catalog, err := app.openCatalog(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Catalog = catalog
	app.Search = cardsearch.NewService(catalog, NewExecutor(cfg.Search), ServiceOptions(cfg.Search)...)

	size, err := app.Size(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	logger.LogSystem("Catalog ready",
		"backend", cfg.Catalog.Backend,
		"catalog", cardsearch.CatalogName(catalog),
		"cards", size)
	return app, nil
}

// Size returns the number of cards in the catalog, or -1 when the catalog
// cannot count itself.
func (a *App) Size(ctx context.Context) (int, error) {
	counter, ok := a.Catalog.(Counter)
	if !ok {
		return -1, nil
	}
	n, err := counter.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}
	return n, nil
}

func NewExecutor(cfg SearchConfig) *cardsearch.Executor {
	return cardsearch.NewExecutor(
		cardsearch.WithWorkers(cfg.Workers),
		cardsearch.WithChunkSize(cfg.ChunkSize),
	)
}

func ServiceOptions(cfg SearchConfig) []cardsearch.ServiceOption {
	return []cardsearch.ServiceOption{
		cardsearch.WithCacheSize(max(cfg.CacheSize, 0)),
		cardsearch.WithSuggestions(max(cfg.Suggestions, 0)),
	}
}

func (a *App) openCatalog(ctx context.Context) (cards.Catalog, error) {
	switch a.Config.Catalog.Backend {
	case BackendMemory:
		list, err := a.loadDataset(ctx)
		if err != nil {
			return nil, err
		}
		return memory.NewCatalog(BackendMemory, list), nil
	case BackendPostgres:
		db, err := database.New(ctx, a.Config.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		return repositories.NewCardRepository(db.BunDB()), nil
	case BackendMongo:
		catalog, err := mongo.Connect(ctx, a.Config.Mongo)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = catalog.Close() })
		return catalog, nil
	}
	return nil, fmt.Errorf("unknown catalog backend %q", a.Config.Catalog.Backend)
}

// loadDataset decodes the configured AllSets document, from Spaces when a
// key is configured and from the local file otherwise.
func (a *App) loadDataset(ctx context.Context) ([]*cards.Card, error) {
	start := time.Now()

	rc, source, err := a.openDataset(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	list, err := mtgjson.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", source, err)
	}

	logger.LogSystem("Dataset loaded",
		"source", source,
		"cards", len(list),
		"took", time.Since(start))
	return list, nil
}

func (a *App) openDataset(ctx context.Context) (io.ReadCloser, string, error) {
	cfg := a.Config.Catalog
	if cfg.SpacesKey != "" {
		svc, err := spaces.NewService(ctx, a.Config.Spaces)
		if err != nil {
			return nil, "", err
		}
		rc, err := svc.Open(ctx, cfg.SpacesKey)
		if err != nil {
			return nil, "", err
		}
		return rc, svc.Bucket() + "/" + cfg.SpacesKey, nil
	}

	file, err := os.Open(cfg.JSONPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open dataset: %w", err)
	}
	return file, cfg.JSONPath, nil
}

// Import decodes the configured dataset and writes it into the catalog.
// Only stores that implement Writer accept imports.
func (a *App) Import(ctx context.Context) (int, error) {
	writer, ok := a.Catalog.(Writer)
	if !ok {
		return 0, fmt.Errorf("catalog %s does not accept imports", cardsearch.CatalogName(a.Catalog))
	}

	list, err := a.loadDataset(ctx)
	if err != nil {
		return 0, err
	}

	written, err := writer.BulkCreate(ctx, list)
	if err != nil {
		return written, fmt.Errorf("failed to import cards: %w", err)
	}
	a.Search.Invalidate()

	size, err := a.Size(ctx)
	if err != nil {
		return written, err
	}
	logger.LogSystem("Import finished",
		"catalog", cardsearch.CatalogName(a.Catalog),
		"written", written,
		"cards", size)
	return written, nil
}

// InitializeSchema prepares the postgres schema. Other backends need no
// preparation.
func InitializeSchema(ctx context.Context, cfg *Config) error {
	if cfg.Catalog.Backend != BackendPostgres {
		return nil
	}
	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	return db.InitializeSchema(ctx)
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
