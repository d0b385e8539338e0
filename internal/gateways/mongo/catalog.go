package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sylvanlibrary/cardsearch/internal/domain/cards"
	"github.com/sylvanlibrary/cardsearch/internal/domain/cardsearch"
	"github.com/sylvanlibrary/cardsearch/sylvan/config"
	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultCollection = "cards"

type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Catalog serves cards from a MongoDB collection.
type Catalog struct {
	client *driver.Client
	coll   *driver.Collection
}

var _ cards.Catalog = (*Catalog)(nil)
var _ cardsearch.Filterer = (*Catalog)(nil)

// Connect dials the server, verifies it with a ping and returns a catalog
// bound to the configured collection.
func Connect(ctx context.Context, cfg MongoConfig) (*Catalog, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	client, err := driver.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	name := cfg.Collection
	if name == "" {
		name = defaultCollection
	}

	slog.Info("Connected to mongo",
		slog.String("type", "db"),
		slog.String("database", cfg.Database),
		slog.String("collection", name))

	return NewCatalog(client, client.Database(cfg.Database).Collection(name)), nil
}

func NewCatalog(client *driver.Client, coll *driver.Collection) *Catalog {
	return &Catalog{client: client, coll: coll}
}

func (c *Catalog) Name() string {
	return "mongo"
}

func (c *Catalog) Each(ctx context.Context, fn func(*cards.Card) error) error {
	cur, err := c.coll.Find(ctx, bson.D{}, sortedByID())
	if err != nil {
		return fmt.Errorf("failed to scan cards: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc cardDocument
		if err := cur.Decode(&doc); err != nil {
			return fmt.Errorf("failed to decode card: %w", err)
		}
		if err := fn(doc.toDomain()); err != nil {
			return err
		}
	}
	return cur.Err()
}

// Filter runs the whole tree as a single find.
func (c *Catalog) Filter(ctx context.Context, root cardsearch.Parameter) ([]*cards.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, config.SearchTimeout)
	defer cancel()

	cur, err := c.coll.Find(ctx, FilterDocument(root), sortedByID())
	if err != nil {
		return nil, fmt.Errorf("failed to filter cards: %w", err)
	}

	var docs []cardDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode cards: %w", err)
	}

	result := make([]*cards.Card, 0, len(docs))
	for i := range docs {
		result = append(result, docs[i].toDomain())
	}
	return result, nil
}

func (c *Catalog) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	n, err := c.coll.CountDocuments(ctx, bson.D{})
	return int(n), err
}

// BulkCreate replaces or inserts every card by id, in batches.
func (c *Catalog) BulkCreate(ctx context.Context, list []*cards.Card) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, config.ImportTimeout)
	defer cancel()

	written := 0
	for i := 0; i < len(list); i += config.MaxBatchSize {
		end := min(i+config.MaxBatchSize, len(list))

		models := make([]driver.WriteModel, 0, end-i)
		for _, card := range list[i:end] {
			models = append(models, driver.NewReplaceOneModel().
				SetFilter(bson.D{{Key: "_id", Value: card.ID}}).
				SetReplacement(fromDomain(card)).
				SetUpsert(true))
		}

		res, err := c.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
		if err != nil {
			return written, fmt.Errorf("failed to write batch %d: %w", i/config.MaxBatchSize+1, err)
		}
		written += int(res.UpsertedCount + res.ModifiedCount)
	}
	return written, nil
}

func (c *Catalog) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}

func sortedByID() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
}
