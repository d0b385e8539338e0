package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/sylvanlibrary/cardsearch/internal/domain/cards"
	"github.com/sylvanlibrary/cardsearch/internal/domain/cardsearch"
	"github.com/sylvanlibrary/cardsearch/internal/gateways/database/models"
	"github.com/sylvanlibrary/cardsearch/sylvan/config"
	"github.com/uptrace/bun"
)

type cardRepository struct {
	db       *bun.DB
	pageSize int
}

var _ cards.Catalog = &cardRepository{}
var _ cardsearch.Filterer = &cardRepository{}

func NewCardRepository(db *bun.DB) *cardRepository {
	return &cardRepository{
		db:       db,
		pageSize: config.ScanPageSize,
	}
}

func (r *cardRepository) Name() string {
	return "postgres"
}

// Each pages through the table in id order so the whole catalog is never
// held in memory at once.
func (r *cardRepository) Each(ctx context.Context, fn func(*cards.Card) error) error {
	var lastID int64
	first := true

	for {
		var page []*models.Card
		query := r.db.NewSelect().
			Model(&page).
			Order("c.id ASC").
			Limit(r.pageSize)
		if !first {
			query = query.Where("c.id > ?", lastID)
		}

		if err := r.scan(ctx, query); err != nil {
			return fmt.Errorf("failed to scan cards: %w", err)
		}

		for _, m := range page {
			if err := fn(m.ToDomain()); err != nil {
				return err
			}
		}

		if len(page) < r.pageSize {
			return nil
		}
		lastID = page[len(page)-1].ID
		first = false
	}
}

func (r *cardRepository) scan(ctx context.Context, query *bun.SelectQuery) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()
	return query.Scan(ctx)
}

// Filter pushes the whole tree down into a single WHERE clause.
func (r *cardRepository) Filter(ctx context.Context, root cardsearch.Parameter) ([]*cards.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, config.SearchTimeout)
	defer cancel()

	clause, args := WhereClause(root)

	var rows []*models.Card
	err := r.db.NewSelect().
		Model(&rows).
		Where(clause, args...).
		Order("c.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to filter cards: %w", err)
	}

	result := make([]*cards.Card, 0, len(rows))
	for _, m := range rows {
		result = append(result, m.ToDomain())
	}
	return result, nil
}

func (r *cardRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	return r.db.NewSelect().Model((*models.Card)(nil)).Count(ctx)
}

// BulkCreate upserts cards in batches and returns the number of rows
// written.
func (r *cardRepository) BulkCreate(ctx context.Context, list []*cards.Card) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, config.ImportTimeout)
	defer cancel()

	if len(list) == 0 {
		return 0, nil
	}

	now := time.Now()
	totalCreated := 0

	for i := 0; i < len(list); i += config.MaxBatchSize {
		end := min(i+config.MaxBatchSize, len(list))

		batch := make([]*models.Card, 0, end-i)
		for _, card := range list[i:end] {
			m := models.FromDomain(card)
			m.CreatedAt = now
			m.UpdatedAt = now
			batch = append(batch, m)
		}

		res, err := r.db.NewInsert().
			Model(&batch).
			On("CONFLICT (id) DO UPDATE").
			Set("name = EXCLUDED.name").
			Set("rules_text = EXCLUDED.rules_text").
			Set("flavour_text = EXCLUDED.flavour_text").
			Set("type = EXCLUDED.type").
			Set("subtype = EXCLUDED.subtype").
			Set("cmc = EXCLUDED.cmc").
			Set("power = EXCLUDED.power").
			Set("toughness = EXCLUDED.toughness").
			Set("colour_flags = EXCLUDED.colour_flags").
			Set("colour_identity_flags = EXCLUDED.colour_identity_flags").
			Set("set_code = EXCLUDED.set_code").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return totalCreated, fmt.Errorf("failed to insert batch %d: %w", i/config.MaxBatchSize+1, err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return totalCreated, err
		}
		totalCreated += int(affected)
	}

	return totalCreated, nil
}
