package sylvan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sylvanlibrary/cardsearch/internal/domain/cards"
	"github.com/sylvanlibrary/cardsearch/internal/domain/cardsearch"
	"github.com/sylvanlibrary/cardsearch/internal/domain/colour"
)

const dataset = `{
  "LEA": {
    "code": "LEA",
    "cards": [
      {"name": "Serra Angel", "types": ["Creature"], "subtypes": ["Angel"], "cmc": 5, "power": "4", "toughness": "4", "colors": ["W"], "colorIdentity": ["W"]},
      {"name": "Lightning Bolt", "text": "Lightning Bolt deals 3 damage to any target.", "types": ["Instant"], "cmc": 1, "colors": ["R"], "colorIdentity": ["R"]},
      {"name": "Sol Ring", "types": ["Artifact"], "cmc": 1}
    ]
  }
}`

func memoryConfig(t *testing.T) *Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "AllSets.json")
	require.NoError(t, os.WriteFile(path, []byte(dataset), 0o600))

	cfg := DefaultConfig()
	cfg.Catalog.JSONPath = path
	return cfg
}

func TestNewMemoryApp(t *testing.T) {
	app, err := New(context.Background(), memoryConfig(t))
	require.NoError(t, err)
	defer app.Close()

	size, err := app.Size(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, size)

	res, err := app.Search.Search(context.Background(), cardsearch.FieldSearch{
		Colours: cardsearch.ColourSelection{Colours: []colour.Set{colour.Red}},
	})
	require.NoError(t, err)
	require.Len(t, res.Cards, 1)
	assert.Equal(t, "Lightning Bolt", res.Cards[0].Name)
}

func TestNewMissingDataset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Catalog.JSONPath = filepath.Join(t.TempDir(), "missing.json")

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestImportRejectsReadOnlyCatalog(t *testing.T) {
	app, err := New(context.Background(), memoryConfig(t))
	require.NoError(t, err)
	defer app.Close()

	_, err = app.Import(context.Background())
	assert.ErrorContains(t, err, "does not accept imports")
}

type countingCatalog struct {
	n   int
	err error
}

func (c countingCatalog) Each(context.Context, func(*cards.Card) error) error { return nil }

func (c countingCatalog) Count(context.Context) (int, error) { return c.n, c.err }

func TestAppSize(t *testing.T) {
	app := &App{Catalog: countingCatalog{n: 42}}
	size, err := app.Size(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, size)

	app = &App{Catalog: countingCatalog{err: errors.New("down")}}
	_, err = app.Size(context.Background())
	assert.ErrorContains(t, err, "failed to count cards")
}
