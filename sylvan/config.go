package sylvan

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/sylvanlibrary/cardsearch/internal/gateways/database"
	"github.com/sylvanlibrary/cardsearch/internal/gateways/mongo"
	"github.com/sylvanlibrary/cardsearch/internal/gateways/spaces"
	"github.com/sylvanlibrary/cardsearch/sylvan/config"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig is used when no config file is given.
func DefaultConfig() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

type Config struct {
	Log     LogConfig           `toml:"log"`
	Catalog CatalogConfig       `toml:"catalog"`
	DB      database.DBConfig   `toml:"db"`
	Mongo   mongo.MongoConfig   `toml:"mongo"`
	Spaces  spaces.SpacesConfig `toml:"spaces"`
	Search  SearchConfig        `toml:"search"`
}

type LogConfig struct {
	Level slog.Level `toml:"level"`
}

type CatalogConfig struct {
	Backend string `toml:"backend"`
	// JSONPath is a local AllSets file. SpacesKey, when set, takes precedence
	// and names the object to fetch from the configured bucket.
	JSONPath  string `toml:"json_path"`
	SpacesKey string `toml:"spaces_key"`
}

type SearchConfig struct {
	Workers   int `toml:"workers"`
	ChunkSize int `toml:"chunk_size"`
	// CacheSize of -1 disables result caching.
	CacheSize int `toml:"cache_size"`
	// Suggestions of -1 disables name suggestions.
	Suggestions       int  `toml:"suggestions"`
	IncludeColourless bool `toml:"include_colourless"`
}

func (c *Config) applyDefaults() {
	if c.Catalog.Backend == "" {
		c.Catalog.Backend = BackendMemory
	}
	if c.Search.Workers == 0 {
		c.Search.Workers = config.DefaultWorkers
	}
	if c.Search.ChunkSize == 0 {
		c.Search.ChunkSize = config.DefaultChunkSize
	}
	if c.Search.CacheSize == 0 {
		c.Search.CacheSize = config.DefaultCacheSize
	}
	if c.Search.Suggestions == 0 {
		c.Search.Suggestions = config.DefaultSuggestions
	}
	if c.DB.Port == 0 {
		c.DB.Port = 5432
	}
}

func (c *Config) Validate() error {
	switch c.Catalog.Backend {
	case BackendMemory:
		if c.Catalog.JSONPath == "" && c.Catalog.SpacesKey == "" {
			return fmt.Errorf("catalog backend %q needs json_path or spaces_key", c.Catalog.Backend)
		}
	case BackendPostgres:
		if c.DB.Host == "" || c.DB.Database == "" {
			return fmt.Errorf("catalog backend %q needs db.host and db.database", c.Catalog.Backend)
		}
	case BackendMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return fmt.Errorf("catalog backend %q needs mongo.uri and mongo.database", c.Catalog.Backend)
		}
	default:
		return fmt.Errorf("unknown catalog backend %q", c.Catalog.Backend)
	}
	if c.Search.Workers < 0 {
		return fmt.Errorf("search.workers must not be negative")
	}
	return nil
}
