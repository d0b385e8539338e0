package config

import "time"

// Database and Performance Constants
const (
	// Timeouts
	DefaultQueryTimeout = 30 * time.Second
	SearchTimeout       = 10 * time.Second
	ImportTimeout       = 10 * time.Minute

	// Batch processing
	MaxBatchSize = 1000
	ScanPageSize = 5000
)

// Search Constants
const (
	DefaultCacheSize   = 256
	DefaultSuggestions = 5
	DefaultWorkers     = 4
	DefaultChunkSize   = 2048
)
