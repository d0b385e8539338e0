package logger

import (
	"log/slog"
	"time"
)

// QueryLogger times a single search against a catalog and reports it once
// the search has finished.
type QueryLogger struct {
	Operation string
	Catalog   string
	Query     string
	StartTime time.Time
}

func NewQueryLogger(operation, catalog, query string) *QueryLogger {
	return &QueryLogger{
		Operation: operation,
		Catalog:   catalog,
		Query:     query,
		StartTime: time.Now(),
	}
}

func (l *QueryLogger) Log(err error, matched int) {
	duration := time.Since(l.StartTime)

	if err != nil {
		slog.Error("Search failed",
			slog.String("type", "db"),
			slog.String("operation", l.Operation),
			slog.String("catalog", l.Catalog),
			slog.String("query", l.Query),
			slog.Duration("took", duration),
			slog.Any("error", err),
		)
		return
	}

	slog.Debug("Search executed",
		slog.String("type", "db"),
		slog.String("operation", l.Operation),
		slog.String("catalog", l.Catalog),
		slog.String("query", l.Query),
		slog.Duration("took", duration),
		slog.Int("matched", matched),
	)
}
