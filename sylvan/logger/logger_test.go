package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerFormatsRecords(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(WithOutput(&buf), WithLevel(slog.LevelDebug)))

	log.Debug("Query executed", slog.String("type", "db"), slog.Int("matched", 3))
	out := buf.String()
	assert.Contains(t, out, "[Sylvan]")
	assert.Contains(t, out, "[DEBUG] [DB] Query executed matched=3")
	assert.NotContains(t, out, "type=")
	assert.NotContains(t, out, "\033[")
}

func TestHandlerFoldsErrorsIntoMessage(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(WithOutput(&buf)))

	log.Error("Search failed",
		slog.String("type", "error"),
		slog.String("error_location", "search.go:10"),
		slog.Any("error", errors.New("boom")))
	assert.Contains(t, buf.String(), "[ERROR] [ERR] Search failed (search.go:10): boom")
}

func TestHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(WithOutput(&buf), WithLevel(slog.LevelWarn)))

	log.Info("ignored")
	assert.Empty(t, buf.String())
}

func TestHandlerWithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(WithOutput(&buf))).With(slog.String("catalog", "memory")).WithGroup("search")

	log.Info("Started", slog.Int("workers", 4))
	assert.Contains(t, buf.String(), "[SYS] Started catalog=memory search.workers=4")
}
