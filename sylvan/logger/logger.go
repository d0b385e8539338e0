package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeCommand LogType = "CMD"
	TypeDB      LogType = "DB"
	TypeSystem  LogType = "SYS"
	TypeError   LogType = "ERR"
)

// internalAttrs are folded into the message instead of printed as key=value.
var internalAttrs = map[string]bool{
	"type":           true,
	"name":           true,
	"status":         true,
	"error":          true,
	"error_location": true,
}

type CustomHandler struct {
	opts      *slog.HandlerOptions
	out       io.Writer
	mu        *sync.Mutex
	color     bool
	startTime time.Time
	attrs     []slog.Attr
	groups    []string
}

type Option func(*CustomHandler)

// WithOutput redirects output and disables colours.
func WithOutput(w io.Writer) Option {
	return func(h *CustomHandler) {
		h.out = w
		h.color = false
	}
}

func WithLevel(level slog.Leveler) Option {
	return func(h *CustomHandler) {
		h.opts.Level = level
	}
}

func NewHandler(opts ...Option) *CustomHandler {
	h := &CustomHandler{
		opts:      &slog.HandlerOptions{Level: slog.LevelInfo},
		out:       os.Stdout,
		mu:        &sync.Mutex{},
		color:     true,
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *CustomHandler) clone() *CustomHandler {
	c := *h
	c.attrs = append([]slog.Attr(nil), h.attrs...)
	c.groups = append([]string(nil), h.groups...)
	return &c
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := h.clone()
	prefix := h.groupPrefix()
	for _, a := range attrs {
		if !internalAttrs[a.Key] {
			a.Key = prefix + a.Key
		}
		c.attrs = append(c.attrs, a)
	}
	return c
}

func (h *CustomHandler) groupPrefix() string {
	if len(h.groups) == 0 {
		return ""
	}
	return strings.Join(h.groups, ".") + "."
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	c := h.clone()
	c.groups = append(c.groups, name)
	return c
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	timestamp := r.Time.Format("15:04:05")
	if r.Time.IsZero() {
		timestamp = time.Now().Format("15:04:05")
	}

	var levelColor, levelText string
	switch {
	case r.Level >= slog.LevelError:
		levelColor, levelText = colorRed, "ERROR"
	case r.Level >= slog.LevelWarn:
		levelColor, levelText = colorYellow, "WARN"
	case r.Level >= slog.LevelInfo:
		levelColor, levelText = colorGreen, "INFO"
	default:
		levelColor, levelText = colorPurple, "DEBUG"
	}

	message := r.Message
	if r.Level >= slog.LevelError {
		if location := errorLocation(&r); location != "" {
			message = fmt.Sprintf("%s (%s)", message, location)
		}
		if details := attrString(&r, "error"); details != "" {
			message = fmt.Sprintf("%s: %s", message, details)
		}
	}
	if name := attrString(&r, "name"); name != "" {
		message = fmt.Sprintf("%s [%s]", message, name)
	}
	if status := attrString(&r, "status"); status != "" {
		message = fmt.Sprintf("%s [Status: %s]", message, status)
	}

	var sb strings.Builder
	for _, a := range h.attrs {
		if !internalAttrs[a.Key] {
			fmt.Fprintf(&sb, " %s=%v", a.Key, a.Value)
		}
	}
	prefix := h.groupPrefix()
	r.Attrs(func(a slog.Attr) bool {
		if !internalAttrs[a.Key] {
			fmt.Fprintf(&sb, " %s%s=%v", prefix, a.Key, a.Value)
		}
		return true
	})

	line := fmt.Sprintf("[Sylvan] [%s] [%s] [%s] %s%s", timestamp, levelText, logType(&r), message, sb.String())
	if h.color {
		line = fmt.Sprintf("%s[Sylvan] [%s] [%s%s%s] [%s] %s%s%s",
			colorWhite, timestamp, levelColor, levelText, colorWhite, logType(&r), message, sb.String(), colorReset)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.out, line)
	return err
}

func logType(r *slog.Record) LogType {
	switch attrString(r, "type") {
	case "cmd":
		return TypeCommand
	case "db":
		return TypeDB
	case "error":
		return TypeError
	}
	return TypeSystem
}

func attrString(r *slog.Record, key string) string {
	var value string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			value = a.Value.String()
			return false
		}
		return true
	})
	return value
}

func errorLocation(r *slog.Record) string {
	if location := attrString(r, "error_location"); location != "" {
		return location
	}
	if r.PC == 0 {
		return ""
	}
	frames := runtime.CallersFrames([]uintptr{r.PC})
	frame, _ := frames.Next()
	if frame.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
}
