// Package logging installs the process-wide slog logger. The terminal UI
// owns stdout, so logs go to a JSON file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/expomatematica/quizmat/internal/config"
)

// Init sets the default slog logger to a JSON handler appending to
// cfg.File at cfg.Level. The returned closer flushes and closes the file.
// An empty File discards logs.
func Init(cfg config.LogConfig) (io.Closer, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	var (
		w      io.Writer = io.Discard
		closer io.Closer = nopCloser{}
	)
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}

	slog.SetDefault(New(w, level))
	return closer, nil
}

// New returns a JSON logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler).With("app", "quizmat")
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
