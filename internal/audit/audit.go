package audit

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lakshaymaurya-felt/macmole/internal/sdk"
)

// Logger is the append-only audit sink. One structured entry is written per
// candidate outcome; entries are JSON lines so the log stays greppable and
// machine-readable. A single Logger is the only writer for a run.
type Logger struct {
	log    *slog.Logger
	mirror *slog.Logger
	closer io.Closer
}

// NewFileLogger opens (or creates) an append-only audit log at path.
func NewFileLogger(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create audit log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	return &Logger{
		log:    slog.New(slog.NewJSONHandler(f, nil)),
		closer: f,
	}, nil
}

// NewWriterLogger writes entries to an arbitrary writer. Used by tests.
func NewWriterLogger(w io.Writer) *Logger {
	return &Logger{log: slog.New(slog.NewJSONHandler(w, nil))}
}

// Mirror echoes every entry to w as readable text, on top of the JSON log.
// Wired to stderr by --debug.
func (l *Logger) Mirror(w io.Writer) {
	l.mirror = slog.New(slog.NewTextHandler(w, nil))
}

// Close releases the underlying file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// Record implements sdk.Sink: one entry per SDK retention outcome.
func (l *Logger) Record(d sdk.Decision, status sdk.Status, size int64, err error) {
	attrs := []any{
		slog.String("platform", d.Candidate.Platform),
		slog.String("path", d.Candidate.Path),
		slog.String("version", d.Candidate.Version.String()),
		slog.Int("rank", d.Rank),
		slog.String("action", string(d.Action)),
		slog.String("result", string(status)),
		slog.Int64("size", size),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.emit("sdk", attrs)
}

// Cleanup records one pass-through category outcome (user caches, volumes,
// project artifacts, prune commands). Same sink, same ordering contract.
func (l *Logger) Cleanup(category, path, result string, size int64, err error) {
	attrs := []any{
		slog.String("category", category),
		slog.String("path", path),
		slog.String("result", result),
		slog.Int64("size", size),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.emit("clean", attrs)
}

func (l *Logger) emit(msg string, attrs []any) {
	l.log.Info(msg, attrs...)
	if l.mirror != nil {
		l.mirror.Info(msg, attrs...)
	}
}
