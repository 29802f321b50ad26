package amtrie

import (
	"context"
	"log/slog"
)

// MissReason tells why a lookup came back empty.
type MissReason uint8

const (
	MissEmpty  MissReason = iota // no root
	MissSymbol                   // a branch has no child for the next symbol
	MissLeaf                     // a leaf was reached with symbols left
	MissBranch                   // the key ended on a branch
)

func (r MissReason) String() string {
	switch r {
	case MissEmpty:
		return "empty"
	case MissSymbol:
		return "symbol"
	case MissLeaf:
		return "leaf"
	case MissBranch:
		return "branch"
	}

	return "unknown"
}

// Tracer observes lookups step by step. Implementations must be safe for
// concurrent use when the trie is shared between goroutines.
type Tracer interface {
	Descend(depth int, sym Symbol, offset int)
	Miss(depth int, reason MissReason)
	Hit(depth int, values int)
}

// NopTracer discards all events.
type NopTracer struct{}

func (NopTracer) Descend(int, Symbol, int) {}
func (NopTracer) Miss(int, MissReason)     {}
func (NopTracer) Hit(int, int)             {}

// SlogTracer reports lookup events as debug records of a structured logger.
type SlogTracer struct {
	logger *slog.Logger
}

// NewSlogTracer returns a tracer writing to the given logger, or to
// slog.Default() if logger is nil.
func NewSlogTracer(logger *slog.Logger) *SlogTracer {
	if logger == nil {
		logger = slog.Default()
	}

	return &SlogTracer{logger: logger.With("component", "amtrie")}
}

func (t *SlogTracer) Descend(depth int, sym Symbol, offset int) {
	t.logger.LogAttrs(context.Background(), slog.LevelDebug, "descend",
		slog.Int("depth", depth),
		slog.Int("symbol", int(sym)),
		slog.Int("offset", offset),
	)
}

func (t *SlogTracer) Miss(depth int, reason MissReason) {
	t.logger.LogAttrs(context.Background(), slog.LevelDebug, "miss",
		slog.Int("depth", depth),
		slog.String("reason", reason.String()),
	)
}

func (t *SlogTracer) Hit(depth int, values int) {
	t.logger.LogAttrs(context.Background(), slog.LevelDebug, "hit",
		slog.Int("depth", depth),
		slog.Int("values", values),
	)
}
