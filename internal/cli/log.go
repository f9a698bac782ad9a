package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pathplay/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Computed 4 steps (1ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Logging Hooks
// =============================================================================

// loggingHooks forwards observability events to a logger at debug level.
type loggingHooks struct {
	logger *log.Logger
}

func installLoggingHooks(l *log.Logger) {
	h := &loggingHooks{logger: l.WithPrefix("hooks")}
	observability.SetEngineHooks(h)
	observability.SetPlaybackHooks(h)
	observability.SetCacheHooks(h)
}

func (h *loggingHooks) OnComputeStart(_ context.Context, nodes, edges, source int) {
	h.logger.Debug("compute start", "nodes", nodes, "edges", edges, "source", source)
}

func (h *loggingHooks) OnComputeComplete(_ context.Context, visited, relaxations int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("compute failed", "err", err)
		return
	}
	h.logger.Debug("compute done", "visited", visited, "relaxations", relaxations, "duration", d)
}

func (h *loggingHooks) OnStateChange(from, to string, step int) {
	h.logger.Debug("playback", "from", from, "to", to, "step", step)
}

func (h *loggingHooks) OnTick(step, total int) {
	h.logger.Debug("tick", "step", step, "total", total)
}

func (h *loggingHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *loggingHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *loggingHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
