package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pathplay/pkg/cache"
	apperrors "github.com/matzehuels/pathplay/pkg/errors"
	"github.com/matzehuels/pathplay/pkg/graph"
	"github.com/matzehuels/pathplay/pkg/pathfind"
	"github.com/matzehuels/pathplay/pkg/playback"
	"github.com/matzehuels/pathplay/pkg/render"
)

var errNoGraph = apperrors.New(apperrors.ErrCodeInvalidInput, "no graph given")

// Runner executes the pipeline with caching. It holds no per-run state, so
// one Runner may serve concurrent requests.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
	FrameTTL time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// means the default keyer and a nil logger means log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger, FrameTTL: DefaultFrameTTL}
}

// Execute runs all stages.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	doc := opts.Document

	computeStart := time.Now()
	tr, err := r.Compute(ctx, doc)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Trace:     tr,
		Artifacts: make(map[string][]byte, len(opts.Formats)),
	}
	result.Stats.ComputeTime = time.Since(computeStart)
	result.Stats.Visited = tr.Len()
	result.Stats.Relaxations = tr.SnapshotCount() - 1

	r.Logger.Info("computed shortest paths",
		"nodes", doc.Graph.NodeCount(),
		"edges", doc.Graph.EdgeCount(),
		"visited", result.Stats.Visited,
		"duration", result.Stats.ComputeTime)

	frame, err := playback.FrameAt(tr, doc.Graph.EdgeCount(), opts.Step)
	if err != nil {
		return nil, err
	}
	result.Frame = frame

	hash, err := GraphHash(doc)
	if err != nil {
		return nil, err
	}
	result.GraphHash = hash

	renderStart := time.Now()
	allHit := true
	for _, format := range opts.Formats {
		data, hit, err := r.renderFrame(ctx, doc, hash, frame, format, opts.Refresh)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		allHit = allHit && hit
		result.Artifacts[format] = data
	}
	result.CacheHit = allHit
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered frame",
		"step", frame.Step,
		"formats", opts.Formats,
		"cached", allHit,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// Compute runs the path engine on doc.
func (r *Runner) Compute(ctx context.Context, doc graph.Document) (*pathfind.Trace, error) {
	return pathfind.ComputeContext(ctx, doc.Graph, doc.Source)
}

// RenderFrame draws f for doc, using the cache when possible. It reports
// whether the result came from the cache.
func (r *Runner) RenderFrame(ctx context.Context, doc graph.Document, f playback.Frame, format string) ([]byte, bool, error) {
	if err := render.ValidateFormat(format); err != nil {
		return nil, false, err
	}
	hash, err := GraphHash(doc)
	if err != nil {
		return nil, false, err
	}
	return r.renderFrame(ctx, doc, hash, f, format, false)
}

func (r *Runner) renderFrame(ctx context.Context, doc graph.Document, hash string, f playback.Frame, format string, refresh bool) ([]byte, bool, error) {
	key := r.Keyer.FrameKey(hash, cache.FrameKeyOpts{
		Source: doc.Source,
		Step:   f.Step,
		State:  f.State.String(),
		Format: format,
	})

	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			return data, true, nil
		} else if err != nil {
			r.Logger.Warn("cache read failed", "key", key, "err", err)
		}
	}

	data, err := render.Render(ctx, doc.Graph, f, format, render.NoPending(doc.Source))
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, data, r.FrameTTL); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
	}
	return data, false, nil
}

// GraphHash identifies a graph document by the hash of its JSON encoding.
func GraphHash(doc graph.Document) (string, error) {
	var buf bytes.Buffer
	if err := graph.Encode(&buf, doc, graph.FormatJSON); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}

// Close closes the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
