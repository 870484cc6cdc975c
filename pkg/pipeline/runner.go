package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/promptdeck/flownote/pkg/ascii"
	"github.com/promptdeck/flownote/pkg/cache"
	"github.com/promptdeck/flownote/pkg/errors"
	"github.com/promptdeck/flownote/pkg/flow"
	"github.com/promptdeck/flownote/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete detect → parse → layout → render pipeline
// with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stages 1+2: Detect and parse, unless a graph was supplied directly.
	var d flow.Data
	if opts.Flow != nil {
		if err := flow.Validate(*opts.Flow); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFlow, err, "validate input graph")
		}
		d = *opts.Flow
	} else {
		detectStart := time.Now()
		det := Detect(ctx, opts.Text)
		result.Stats.DetectTime = time.Since(detectStart)
		if det == nil {
			return nil, errors.New(errors.ErrCodeNoDiagram, "no flow diagram detected in input")
		}
		result.Detection = det

		parseStart := time.Now()
		parsed, parseHit, err := r.ParseBlockWithCacheInfo(ctx, det.RawBlock, opts)
		if err != nil {
			return nil, err
		}
		d = parsed
		result.Stats.ParseTime = time.Since(parseStart)
		result.CacheInfo.ParseHit = parseHit
	}

	result.Stats.NodeCount = len(d.Nodes)
	result.Stats.EdgeCount = len(d.Edges)

	// Content hash of the graph, for cache keys and API responses.
	if data, err := flow.MarshalData(d); err == nil {
		result.FlowHash = cache.Hash(data)
	}

	r.Logger.Info("parsed flow",
		"nodes", len(d.Nodes),
		"edges", len(d.Edges),
		"duration", result.Stats.ParseTime)

	// Stage 3: Layout
	layoutStart := time.Now()
	positioned, layoutHit, err := r.LayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, err
	}
	result.Flow = positioned
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"nodes", len(positioned.Nodes),
		"duration", result.Stats.LayoutTime)

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, positioned, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseBlockWithCacheInfo parses a diagram block with caching and reports
// whether the result came from cache. The cache key hashes the block itself,
// so the same diagram embedded in different surrounding text hits the same
// entry.
func (r *Runner) ParseBlockWithCacheInfo(ctx context.Context, block string, opts Options) (flow.Data, bool, error) {
	if err := opts.ValidateForParse(); err != nil {
		return flow.Data{}, false, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.FlowKey(cache.Hash([]byte(block)), opts.FlowKeyOpts())
	cacheHooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if d, err := flow.UnmarshalData(data); err == nil {
				cacheHooks.OnCacheHit(ctx, "flow")
				return d, true, nil
			}
		}
		cacheHooks.OnCacheMiss(ctx, "flow")
	}

	hooks := observability.Engine()
	hooks.OnParseStart(ctx, len(block))

	start := time.Now()
	d := ascii.ParseWith(block, opts.parseOptions())
	if d == nil {
		hooks.OnParseComplete(ctx, 0, 0, time.Since(start))
		return flow.Data{}, false, errors.New(errors.ErrCodeNoDiagram, "detected block contains no recognizable boxes")
	}
	hooks.OnParseComplete(ctx, len(d.Nodes), len(d.Edges), time.Since(start))

	if !opts.Refresh {
		if data, err := flow.MarshalData(*d); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLFlow); err == nil {
				cacheHooks.OnCacheSet(ctx, "flow", len(data))
			}
		}
	}

	return *d, false, nil
}

// LayoutWithCacheInfo computes layout positions with caching and reports
// whether the result came from cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, d flow.Data, opts Options) (flow.Data, bool, error) {
	opts.SetLayoutDefaults()
	r.applyLogger(&opts)

	data, err := flow.MarshalData(d)
	if err != nil {
		return flow.Data{}, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize flow for cache key")
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(data), opts.LayoutKeyOpts())
	cacheHooks := observability.Cache()

	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if positioned, err := flow.UnmarshalData(cached); err == nil {
				cacheHooks.OnCacheHit(ctx, "layout")
				return positioned, true, nil
			}
		}
		cacheHooks.OnCacheMiss(ctx, "layout")
	}

	positioned := ApplyLayout(ctx, d, opts)

	if !opts.Refresh {
		if data, err := flow.MarshalData(positioned); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
				cacheHooks.OnCacheSet(ctx, "layout", len(data))
			}
		}
	}

	return positioned, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and reports whether
// all of them came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d flow.Data, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid render options")
	}
	r.applyLogger(&opts)

	data, err := flow.MarshalData(d)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize flow for cache key")
	}
	flowHash := cache.Hash(data)
	cacheHooks := observability.Cache()

	// Try to serve every format from cache.
	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		allCached := true
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(flowHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			cacheHooks.OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		cacheHooks.OnCacheMiss(ctx, "artifact")
	}

	rendered, err := Render(ctx, d, opts)
	if err != nil {
		return nil, false, err
	}

	if !opts.Refresh {
		for format, data := range rendered {
			cacheKey := r.Keyer.ArtifactKey(flowHash, opts.ArtifactKeyOpts(format))
			if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
				cacheHooks.OnCacheSet(ctx, "artifact", len(data))
			}
		}
	}

	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
