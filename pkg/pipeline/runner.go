package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/HamletDuFromage/x-stitch/pkg/cache"
	xio "github.com/HamletDuFromage/x-stitch/pkg/io"
	"github.com/HamletDuFromage/x-stitch/pkg/observability"
	"github.com/HamletDuFromage/x-stitch/pkg/pattern"
	"github.com/HamletDuFromage/x-stitch/pkg/render"
)

// Runner executes the pipeline with artifact caching. It is stateless
// apart from the cache and logger, so one Runner can serve concurrent
// requests with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects the default key layout, a nil logger falls back to log.Default.
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute generates the configured pattern and renders the requested
// formats, consulting the cache per artifact. Generation itself always
// runs: it is cheap, deterministic and needed for the JSON envelope.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	cfgJSON, err := xio.Marshal(opts.Config)
	if err != nil {
		return nil, err
	}

	result := &Result{
		ConfigHash: cache.Hash(cfgJSON),
		Artifacts:  make(map[string][]byte),
	}

	shape := pattern.ShapeName(opts.Config.Shape)
	cells := opts.Config.Width * opts.Config.Height

	genStart := time.Now()
	observability.Pipeline().OnGenerateStart(ctx, shape, cells)
	p, err := pattern.Generate(opts.Config)
	observability.Pipeline().OnGenerateComplete(ctx, shape, cells, time.Since(genStart), err)
	if err != nil {
		return nil, err
	}
	result.Pattern = p
	result.Stats.GenerateTime = time.Since(genStart)

	r.Logger.Debug("generated pattern",
		"shape", shape,
		"cells", cells,
		"layers", p.ResolvedLayerCount,
		"duration", result.Stats.GenerateTime)

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}

	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	for _, format := range opts.Formats {
		data, hit, err := r.renderCached(ctx, p, result.ConfigHash, format, opts, ttl)
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
			return nil, err
		}
		if hit {
			result.Stats.CacheHits++
		} else {
			result.Stats.CacheMisses++
		}
		result.Artifacts[format] = data
	}
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)

	r.Logger.Info("rendered pattern",
		"formats", opts.Formats,
		"cacheHits", result.Stats.CacheHits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// renderCached produces one artifact, consulting the cache first.
// Text output is terminal-profile dependent and is never cached.
func (r *Runner) renderCached(ctx context.Context, p *pattern.Pattern, configHash, format string, opts Options, ttl time.Duration) ([]byte, bool, error) {
	if format == FormatText {
		return []byte(render.Text(p.Grid)), false, nil
	}

	key := r.Keyer.RenderKey(configHash, cache.RenderKeyOpts{
		Format:    format,
		CellSize:  opts.CellSize,
		GridLines: opts.GridLines,
	})

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, format)
		return data, true, nil
	} else if err != nil {
		// A broken cache must not fail generation.
		r.Logger.Warn("cache read failed", "key", key, "err", err)
	}
	observability.Cache().OnCacheMiss(ctx, format)

	data, err := r.renderFormat(p, format, opts)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, format, len(data))
	}
	return data, false, nil
}

func (r *Runner) renderFormat(p *pattern.Pattern, format string, opts Options) ([]byte, error) {
	renderOpts := []render.Option{render.WithCellSize(opts.CellSize)}
	if opts.GridLines {
		renderOpts = append(renderOpts, render.WithGridLines())
	}

	switch format {
	case FormatSVG:
		return render.SVG(p.Grid, renderOpts...), nil
	case FormatPNG:
		return render.PNG(p.Grid, renderOpts...)
	default: // FormatJSON; ValidateAndSetDefaults rejected everything else
		return EncodePattern(p)
	}
}
