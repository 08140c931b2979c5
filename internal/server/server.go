// Package server implements the x-stitch HTTP API.
//
// The API exposes the generation pipeline over JSON plus a small
// pattern library for saving named configurations. Rendering goes
// through the shared pipeline runner, so server responses hit the same
// cache as CLI runs against the same backend.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/HamletDuFromage/x-stitch/pkg/cache"
	"github.com/HamletDuFromage/x-stitch/pkg/errors"
	xio "github.com/HamletDuFromage/x-stitch/pkg/io"
	"github.com/HamletDuFromage/x-stitch/pkg/palette"
	"github.com/HamletDuFromage/x-stitch/pkg/pattern"
	"github.com/HamletDuFromage/x-stitch/pkg/pipeline"
	"github.com/HamletDuFromage/x-stitch/pkg/render"
	"github.com/HamletDuFromage/x-stitch/pkg/store"
	"github.com/HamletDuFromage/x-stitch/pkg/threads"
)

// Server holds the HTTP handler and its backends.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	cache  cache.Cache
	store  store.Store
	logger *log.Logger
	router chi.Router
}

// New assembles a server from a config, opening the configured cache and
// store backends.
func New(ctx context.Context, cfg Config, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}

	c, err := openCache(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}
	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		runner: pipeline.NewRunner(c, cache.NewDefaultKeyer(), logger),
		cache:  c,
		store:  st,
		logger: logger,
	}
	s.router = s.routes()
	return s, nil
}

func openCache(ctx context.Context, cfg CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case CacheMemory:
		return cache.NewMemoryCache(), nil
	case CacheFile:
		return cache.NewFileCache(cfg.Dir)
	case CacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	case CacheNone:
		return cache.NewNullCache(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", cfg.Backend)
	}
}

func openStore(ctx context.Context, cfg StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case StoreMemory:
		return store.NewMemoryStore(), nil
	case StoreMongo:
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q", cfg.Backend)
	}
}

// Handler returns the HTTP handler for mounting or testing.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// Close releases the cache and store backends.
func (s *Server) Close(ctx context.Context) error {
	cerr := s.cache.Close()
	serr := s.store.Close(ctx)
	if cerr != nil {
		return cerr
	}
	return serr
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", s.handleGenerate)
		r.Post("/render/{format}", s.handleRender)
		r.Post("/threads", s.handleThreads)
		r.Get("/palettes", s.handlePalettes)

		r.Route("/patterns", func(r chi.Router) {
			r.Post("/", s.handleSavePattern)
			r.Get("/", s.handleListPatterns)
			r.Get("/{id}", s.handleGetPattern)
			r.Delete("/{id}", s.handleDeletePattern)
			r.Get("/{id}/preview.svg", s.handlePreview)
		})
	})

	return r
}

// logRequests logs one line per request with method, path, status and
// duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// ===== Handlers =====

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// generateRequest is the body of POST /api/generate and /api/render.
// The configuration uses the interchange format from pkg/io.
type generateRequest struct {
	Config    json.RawMessage `json:"config"`
	CellSize  float64         `json:"cellSize,omitempty"`
	GridLines bool            `json:"gridLines,omitempty"`
}

func (s *Server) decodeConfig(r *http.Request) (generateRequest, []byte, error) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	if len(req.Config) == 0 {
		return req, nil, errors.New(errors.ErrCodeInvalidInput, "missing config")
	}
	return req, req.Config, nil
}

// parseConfig decodes the interchange config and enforces the size cap.
func (s *Server) parseConfig(cfgJSON []byte) (pattern.Config, error) {
	cfg, err := xio.Unmarshal(cfgJSON)
	if err != nil {
		return pattern.Config{}, err
	}
	if cfg.Width*cfg.Height > s.cfg.MaxCells {
		return pattern.Config{}, errors.New(errors.ErrCodeInvalidDimensions,
			"pattern too large: %dx%d exceeds %d cells", cfg.Width, cfg.Height, s.cfg.MaxCells)
	}
	return cfg, nil
}

// handleGenerate generates a pattern and returns the JSON envelope with
// the full grid and histogram.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	_, cfgJSON, err := s.decodeConfig(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cfg, err := s.parseConfig(cfgJSON)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Config:  cfg,
		Formats: []string{pipeline.FormatJSON},
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Config-Hash", result.ConfigHash)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[pipeline.FormatJSON])
}

// handleRender renders a pattern to the requested format and returns the
// raw artifact bytes.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if format == pipeline.FormatJSON || !pipeline.ValidFormats[format] {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "unsupported render format %q", format))
		return
	}

	req, cfgJSON, err := s.decodeConfig(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cfg, err := s.parseConfig(cfgJSON)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Config:    cfg,
		Formats:   []string{format},
		CellSize:  req.CellSize,
		GridLines: req.GridLines,
		TTL:       s.cfg.Cache.TTL.Duration,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("X-Config-Hash", result.ConfigHash)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatText:
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// threadsRequest is the body of POST /api/threads.
type threadsRequest struct {
	Config      json.RawMessage `json:"config"`
	FabricCount int             `json:"fabricCount,omitempty"`
	Strands     int             `json:"strands,omitempty"`
}

// handleThreads generates a pattern and returns a floss usage estimate.
func (s *Server) handleThreads(w http.ResponseWriter, r *http.Request) {
	var req threadsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if len(req.Config) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "missing config"))
		return
	}
	cfg, err := s.parseConfig(req.Config)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Config:  cfg,
		Formats: []string{pipeline.FormatJSON},
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	summary := threads.Estimate(pattern.Histogram(result.Pattern.Grid), threads.Options{
		FabricCount: req.FabricCount,
		Strands:     req.Strands,
	})
	writeJSON(w, http.StatusOK, summary)
}

// handlePalettes lists the built-in palettes.
func (s *Server) handlePalettes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, palette.All())
}

// savePatternRequest is the body of POST /api/patterns.
type savePatternRequest struct {
	Name   string          `json:"name"`
	Config json.RawMessage `json:"config"`
}

func (s *Server) handleSavePattern(w http.ResponseWriter, r *http.Request) {
	var req savePatternRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if len(req.Config) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "missing config"))
		return
	}

	// Validate before saving so the library never holds broken configs.
	cfg, err := xio.Unmarshal(req.Config)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := pattern.Validate(cfg); err != nil {
		s.writeError(w, r, err)
		return
	}
	canonical, err := xio.Marshal(cfg)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	p := &store.SavedPattern{Name: req.Name, ConfigJSON: canonical}
	if err := s.store.Save(r.Context(), p); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleListPatterns(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetPattern(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeletePattern(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePreview renders a saved pattern to SVG.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cfg, err := xio.Unmarshal(p.ConfigJSON)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Config:    cfg,
		Formats:   []string{pipeline.FormatSVG},
		CellSize:  render.DefaultCellSize,
		GridLines: true,
		TTL:       s.cfg.Cache.TTL.Duration,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[pipeline.FormatSVG])
}

// ===== Responses =====

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps engine error codes onto HTTP statuses: invalid
// configuration becomes 400, missing entities 404, everything else 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)
	switch {
	case errors.IsInvalidConfiguration(err):
		status = http.StatusBadRequest
	case errors.Is(err, errors.ErrCodePatternNotFound),
		errors.Is(err, errors.ErrCodePaletteNotFound),
		errors.Is(err, errors.ErrCodeNotFound):
		status = http.StatusNotFound
	}
	if status >= 500 {
		s.logger.Error("request failed",
			"path", r.URL.Path,
			"error", err,
			"request_id", middleware.GetReqID(r.Context()),
		)
	}
	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
