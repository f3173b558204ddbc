package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xtding233/pull-predictor/internal/game"
	"github.com/xtding233/pull-predictor/internal/metrics"
)

// Options configures a Server.
type Options struct {
	Addr          string
	CacheSize     int
	CacheTTL      time.Duration
	WatchInterval time.Duration
}

// Server exposes the odds engine over HTTP.
type Server struct {
	httpServer *http.Server
	presets    *game.Loader
	cache      *resultCache
	log        *zap.Logger
	watchEvery time.Duration
}

// New wires routes, the result cache and preset lookups.
func New(opts Options, presets *game.Loader, log *zap.Logger) *Server {
	s := &Server{
		presets:    presets,
		cache:      newResultCache(opts.CacheSize, opts.CacheTTL),
		log:        log,
		watchEvery: opts.WatchInterval,
	}
	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/odds", s.handleOdds)
		r.Get("/pity", s.handlePity)
		r.Get("/presets", s.handlePresets)
	})
	return r
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Run serves until ctx is cancelled, then shuts down gracefully. Preset
// changes on disk purge the loader and result caches.
func (s *Server) Run(ctx context.Context) error {
	if s.watchEvery > 0 {
		w := game.NewFileWatcher(s.presets.Paths().BaseDir, s.watchEvery, func(path string) {
			s.log.Info("preset changed, reloading", zap.String("path", path))
			s.presets.Invalidate()
			s.cache.purge()
		})
		go w.Run(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
