package infra

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type CacheManager interface {
	Stats() map[string]int
	Clear()
	CleanupExpired()
}

// AdminServer serves /metrics and, when a cache is configured, the cache
// maintenance endpoints on a listener separate from the public API.
type AdminServer struct {
	srv          *http.Server
	cacheManager CacheManager
}

// NewAdmin builds the admin listener; cacheManager may be nil.
func NewAdmin(addr string, cacheManager CacheManager) *AdminServer {
	as := &AdminServer{cacheManager: cacheManager}

	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/cache/stats", as.handleCacheStats)
	r.Post("/cache/clear", as.handleCacheClear)
	r.Post("/cache/cleanup", as.handleCacheCleanup)

	as.srv = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
	return as
}

func (a *AdminServer) Handler() http.Handler {
	return a.srv.Handler
}

func (a *AdminServer) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	if a.cacheManager == nil {
		http.Error(w, "cache not available", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.cacheManager.Stats()); err != nil {
		slog.Error("failed to encode cache stats", "error", err)
	}
}

func (a *AdminServer) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	if a.cacheManager == nil {
		http.Error(w, "cache not available", http.StatusServiceUnavailable)
		return
	}

	a.cacheManager.Clear()
	if _, err := w.Write([]byte("cache cleared")); err != nil {
		slog.Warn("admin write failed", "error", err)
	}
}

func (a *AdminServer) handleCacheCleanup(w http.ResponseWriter, r *http.Request) {
	if a.cacheManager == nil {
		http.Error(w, "cache not available", http.StatusServiceUnavailable)
		return
	}

	a.cacheManager.CleanupExpired()
	if _, err := w.Write([]byte("expired cache entries cleaned")); err != nil {
		slog.Warn("admin write failed", "error", err)
	}
}

func (a *AdminServer) Start() {
	go func() {
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("admin listen error", "error", err)
		}
	}()
}

func (a *AdminServer) Shutdown(ctx context.Context) {
	if err := a.srv.Shutdown(ctx); err != nil {
		slog.Warn("admin shutdown error", "error", err)
	}
}
