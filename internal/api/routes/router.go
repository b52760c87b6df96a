package routes

import (
	"net/http"

	"github.com/ammahealth/explainer-backend/internal/api/handlers"
	"github.com/ammahealth/explainer-backend/internal/api/middleware"
	"github.com/ammahealth/explainer-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	videoHandler *handlers.VideoHandler

	// storageDir, when set, is served under /storage/ so locally stored
	// videos are fetchable by their public URLs.
	storageDir string

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	videoHandler *handlers.VideoHandler,
	storageDir string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:          http.NewServeMux(),
		videoHandler: videoHandler,
		storageDir:   storageDir,
		metrics:      metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Video endpoints
	r.mux.HandleFunc("POST /api/videos/generate", r.videoHandler.GenerateVideo)

	// Locally stored videos
	if r.storageDir != "" {
		fileServer := http.FileServer(http.Dir(r.storageDir))
		r.mux.Handle("GET /storage/", http.StripPrefix("/storage/", fileServer))
	}

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}

	handler = middleware.CORSMiddleware(handler)

	return handler
}
