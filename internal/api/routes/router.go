package routes

import (
	"net/http"

	"github.com/velectro/voicelead/backend/internal/api/handlers"
	"github.com/velectro/voicelead/backend/internal/api/middleware"
	"github.com/velectro/voicelead/backend/internal/infrastructure/observability"
)

// Router holds all route handlers

type Router struct {
	mux *http.ServeMux

	leadHandler *handlers.LeadHandler

	twimlHandler *handlers.TwiMLHandler

	recordingWebhookHandler *handlers.RecordingWebhookHandler

	sseHandler *handlers.SSEHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	leadHandler *handlers.LeadHandler,
	twimlHandler *handlers.TwiMLHandler,
	recordingWebhookHandler *handlers.RecordingWebhookHandler,
	sseHandler *handlers.SSEHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		leadHandler: leadHandler,

		twimlHandler: twimlHandler,

		recordingWebhookHandler: recordingWebhookHandler,

		sseHandler: sseHandler,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
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

	// Lead endpoints
	r.mux.HandleFunc("POST /api/submit", r.leadHandler.Submit)
	r.mux.HandleFunc("GET /api/recs/{userId}", r.leadHandler.GetRecommendations)
	r.mux.HandleFunc("GET /api/call-status/{userId}", r.leadHandler.GetCallStatus)

	// Voice provider endpoints
	r.mux.HandleFunc("GET /api/twiml/{userId}", r.twimlHandler.ServeInterview)
	r.mux.HandleFunc("POST /api/twiml-response", r.twimlHandler.Advance)
	r.mux.HandleFunc("POST /api/recording-callback", r.recordingWebhookHandler.HandleRecording)

	// SSE endpoint for lead progress updates
	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /api/stream/leads/{userId}", r.sseHandler.StreamLeadUpdates)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
