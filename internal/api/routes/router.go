package routes

import (
	"net/http"

	"github.com/resqlink/dispatch/internal/api/handlers"
	"github.com/resqlink/dispatch/internal/api/middleware"
	"github.com/resqlink/dispatch/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	facilityHandler *handlers.FacilityHandler
	triageHandler   *handlers.TriageHandler
	dispatchHandler *handlers.DispatchHandler
	tripHandler     *handlers.TripHandler
	tollHandler     *handlers.TollHandler
	sseHandler      *handlers.SSEHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	facilityHandler *handlers.FacilityHandler,
	triageHandler *handlers.TriageHandler,
	dispatchHandler *handlers.DispatchHandler,
	tripHandler *handlers.TripHandler,
	tollHandler *handlers.TollHandler,
	sseHandler *handlers.SSEHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		facilityHandler: facilityHandler,
		triageHandler:   triageHandler,
		dispatchHandler: dispatchHandler,
		tripHandler:     tripHandler,
		tollHandler:     tollHandler,
		sseHandler:      sseHandler,

		metrics: metrics,
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

	// Facility endpoints
	r.mux.HandleFunc("GET /api/facilities", r.facilityHandler.ListFacilities)
	r.mux.HandleFunc("POST /api/facilities/rank", r.facilityHandler.RankFacilities)

	// Triage endpoint
	r.mux.HandleFunc("POST /api/triage", r.triageHandler.ClassifyPatient)

	// Dispatch endpoint
	r.mux.HandleFunc("POST /api/dispatch", r.dispatchHandler.StartTrip)

	// Trip endpoints
	r.mux.HandleFunc("GET /api/trips", r.tripHandler.ListTrips)
	r.mux.HandleFunc("GET /api/trips/{id}", r.tripHandler.GetTrip)

	// Toll endpoints
	r.mux.HandleFunc("GET /api/tolls", r.tollHandler.ListTolls)

	// SSE streaming endpoints
	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /api/stream/trips", r.sseHandler.StreamTripUpdates)
		r.mux.HandleFunc("GET /api/stream/trips/{id}", r.sseHandler.StreamTrip)
		r.mux.HandleFunc("GET /api/stream/tolls", r.sseHandler.StreamTolls)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.RoleMiddleware(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so preflight requests never hit the mux
	handler = middleware.CORSMiddleware(handler)

	return handler
}
