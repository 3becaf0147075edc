package routes

import (
	"net/http"

	"github.com/Jin-yujin/doctorpay-backend/internal/api/handlers"
	"github.com/Jin-yujin/doctorpay-backend/internal/api/middleware"
	"github.com/Jin-yujin/doctorpay-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	hospitalHandler    *handlers.HospitalHandler
	recentHandler      *handlers.RecentHandler
	geolocationHandler *handlers.GeolocationHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	hospitalHandler *handlers.HospitalHandler,
	recentHandler *handlers.RecentHandler,
	geolocationHandler *handlers.GeolocationHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		hospitalHandler:    hospitalHandler,
		recentHandler:      recentHandler,
		geolocationHandler: geolocationHandler,
		cacheMiddleware:    cacheMiddleware,
		metrics:            metrics,
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

	// Hospital endpoints
	r.mux.HandleFunc("GET /api/hospitals", r.hospitalHandler.ListHospitals)
	r.mux.HandleFunc("GET /api/hospitals/suggest", r.hospitalHandler.SuggestHospitals)
	r.mux.HandleFunc("GET /api/hospitals/{ykiho}", r.hospitalHandler.GetHospital)
	r.mux.HandleFunc("GET /api/hospitals/{ykiho}/items", r.hospitalHandler.GetHospitalItems)
	r.mux.HandleFunc("GET /api/hospitals/{ykiho}/status", r.hospitalHandler.GetHospitalStatus)

	// Snapshot endpoints
	r.mux.HandleFunc("GET /api/snapshot", r.hospitalHandler.GetSnapshot)
	r.mux.HandleFunc("POST /api/snapshot/refresh", r.hospitalHandler.RefreshSnapshot)

	// Recently-viewed endpoints
	r.mux.HandleFunc("GET /api/recents", r.recentHandler.ListRecents)
	r.mux.HandleFunc("POST /api/recents", r.recentHandler.TouchRecent)
	r.mux.HandleFunc("DELETE /api/recents", r.recentHandler.ClearRecents)

	// Geolocation endpoints
	if r.geolocationHandler != nil {
		r.mux.HandleFunc("GET /api/geocode", r.geolocationHandler.Geocode)
		r.mux.HandleFunc("GET /api/region", r.geolocationHandler.ReverseRegion)
		r.mux.HandleFunc("GET /api/places", r.geolocationHandler.SearchPlaces)
	}

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
