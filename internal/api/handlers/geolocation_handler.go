package handlers

import (
	"net/http"

	"github.com/Jin-yujin/doctorpay-backend/internal/domain/providers"
)

// GeolocationHandler handles geocoding and place-search requests
type GeolocationHandler struct {
	provider providers.GeolocationProvider
}

// NewGeolocationHandler creates a new geolocation handler
func NewGeolocationHandler(provider providers.GeolocationProvider) *GeolocationHandler {
	return &GeolocationHandler{provider: provider}
}

// Geocode handles GET /api/geocode
func (h *GeolocationHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		respondWithError(w, http.StatusBadRequest, "address is required")
		return
	}

	coords, err := h.provider.Geocode(r.Context(), address)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, coords)
}

// ReverseRegion handles GET /api/region
func (h *GeolocationHandler) ReverseRegion(w http.ResponseWriter, r *http.Request) {
	lat := floatParam(r, "lat")
	lng := floatParam(r, "lng")
	if lat == 0 && lng == 0 {
		respondWithError(w, http.StatusBadRequest, "lat and lng are required")
		return
	}

	region, err := h.provider.ReverseRegion(r.Context(), lat, lng)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, region)
}

// SearchPlaces handles GET /api/places
func (h *GeolocationHandler) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("q")
	if keyword == "" {
		respondWithError(w, http.StatusBadRequest, "q is required")
		return
	}

	places, err := h.provider.SearchPlaces(
		r.Context(),
		keyword,
		floatParam(r, "lat"),
		floatParam(r, "lng"),
		intParam(r, "radius", 0),
	)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"places": places,
		"count":  len(places),
	})
}
