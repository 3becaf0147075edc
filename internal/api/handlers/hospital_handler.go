package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Jin-yujin/doctorpay-backend/internal/application/services"
	"github.com/Jin-yujin/doctorpay-backend/internal/domain/entities"
)

// HospitalAggregator is the slice of the hospital service the handler needs.
type HospitalAggregator interface {
	FetchAndJoin(ctx context.Context, query services.FetchQuery) ([]*entities.HospitalInfo, error)
	GetHospital(ctx context.Context, ykiho string) (*entities.HospitalInfo, error)
	DetailItems(ctx context.Context, ykiho string) ([]entities.NonPaymentItem, error)
	CurrentState(ctx context.Context, ykiho string) (entities.OperationState, error)
}

// SnapshotSource exposes the latest published aggregation snapshot.
type SnapshotSource interface {
	Latest() *services.Snapshot
	Refresh(ctx context.Context, query services.FetchQuery) (*services.Snapshot, error)
}

// Suggester serves typeahead suggestions from the search index.
type Suggester interface {
	Suggest(ctx context.Context, query string, limit int) ([]*entities.HospitalInfo, error)
}

// HospitalHandler handles hospital-related HTTP requests
type HospitalHandler struct {
	aggregator HospitalAggregator
	feed       SnapshotSource
	suggester  Suggester
}

// NewHospitalHandler creates a new hospital handler. feed and suggester may
// be nil; their endpoints then return 503.
func NewHospitalHandler(aggregator HospitalAggregator, feed SnapshotSource, suggester Suggester) *HospitalHandler {
	return &HospitalHandler{
		aggregator: aggregator,
		feed:       feed,
		suggester:  suggester,
	}
}

// ListHospitals handles GET /api/hospitals
func (h *HospitalHandler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	query := queryFromRequest(r)

	hospitals, err := h.aggregator.FetchAndJoin(r.Context(), query)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"hospitals": hospitals,
		"count":     len(hospitals),
	})
}

// GetHospital handles GET /api/hospitals/{ykiho}
func (h *HospitalHandler) GetHospital(w http.ResponseWriter, r *http.Request) {
	ykiho := r.PathValue("ykiho")
	if ykiho == "" {
		respondWithError(w, http.StatusBadRequest, "ykiho is required")
		return
	}

	hospital, err := h.aggregator.GetHospital(r.Context(), ykiho)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, hospital)
}

// GetHospitalItems handles GET /api/hospitals/{ykiho}/items
func (h *HospitalHandler) GetHospitalItems(w http.ResponseWriter, r *http.Request) {
	ykiho := r.PathValue("ykiho")
	if ykiho == "" {
		respondWithError(w, http.StatusBadRequest, "ykiho is required")
		return
	}

	items, err := h.aggregator.DetailItems(r.Context(), ykiho)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if items == nil {
		items = []entities.NonPaymentItem{}
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

// GetHospitalStatus handles GET /api/hospitals/{ykiho}/status
func (h *HospitalHandler) GetHospitalStatus(w http.ResponseWriter, r *http.Request) {
	ykiho := r.PathValue("ykiho")
	if ykiho == "" {
		respondWithError(w, http.StatusBadRequest, "ykiho is required")
		return
	}

	state, err := h.aggregator.CurrentState(r.Context(), ykiho)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{
		"state":   string(state),
		"display": state.DisplayText(),
	})
}

// SuggestHospitals handles GET /api/hospitals/suggest
func (h *HospitalHandler) SuggestHospitals(w http.ResponseWriter, r *http.Request) {
	if h.suggester == nil {
		respondWithError(w, http.StatusServiceUnavailable, "search index not configured")
		return
	}

	q := r.URL.Query().Get("q")
	if q == "" {
		respondWithError(w, http.StatusBadRequest, "q is required")
		return
	}
	limit := intParam(r, "limit", 10)

	hospitals, err := h.suggester.Suggest(r.Context(), q, limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"hospitals": hospitals,
		"count":     len(hospitals),
	})
}

// GetSnapshot handles GET /api/snapshot
func (h *HospitalHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	if h.feed == nil {
		respondWithError(w, http.StatusServiceUnavailable, "feed not configured")
		return
	}

	snapshot := h.feed.Latest()
	if snapshot == nil {
		respondWithError(w, http.StatusNotFound, "no snapshot published yet")
		return
	}
	respondWithJSON(w, http.StatusOK, snapshot)
}

// RefreshSnapshot handles POST /api/snapshot/refresh
func (h *HospitalHandler) RefreshSnapshot(w http.ResponseWriter, r *http.Request) {
	if h.feed == nil {
		respondWithError(w, http.StatusServiceUnavailable, "feed not configured")
		return
	}

	snapshot, err := h.feed.Refresh(r.Context(), queryFromRequest(r))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, snapshot)
}

func queryFromRequest(r *http.Request) services.FetchQuery {
	params := r.URL.Query()
	return services.FetchQuery{
		RegionCode:   params.Get("sido"),
		DistrictCode: params.Get("sggu"),
		Neighborhood: params.Get("emdong"),
		Name:         params.Get("name"),
		Latitude:     floatParam(r, "lat"),
		Longitude:    floatParam(r, "lng"),
		RadiusMeters: intParam(r, "radius", 0),
		PageNo:       intParam(r, "page", 0),
		PageSize:     intParam(r, "page_size", 0),
	}
}

func intParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func floatParam(r *http.Request, name string) float64 {
	value, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
	if err != nil {
		return 0
	}
	return value
}
