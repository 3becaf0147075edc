package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jin-yujin/doctorpay-backend/internal/application/services"
	"github.com/Jin-yujin/doctorpay-backend/internal/domain/entities"
	apperrors "github.com/Jin-yujin/doctorpay-backend/pkg/errors"
)

type stubAggregator struct {
	hospitals []*entities.HospitalInfo
	err       error
	lastQuery services.FetchQuery
	state     entities.OperationState
}

func (s *stubAggregator) FetchAndJoin(ctx context.Context, query services.FetchQuery) ([]*entities.HospitalInfo, error) {
	s.lastQuery = query
	return s.hospitals, s.err
}

func (s *stubAggregator) GetHospital(ctx context.Context, ykiho string) (*entities.HospitalInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, h := range s.hospitals {
		if h.Ykiho == ykiho {
			return h, nil
		}
	}
	return nil, apperrors.NewNotFoundError("hospital not found")
}

func (s *stubAggregator) DetailItems(ctx context.Context, ykiho string) ([]entities.NonPaymentItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, h := range s.hospitals {
		if h.Ykiho == ykiho {
			return h.Items, nil
		}
	}
	return nil, apperrors.NewNotFoundError("hospital not found")
}

func (s *stubAggregator) CurrentState(ctx context.Context, ykiho string) (entities.OperationState, error) {
	return s.state, s.err
}

func fixtureHospital() *entities.HospitalInfo {
	return &entities.HospitalInfo{
		Ykiho:     "YK-A",
		Name:      "서울내과의원",
		Address:   "서울 중구 세종대로 110",
		StateText: "진료중",
		Items:     []entities.NonPaymentItem{{Name: "독감 예방접종"}},
	}
}

func TestListHospitals(t *testing.T) {
	stub := &stubAggregator{hospitals: []*entities.HospitalInfo{fixtureHospital()}}
	handler := NewHospitalHandler(stub, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals?sido=110000&name=%EB%82%B4%EA%B3%BC&page=2", nil)
	rec := httptest.NewRecorder()
	handler.ListHospitals(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "110000", stub.lastQuery.RegionCode)
	assert.Equal(t, "내과", stub.lastQuery.Name)
	assert.Equal(t, 2, stub.lastQuery.PageNo)

	var body struct {
		Count     int                      `json:"count"`
		Hospitals []*entities.HospitalInfo `json:"hospitals"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "서울내과의원", body.Hospitals[0].Name)
}

func TestListHospitalsUpstreamFailure(t *testing.T) {
	stub := &stubAggregator{err: apperrors.NewNetworkError("upstream down", errors.New("boom"))}
	handler := NewHospitalHandler(stub, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals", nil)
	rec := httptest.NewRecorder()
	handler.ListHospitals(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGetHospital(t *testing.T) {
	stub := &stubAggregator{hospitals: []*entities.HospitalInfo{fixtureHospital()}}
	handler := NewHospitalHandler(stub, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals/YK-A", nil)
	req.SetPathValue("ykiho", "YK-A")
	rec := httptest.NewRecorder()
	handler.GetHospital(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got entities.HospitalInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "YK-A", got.Ykiho)
}

func TestGetHospitalNotFound(t *testing.T) {
	handler := NewHospitalHandler(&stubAggregator{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals/YK-MISSING", nil)
	req.SetPathValue("ykiho", "YK-MISSING")
	rec := httptest.NewRecorder()
	handler.GetHospital(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetHospitalStatus(t *testing.T) {
	stub := &stubAggregator{state: entities.StateLunchBreak}
	handler := NewHospitalHandler(stub, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals/YK-A/status", nil)
	req.SetPathValue("ykiho", "YK-A")
	rec := httptest.NewRecorder()
	handler.GetHospitalStatus(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, string(entities.StateLunchBreak), body["state"])
	assert.Equal(t, "점심시간", body["display"])
}

func TestSuggestWithoutIndex(t *testing.T) {
	handler := NewHospitalHandler(&stubAggregator{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals/suggest?q=%EB%82%B4%EA%B3%BC", nil)
	rec := httptest.NewRecorder()
	handler.SuggestHospitals(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetSnapshotBeforeFirstRefresh(t *testing.T) {
	handler := NewHospitalHandler(&stubAggregator{}, &stubFeed{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/snapshot", nil)
	rec := httptest.NewRecorder()
	handler.GetSnapshot(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRefreshSnapshot(t *testing.T) {
	feed := &stubFeed{snapshot: &services.Snapshot{Cycle: 7}}
	handler := NewHospitalHandler(&stubAggregator{}, feed, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/snapshot/refresh?sido=110000", nil)
	rec := httptest.NewRecorder()
	handler.RefreshSnapshot(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got services.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, uint64(7), got.Cycle)
}

type stubFeed struct {
	snapshot *services.Snapshot
}

func (f *stubFeed) Latest() *services.Snapshot { return f.snapshot }

func (f *stubFeed) Refresh(ctx context.Context, query services.FetchQuery) (*services.Snapshot, error) {
	return f.snapshot, nil
}
