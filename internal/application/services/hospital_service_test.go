package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jin-yujin/doctorpay-backend/internal/domain/entities"
	"github.com/Jin-yujin/doctorpay-backend/internal/infrastructure/clients/hira"
	apperrors "github.com/Jin-yujin/doctorpay-backend/pkg/errors"
)

type fakeHIRAClient struct {
	mu sync.Mutex

	hospitalPage *hira.HospitalPage
	hospitalErr  error
	itemPage     *hira.ItemPage
	itemErr      error

	hours    map[string]*entities.HospitalTimeInfo
	hoursErr map[string]error

	hoursCalls    []string
	listHook      func(query hira.HospitalQuery)
	lastItemQuery hira.ItemQuery
}

func (f *fakeHIRAClient) ListHospitals(ctx context.Context, query hira.HospitalQuery) (*hira.HospitalPage, error) {
	if f.listHook != nil {
		f.listHook(query)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hospitalErr != nil {
		return nil, f.hospitalErr
	}
	if query.Ykiho != "" {
		for _, h := range f.hospitalPage.Hospitals {
			if h.Ykiho == query.Ykiho {
				return &hira.HospitalPage{Hospitals: []entities.Hospital{h}, TotalCount: 1}, nil
			}
		}
		return &hira.HospitalPage{}, nil
	}
	return f.hospitalPage, nil
}

func (f *fakeHIRAClient) ListNonPaymentItems(ctx context.Context, query hira.ItemQuery) (*hira.ItemPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastItemQuery = query
	if f.itemErr != nil {
		return nil, f.itemErr
	}
	return f.itemPage, nil
}

func (f *fakeHIRAClient) GetOperatingHours(ctx context.Context, ykiho string) (*entities.HospitalTimeInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hoursCalls = append(f.hoursCalls, ykiho)
	if err, ok := f.hoursErr[ykiho]; ok {
		return nil, err
	}
	if info, ok := f.hours[ykiho]; ok {
		return info, nil
	}
	return nil, apperrors.NewNotFoundError("no detail info")
}

func weekdayProfile() *entities.HospitalTimeInfo {
	return &entities.HospitalTimeInfo{
		WeekdayOpen:  &entities.ClockTime{Hour: 9},
		WeekdayClose: &entities.ClockTime{Hour: 18},
	}
}

func newJoinFixture() *fakeHIRAClient {
	return &fakeHIRAClient{
		hospitalPage: &hira.HospitalPage{
			Hospitals: []entities.Hospital{
				{Ykiho: "YK-A", Name: "서울내과의원", DeptCodes: "01"},
				{Ykiho: "YK-B", Name: "밝은미소치과", DeptCodes: "49"},
				{Name: "식별자없는의원"},
			},
			TotalCount: 3,
		},
		itemPage: &hira.ItemPage{
			Items: []entities.NonPaymentItem{
				{HospitalName: "서울내과의원", Name: "독감 예방접종"},
				{HospitalName: "  서울내과의원 ", Name: "대상포진 예방접종"},
				{HospitalName: "밝은미소치과", Name: "임플란트"},
				{HospitalName: "", Name: "연결불가항목"},
			},
			TotalCount: 4,
		},
		hours: map[string]*entities.HospitalTimeInfo{
			"YK-A": weekdayProfile(),
			"YK-B": weekdayProfile(),
		},
	}
}

func newTestService(client hira.Client) *HospitalService {
	svc := NewHospitalService(client, NewDepartmentClassifier(), HospitalServiceOptions{DetailConcurrency: 2})
	// A Monday morning inside the weekday window.
	svc.clock = func() time.Time { return time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestFetchAndJoinGroupsItemsByNormalizedName(t *testing.T) {
	client := newJoinFixture()
	svc := newTestService(client)

	got, err := svc.FetchAndJoin(context.Background(), FetchQuery{RegionCode: "110000"})
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Registry order is preserved.
	assert.Equal(t, "서울내과의원", got[0].Name)
	assert.Equal(t, "밝은미소치과", got[1].Name)
	assert.Equal(t, "식별자없는의원", got[2].Name)

	// Whitespace-variant names land in the same bucket.
	require.Len(t, got[0].Items, 2)
	assert.Len(t, got[1].Items, 1)

	// The blank-name item joined nowhere and was dropped.
	assert.Empty(t, got[2].Items)

	assert.Equal(t, "진료중", got[0].StateText)
	assert.Equal(t, []string{"내과"}, got[0].Departments)
}

func TestFetchAndJoinFailsClosedOnRegistryError(t *testing.T) {
	client := newJoinFixture()
	client.hospitalErr = apperrors.NewNetworkError("upstream down", errors.New("boom"))
	svc := newTestService(client)

	got, err := svc.FetchAndJoin(context.Background(), FetchQuery{})
	assert.Nil(t, got)
	assert.True(t, apperrors.IsNetwork(err))
}

func TestFetchAndJoinFailsClosedOnItemError(t *testing.T) {
	client := newJoinFixture()
	client.itemErr = apperrors.NewNetworkError("upstream down", errors.New("boom"))
	svc := newTestService(client)

	got, err := svc.FetchAndJoin(context.Background(), FetchQuery{})
	assert.Nil(t, got)
	assert.True(t, apperrors.IsNetwork(err))
}

func TestFetchAndJoinIsolatesDetailFailures(t *testing.T) {
	client := newJoinFixture()
	client.hoursErr = map[string]error{
		"YK-B": apperrors.NewNetworkError("detail down", errors.New("boom")),
	}
	svc := newTestService(client)

	got, err := svc.FetchAndJoin(context.Background(), FetchQuery{})
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.NotNil(t, got[0].TimeInfo)
	assert.Nil(t, got[1].TimeInfo)
	assert.Equal(t, "정보없음", got[1].StateText)
}

func TestFetchAndJoinSkipsDetailForUnidentifiedHospitals(t *testing.T) {
	client := newJoinFixture()
	svc := newTestService(client)

	_, err := svc.FetchAndJoin(context.Background(), FetchQuery{})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"YK-A", "YK-B"}, client.hoursCalls)
}

func TestFetchAndJoinCachesHours(t *testing.T) {
	client := newJoinFixture()
	svc := newTestService(client)
	cache := newMemoryCache()
	svc.cache = cache

	_, err := svc.FetchAndJoin(context.Background(), FetchQuery{})
	require.NoError(t, err)
	firstRound := len(client.hoursCalls)

	_, err = svc.FetchAndJoin(context.Background(), FetchQuery{})
	require.NoError(t, err)

	assert.Equal(t, firstRound, len(client.hoursCalls), "second cycle should be served from cache")
}

func TestGetHospital(t *testing.T) {
	client := newJoinFixture()
	svc := newTestService(client)

	got, err := svc.GetHospital(context.Background(), "YK-A")
	require.NoError(t, err)
	assert.Equal(t, "서울내과의원", got.Name)
	require.Len(t, got.Items, 2)
	assert.NotNil(t, got.TimeInfo)
}

func TestGetHospitalValidation(t *testing.T) {
	svc := newTestService(newJoinFixture())

	_, err := svc.GetHospital(context.Background(), "")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestGetHospitalNotFound(t *testing.T) {
	svc := newTestService(newJoinFixture())

	_, err := svc.GetHospital(context.Background(), "YK-MISSING")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetHospitalDegradesOnItemFailure(t *testing.T) {
	client := newJoinFixture()
	client.itemErr = apperrors.NewNetworkError("items down", errors.New("boom"))
	svc := newTestService(client)

	got, err := svc.GetHospital(context.Background(), "YK-A")
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.NotNil(t, got.TimeInfo)
}

func TestDetailItemsFiltersExactName(t *testing.T) {
	client := newJoinFixture()
	client.itemPage.Items = append(client.itemPage.Items,
		entities.NonPaymentItem{HospitalName: "서울내과의원분점", Name: "프리픽스매치항목"})
	svc := newTestService(client)

	got, err := svc.DetailItems(context.Background(), "YK-A")
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, item := range got {
		assert.NotEqual(t, "프리픽스매치항목", item.Name)
	}
}

func TestCurrentState(t *testing.T) {
	client := newJoinFixture()
	svc := newTestService(client)

	state, err := svc.CurrentState(context.Background(), "YK-A")
	require.NoError(t, err)
	assert.Equal(t, entities.StateOpen, state)
}

func TestCurrentStateDegradesToUnknown(t *testing.T) {
	client := newJoinFixture()
	client.hoursErr = map[string]error{
		"YK-A": apperrors.NewNetworkError("detail down", errors.New("boom")),
	}
	svc := newTestService(client)

	state, err := svc.CurrentState(context.Background(), "YK-A")
	require.NoError(t, err)
	assert.Equal(t, entities.StateUnknown, state)
}

// memoryCache is a minimal CacheProvider for tests.
type memoryCache struct {
	mu    sync.Mutex
	store map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{store: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.store[key]
	if !ok {
		return nil, apperrors.NewNotFoundError("cache miss")
	}
	return value, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = value
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}
