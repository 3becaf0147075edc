package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Jin-yujin/doctorpay-backend/internal/domain/entities"
	"github.com/Jin-yujin/doctorpay-backend/internal/domain/providers"
	"github.com/Jin-yujin/doctorpay-backend/internal/domain/repositories"
	"github.com/Jin-yujin/doctorpay-backend/internal/infrastructure/clients/hira"
	"github.com/Jin-yujin/doctorpay-backend/internal/infrastructure/observability"
	apperrors "github.com/Jin-yujin/doctorpay-backend/pkg/errors"
)

const (
	defaultPageSize          = 100
	defaultDetailConcurrency = 8
	hoursCacheTTLSeconds     = 6 * 60 * 60
	hoursCachePrefix         = "hira:hours:"
)

// FetchQuery parameterizes one fetch-and-join cycle: either a
// (region, district) pair or a coordinate+radius, plus an optional
// free-text name filter.
type FetchQuery struct {
	RegionCode   string  `json:"region_code,omitempty"`
	DistrictCode string  `json:"district_code,omitempty"`
	Neighborhood string  `json:"neighborhood,omitempty"`
	Name         string  `json:"name,omitempty"`
	Latitude     float64 `json:"latitude,omitempty"`
	Longitude    float64 `json:"longitude,omitempty"`
	RadiusMeters int     `json:"radius_meters,omitempty"`
	PageNo       int     `json:"page_no,omitempty"`
	PageSize     int     `json:"page_size,omitempty"`
}

// HospitalServiceOptions holds the optional collaborators of the service.
// Every field may be zero; the service degrades feature by feature.
type HospitalServiceOptions struct {
	SearchRepo        repositories.HospitalSearchRepository
	Cache             providers.CacheProvider
	Metrics           *observability.Metrics
	PageSize          int
	DetailConcurrency int
}

// HospitalService is the multi-source join engine: it fetches the hospital
// registry and the non-payment item list concurrently, joins them by
// hospital name, enriches each identifiable hospital with operating hours,
// and builds the final aggregates.
type HospitalService struct {
	client            hira.Client
	classifier        *DepartmentClassifier
	searchRepo        repositories.HospitalSearchRepository
	cache             providers.CacheProvider
	metrics           *observability.Metrics
	pageSize          int
	detailConcurrency int
	clock             func() time.Time
}

// NewHospitalService creates a new hospital aggregation service
func NewHospitalService(client hira.Client, classifier *DepartmentClassifier, opts HospitalServiceOptions) *HospitalService {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	concurrency := opts.DetailConcurrency
	if concurrency <= 0 {
		concurrency = defaultDetailConcurrency
	}
	return &HospitalService{
		client:            client,
		classifier:        classifier,
		searchRepo:        opts.SearchRepo,
		cache:             opts.Cache,
		metrics:           opts.Metrics,
		pageSize:          pageSize,
		detailConcurrency: concurrency,
		clock:             time.Now,
	}
}

// FetchAndJoin runs one aggregation cycle. The two primary fetches run
// concurrently and the cycle fails closed: if either source fails, no
// partial list is returned. Detail-hours fetches fan out over a bounded
// worker pool and fail open per hospital. Output order matches the
// upstream registry order.
func (s *HospitalService) FetchAndJoin(ctx context.Context, query FetchQuery) ([]*entities.HospitalInfo, error) {
	start := s.clock()
	logger := observability.LoggerFromContext(ctx)

	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = s.pageSize
	}

	var (
		wg       sync.WaitGroup
		hospPage *hira.HospitalPage
		hospErr  error
		itemPage *hira.ItemPage
		itemErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		hospPage, hospErr = s.client.ListHospitals(ctx, hira.HospitalQuery{
			RegionCode:   query.RegionCode,
			DistrictCode: query.DistrictCode,
			Neighborhood: query.Neighborhood,
			Name:         query.Name,
			Latitude:     query.Latitude,
			Longitude:    query.Longitude,
			RadiusMeters: query.RadiusMeters,
			PageNo:       query.PageNo,
			NumOfRows:    pageSize,
		})
	}()
	go func() {
		defer wg.Done()
		itemPage, itemErr = s.client.ListNonPaymentItems(ctx, hira.ItemQuery{
			HospitalName: query.Name,
			RegionCode:   query.RegionCode,
			DistrictCode: query.DistrictCode,
			PageNo:       query.PageNo,
			NumOfRows:    pageSize,
		})
	}()
	wg.Wait()

	if hospErr != nil {
		observability.RecordCycleMetric(ctx, s.metrics, false, time.Since(start))
		return nil, hospErr
	}
	if itemErr != nil {
		observability.RecordCycleMetric(ctx, s.metrics, false, time.Since(start))
		return nil, itemErr
	}

	buckets, dropped := groupItemsByHospital(itemPage.Items)
	if dropped > 0 && s.metrics != nil {
		s.metrics.JoinDroppedItems.Add(ctx, int64(dropped))
	}

	timeInfos := s.fetchHours(ctx, hospPage.Hospitals)

	now := s.clock()
	aggregates := make([]*entities.HospitalInfo, 0, len(hospPage.Hospitals))
	for i, record := range hospPage.Hospitals {
		items := buckets[entities.NameJoinKey(record.Name)]
		aggregates = append(aggregates, BuildHospitalInfo(record, items, timeInfos[i], s.classifier, now))
	}

	s.indexAggregates(ctx, aggregates)

	logger.Info().
		Int("hospitals", len(aggregates)).
		Int("items", len(itemPage.Items)).
		Int("dropped_items", dropped).
		Dur("duration", time.Since(start)).
		Msg("fetch-and-join cycle complete")
	observability.RecordCycleMetric(ctx, s.metrics, true, time.Since(start))

	return aggregates, nil
}

// GetHospital assembles the aggregate for one identifier. Hours and item
// enrichment fail open; only the registry lookup itself is required.
func (s *HospitalService) GetHospital(ctx context.Context, ykiho string) (*entities.HospitalInfo, error) {
	if ykiho == "" {
		return nil, apperrors.NewValidationError("ykiho is required")
	}

	page, err := s.client.ListHospitals(ctx, hira.HospitalQuery{Ykiho: ykiho, NumOfRows: 1})
	if err != nil {
		return nil, err
	}
	if len(page.Hospitals) == 0 {
		return nil, apperrors.NewNotFoundError("hospital not found")
	}
	record := page.Hospitals[0]

	items, err := s.itemsForHospitalName(ctx, record.Name)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("ykiho", ykiho).Msg("item enrichment failed, continuing without items")
		items = nil
	}

	timeInfo, err := s.operatingHours(ctx, ykiho)
	if err != nil {
		timeInfo = nil
	}

	return BuildHospitalInfo(record, items, timeInfo, s.classifier, s.clock()), nil
}

// DetailItems returns the matched non-payment items for one hospital,
// for detail screens that do not need the full list cycle.
func (s *HospitalService) DetailItems(ctx context.Context, ykiho string) ([]entities.NonPaymentItem, error) {
	if ykiho == "" {
		return nil, apperrors.NewValidationError("ykiho is required")
	}

	page, err := s.client.ListHospitals(ctx, hira.HospitalQuery{Ykiho: ykiho, NumOfRows: 1})
	if err != nil {
		return nil, err
	}
	if len(page.Hospitals) == 0 {
		return nil, apperrors.NewNotFoundError("hospital not found")
	}
	return s.itemsForHospitalName(ctx, page.Hospitals[0].Name)
}

// CurrentState derives the live operating state for one hospital. A failed
// or missing detail lookup degrades to UNKNOWN, never to an error.
func (s *HospitalService) CurrentState(ctx context.Context, ykiho string) (entities.OperationState, error) {
	if ykiho == "" {
		return entities.StateUnknown, apperrors.NewValidationError("ykiho is required")
	}
	timeInfo, err := s.operatingHours(ctx, ykiho)
	if err != nil {
		return entities.StateUnknown, nil
	}
	return timeInfo.StateAt(s.clock()), nil
}

func (s *HospitalService) itemsForHospitalName(ctx context.Context, name string) ([]entities.NonPaymentItem, error) {
	if entities.NormalizeName(name) == "" {
		return nil, nil
	}
	page, err := s.client.ListNonPaymentItems(ctx, hira.ItemQuery{HospitalName: name, NumOfRows: s.pageSize})
	if err != nil {
		return nil, err
	}

	// The upstream name filter is a prefix match; keep exact matches only.
	want := entities.NameJoinKey(name)
	items := make([]entities.NonPaymentItem, 0, len(page.Items))
	for _, item := range page.Items {
		if entities.NameJoinKey(item.HospitalName) == want {
			items = append(items, item)
		}
	}
	return items, nil
}

// fetchHours resolves time profiles for every hospital carrying a stable
// identifier, at most detailConcurrency fetches in flight. Individual
// failures leave a nil slot.
func (s *HospitalService) fetchHours(ctx context.Context, hospitals []entities.Hospital) []*entities.HospitalTimeInfo {
	results := make([]*entities.HospitalTimeInfo, len(hospitals))
	sem := make(chan struct{}, s.detailConcurrency)
	var wg sync.WaitGroup

	for i, hospital := range hospitals {
		if hospital.Ykiho == "" {
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, ykiho string) {
			defer wg.Done()
			defer func() { <-sem }()

			info, err := s.operatingHours(ctx, ykiho)
			if err != nil {
				if s.metrics != nil {
					s.metrics.DetailFetchFailures.Add(ctx, 1)
				}
				observability.LoggerFromContext(ctx).Debug().Err(err).
					Str("ykiho", ykiho).Msg("detail fetch degraded to no time info")
				return
			}
			results[idx] = info
		}(i, hospital.Ykiho)
	}
	wg.Wait()
	return results
}

func (s *HospitalService) operatingHours(ctx context.Context, ykiho string) (*entities.HospitalTimeInfo, error) {
	cacheKey := hoursCachePrefix + ykiho
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var info entities.HospitalTimeInfo
			if err := json.Unmarshal(cached, &info); err == nil {
				if s.metrics != nil {
					s.metrics.CacheHitCount.Add(ctx, 1)
				}
				return &info, nil
			}
		}
		if s.metrics != nil {
			s.metrics.CacheMissCount.Add(ctx, 1)
		}
	}

	info, err := s.client.GetOperatingHours(ctx, ykiho)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(info); err == nil {
			_ = s.cache.Set(ctx, cacheKey, payload, hoursCacheTTLSeconds)
		}
	}
	return info, nil
}

func (s *HospitalService) indexAggregates(ctx context.Context, aggregates []*entities.HospitalInfo) {
	if s.searchRepo == nil {
		return
	}
	logger := observability.LoggerFromContext(ctx)
	for _, aggregate := range aggregates {
		if aggregate.Ykiho == "" {
			continue
		}
		if err := s.searchRepo.Index(ctx, aggregate); err != nil {
			// Indexing is best-effort; the cycle result stands regardless.
			logger.Warn().Err(err).Str("ykiho", aggregate.Ykiho).Msg("failed to index hospital")
			return
		}
	}
}

// groupItemsByHospital buckets items by the name join key. Items with no
// hospital name cannot be joined and are counted, not erred.
func groupItemsByHospital(items []entities.NonPaymentItem) (map[entities.JoinKey][]entities.NonPaymentItem, int) {
	buckets := make(map[entities.JoinKey][]entities.NonPaymentItem)
	dropped := 0
	for _, item := range items {
		key := entities.NameJoinKey(item.HospitalName)
		if key == "" {
			dropped++
			continue
		}
		buckets[key] = append(buckets[key], item)
	}
	return buckets, dropped
}
