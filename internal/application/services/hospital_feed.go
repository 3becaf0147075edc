package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Jin-yujin/doctorpay-backend/internal/domain/entities"
	"github.com/Jin-yujin/doctorpay-backend/internal/infrastructure/observability"
)

// Snapshot is one immutable result of a fetch-and-join cycle. Consumers
// must not mutate it; every refresh publishes a fresh value.
type Snapshot struct {
	Cycle     uint64                   `json:"cycle"`
	Query     FetchQuery               `json:"query"`
	Hospitals []*entities.HospitalInfo `json:"hospitals"`
	FetchedAt time.Time                `json:"fetched_at"`
}

// HospitalFeed publishes aggregation snapshots. Refreshes may overlap; each
// one is stamped with a monotonically increasing cycle number at start and
// a completed refresh only becomes the latest snapshot if no later-started
// cycle has already landed.
type HospitalFeed struct {
	service *HospitalService
	cycle   atomic.Uint64

	mu     sync.RWMutex
	latest *Snapshot

	updates chan *Snapshot
	errs    chan error
}

// NewHospitalFeed creates a feed over the given service.
func NewHospitalFeed(service *HospitalService) *HospitalFeed {
	return &HospitalFeed{
		service: service,
		updates: make(chan *Snapshot, 4),
		errs:    make(chan error, 4),
	}
}

// Refresh runs one cycle and returns its snapshot. Errors and stale
// results never clobber the latest snapshot.
func (f *HospitalFeed) Refresh(ctx context.Context, query FetchQuery) (*Snapshot, error) {
	cycle := f.cycle.Add(1)

	hospitals, err := f.service.FetchAndJoin(ctx, query)
	if err != nil {
		f.publishError(err)
		return nil, err
	}

	snapshot := &Snapshot{
		Cycle:     cycle,
		Query:     query,
		Hospitals: hospitals,
		FetchedAt: time.Now(),
	}

	f.mu.Lock()
	stale := f.latest != nil && f.latest.Cycle >= cycle
	if !stale {
		f.latest = snapshot
	}
	f.mu.Unlock()

	if stale {
		observability.LoggerFromContext(ctx).Debug().
			Uint64("cycle", cycle).
			Msg("discarding stale refresh result")
		return snapshot, nil
	}

	f.publishUpdate(snapshot)
	return snapshot, nil
}

// Latest returns the most recent published snapshot, or nil before the
// first successful refresh.
func (f *HospitalFeed) Latest() *Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.latest
}

// Updates delivers newly published snapshots. Slow consumers miss
// snapshots rather than block refreshes.
func (f *HospitalFeed) Updates() <-chan *Snapshot {
	return f.updates
}

// Errors delivers refresh failures.
func (f *HospitalFeed) Errors() <-chan error {
	return f.errs
}

// Run refreshes immediately and then on every tick until ctx is done.
func (f *HospitalFeed) Run(ctx context.Context, interval time.Duration, query FetchQuery) {
	logger := observability.LoggerFromContext(ctx)

	if _, err := f.Refresh(ctx, query); err != nil {
		logger.Error().Err(err).Msg("initial feed refresh failed")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := f.Refresh(ctx, query); err != nil {
				logger.Error().Err(err).Msg("feed refresh failed")
			}
		}
	}
}

func (f *HospitalFeed) publishUpdate(snapshot *Snapshot) {
	select {
	case f.updates <- snapshot:
	default:
	}
}

func (f *HospitalFeed) publishError(err error) {
	select {
	case f.errs <- err:
	default:
	}
}
