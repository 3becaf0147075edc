package recents

import (
	"context"
	"sync"

	"github.com/Jin-yujin/doctorpay-backend/internal/domain/entities"
	"github.com/Jin-yujin/doctorpay-backend/internal/domain/repositories"
)

// MemoryAdapter keeps the recently-viewed list in memory only.
type MemoryAdapter struct {
	mu   sync.Mutex
	list entities.RecentList
}

var _ repositories.RecentHospitalRepository = (*MemoryAdapter)(nil)

// NewMemoryAdapter creates a new in-memory recents adapter
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{}
}

// Load returns a copy of the stored list.
func (a *MemoryAdapter) Load(ctx context.Context) (entities.RecentList, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append(entities.RecentList(nil), a.list...), nil
}

// Store replaces the stored list.
func (a *MemoryAdapter) Store(ctx context.Context, list entities.RecentList) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.list = append(entities.RecentList(nil), list...)
	return nil
}

// Clear drops the stored list.
func (a *MemoryAdapter) Clear(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.list = nil
	return nil
}
