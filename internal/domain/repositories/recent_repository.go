package repositories

import (
	"context"

	"github.com/Jin-yujin/doctorpay-backend/internal/domain/entities"
)

// RecentHospitalRepository persists the bounded recently-viewed list. The
// list is single-writer from the caller's perspective; implementations only
// need atomic whole-list load/store.
type RecentHospitalRepository interface {
	// Load returns the stored list, newest first. An empty list, not an
	// error, when nothing has been stored yet.
	Load(ctx context.Context) (entities.RecentList, error)

	// Store replaces the stored list wholesale.
	Store(ctx context.Context, list entities.RecentList) error

	// Clear removes the stored list.
	Clear(ctx context.Context) error
}
