package services

import (
	"context"
	"time"

	"github.com/Jin-yujin/doctorpay-backend/internal/domain/entities"
	"github.com/Jin-yujin/doctorpay-backend/internal/domain/repositories"
	apperrors "github.com/Jin-yujin/doctorpay-backend/pkg/errors"
)

const defaultRecentCap = 5

// RecentService tracks the hospitals a user viewed most recently.
type RecentService struct {
	repo  repositories.RecentHospitalRepository
	max   int
	clock func() time.Time
}

// NewRecentService creates a recents service capped at max entries.
func NewRecentService(repo repositories.RecentHospitalRepository, max int) *RecentService {
	if max <= 0 {
		max = defaultRecentCap
	}
	return &RecentService{repo: repo, max: max, clock: time.Now}
}

// Touch records a view of the given hospital, moving it to the front of
// the list and evicting the oldest entry beyond the cap.
func (s *RecentService) Touch(ctx context.Context, entry entities.RecentHospital) error {
	if entry.Ykiho == "" {
		return apperrors.NewValidationError("ykiho is required")
	}
	if entry.ViewedAt.IsZero() {
		entry.ViewedAt = s.clock()
	}

	list, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	list = list.Push(entry, s.max)
	return s.repo.Store(ctx, list)
}

// List returns the recent hospitals, most recent first.
func (s *RecentService) List(ctx context.Context) (entities.RecentList, error) {
	return s.repo.Load(ctx)
}

// Clear removes every recent entry.
func (s *RecentService) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}
