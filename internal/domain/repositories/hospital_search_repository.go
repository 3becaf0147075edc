package repositories

import (
	"context"

	"github.com/Jin-yujin/doctorpay-backend/internal/domain/entities"
)

// HospitalSearchRepository is the optional search index over built
// aggregates (e.g. Typesense). Indexing is best-effort: the fetch cycle
// never fails because the index is unavailable.
type HospitalSearchRepository interface {
	// Index upserts one aggregate into the index.
	Index(ctx context.Context, hospital *entities.HospitalInfo) error

	// Suggest returns name-prefix matches for typeahead.
	Suggest(ctx context.Context, query string, limit int) ([]*entities.HospitalInfo, error)

	// Delete removes a hospital from the index.
	Delete(ctx context.Context, ykiho string) error
}
