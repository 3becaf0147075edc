package recents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/xujiajun/nutsdb"

	"github.com/Jin-yujin/doctorpay-backend/internal/domain/entities"
	"github.com/Jin-yujin/doctorpay-backend/internal/domain/repositories"
)

const (
	recentsBucket = "recents"
	recentsKey    = "recently-viewed"
)

// NutsDBAdapter persists the recently-viewed list in an embedded nutsdb
// store so it survives restarts.
type NutsDBAdapter struct {
	db *nutsdb.DB
}

var _ repositories.RecentHospitalRepository = (*NutsDBAdapter)(nil)

// NewNutsDBAdapter opens (or creates) the store under dir.
func NewNutsDBAdapter(dir string) (*NutsDBAdapter, error) {
	opt := nutsdb.DefaultOptions
	opt.Dir = dir

	db, err := nutsdb.Open(opt)
	if err != nil {
		return nil, fmt.Errorf("failed to open recents store: %w", err)
	}
	return &NutsDBAdapter{db: db}, nil
}

// Close closes the underlying store.
func (a *NutsDBAdapter) Close() error {
	return a.db.Close()
}

// Load reads the stored list. A missing key means an empty list, not an
// error.
func (a *NutsDBAdapter) Load(ctx context.Context) (entities.RecentList, error) {
	var payload []byte
	err := a.db.View(func(tx *nutsdb.Tx) error {
		entry, err := tx.Get(recentsBucket, []byte(recentsKey))
		if err != nil {
			return err
		}
		payload = append([]byte(nil), entry.Value...)
		return nil
	})
	if err != nil {
		// Bucket or key absent until the first Store.
		return nil, nil
	}

	var list entities.RecentList
	if err := json.Unmarshal(payload, &list); err != nil {
		return nil, fmt.Errorf("failed to decode recents list: %w", err)
	}
	return list, nil
}

// Store overwrites the stored list.
func (a *NutsDBAdapter) Store(ctx context.Context, list entities.RecentList) error {
	payload, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode recents list: %w", err)
	}
	return a.db.Update(func(tx *nutsdb.Tx) error {
		return tx.Put(recentsBucket, []byte(recentsKey), payload, 0)
	})
}

// Clear removes the stored list.
func (a *NutsDBAdapter) Clear(ctx context.Context) error {
	return a.db.Update(func(tx *nutsdb.Tx) error {
		if err := tx.Delete(recentsBucket, []byte(recentsKey)); err != nil {
			// Nothing stored yet.
			return nil
		}
		return nil
	})
}
