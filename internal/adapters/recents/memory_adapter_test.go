package recents

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jin-yujin/doctorpay-backend/internal/domain/entities"
)

func TestMemoryAdapterRoundTrip(t *testing.T) {
	adapter := NewMemoryAdapter()
	ctx := context.Background()

	list, err := adapter.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	stored := entities.RecentList{
		{Ykiho: "A", Name: "가의원", ViewedAt: time.Now()},
		{Ykiho: "B", Name: "나의원", ViewedAt: time.Now()},
	}
	require.NoError(t, adapter.Store(ctx, stored))

	loaded, err := adapter.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored, loaded)

	// The returned slice is a copy; mutating it must not leak back.
	loaded[0].Name = "변경"
	again, err := adapter.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "가의원", again[0].Name)

	require.NoError(t, adapter.Clear(ctx))
	cleared, err := adapter.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, cleared)
}
