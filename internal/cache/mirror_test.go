package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/stores/redis/redistest"

	"coinwatch-api/internal/snapshot"
)

func TestSnapshotKeys(t *testing.T) {
	require.Equal(t, "coinwatch:snapshot:latest", SnapshotLatestKey())
	require.Equal(t, "coinwatch:a:b", formatKey(" a ", "", "b"))
}

func TestSnapshotTTL(t *testing.T) {
	require.Equal(t, 24*time.Hour, SnapshotTTL(0))
	require.Equal(t, time.Duration(0), SnapshotTTL(-1))
	require.Equal(t, 90*time.Second, SnapshotTTL(90))
}

func TestNewRedisMirrorSatisfiesMirror(t *testing.T) {
	var m Mirror = NewRedisMirror(redistest.CreateRedis(t), time.Hour)
	require.NotNil(t, m)
	require.NoError(t, m.Store(context.Background(), snapshot.Snapshot{Data: []snapshot.Coin{{Code: "BTC"}}, Timestamp: 1}))
}

func TestRedisMirrorRoundTrip(t *testing.T) {
	rds := redistest.CreateRedis(t)
	m := NewRedisMirror(rds, time.Hour)
	ctx := context.Background()

	_, ok, err := m.Load(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	hour := 1.01
	want := snapshot.Snapshot{
		Data:      []snapshot.Coin{{Name: "Bitcoin", Code: "BTC", Rank: 1, Rate: 10, DeltaHour: &hour}},
		Timestamp: 1_700_000_000_000,
	}
	require.NoError(t, m.Store(ctx, want))

	got, ok, err := m.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, want, got)

	ttl, err := rds.TtlCtx(ctx, SnapshotLatestKey())
	require.NoError(t, err)
	require.Greater(t, ttl, 0)
}

func TestRedisMirrorCorruptPayload(t *testing.T) {
	rds := redistest.CreateRedis(t)
	require.NoError(t, rds.Set(SnapshotLatestKey(), "{not json"))

	_, ok, err := NewRedisMirror(rds, 0).Load(context.Background())
	require.Error(t, err)
	require.False(t, ok)
}
