package svc

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/redis/redistest"

	"coinwatch-api/internal/cache"
	"coinwatch-api/internal/config"
	"coinwatch-api/internal/snapshot"
	"coinwatch-api/pkg/confkit"
	"coinwatch-api/pkg/pricesource"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Config{
		AuthKey: "k",
		PriceSource: confkit.Section[pricesource.Config]{Value: &pricesource.Config{
			URL:      "http://127.0.0.1:1",
			APIKey:   "x",
			Currency: "INR",
			Limit:    100,
		}},
		DataStore: config.DataStoreConf{URL: "http://127.0.0.1:1", Timeout: time.Second},
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestNewServiceContextWithoutRedis(t *testing.T) {
	svcCtx := NewServiceContext(testConfig(t))

	require.Nil(t, svcCtx.Mirror)
	require.NotNil(t, svcCtx.Auth)
	require.NotNil(t, svcCtx.Scheduler)
	require.Equal(t, snapshot.Snapshot{Data: []snapshot.Coin{}}, svcCtx.State.Get())

	// no mirror: warm up leaves the empty snapshot in place
	svcCtx.WarmUp(context.Background())
	require.Zero(t, svcCtx.State.Get().Timestamp)
}

func TestWarmUpRestoresMirroredSnapshot(t *testing.T) {
	svcCtx := NewServiceContext(testConfig(t))
	mirror := cache.NewRedisMirror(redistest.CreateRedis(t), time.Hour)
	svcCtx.Mirror = mirror

	stored := snapshot.Snapshot{
		Data:      []snapshot.Coin{{Name: "Bitcoin", Code: "BTC", Rank: 1, Rate: 1}},
		Timestamp: 1_700_000_000_000,
	}
	require.NoError(t, mirror.Store(context.Background(), stored))

	svcCtx.WarmUp(context.Background())
	require.Equal(t, stored, svcCtx.State.Get())
	require.Equal(t, []string{"BTC"}, svcCtx.State.Codes())
}

func TestWarmUpNeverOverridesLiveSnapshot(t *testing.T) {
	svcCtx := NewServiceContext(testConfig(t))
	mirror := cache.NewRedisMirror(redistest.CreateRedis(t), time.Hour)
	svcCtx.Mirror = mirror

	require.NoError(t, mirror.Store(context.Background(), snapshot.Snapshot{
		Data:      []snapshot.Coin{{Code: "OLD"}},
		Timestamp: 1,
	}))
	svcCtx.State.Replace([]snapshot.Coin{{Code: "NEW"}}, time.Now())

	svcCtx.WarmUp(context.Background())
	require.Equal(t, []string{"NEW"}, svcCtx.State.Codes())
}

func TestWarmUpEmptyMirror(t *testing.T) {
	svcCtx := NewServiceContext(testConfig(t))
	svcCtx.Mirror = cache.NewRedisMirror(redistest.CreateRedis(t), time.Hour)

	svcCtx.WarmUp(context.Background())
	require.Zero(t, svcCtx.State.Get().Timestamp)
}

func TestNewServiceContextWiresRedisMirror(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.Redis = redis.RedisConf{Host: mr.Addr(), Type: redis.NodeType}
	require.True(t, cfg.RedisEnabled())

	first := NewServiceContext(cfg)
	require.NotNil(t, first.Mirror)
	stored := snapshot.Snapshot{Data: []snapshot.Coin{{Code: "BTC", Rank: 1}}, Timestamp: 42}
	require.NoError(t, first.Mirror.Store(context.Background(), stored))

	// a restarted process sees the same snapshot
	second := NewServiceContext(cfg)
	second.WarmUp(context.Background())
	require.Equal(t, stored, second.State.Get())
}
