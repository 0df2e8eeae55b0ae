package svc

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/rest"

	"coinwatch-api/internal/cache"
	"coinwatch-api/internal/config"
	"coinwatch-api/internal/middleware"
	"coinwatch-api/internal/scheduler"
	"coinwatch-api/internal/snapshot"
	"coinwatch-api/pkg/datastore"
	"coinwatch-api/pkg/pricesource"
)

type ServiceContext struct {
	Config config.Config
	Auth   rest.Middleware

	State       *snapshot.State
	PriceSource *pricesource.Client
	DataStore   *datastore.Client
	History     *datastore.History

	// Mirror is nil unless Redis is configured.
	Mirror cache.Mirror

	Refresher *scheduler.Refresher
	Cleaner   *scheduler.Cleaner
	Scheduler *scheduler.Scheduler
}

func NewServiceContext(c config.Config) *ServiceContext {
	svc := &ServiceContext{
		Config: c,
		Auth:   middleware.NewAuthMiddleware(c.AuthKey).Handle,
		State:  snapshot.NewState(),
	}

	svc.PriceSource = c.PriceSource.Value.BuildClient()
	svc.DataStore = datastore.NewClient(c.DataStore.URL, c.AuthKey,
		datastore.WithTimeout(c.DataStore.Timeout))
	svc.History = datastore.NewHistory(svc.DataStore,
		datastore.WithWriteLimit(c.DataStore.WritesPerSecond),
		datastore.WithInsertOffset(c.DataStore.InsertTimestampOffset),
	)

	// Only mirror the snapshot when Redis is configured.
	if c.RedisEnabled() {
		rds := redis.MustNewRedis(c.Redis)
		svc.Mirror = cache.NewRedisMirror(rds, cache.SnapshotTTL(c.SnapshotTTL))
	}

	svc.Refresher = scheduler.NewRefresher(scheduler.RefresherConfig{
		Source:       svc.PriceSource,
		Request:      c.PriceSource.Value.Request(),
		State:        svc.State,
		History:      svc.History,
		Mirror:       svc.Mirror,
		FetchTimeout: c.Schedule.TickTimeout,
	})
	svc.Cleaner = scheduler.NewCleaner(svc.State, svc.History, c.Schedule.Retention)
	svc.Scheduler = scheduler.New(svc.Refresher, svc.Cleaner,
		c.Schedule.RefreshInterval, c.Schedule.CleanupInterval)
	return svc
}

// WarmUp seeds the cache from the mirror. It is a no-op without a mirror and
// never overrides a snapshot that a refresh already published.
func (s *ServiceContext) WarmUp(ctx context.Context) {
	if s.Mirror == nil {
		return
	}
	snap, ok, err := s.Mirror.Load(ctx)
	switch {
	case err != nil:
		logx.WithContext(ctx).Errorf("warm up: load mirrored snapshot: %v", err)
	case !ok:
		logx.WithContext(ctx).Info("warm up: no mirrored snapshot")
	case s.State.Restore(snap):
		logx.WithContext(ctx).Infof("warm up: restored %d coins from mirror, timestamp=%d", len(snap.Data), snap.Timestamp)
	}
}
