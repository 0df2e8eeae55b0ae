package scheduler

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"coinwatch-api/internal/cache"
	"coinwatch-api/internal/snapshot"
	"coinwatch-api/pkg/datastore"
	"coinwatch-api/pkg/pricesource"
)

// Recorder persists one observation for a coin.
type Recorder interface {
	Record(ctx context.Context, obs datastore.Observation) error
}

// RefreshResult summarises one refresh tick.
type RefreshResult struct {
	Fetched     int
	Written     int
	Failed      int
	Maintenance bool
	Err         error
}

// Refresher fetches the top coins, republishes the snapshot and records
// history for each coin.
type Refresher struct {
	source  pricesource.Source
	request pricesource.ListRequest
	state   *snapshot.State
	history Recorder
	mirror  cache.Mirror
	timeout time.Duration
	now     func() time.Time
}

// RefresherConfig enumerates the refresher's collaborators. Mirror is optional.
type RefresherConfig struct {
	Source       pricesource.Source
	Request      pricesource.ListRequest
	State        *snapshot.State
	History      Recorder
	Mirror       cache.Mirror
	FetchTimeout time.Duration
	Now          func() time.Time
}

func NewRefresher(cfg RefresherConfig) *Refresher {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Refresher{
		source:  cfg.Source,
		request: cfg.Request,
		state:   cfg.State,
		history: cfg.History,
		mirror:  cfg.Mirror,
		timeout: cfg.FetchTimeout,
		now:     cfg.Now,
	}
}

// Tick runs one refresh. Failures are logged, never returned to the loop; the
// result is exposed for callers that want to inspect it.
func (r *Refresher) Tick(ctx context.Context) RefreshResult {
	raw, err := r.fetch(ctx)
	if err != nil {
		refreshTicks.Inc("fetch_error")
		logx.WithContext(ctx).Errorf("refresh: fetch top coins: %v", err)
		return RefreshResult{Err: err}
	}

	snap := r.state.Replace(snapshot.FromSourceList(raw), r.now())
	r.mirrorSnapshot(ctx, snap)
	res := RefreshResult{Fetched: len(raw)}

	// checked once per tick; a cleanup starting mid-loop does not stop it
	if r.state.InMaintenance() {
		refreshTicks.Inc("maintenance")
		logx.WithContext(ctx).Infof("refresh: cached %d coins, maintenance in progress, history skipped", len(raw))
		res.Maintenance = true
		return res
	}

	for _, coin := range raw {
		if ctx.Err() != nil {
			break
		}
		err := r.history.Record(ctx, datastore.Observation{
			Code:      coin.Code,
			Price:     coin.Rate,
			Volume:    coin.Volume,
			MarketCap: coin.Cap,
		})
		if err != nil {
			res.Failed++
			historyWrites.Inc("error")
			logx.WithContext(ctx).Errorf("refresh: record history code=%s: %v", coin.Code, err)
			continue
		}
		res.Written++
		historyWrites.Inc("ok")
	}

	refreshTicks.Inc("ok")
	logx.WithContext(ctx).Infof("refresh: cached %d coins, history written=%d failed=%d", res.Fetched, res.Written, res.Failed)
	return res
}

func (r *Refresher) fetch(ctx context.Context) ([]pricesource.Coin, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	raw, err := r.source.ListCoins(ctx, r.request)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, pricesource.ErrEmptyResponse
	}
	return raw, nil
}

func (r *Refresher) mirrorSnapshot(ctx context.Context, snap snapshot.Snapshot) {
	if r.mirror == nil {
		return
	}
	if err := r.mirror.Store(ctx, snap); err != nil {
		logx.WithContext(ctx).Errorf("refresh: mirror snapshot: %v", err)
	}
}
