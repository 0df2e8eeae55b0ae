package scheduler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"coinwatch-api/internal/snapshot"
)

// Pruner deletes history rows older than retention for one coin.
type Pruner interface {
	Prune(ctx context.Context, code string, retention time.Duration) (json.RawMessage, error)
}

// CleanupResult summarises one cleanup run.
type CleanupResult struct {
	Pruned  int
	Failed  int
	Skipped bool
}

// Cleaner prunes stale history for every coin in the current snapshot while
// holding the maintenance flag.
type Cleaner struct {
	state     *snapshot.State
	history   Pruner
	retention time.Duration
}

func NewCleaner(state *snapshot.State, history Pruner, retention time.Duration) *Cleaner {
	return &Cleaner{
		state:     state,
		history:   history,
		retention: retention,
	}
}

// Run performs one cleanup. The maintenance flag is cleared on every exit
// path, panics included.
func (c *Cleaner) Run(ctx context.Context) (res CleanupResult) {
	release := c.state.EnterMaintenance()
	logx.WithContext(ctx).Info("cleanup: maintenance mode on")
	defer func() {
		release()
		logx.WithContext(ctx).Info("cleanup: maintenance mode off")
	}()

	codes := c.state.Codes()
	if len(codes) == 0 {
		logx.WithContext(ctx).Info("cleanup: no coins in cache, skipping")
		res.Skipped = true
		return res
	}

	for _, code := range codes {
		if ctx.Err() != nil {
			break
		}
		out, err := c.history.Prune(ctx, code, c.retention)
		if err != nil {
			res.Failed++
			cleanupDeletes.Inc("error")
			logx.WithContext(ctx).Errorf("cleanup: prune code=%s: %v", code, err)
			continue
		}
		res.Pruned++
		cleanupDeletes.Inc("ok")
		logx.WithContext(ctx).Debugf("cleanup: pruned code=%s result=%s", code, string(out))
	}
	logx.WithContext(ctx).Infof("cleanup: pruned=%d failed=%d retention=%s", res.Pruned, res.Failed, c.retention)
	return res
}
