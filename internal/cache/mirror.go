package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/stores/redis"

	"coinwatch-api/internal/snapshot"
)

// Mirror keeps a copy of the latest snapshot outside the process so a restart
// can serve data before the first refresh completes.
type Mirror interface {
	Load(ctx context.Context) (snapshot.Snapshot, bool, error)
	Store(ctx context.Context, snap snapshot.Snapshot) error
}

// RedisMirror stores the snapshot as one JSON string key.
type RedisMirror struct {
	rds *redis.Redis
	key string
	ttl time.Duration
}

// NewRedisMirror mirrors into rds, which must not be nil. Callers without
// Redis leave their Mirror unset instead.
func NewRedisMirror(rds *redis.Redis, ttl time.Duration) *RedisMirror {
	return &RedisMirror{
		rds: rds,
		key: SnapshotLatestKey(),
		ttl: ttl,
	}
}

// Load returns the mirrored snapshot and whether one was present.
func (m *RedisMirror) Load(ctx context.Context) (snapshot.Snapshot, bool, error) {
	val, err := m.rds.GetCtx(ctx, m.key)
	if err != nil {
		return snapshot.Snapshot{}, false, fmt.Errorf("cache: get %s: %w", m.key, err)
	}
	if val == "" {
		return snapshot.Snapshot{}, false, nil
	}
	var snap snapshot.Snapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		return snapshot.Snapshot{}, false, fmt.Errorf("cache: decode %s: %w", m.key, err)
	}
	return snap, !snap.Empty(), nil
}

// Store overwrites the mirrored snapshot.
func (m *RedisMirror) Store(ctx context.Context, snap snapshot.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("cache: encode snapshot: %w", err)
	}
	if m.ttl <= 0 {
		err = m.rds.SetCtx(ctx, m.key, string(raw))
	} else {
		seconds := int(m.ttl / time.Second)
		if seconds < 1 {
			seconds = 1
		}
		err = m.rds.SetexCtx(ctx, m.key, string(raw), seconds)
	}
	if err != nil {
		return fmt.Errorf("cache: set %s: %w", m.key, err)
	}
	return nil
}
