package datastore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Observation is one reading recorded into a coin's history table.
type Observation struct {
	Code      string
	Price     float64
	Volume    float64
	MarketCap float64
}

// History implements the per-coin history protocol on top of an Executor.
type History struct {
	exec         Executor
	limiter      *rate.Limiter
	insertOffset time.Duration
	now          func() time.Time
}

// HistoryOption customises History.
type HistoryOption func(*History)

// WithWriteLimit paces Record calls to perSecond (burst 1). Zero disables it.
func WithWriteLimit(perSecond float64) HistoryOption {
	return func(h *History) {
		if perSecond > 0 {
			h.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithInsertOffset shifts the timestamp written by Record relative to now.
func WithInsertOffset(offset time.Duration) HistoryOption {
	return func(h *History) {
		h.insertOffset = offset
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) HistoryOption {
	return func(h *History) {
		if now != nil {
			h.now = now
		}
	}
}

// NewHistory wraps exec.
func NewHistory(exec Executor, opts ...HistoryOption) *History {
	h := &History{
		exec: exec,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Record creates the coin's table if needed and inserts one row. The insert
// is attempted even when the create fails; both failures are joined.
func (h *History) Record(ctx context.Context, obs Observation) error {
	table, err := TableName(obs.Code)
	if err != nil {
		return err
	}
	insert, err := InsertStatement(table, obs.Price, obs.Volume, obs.MarketCap, h.now().Add(h.insertOffset).UnixMilli())
	if err != nil {
		return fmt.Errorf("datastore: insert %s: %w", table, err)
	}
	if h.limiter != nil {
		if err := h.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("datastore: wait write slot %s: %w", table, err)
		}
	}

	var errs []error
	if _, err := h.exec.Exec(ctx, CreateTableStatement(table)); err != nil {
		errs = append(errs, fmt.Errorf("create %s: %w", table, err))
	}
	if _, err := h.exec.Exec(ctx, insert); err != nil {
		errs = append(errs, fmt.Errorf("insert %s: %w", table, err))
	}
	return errors.Join(errs...)
}

// Prune deletes rows of the coin's table older than now minus retention.
func (h *History) Prune(ctx context.Context, code string, retention time.Duration) (json.RawMessage, error) {
	table, err := TableName(code)
	if err != nil {
		return nil, err
	}
	cutoff := h.now().Add(-retention).UnixMilli()
	res, err := h.exec.Exec(ctx, DeleteOlderThanStatement(table, cutoff))
	if err != nil {
		return nil, fmt.Errorf("delete %s: %w", table, err)
	}
	return res, nil
}

// Query returns the full history of the named coin, newest first, exactly as
// the data store answered. name is case-insensitive.
func (h *History) Query(ctx context.Context, name string) (json.RawMessage, error) {
	table, err := TableName(name)
	if err != nil {
		return nil, err
	}
	return h.exec.Exec(ctx, SelectHistoryStatement(table))
}
