package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/at-ishikawa/phrasebook/internal/storage"
)

// DefaultImageMonthlyLimit is how many photos can be translated per calendar month.
const DefaultImageMonthlyLimit = 30

type Usage struct {
	Month string `json:"month"`
	Used  int    `json:"used"`
}

// Quota counts image translations per month in storage.KeyImageUsage.
type Quota struct {
	store storage.Store
	limit int
	now   func() time.Time

	mu sync.Mutex
}

func NewQuota(store storage.Store, limit int) *Quota {
	return &Quota{
		store: store,
		limit: limit,
		now:   time.Now,
	}
}

func (q *Quota) Limit() int {
	return q.limit
}

// Usage returns this month's usage. A stored usage of an earlier month counts as zero.
func (q *Quota) Usage(ctx context.Context) Usage {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.usage(ctx)
}

func (q *Quota) usage(ctx context.Context) Usage {
	month := q.now().Format("2006-01")
	var usage Usage
	if err := storage.GetJSON(ctx, q.store, storage.KeyImageUsage, &usage); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Warn("image usage is unreadable, starting from zero", "error", err)
		}
		return Usage{Month: month}
	}
	if usage.Month != month {
		return Usage{Month: month}
	}
	return usage
}

// Check returns ErrQuotaExceeded when no image translation is left this month.
func (q *Quota) Check(ctx context.Context) error {
	if q.Usage(ctx).Used >= q.limit {
		return ErrQuotaExceeded
	}
	return nil
}

// Increment records one image translation.
func (q *Quota) Increment(ctx context.Context) (Usage, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	usage := q.usage(ctx)
	usage.Used++
	if err := storage.SetJSON(ctx, q.store, storage.KeyImageUsage, usage); err != nil {
		return usage, fmt.Errorf("storage.SetJSON > %w", err)
	}
	return usage, nil
}
