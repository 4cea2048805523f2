// Package datasync pushes and pulls the saved phrases through a remote store identified by a sync code.
package datasync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/at-ishikawa/phrasebook/internal/phrase"
)

var (
	ErrNoSyncCode = errors.New("no sync code is set")
	ErrPushFailed = errors.New("sync push failed")
	ErrPullFailed = errors.New("sync pull failed")
)

// Reconciler moves the saved collection to and from a Remote.
// Conflicts are resolved by phrase.Repository.Merge: the remote copy wins.
type Reconciler struct {
	repository phrase.Repository
	remote     Remote
}

func NewReconciler(repository phrase.Repository, remote Remote) *Reconciler {
	return &Reconciler{
		repository: repository,
		remote:     remote,
	}
}

// Push uploads the whole saved collection under code, replacing what the remote had.
func (r *Reconciler) Push(ctx context.Context, code string) (PushResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return PushResult{}, ErrNoSyncCode
	}

	phrases := r.repository.Export(ctx)
	result, err := r.remote.Push(ctx, code, phrases)
	if err != nil {
		slog.Warn("sync push failed", "error", err)
		return PushResult{}, fmt.Errorf("%w: %w", ErrPushFailed, err)
	}
	slog.Info("phrases pushed", "count", result.Count)
	return result, nil
}

// Pull downloads the phrases stored under code and merges them into the saved collection.
// The remote payload is returned as received.
func (r *Reconciler) Pull(ctx context.Context, code string) (PullResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return PullResult{}, ErrNoSyncCode
	}

	result, err := r.remote.Pull(ctx, code)
	if err != nil {
		slog.Warn("sync pull failed", "error", err)
		return PullResult{}, fmt.Errorf("%w: %w", ErrPullFailed, err)
	}
	if _, err := r.repository.Merge(ctx, result.Phrases); err != nil {
		return result, fmt.Errorf("repository.Merge > %w", err)
	}
	slog.Info("phrases pulled", "count", len(result.Phrases))
	return result, nil
}
