package datasync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"

	"github.com/at-ishikawa/phrasebook/internal/phrase"
)

//go:generate mockgen -source=remote.go -destination=../mocks/datasync/mock_remote.go -package=mock_datasync

// Remote is the key-value store the phrases are synced through.
type Remote interface {
	Push(ctx context.Context, code string, phrases []phrase.Phrase) (PushResult, error)
	Pull(ctx context.Context, code string) (PullResult, error)
}

type PushResult struct {
	OK    bool `json:"ok"`
	Count int  `json:"count"`
}

type PullResult struct {
	Phrases []phrase.Phrase `json:"phrases"`
}

type pushRequest struct {
	SyncKey string          `json:"syncKey"`
	Phrases []phrase.Phrase `json:"phrases"`
}

type pullRequest struct {
	SyncKey string `json:"syncKey"`
}

// HTTPRemote talks to the sync endpoints of the phrasebook server.
type HTTPRemote struct {
	client           *resty.Client
	maxRetryAttempts uint
}

func NewHTTPRemote(baseURL string, retryAttempts uint) *HTTPRemote {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Content-Type", "application/json")
	return &HTTPRemote{
		client:           client,
		maxRetryAttempts: retryAttempts,
	}
}

func (r *HTTPRemote) Push(ctx context.Context, code string, phrases []phrase.Phrase) (PushResult, error) {
	if phrases == nil {
		phrases = []phrase.Phrase{}
	}
	var result PushResult
	err := r.post(ctx, "/api/sync/push", pushRequest{SyncKey: code, Phrases: phrases}, &result)
	return result, err
}

func (r *HTTPRemote) Pull(ctx context.Context, code string) (PullResult, error) {
	var result PullResult
	err := r.post(ctx, "/api/sync/pull", pullRequest{SyncKey: code}, &result)
	return result, err
}

type statusError struct {
	statusCode int
	body       string
}

func (e statusError) Error() string {
	return fmt.Sprintf("response error %d: %s", e.statusCode, e.body)
}

func (r *HTTPRemote) post(ctx context.Context, path string, body, result any) error {
	return retry.Do(
		func() error {
			response, err := r.client.R().
				SetContext(ctx).
				SetBody(body).
				SetResult(result).
				Post(path)
			if err != nil {
				return fmt.Errorf("client.R.Post(%s) > %w", path, err)
			}
			if response.IsError() {
				err := statusError{statusCode: response.StatusCode(), body: response.String()}
				if response.StatusCode() < http.StatusInternalServerError && response.StatusCode() != http.StatusTooManyRequests {
					return retry.Unrecoverable(err)
				}
				return err
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(r.maxRetryAttempts+1),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Debug("retrying sync request", "path", path, "attempt", n+1, "error", err)
		}),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	)
}

// IsStatus reports whether err came from a response with the given status code.
func IsStatus(err error, statusCode int) bool {
	var target statusError
	return errors.As(err, &target) && target.statusCode == statusCode
}
