package datasync_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/phrasebook/internal/datasync"
	"github.com/at-ishikawa/phrasebook/internal/event"
	mock_datasync "github.com/at-ishikawa/phrasebook/internal/mocks/datasync"
	"github.com/at-ishikawa/phrasebook/internal/phrase"
	"github.com/at-ishikawa/phrasebook/internal/storage"
)

func newRepository(t *testing.T, saved ...phrase.Phrase) *phrase.StoreRepository {
	t.Helper()
	store := storage.NewMemoryStore()
	if saved != nil {
		require.NoError(t, storage.SetJSON(context.Background(), store, storage.KeySavedPhrases, saved))
	}
	return phrase.NewStoreRepository(store, event.NewBus())
}

func TestReconciler_Push(t *testing.T) {
	saved := []phrase.Phrase{
		{Arabic: "شكرا", English: "Thank you", Category: "Saved", CreatedAt: "2025-01-01T00:00:00.000Z", Source: "manual"},
	}

	tests := []struct {
		name      string
		code      string
		setupMock func(m *mock_datasync.MockRemote)
		want      datasync.PushResult
		wantErr   error
	}{
		{
			name: "pushes the saved collection",
			code: " ABCD-EFGH-JKLM ",
			setupMock: func(m *mock_datasync.MockRemote) {
				m.EXPECT().
					Push(gomock.Any(), "ABCD-EFGH-JKLM", saved).
					Return(datasync.PushResult{OK: true, Count: 1}, nil)
			},
			want: datasync.PushResult{OK: true, Count: 1},
		},
		{
			name:      "blank code",
			code:      "  ",
			setupMock: func(m *mock_datasync.MockRemote) {},
			wantErr:   datasync.ErrNoSyncCode,
		},
		{
			name: "remote failure",
			code: "ABCD-EFGH-JKLM",
			setupMock: func(m *mock_datasync.MockRemote) {
				m.EXPECT().
					Push(gomock.Any(), "ABCD-EFGH-JKLM", gomock.Any()).
					Return(datasync.PushResult{}, errors.New("connection refused"))
			},
			wantErr: datasync.ErrPushFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			remote := mock_datasync.NewMockRemote(ctrl)
			tt.setupMock(remote)

			reconciler := datasync.NewReconciler(newRepository(t, saved...), remote)
			got, err := reconciler.Push(context.Background(), tt.code)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReconciler_Pull(t *testing.T) {
	local := phrase.Phrase{Arabic: "ماء", English: "Water", Category: "Food - Drinks", CreatedAt: "2025-01-01T00:00:00.000Z", Source: "manual"}
	remotePhrases := []phrase.Phrase{
		{Arabic: "ماء", English: "water", Transliteration: "maa", Category: "Food - Drinks", CreatedAt: "2025-01-01T00:00:00.000Z", Source: "sync"},
		{Arabic: "قهوة", English: "Coffee", Category: "Food - Drinks", CreatedAt: "2025-02-01T00:00:00.000Z", Source: "sync"},
	}

	t.Run("merges the remote phrases", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		remote := mock_datasync.NewMockRemote(ctrl)
		remote.EXPECT().
			Pull(gomock.Any(), "ABCD-EFGH-JKLM").
			Return(datasync.PullResult{Phrases: remotePhrases}, nil)

		repository := newRepository(t, local)
		got, err := datasync.NewReconciler(repository, remote).Pull(context.Background(), "ABCD-EFGH-JKLM")
		require.NoError(t, err)
		assert.Equal(t, remotePhrases, got.Phrases)

		assert.Equal(t, []phrase.Phrase{remotePhrases[1], remotePhrases[0]}, repository.Load(context.Background()))
	})

	t.Run("empty remote keeps the local collection", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		remote := mock_datasync.NewMockRemote(ctrl)
		remote.EXPECT().
			Pull(gomock.Any(), "ABCD-EFGH-JKLM").
			Return(datasync.PullResult{}, nil)

		repository := newRepository(t, local)
		_, err := datasync.NewReconciler(repository, remote).Pull(context.Background(), "ABCD-EFGH-JKLM")
		require.NoError(t, err)
		assert.Equal(t, []phrase.Phrase{local}, repository.Load(context.Background()))
	})

	t.Run("blank code", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		remote := mock_datasync.NewMockRemote(ctrl)

		_, err := datasync.NewReconciler(newRepository(t), remote).Pull(context.Background(), "")
		assert.ErrorIs(t, err, datasync.ErrNoSyncCode)
	})

	t.Run("remote failure leaves the local collection alone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		remote := mock_datasync.NewMockRemote(ctrl)
		remote.EXPECT().
			Pull(gomock.Any(), gomock.Any()).
			Return(datasync.PullResult{}, errors.New("response error 502"))

		repository := newRepository(t, local)
		_, err := datasync.NewReconciler(repository, remote).Pull(context.Background(), "ABCD-EFGH-JKLM")
		assert.ErrorIs(t, err, datasync.ErrPullFailed)
		assert.Equal(t, []phrase.Phrase{local}, repository.Load(context.Background()))
	})
}
