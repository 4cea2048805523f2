package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/at-ishikawa/phrasebook/internal/phrase"
	"github.com/at-ishikawa/phrasebook/internal/storage"
)

const maxSyncRequestBytes = 10 << 20

type syncPushRequest struct {
	SyncKey string          `json:"syncKey" validate:"required,max=64"`
	Phrases []phrase.Phrase `json:"phrases" validate:"max=10000"`
}

type syncPushResponse struct {
	OK    bool `json:"ok"`
	Count int  `json:"count"`
}

type syncPullRequest struct {
	SyncKey string `json:"syncKey" validate:"required,max=64"`
}

type syncPullResponse struct {
	Phrases []phrase.Phrase `json:"phrases"`
}

// syncStoreKey namespaces a sync code in the server's store, e.g. "sync/ABCD-EFGH-JKLM".
func syncStoreKey(code string) string {
	return "sync/" + strings.ToUpper(strings.TrimSpace(code))
}

// HandleSyncPush handles POST /api/sync/push. The pushed list replaces whatever the code held.
func (s *Server) HandleSyncPush(w http.ResponseWriter, r *http.Request) {
	var req syncPushRequest
	if !s.decodeJSON(w, r, maxSyncRequestBytes, &req) {
		return
	}
	if req.Phrases == nil {
		req.Phrases = []phrase.Phrase{}
	}

	if err := storage.SetJSON(r.Context(), s.store, syncStoreKey(req.SyncKey), req.Phrases); err != nil {
		slog.Error("failed to store pushed phrases", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("Push failed"))
		return
	}
	writeJSON(w, http.StatusOK, syncPushResponse{OK: true, Count: len(req.Phrases)})
}

// HandleSyncPull handles POST /api/sync/pull. An unknown code pulls an empty list.
func (s *Server) HandleSyncPull(w http.ResponseWriter, r *http.Request) {
	var req syncPullRequest
	if !s.decodeJSON(w, r, maxSyncRequestBytes, &req) {
		return
	}

	phrases := []phrase.Phrase{}
	if err := storage.GetJSON(r.Context(), s.store, syncStoreKey(req.SyncKey), &phrases); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Error("failed to read synced phrases", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("Pull failed"))
			return
		}
	}
	if phrases == nil {
		phrases = []phrase.Phrase{}
	}
	writeJSON(w, http.StatusOK, syncPullResponse{Phrases: phrases})
}
