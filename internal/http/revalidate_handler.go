package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fahd-ahsayni/nelly-store-sub000/internal/catalog"
)

type RevalidateHandler struct {
	store *catalog.Store
}

func NewRevalidateHandler(store *catalog.Store) *RevalidateHandler {
	return &RevalidateHandler{store: store}
}

type RevalidateRequestDTO struct {
	Path string `json:"path"`
	Tag  string `json:"tag"`
}

type RevalidateResponse struct {
	Revalidated bool  `json:"revalidated"`
	Now         int64 `json:"now"`
}

// Revalidate expires the catalog cache for a tag or path so staff edits in
// the hosted backend show up before the TTL window elapses.
func (h *RevalidateHandler) Revalidate(w http.ResponseWriter, r *http.Request) {
	var req RevalidateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	target := req.Tag
	if target == "" {
		target = req.Path
	}
	h.store.Invalidate(target)

	respondJSON(w, http.StatusOK, RevalidateResponse{Revalidated: true, Now: time.Now().Unix()})
}
