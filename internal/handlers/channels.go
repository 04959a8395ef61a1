package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

type connectChannelRequest struct {
	URL string `json:"url"`
}

func (h *Handlers) GetChannels(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	channels, err := h.planner.ListChannels(r.Context(), user.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, channels)
}

func (h *Handlers) PostChannel(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req connectChannelRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	channel, err := h.planner.ConnectChannel(r.Context(), user.UserID, req.URL)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, channel)
}

func (h *Handlers) DeleteChannel(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.planner.DeleteChannel(r.Context(), user.UserID, mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PostChannelSync queues a re-sync; the refreshed counts show up on the next
// list.
func (h *Handlers) PostChannelSync(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.planner.RequestChannelSync(r.Context(), user.UserID, mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handlers) GetChannelVideos(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	videos, err := h.planner.ListVideos(r.Context(), user.UserID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, videos)
}
