package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"yt-planner/internal/planner"
)

type generateIdeasRequest struct {
	ChannelID string `json:"channelId"`
	Count     int    `json:"count"`
}

type generateTopicsRequest struct {
	Niche string `json:"niche"`
}

type idsResponse struct {
	IDs []string `json:"ids"`
}

func includePremium(r *http.Request) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get("includePremium"))
	return v
}

func (h *Handlers) GetIdeas(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	ideas, err := h.planner.ListContentIdeas(r.Context(), user, includePremium(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ideas)
}

func (h *Handlers) PostIdea(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req planner.ManualIdea
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	idea, err := h.planner.CreateManualIdea(r.Context(), user.UserID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, idea)
}

func (h *Handlers) PostGenerateIdeas(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	req := generateIdeasRequest{Count: 5}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	ids, err := h.planner.GenerateContentIdeas(r.Context(), user, req.ChannelID, req.Count)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, idsResponse{IDs: ids})
}

func (h *Handlers) DeleteIdea(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.planner.DeleteContentIdea(r.Context(), user.UserID, mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) GetTopics(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	topics, err := h.planner.ListTrendingTopics(r.Context(), user, includePremium(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, topics)
}

func (h *Handlers) PostGenerateTopics(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req generateTopicsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	ids, err := h.planner.GenerateTrendingTopics(r.Context(), user, req.Niche)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, idsResponse{IDs: ids})
}

func (h *Handlers) DeleteTopic(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.planner.DeleteTrendingTopic(r.Context(), user.UserID, mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
