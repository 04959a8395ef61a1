package handlers

import (
	"net/http"

	"yt-planner/internal/models"
)

type meView struct {
	User    *models.User `json:"user"`
	FeedURL string       `json:"feedUrl"`
}

func (h *Handlers) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, meView{User: user, FeedURL: h.feedURL(r, user.FeedToken)})
}

type premiumRequest struct {
	IsPremium bool `json:"isPremium"`
}

// PostPremium flips the stored plan flag. There is no payment behind it.
func (h *Handlers) PostPremium(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req premiumRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.planner.UpdatePremiumStatus(r.Context(), user.UserID, req.IsPremium); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := h.planner.GetUser(r.Context(), user.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, meView{User: updated, FeedURL: h.feedURL(r, updated.FeedToken)})
}
