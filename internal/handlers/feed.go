package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"yt-planner/internal/feed"
)

func (h *Handlers) feedURL(r *http.Request, token string) string {
	return feed.BaseURL(r, h.baseURL) + "/feeds/" + token + "/ideas.rss"
}

// GetIdeasFeed serves the ideas feed for the user owning the token. The feed
// is gated the same way as the API.
func (h *Handlers) GetIdeasFeed(w http.ResponseWriter, r *http.Request) {
	user, ideas, err := h.planner.FeedIdeas(r.Context(), mux.Vars(r)["token"])
	if err != nil {
		writeError(w, r, err)
		return
	}

	rss, err := feed.IdeasRSS(user, ideas, feed.BaseURL(r, h.baseURL))
	if err != nil {
		log.Printf("Error generating RSS: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml")
	w.Write([]byte(rss))
}
