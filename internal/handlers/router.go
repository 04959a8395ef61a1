package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"yt-planner/internal/middleware"
)

type RouterConfig struct {
	Auth    *middleware.Authenticator
	Limiter *middleware.RateLimiterMiddleware
	Frame   middleware.FrameOptions
	// Relay serves the popup relay websocket. Optional.
	Relay http.Handler
}

// Router mounts every route. Frame and CORS headers wrap the whole router so
// preflights and 404s carry them too.
func (h *Handlers) Router(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", Healthz).Methods(http.MethodGet)
	r.HandleFunc("/feeds/{token}/ideas.rss", h.GetIdeasFeed).Methods(http.MethodGet)
	if cfg.Relay != nil {
		r.Handle("/relay/ws", cfg.Relay)
	}

	// Session routes answer signed-out requests too.
	resolved := func(fn http.HandlerFunc) http.Handler {
		return cfg.Auth.Resolve(fn)
	}
	r.Handle("/api/session", resolved(h.GetSession)).Methods(http.MethodGet)
	r.Handle("/api/session/token", resolved(h.PostToken)).Methods(http.MethodPost)
	r.Handle("/api/session/signout", resolved(h.PostSignOut)).Methods(http.MethodPost)
	r.Handle("/pricing", resolved(h.GetPricing)).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(cfg.Auth.Middleware)
	limited := func(fn http.HandlerFunc) http.Handler {
		return cfg.Limiter.Middleware(fn)
	}

	api.HandleFunc("/me", h.GetMe).Methods(http.MethodGet)
	api.HandleFunc("/me/premium", h.PostPremium).Methods(http.MethodPost)

	api.HandleFunc("/channels", h.GetChannels).Methods(http.MethodGet)
	api.HandleFunc("/channels", h.PostChannel).Methods(http.MethodPost)
	api.HandleFunc("/channels/{id}", h.DeleteChannel).Methods(http.MethodDelete)
	api.HandleFunc("/channels/{id}/sync", h.PostChannelSync).Methods(http.MethodPost)
	api.HandleFunc("/channels/{id}/videos", h.GetChannelVideos).Methods(http.MethodGet)

	api.HandleFunc("/ideas", h.GetIdeas).Methods(http.MethodGet)
	api.HandleFunc("/ideas", h.PostIdea).Methods(http.MethodPost)
	api.Handle("/ideas/generate", limited(h.PostGenerateIdeas)).Methods(http.MethodPost)
	api.HandleFunc("/ideas/{id}", h.DeleteIdea).Methods(http.MethodDelete)

	api.HandleFunc("/topics", h.GetTopics).Methods(http.MethodGet)
	api.Handle("/topics/generate", limited(h.PostGenerateTopics)).Methods(http.MethodPost)
	api.HandleFunc("/topics/{id}", h.DeleteTopic).Methods(http.MethodDelete)

	api.HandleFunc("/competitors", h.GetCompetitors).Methods(http.MethodGet)
	api.HandleFunc("/competitors", h.PostCompetitor).Methods(http.MethodPost)
	api.HandleFunc("/competitors/{id}/notes", h.PatchCompetitorNotes).Methods(http.MethodPatch)
	api.HandleFunc("/competitors/{id}", h.DeleteCompetitor).Methods(http.MethodDelete)
	api.HandleFunc("/competitors/{id}/insights", h.GetCompetitorInsights).Methods(http.MethodGet)

	api.HandleFunc("/insights", h.GetInsights).Methods(http.MethodGet)
	api.HandleFunc("/insights/refresh", h.PostRefreshInsights).Methods(http.MethodPost)
	api.HandleFunc("/dashboard", h.GetDashboard).Methods(http.MethodGet)
	api.HandleFunc("/seed", h.PostSeed).Methods(http.MethodPost)

	return middleware.FrameHeaders(cfg.Frame)(r)
}
