package handlers

import (
	"net/http"

	"yt-planner/internal/auth"
	"yt-planner/internal/middleware"
	apperrors "yt-planner/pkg/errors"
)

type sessionView struct {
	IsLoaded   bool           `json:"isLoaded"`
	IsSignedIn bool           `json:"isSignedIn"`
	UserID     string         `json:"userId,omitempty"`
	User       *auth.Identity `json:"user,omitempty"`
	Demo       bool           `json:"demo"`
	Context    string         `json:"context"`
}

func facade(w http.ResponseWriter, r *http.Request) (auth.Auth, bool) {
	a, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, r, apperrors.ErrNotSignedIn)
		return nil, false
	}
	return a, true
}

// GetSession reports the facade serving this request. It works signed out.
func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	a, ok := facade(w, r)
	if !ok {
		return
	}
	view := sessionView{
		IsLoaded:   a.IsLoaded(),
		IsSignedIn: a.IsSignedIn(),
		Demo:       a.Demo(),
		Context:    w.Header().Get(middleware.AuthContextHeader),
	}
	if view.IsSignedIn {
		view.UserID = a.UserID()
		view.User = a.User()
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handlers) PostToken(w http.ResponseWriter, r *http.Request) {
	a, ok := facade(w, r)
	if !ok {
		return
	}
	if !a.IsSignedIn() {
		writeError(w, r, apperrors.ErrNotSignedIn)
		return
	}
	token, err := a.GetToken(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handlers) PostSignOut(w http.ResponseWriter, r *http.Request) {
	a, ok := facade(w, r)
	if !ok {
		return
	}
	if err := a.SignOut(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
