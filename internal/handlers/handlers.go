// Package handlers is the HTTP surface of the planner: the JSON API, the
// pricing page, the ideas feed and the Telegram bot front-end.
package handlers

import (
	"encoding/json"
	"html/template"
	"net/http"

	log "github.com/sirupsen/logrus"

	"yt-planner/internal/middleware"
	"yt-planner/internal/models"
	"yt-planner/internal/planner"
	apperrors "yt-planner/pkg/errors"
)

type Handlers struct {
	planner   *planner.Service
	templates *template.Template
	baseURL   string
}

func New(svc *planner.Service, baseURL string) *Handlers {
	return &Handlers{
		planner:   svc,
		templates: pageTemplates,
		baseURL:   baseURL,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

type errorBody struct {
	Code    apperrors.Code `json:"code"`
	Message string         `json:"message"`
}

// writeError maps err onto a status code. Unknown errors are logged and
// reported with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.WithFields(log.Fields{"method": r.Method, "path": r.URL.Path}).Errorf("Error handling request: %v", err)
	}
	writeJSON(w, status, errorBody{Code: apperrors.CodeOf(err), Message: apperrors.PublicMessage(err)})
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.InvalidArg("invalid JSON body")
	}
	return nil
}

// currentUser returns the user attached by the auth middleware. Routes are
// only mounted behind it, so a missing user is a wiring bug.
func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, r, apperrors.ErrNotSignedIn)
		return nil, false
	}
	return user, true
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
