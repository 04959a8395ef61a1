package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

type addCompetitorRequest struct {
	URL string `json:"url"`
}

type notesRequest struct {
	Notes string `json:"notes"`
}

func (h *Handlers) GetCompetitors(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	competitors, err := h.planner.ListCompetitors(r.Context(), user)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, competitors)
}

func (h *Handlers) PostCompetitor(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req addCompetitorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	competitor, err := h.planner.AddCompetitor(r.Context(), user, req.URL)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, competitor)
}

// PatchCompetitorNotes overwrites the notes; concurrent edits are last write
// wins.
func (h *Handlers) PatchCompetitorNotes(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req notesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.planner.UpdateCompetitorNotes(r.Context(), user.UserID, mux.Vars(r)["id"], req.Notes); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) DeleteCompetitor(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.planner.DeleteCompetitor(r.Context(), user.UserID, mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) GetCompetitorInsights(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	analysis, err := h.planner.CompetitorInsights(r.Context(), user, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}
