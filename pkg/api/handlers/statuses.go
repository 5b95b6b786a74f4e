package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"familyconnect/pkg/models"
	"familyconnect/pkg/utils"
	"familyconnect/pkg/validation"
)

func (h *Handlers) listStatuses(w http.ResponseWriter, r *http.Request) {
	actor := h.actor(r)
	switch r.URL.Query().Get("scope") {
	case "mine":
		_ = utils.JSONWrite(w, http.StatusOK, h.deps.Statuses.Mine(actor.ID))
	case "family":
		_ = utils.JSONWrite(w, http.StatusOK, h.deps.Statuses.Family(actor.ID))
	default:
		_ = utils.JSONWrite(w, http.StatusOK, h.deps.Statuses.Active())
	}
}

type postStatusRequest struct {
	Type            models.StatusType `json:"type"`
	Content         string            `json:"content"`
	BackgroundColor string            `json:"background_color"`
}

func (h *Handlers) postStatus(w http.ResponseWriter, r *http.Request) {
	var req postStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validation.ValidateStatusType(req.Type); err != nil {
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	st := h.deps.Statuses.Post(h.actor(r), req.Type, req.Content, req.BackgroundColor)
	_ = utils.JSONWrite(w, http.StatusCreated, st)
}

func (h *Handlers) deleteStatus(w http.ResponseWriter, r *http.Request) {
	if !h.deps.Statuses.Delete(mux.Vars(r)["id"]) {
		utils.JSONError(w, http.StatusNotFound, "status not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type reactionRequest struct {
	Emoji string `json:"emoji"`
}

func (h *Handlers) toggleReaction(w http.ResponseWriter, r *http.Request) {
	var req reactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Emoji == "" {
		utils.JSONError(w, http.StatusBadRequest, "emoji is required")
		return
	}
	if !h.deps.Statuses.ToggleReaction(mux.Vars(r)["id"], h.actor(r).ID, req.Emoji) {
		utils.JSONError(w, http.StatusNotFound, "status not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) markViewed(w http.ResponseWriter, r *http.Request) {
	if !h.deps.Statuses.MarkViewed(mux.Vars(r)["id"], h.actor(r).ID) {
		utils.JSONError(w, http.StatusNotFound, "status not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
