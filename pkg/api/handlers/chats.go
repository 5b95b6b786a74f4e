package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"familyconnect/pkg/chat"
	"familyconnect/pkg/models"
	"familyconnect/pkg/utils"
	"familyconnect/pkg/validation"
)

func (h *Handlers) listChats(w http.ResponseWriter, _ *http.Request) {
	_ = utils.JSONWrite(w, http.StatusOK, h.deps.Chats.Sorted())
}

func (h *Handlers) listMessages(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, ok := h.deps.Chats.Get(id); !ok {
		utils.JSONError(w, http.StatusNotFound, "chat not found")
		return
	}
	_ = utils.JSONWrite(w, http.StatusOK, h.deps.Chats.Messages(id))
}

type sendMessageRequest struct {
	Text      string             `json:"text"`
	Type      models.MessageType `json:"type"`
	MediaURL  string             `json:"media_url"`
	ReplyToID string             `json:"reply_to_id"`
}

func (h *Handlers) sendMessage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validation.ValidateMessageType(req.Type); err != nil {
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	msg, err := h.deps.Chats.Send(id, h.actor(r), req.Text, req.Type, req.MediaURL, req.ReplyToID)
	switch {
	case errors.Is(err, chat.ErrChatNotFound):
		utils.JSONError(w, http.StatusNotFound, "chat not found")
		return
	case errors.Is(err, chat.ErrBlocked):
		utils.JSONNotice(w, http.StatusForbidden, "You have blocked this contact. Unblock to send messages.")
		return
	case err != nil:
		utils.JSONError(w, http.StatusInternalServerError, "send failed")
		return
	}
	_ = utils.JSONWrite(w, http.StatusCreated, msg)
}

func (h *Handlers) starMessage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !h.deps.Chats.Star(id) {
		utils.JSONError(w, http.StatusNotFound, "message not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deleteMessage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.deps.Chats.Delete(id, h.actor(r)); err != nil {
		if errors.Is(err, chat.ErrNotPermitted) {
			utils.JSONError(w, http.StatusForbidden, "only the sender or a parent may delete a message")
			return
		}
		utils.JSONError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) togglePin(w http.ResponseWriter, r *http.Request) {
	h.toggleChatFlag(w, r, h.deps.Chats.TogglePin)
}

func (h *Handlers) toggleMute(w http.ResponseWriter, r *http.Request) {
	h.toggleChatFlag(w, r, h.deps.Chats.ToggleMute)
}

func (h *Handlers) toggleArchive(w http.ResponseWriter, r *http.Request) {
	h.toggleChatFlag(w, r, h.deps.Chats.ToggleArchive)
}

func (h *Handlers) toggleChatFlag(w http.ResponseWriter, r *http.Request, toggle func(string) bool) {
	id := mux.Vars(r)["id"]
	if !toggle(id) {
		utils.JSONError(w, http.StatusNotFound, "chat not found")
		return
	}
	c, _ := h.deps.Chats.Get(id)
	_ = utils.JSONWrite(w, http.StatusOK, c)
}

func (h *Handlers) blockChat(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	c, ok := h.deps.Chats.Get(id)
	if !ok {
		utils.JSONError(w, http.StatusNotFound, "chat not found")
		return
	}
	memberID, _ := h.deps.Blocked.Block(h.actor(r).ID, c)
	if memberID == "" {
		// group/ai chats: acknowledged, the set is untouched
		utils.JSONNotice(w, http.StatusOK, c.Name+" has been blocked.")
		return
	}
	// re-blocking an already-blocked counterpart is an idempotent success
	_ = utils.JSONWrite(w, http.StatusOK, map[string]string{"blocked": memberID})
}

func (h *Handlers) listBlocked(w http.ResponseWriter, _ *http.Request) {
	_ = utils.JSONWrite(w, http.StatusOK, h.deps.Blocked.List())
}

func (h *Handlers) unblock(w http.ResponseWriter, r *http.Request) {
	h.deps.Blocked.Unblock(mux.Vars(r)["memberID"])
	w.WriteHeader(http.StatusNoContent)
}

type callCheckRequest struct {
	MemberID string `json:"member_id"`
}

func (h *Handlers) checkCall(w http.ResponseWriter, r *http.Request) {
	var req callCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MemberID == "" {
		utils.JSONError(w, http.StatusBadRequest, "member_id is required")
		return
	}
	if !h.deps.Blocked.CanCall(req.MemberID) {
		utils.JSONNotice(w, http.StatusForbidden, "You have blocked this contact. Unblock to call.")
		return
	}
	// calls involving a Child are flagged for parental supervision
	supervised := !h.actor(r).IsParent()
	for _, m := range h.deps.Members {
		if m.ID == req.MemberID && !m.IsParent() {
			supervised = true
		}
	}
	_ = utils.JSONWrite(w, http.StatusOK, map[string]bool{"allowed": true, "supervised": supervised})
}
