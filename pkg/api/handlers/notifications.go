package handlers

import (
	"net/http"

	"familyconnect/pkg/utils"
)

func (h *Handlers) listNotifications(w http.ResponseWriter, _ *http.Request) {
	_ = utils.JSONWrite(w, http.StatusOK, map[string]interface{}{
		"notifications": h.deps.Notifications.All(),
		"unread":        h.deps.Notifications.Unread(),
	})
}

func (h *Handlers) markNotificationsRead(w http.ResponseWriter, _ *http.Request) {
	h.deps.Notifications.MarkAllRead()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) clearNotifications(w http.ResponseWriter, _ *http.Request) {
	h.deps.Notifications.Clear()
	w.WriteHeader(http.StatusNoContent)
}
