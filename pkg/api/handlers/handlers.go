// Package handlers implements the /v1 endpoint set over the domain
// stores.
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"familyconnect/pkg/blocklist"
	"familyconnect/pkg/chat"
	"familyconnect/pkg/models"
	"familyconnect/pkg/notify"
	"familyconnect/pkg/plan"
	"familyconnect/pkg/status"
	"familyconnect/pkg/utils"
)

// Deps wires the stores into the handlers.
type Deps struct {
	Members       []models.FamilyMember
	CurrentUser   models.FamilyMember
	Chats         *chat.Store
	Statuses      *status.Store
	Plans         *plan.Store
	Notifications *notify.Store
	Blocked       *blocklist.Set
}

// Handlers serves the /v1 API.
type Handlers struct {
	deps Deps
}

// New builds a Handlers from its dependencies.
func New(deps Deps) *Handlers {
	return &Handlers{deps: deps}
}

// Register attaches all routes to the router.
func (h *Handlers) Register(r *mux.Router) {
	r.HandleFunc("/members", h.listMembers).Methods(http.MethodGet)

	r.HandleFunc("/chats", h.listChats).Methods(http.MethodGet)
	r.HandleFunc("/chats/{id}/pin", h.togglePin).Methods(http.MethodPost)
	r.HandleFunc("/chats/{id}/mute", h.toggleMute).Methods(http.MethodPost)
	r.HandleFunc("/chats/{id}/archive", h.toggleArchive).Methods(http.MethodPost)
	r.HandleFunc("/chats/{id}/block", h.blockChat).Methods(http.MethodPost)
	r.HandleFunc("/chats/{id}/messages", h.listMessages).Methods(http.MethodGet)
	r.HandleFunc("/chats/{id}/messages", h.sendMessage).Methods(http.MethodPost)

	r.HandleFunc("/messages/{id}/star", h.starMessage).Methods(http.MethodPost)
	r.HandleFunc("/messages/{id}", h.deleteMessage).Methods(http.MethodDelete)

	r.HandleFunc("/blocked", h.listBlocked).Methods(http.MethodGet)
	r.HandleFunc("/blocked/{memberID}", h.unblock).Methods(http.MethodDelete)

	r.HandleFunc("/statuses", h.listStatuses).Methods(http.MethodGet)
	r.HandleFunc("/statuses", h.postStatus).Methods(http.MethodPost)
	r.HandleFunc("/statuses/{id}", h.deleteStatus).Methods(http.MethodDelete)
	r.HandleFunc("/statuses/{id}/reactions", h.toggleReaction).Methods(http.MethodPost)
	r.HandleFunc("/statuses/{id}/viewers", h.markViewed).Methods(http.MethodPost)

	r.HandleFunc("/plans", h.listPlans).Methods(http.MethodGet)
	r.HandleFunc("/plans", h.createPlan).Methods(http.MethodPost)
	r.HandleFunc("/plans/{id}/status", h.setPlanStatus).Methods(http.MethodPut)
	r.HandleFunc("/plans/{id}", h.deletePlan).Methods(http.MethodDelete)

	r.HandleFunc("/notifications", h.listNotifications).Methods(http.MethodGet)
	r.HandleFunc("/notifications/read", h.markNotificationsRead).Methods(http.MethodPost)
	r.HandleFunc("/notifications", h.clearNotifications).Methods(http.MethodDelete)

	r.HandleFunc("/calls/check", h.checkCall).Methods(http.MethodPost)
}

// actor resolves the acting member from the X-Member-ID header, falling
// back to the configured current user.
func (h *Handlers) actor(r *http.Request) models.FamilyMember {
	id := r.Header.Get("X-Member-ID")
	if id == "" {
		return h.deps.CurrentUser
	}
	for _, m := range h.deps.Members {
		if m.ID == id {
			return m
		}
	}
	return h.deps.CurrentUser
}

func (h *Handlers) listMembers(w http.ResponseWriter, _ *http.Request) {
	_ = utils.JSONWrite(w, http.StatusOK, h.deps.Members)
}
