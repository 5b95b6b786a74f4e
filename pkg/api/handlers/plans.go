package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"familyconnect/pkg/models"
	"familyconnect/pkg/utils"
	"familyconnect/pkg/validation"
)

func (h *Handlers) listPlans(w http.ResponseWriter, r *http.Request) {
	if t := r.URL.Query().Get("type"); t != "" {
		_ = utils.JSONWrite(w, http.StatusOK, h.deps.Plans.ByType(models.PlanType(t)))
		return
	}
	_ = utils.JSONWrite(w, http.StatusOK, h.deps.Plans.All())
}

func (h *Handlers) createPlan(w http.ResponseWriter, r *http.Request) {
	var draft models.FamilyPlan
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validation.ValidatePlan(draft); err != nil {
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	created := h.deps.Plans.Create(draft, h.actor(r))
	_ = utils.JSONWrite(w, http.StatusCreated, created)
}

type planStatusRequest struct {
	Status models.PlanStatus `json:"status"`
}

func (h *Handlers) setPlanStatus(w http.ResponseWriter, r *http.Request) {
	var req planStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validation.ValidatePlanStatus(req.Status); err != nil {
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !h.deps.Plans.SetStatus(mux.Vars(r)["id"], req.Status) {
		utils.JSONError(w, http.StatusNotFound, "plan not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deletePlan(w http.ResponseWriter, r *http.Request) {
	if !h.deps.Plans.Delete(mux.Vars(r)["id"]) {
		utils.JSONError(w, http.StatusNotFound, "plan not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
