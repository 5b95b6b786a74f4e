// Package plan owns the family plans: creation with the parent-approval
// rule, status transitions and type filtering.
package plan

import (
	"sync"

	"github.com/google/uuid"

	"familyconnect/pkg/logger"
	"familyconnect/pkg/models"
	"familyconnect/pkg/store"
)

// Store owns the plan collection. All exported methods are safe for
// concurrent use.
type Store struct {
	mu    sync.Mutex
	plans []models.FamilyPlan
}

// New loads the persisted plans and returns a ready Store.
func New() *Store {
	s := &Store{}
	s.plans = store.LoadCollection(store.KeyPlans, []models.FamilyPlan{})
	return s
}

// Create assigns a new id to the draft and prepends it. A plan is approved
// at creation iff its creator holds the Parent role; a Child-created plan
// starts unapproved.
func (s *Store) Create(draft models.FamilyPlan, creator models.FamilyMember) models.FamilyPlan {
	draft.ID = uuid.NewString()
	draft.CreatedBy = creator.ID
	draft.IsApproved = creator.IsParent()
	if draft.Status == "" {
		draft.Status = models.PlanUpcoming
	}
	if draft.Repeat == "" {
		draft.Repeat = models.RepeatOnce
	}
	if draft.Priority == "" {
		draft.Priority = models.PriorityNormal
	}
	if draft.Visibility == "" {
		draft.Visibility = models.VisibilityAll
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans = append([]models.FamilyPlan{draft}, s.plans...)
	s.save()
	logger.Info("plan_created", "id", draft.ID, "type", string(draft.Type), "approved", draft.IsApproved)
	return draft
}

// SetStatus mutates a plan's status in place. Any status may follow any
// other; no transition graph is enforced. Unknown ids are a no-op.
func (s *Store) SetStatus(id string, status models.PlanStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.plans {
		if s.plans[i].ID == id {
			s.plans[i].Status = status
			s.save()
			logger.Info("plan_status_set", "id", id, "status", string(status))
			return true
		}
	}
	return false
}

// Delete removes a plan by id. Unknown ids are a no-op.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.plans {
		if s.plans[i].ID == id {
			s.plans = append(s.plans[:i], s.plans[i+1:]...)
			s.save()
			logger.Info("plan_deleted", "id", id)
			return true
		}
	}
	return false
}

// All returns a copy of the plans in display order.
func (s *Store) All() []models.FamilyPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.FamilyPlan(nil), s.plans...)
}

// ByType returns the plans of the given type; an empty type returns all.
func (s *Store) ByType(t models.PlanType) []models.FamilyPlan {
	if t == "" {
		return s.All()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.FamilyPlan, 0, len(s.plans))
	for _, p := range s.plans {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out
}

// save persists the collection; callers must hold s.mu.
func (s *Store) save() {
	if err := store.SaveCollection(store.KeyPlans, s.plans); err != nil {
		logger.Error("plans_save_failed", "error", err)
	}
}
