// Package validation checks incoming payloads against the entity enums
// before they reach the stores.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"familyconnect/pkg/models"
)

var messageTypes = map[models.MessageType]struct{}{
	models.MessageText:   {},
	models.MessageImage:  {},
	models.MessageVoice:  {},
	models.MessageSystem: {},
}

var statusTypes = map[models.StatusType]struct{}{
	models.StatusText:  {},
	models.StatusImage: {},
	models.StatusVideo: {},
}

var planTypes = map[models.PlanType]struct{}{
	models.PlanEvent:    {},
	models.PlanRoutine:  {},
	models.PlanGoal:     {},
	models.PlanReminder: {},
}

var planStatuses = map[models.PlanStatus]struct{}{
	models.PlanUpcoming:  {},
	models.PlanOngoing:   {},
	models.PlanCompleted: {},
	models.PlanCancelled: {},
}

var repeats = map[models.Repeat]struct{}{
	models.RepeatOnce:    {},
	models.RepeatDaily:   {},
	models.RepeatWeekly:  {},
	models.RepeatMonthly: {},
}

// ValidateMessageType rejects unknown message types. An empty type is
// allowed and defaults to text at the call site.
func ValidateMessageType(t models.MessageType) error {
	if t == "" {
		return nil
	}
	if _, ok := messageTypes[t]; !ok {
		return fmt.Errorf("invalid message type: %q", t)
	}
	return nil
}

// ValidateStatusType rejects unknown status-update types.
func ValidateStatusType(t models.StatusType) error {
	if _, ok := statusTypes[t]; !ok {
		return fmt.Errorf("invalid status type: %q", t)
	}
	return nil
}

// ValidatePlanStatus rejects unknown plan statuses.
func ValidatePlanStatus(st models.PlanStatus) error {
	if _, ok := planStatuses[st]; !ok {
		return fmt.Errorf("invalid plan status: %q", st)
	}
	return nil
}

// ValidatePlan checks a plan draft before creation.
func ValidatePlan(p models.FamilyPlan) error {
	var errs []string
	if strings.TrimSpace(p.Title) == "" {
		errs = append(errs, "title is required")
	}
	if _, ok := planTypes[p.Type]; !ok {
		errs = append(errs, fmt.Sprintf("invalid plan type: %q", p.Type))
	}
	if p.Repeat != "" {
		if _, ok := repeats[p.Repeat]; !ok {
			errs = append(errs, fmt.Sprintf("invalid repeat: %q", p.Repeat))
		}
	}
	if p.Status != "" {
		if _, ok := planStatuses[p.Status]; !ok {
			errs = append(errs, fmt.Sprintf("invalid plan status: %q", p.Status))
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
