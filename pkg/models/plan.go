package models

// PlanType categorizes a family plan.
type PlanType string

const (
	PlanEvent    PlanType = "Event"
	PlanRoutine  PlanType = "Routine"
	PlanGoal     PlanType = "Goal"
	PlanReminder PlanType = "Reminder"
)

// PlanStatus tracks a plan through its lifecycle. No transition graph is
// enforced; any status may be set at any time.
type PlanStatus string

const (
	PlanUpcoming  PlanStatus = "Upcoming"
	PlanOngoing   PlanStatus = "Ongoing"
	PlanCompleted PlanStatus = "Completed"
	PlanCancelled PlanStatus = "Cancelled"
)

// Priority marks how prominently a plan is surfaced.
type Priority string

const (
	PriorityNormal    Priority = "Normal"
	PriorityImportant Priority = "Important"
)

// Visibility controls which members see a plan.
type Visibility string

const (
	VisibilityAll      Visibility = "All"
	VisibilitySelected Visibility = "Selected"
)

// Repeat is the recurrence rule of a plan.
type Repeat string

const (
	RepeatOnce    Repeat = "One-time"
	RepeatDaily   Repeat = "Daily"
	RepeatWeekly  Repeat = "Weekly"
	RepeatMonthly Repeat = "Monthly"
)

// FamilyPlan is a calendar entry, routine, goal or reminder. A plan created
// by a Parent is approved immediately; a Child-created plan starts
// unapproved.
type FamilyPlan struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Type         PlanType   `json:"type"`
	Description  string     `json:"description,omitempty"`
	StartDate    string     `json:"start_date"`
	StartTime    string     `json:"start_time"`
	EndTime      string     `json:"end_time,omitempty"`
	Repeat       Repeat     `json:"repeat"`
	Participants []string   `json:"participants"`
	Reminder     string     `json:"reminder,omitempty"`
	Priority     Priority   `json:"priority"`
	Visibility   Visibility `json:"visibility"`
	Status       PlanStatus `json:"status"`
	CreatedBy    string     `json:"created_by"`
	IsApproved   bool       `json:"is_approved"`
}
