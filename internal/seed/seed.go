// Package seed installs the initial family data set on first run. Seeding
// is skipped whenever a member collection already exists, so user state is
// never overwritten.
package seed

import (
	"time"

	"familyconnect/pkg/logger"
	"familyconnect/pkg/models"
	"familyconnect/pkg/store"
)

func members() []models.FamilyMember {
	return []models.FamilyMember{
		{ID: "1", Name: "Alex", Role: models.RoleParent, Avatar: "avatars/alex.png"},
		{ID: "2", Name: "Sarah", Role: models.RoleParent, Avatar: "avatars/sarah.png"},
		{ID: "3", Name: "Maya", Role: models.RoleChild, Avatar: "avatars/maya.png"},
		{ID: "4", Name: "Leo", Role: models.RoleChild, Avatar: "avatars/leo.png"},
	}
}

func chats(now time.Time) ([]models.Chat, map[string][]models.ChatMessage) {
	m1 := models.ChatMessage{
		ID: "m1", SenderID: "2", SenderName: "Sarah",
		Text: "Don't forget the pizza night!", Timestamp: now, Type: models.MessageText,
	}
	m2 := models.ChatMessage{
		ID: "m2", SenderID: models.AssistantID, SenderName: models.AssistantName,
		Text: "Hello! I'm your Family Assistant. How can I help today?", Timestamp: now, Type: models.MessageText,
	}
	m3 := models.ChatMessage{
		ID: "m3", SenderID: "2", SenderName: "Sarah",
		Text: "See you soon!", Timestamp: now.Add(-time.Hour), Type: models.MessageText,
	}
	cs := []models.Chat{
		{ID: "c1", Name: "Sarah", Type: models.ChatIndividual, Participants: []string{"1", "2"}, LastMessage: &m1},
		{ID: "c2", Name: models.AssistantName, Type: models.ChatAI, Participants: []string{"1", models.AssistantID}, LastMessage: &m2},
		{ID: "c3", Name: "Family", Type: models.ChatGroup, Participants: []string{"1", "2", "3", "4"}, LastMessage: &m3},
	}
	msgs := map[string][]models.ChatMessage{
		"c1": {m1},
		"c2": {m2},
		"c3": {m3},
	}
	return cs, msgs
}

func plans(now time.Time) []models.FamilyPlan {
	return []models.FamilyPlan{
		{
			ID: "p1", Title: "Family Dinner", Type: models.PlanEvent,
			Description: "Pizza night at home", StartDate: now.Format("2006-01-02"),
			StartTime: "18:30", Repeat: models.RepeatWeekly,
			Participants: []string{"1", "2", "3", "4"}, Priority: models.PriorityImportant,
			Visibility: models.VisibilityAll, Status: models.PlanUpcoming,
			CreatedBy: "2", IsApproved: true,
		},
		{
			ID: "p2", Title: "Math Tutoring", Type: models.PlanRoutine,
			Description: "Weekly session with Maya", StartDate: now.Format("2006-01-02"),
			StartTime: "16:00", Repeat: models.RepeatWeekly,
			Participants: []string{"1", "3"}, Priority: models.PriorityNormal,
			Visibility: models.VisibilityAll, Status: models.PlanUpcoming,
			CreatedBy: "1", IsApproved: true,
		},
	}
}

func statuses(now time.Time) []models.StatusUpdate {
	return []models.StatusUpdate{
		{
			ID: "s1", SenderID: "2", SenderName: "Sarah", SenderAvatar: "avatars/sarah.png",
			Type: models.StatusText, Content: "Homemade pizza tonight!",
			BackgroundColor: "#6366f1", Timestamp: now.Add(-2 * time.Hour),
			Viewers: []string{}, Reactions: []models.StatusReaction{},
		},
	}
}

func notifications(now time.Time) []models.Notification {
	return []models.Notification{
		{ID: "n1", Title: "New Plan", Message: `Sarah created "Family Dinner"`, Timestamp: now},
		{ID: "n2", Title: "Reminder", Message: "Math Tutoring starts in 10 mins", Timestamp: now},
	}
}

// Run installs the seed collections when the store is empty. It returns
// whether seeding happened.
func Run() (bool, error) {
	if store.HasCollection(store.KeyMembers) {
		return false, nil
	}
	now := time.Now().UTC()
	cs, msgs := chats(now)
	sets := []struct {
		key string
		v   any
	}{
		{store.KeyMembers, members()},
		{store.KeyChats, cs},
		{store.KeyChatMessages, msgs},
		{store.KeyPlans, plans(now)},
		{store.KeyStatusUpdates, statuses(now)},
		{store.KeyNotifications, notifications(now)},
		{store.KeyBlockedUsers, []string{}},
	}
	for _, s := range sets {
		if err := store.SaveCollection(s.key, s.v); err != nil {
			return false, err
		}
	}
	logger.Info("seed_installed", "members", 4, "chats", len(cs))
	return true, nil
}

// Members loads the member directory, seeding defaults if absent.
func Members() []models.FamilyMember {
	return store.LoadCollection(store.KeyMembers, members())
}
