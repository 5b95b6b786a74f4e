// Package status owns the ephemeral status updates: posting, reactions,
// viewer accumulation and the 24-hour lifetime applied to every listing.
package status

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"familyconnect/pkg/logger"
	"familyconnect/pkg/models"
	"familyconnect/pkg/store"
	"familyconnect/pkg/telemetry"
)

// DefaultLifetime is the policy lifetime of a status update.
const DefaultLifetime = 24 * time.Hour

// Store owns the status collection. All exported methods are safe for
// concurrent use.
type Store struct {
	mu       sync.Mutex
	statuses []models.StatusUpdate
	lifetime time.Duration
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLifetime overrides the default 24h status lifetime.
func WithLifetime(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.lifetime = d
		}
	}
}

// WithClock substitutes the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New loads the persisted statuses and returns a ready Store. Timestamps
// are revived to UTC so a save/load round-trip compares equal.
func New(opts ...Option) *Store {
	s := &Store{
		lifetime: DefaultLifetime,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(s)
	}
	s.statuses = store.LoadCollection(store.KeyStatusUpdates, []models.StatusUpdate{})
	for i := range s.statuses {
		s.statuses[i].Timestamp = s.statuses[i].Timestamp.UTC()
	}
	return s
}

// Post creates a status update for author. Id and timestamp are assigned
// here; any client-supplied values are ignored. The new status is
// prepended so the collection stays most-recent-first.
func (s *Store) Post(author models.FamilyMember, typ models.StatusType, content, backgroundColor string) models.StatusUpdate {
	if typ != models.StatusText {
		backgroundColor = ""
	}
	st := models.StatusUpdate{
		ID:              uuid.NewString(),
		SenderID:        author.ID,
		SenderName:      author.Name,
		SenderAvatar:    author.Avatar,
		Type:            typ,
		Content:         content,
		BackgroundColor: backgroundColor,
		Timestamp:       s.now(),
		Viewers:         []string{},
		Reactions:       []models.StatusReaction{},
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = append([]models.StatusUpdate{st}, s.statuses...)
	s.save()
	telemetry.StatusPosts.Inc()
	logger.Info("status_posted", "id", st.ID, "sender", author.ID, "type", string(typ))
	return st
}

// Delete removes a status by id. Unknown ids are a no-op.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.statuses {
		if s.statuses[i].ID == id {
			s.statuses = append(s.statuses[:i], s.statuses[i+1:]...)
			s.save()
			logger.Info("status_deleted", "id", id)
			return true
		}
	}
	return false
}

// ToggleReaction applies the single-reaction-per-user rule atomically: an
// exact (userID, emoji) match is removed; otherwise any prior reaction by
// userID is replaced with the new emoji. Unknown status ids are a no-op.
func (s *Store) ToggleReaction(statusID, userID, emoji string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.statuses {
		if s.statuses[i].ID != statusID {
			continue
		}
		reactions := s.statuses[i].Reactions
		exact := -1
		for j, r := range reactions {
			if r.UserID == userID && r.Emoji == emoji {
				exact = j
				break
			}
		}
		next := make([]models.StatusReaction, 0, len(reactions))
		for j, r := range reactions {
			if j == exact || (exact < 0 && r.UserID == userID) {
				continue
			}
			next = append(next, r)
		}
		if exact < 0 {
			next = append(next, models.StatusReaction{Emoji: emoji, UserID: userID})
		}
		s.statuses[i].Reactions = next
		s.save()
		return true
	}
	return false
}

// MarkViewed records viewerID on the status. Viewers only accumulate;
// repeat views are no-ops.
func (s *Store) MarkViewed(statusID, viewerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.statuses {
		if s.statuses[i].ID != statusID {
			continue
		}
		for _, v := range s.statuses[i].Viewers {
			if v == viewerID {
				return true
			}
		}
		s.statuses[i].Viewers = append(s.statuses[i].Viewers, viewerID)
		s.save()
		return true
	}
	return false
}

// Mine returns the caller's active statuses, newest first.
func (s *Store) Mine(userID string) []models.StatusUpdate {
	return s.partition(func(st models.StatusUpdate) bool { return st.SenderID == userID })
}

// Family returns the other members' active statuses, newest first.
func (s *Store) Family(userID string) []models.StatusUpdate {
	return s.partition(func(st models.StatusUpdate) bool { return st.SenderID != userID })
}

// Active returns all unexpired statuses, newest first.
func (s *Store) Active() []models.StatusUpdate {
	return s.partition(func(models.StatusUpdate) bool { return true })
}

func (s *Store) partition(keep func(models.StatusUpdate) bool) []models.StatusUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	out := make([]models.StatusUpdate, 0, len(s.statuses))
	for _, st := range s.statuses {
		if st.ExpiredAt(now, s.lifetime) || !keep(st) {
			continue
		}
		out = append(out, st)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// PurgeExpired removes statuses older than the lifetime, up to batch
// entries per call (zero means unbounded). With dryRun it only counts.
// It returns the number of affected statuses.
func (s *Store) PurgeExpired(batch int, dryRun bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	kept := make([]models.StatusUpdate, 0, len(s.statuses))
	purged := 0
	for _, st := range s.statuses {
		if st.ExpiredAt(now, s.lifetime) && (batch <= 0 || purged < batch) {
			purged++
			continue
		}
		kept = append(kept, st)
	}
	if purged == 0 || dryRun {
		return purged
	}
	s.statuses = kept
	s.save()
	telemetry.StatusesPurged.Add(float64(purged))
	logger.Info("statuses_purged", "count", purged)
	return purged
}

// save persists the collection; callers must hold s.mu.
func (s *Store) save() {
	if err := store.SaveCollection(store.KeyStatusUpdates, s.statuses); err != nil {
		logger.Error("statuses_save_failed", "error", err)
	}
}
