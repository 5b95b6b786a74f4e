package retention

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"familyconnect/pkg/config"
	"familyconnect/pkg/models"
	"familyconnect/pkg/status"
	"familyconnect/pkg/store"
)

func newStatuses(t *testing.T, clock *time.Time) *status.Store {
	t.Helper()
	require.NoError(t, store.Open(t.TempDir()))
	t.Cleanup(func() { _ = store.Close() })
	return status.New(status.WithClock(func() time.Time { return *clock }))
}

func TestRunOncePurges(t *testing.T) {
	clock := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	s := newStatuses(t, &clock)
	author := models.FamilyMember{ID: "2", Name: "Sarah", Role: models.RoleParent}
	s.Post(author, models.StatusText, "old", "")
	clock = clock.Add(25 * time.Hour)
	s.Post(author, models.StatusText, "new", "")

	cfg := config.RetentionConfig{BatchSize: 100}
	assert.Equal(t, 1, RunOnce(cfg, s))
	assert.Equal(t, 0, RunOnce(cfg, s))
	assert.Len(t, s.Active(), 1)
}

func TestRunOnceDryRun(t *testing.T) {
	clock := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	s := newStatuses(t, &clock)
	s.Post(models.FamilyMember{ID: "2"}, models.StatusText, "old", "")
	clock = clock.Add(25 * time.Hour)

	cfg := config.RetentionConfig{BatchSize: 100, DryRun: true}
	assert.Equal(t, 1, RunOnce(cfg, s))
	assert.Equal(t, 1, RunOnce(cfg, s), "dry run leaves the collection untouched")
}

func TestStartDisabled(t *testing.T) {
	cancel, err := Start(context.Background(), config.RetentionConfig{Enabled: false}, nil)
	require.NoError(t, err)
	cancel()
}

func TestStartRejectsBadCron(t *testing.T) {
	cfg := config.RetentionConfig{Enabled: true, Cron: "every day at noon"}
	_, err := Start(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestStartStopsOnCancel(t *testing.T) {
	clock := time.Now().UTC()
	s := newStatuses(t, &clock)

	ctx, ctxCancel := context.WithCancel(context.Background())
	defer ctxCancel()
	cancel, err := Start(ctx, config.RetentionConfig{Enabled: true, Cron: "* * * * *"}, s)
	require.NoError(t, err)
	cancel()
}
