package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) {
	t.Helper()
	require.NoError(t, Open(t.TempDir()))
	t.Cleanup(func() { _ = Close() })
}

type record struct {
	ID   string    `json:"id"`
	When time.Time `json:"when"`
}

func TestCollectionRoundTrip(t *testing.T) {
	openTemp(t)

	in := []record{
		{ID: "a", When: time.Date(2026, 3, 14, 9, 26, 53, 589_000_000, time.UTC)},
		{ID: "b", When: time.Now().UTC()},
	}
	require.NoError(t, SaveCollection(KeyPlans, in))

	out := LoadCollection(KeyPlans, []record{})
	require.Len(t, out, 2)
	assert.Equal(t, in[0].ID, out[0].ID)
	assert.True(t, in[0].When.Equal(out[0].When), "sub-second precision must survive the round trip")
	assert.True(t, in[1].When.Equal(out[1].When))
}

func TestLoadMissingReturnsFallback(t *testing.T) {
	openTemp(t)

	fallback := []record{{ID: "default"}}
	out := LoadCollection("nope", fallback)
	assert.Equal(t, fallback, out)
}

func TestLoadCorruptReturnsFallback(t *testing.T) {
	openTemp(t)

	require.NoError(t, SetRaw(KeyChats, []byte("{not json")))
	out := LoadCollection(KeyChats, []record{{ID: "fallback"}})
	require.Len(t, out, 1)
	assert.Equal(t, "fallback", out[0].ID)

	// a corrupt load must not destroy the stored value
	require.NoError(t, SaveCollection(KeyChats, []record{{ID: "fresh"}}))
	out = LoadCollection(KeyChats, []record{})
	require.Len(t, out, 1)
	assert.Equal(t, "fresh", out[0].ID)
}

func TestHasAndDeleteCollection(t *testing.T) {
	openTemp(t)

	assert.False(t, HasCollection(KeyMembers))
	require.NoError(t, SaveCollection(KeyMembers, []string{"1"}))
	assert.True(t, HasCollection(KeyMembers))

	require.NoError(t, DeleteCollection(KeyMembers))
	assert.False(t, HasCollection(KeyMembers))
}

func TestListCollectionKeys(t *testing.T) {
	openTemp(t)

	require.NoError(t, SaveCollection(KeyPlans, []string{}))
	require.NoError(t, SaveCollection(KeyChats, []string{}))

	keys, err := ListCollectionKeys()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{KeyPlans, KeyChats}, keys)
}

func TestNotOpened(t *testing.T) {
	// no Open: loads fall back, saves error
	out := LoadCollection(KeyPlans, []string{"x"})
	assert.Equal(t, []string{"x"}, out)
	assert.Error(t, SaveCollection(KeyPlans, []string{}))
	assert.False(t, Ready())
}
