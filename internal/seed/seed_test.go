package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"familyconnect/pkg/models"
	"familyconnect/pkg/store"
)

func openTemp(t *testing.T) {
	t.Helper()
	require.NoError(t, store.Open(t.TempDir()))
	t.Cleanup(func() { _ = store.Close() })
}

func TestRunSeedsEmptyStore(t *testing.T) {
	openTemp(t)

	seeded, err := Run()
	require.NoError(t, err)
	assert.True(t, seeded)

	members := Members()
	require.Len(t, members, 4)
	assert.Equal(t, models.RoleParent, members[0].Role)

	chats := store.LoadCollection(store.KeyChats, []models.Chat{})
	require.Len(t, chats, 3)
	types := map[models.ChatType]bool{}
	for _, c := range chats {
		types[c.Type] = true
	}
	assert.True(t, types[models.ChatIndividual])
	assert.True(t, types[models.ChatAI])
	assert.True(t, types[models.ChatGroup])

	msgs := store.LoadCollection(store.KeyChatMessages, map[string][]models.ChatMessage{})
	for _, c := range chats {
		require.NotEmpty(t, msgs[c.ID], "every seeded chat starts with a message")
		require.NotNil(t, c.LastMessage)
		assert.Equal(t, msgs[c.ID][len(msgs[c.ID])-1].ID, c.LastMessage.ID)
	}

	assert.True(t, store.HasCollection(store.KeyPlans))
	assert.True(t, store.HasCollection(store.KeyStatusUpdates))
	assert.True(t, store.HasCollection(store.KeyBlockedUsers))
}

func TestRunSkipsExistingData(t *testing.T) {
	openTemp(t)

	seeded, err := Run()
	require.NoError(t, err)
	require.True(t, seeded)

	// user changes must survive a restart's seed pass
	require.NoError(t, store.SaveCollection(store.KeyChats, []models.Chat{{ID: "mine"}}))

	seeded, err = Run()
	require.NoError(t, err)
	assert.False(t, seeded)

	chats := store.LoadCollection(store.KeyChats, []models.Chat{})
	require.Len(t, chats, 1)
	assert.Equal(t, "mine", chats[0].ID)
}
