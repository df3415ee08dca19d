package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
)

func TestConversationStore_CreateAndGet(t *testing.T) {
	store := NewConversationStore()
	ctx := context.Background()

	conv := &domain.Conversation{ID: "c1", Title: "Students lose focus"}
	require.NoError(t, store.Create(ctx, conv))
	assert.False(t, conv.CreatedAt.IsZero())
	assert.Equal(t, conv.CreatedAt, conv.UpdatedAt)

	got, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Students lose focus", got.Title)

	got.Title = "mutated"
	again, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Students lose focus", again.Title, "Get returns a copy")
}

func TestConversationStore_GetMissing(t *testing.T) {
	_, err := NewConversationStore().Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConversationStore_ListMostRecentlyUpdatedFirst(t *testing.T) {
	store := NewConversationStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.Create(ctx, &domain.Conversation{ID: "old", CreatedAt: base}))
	require.NoError(t, store.Create(ctx, &domain.Conversation{ID: "new", CreatedAt: base.Add(time.Hour)}))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].ID)

	require.NoError(t, store.AppendMessage(ctx, &domain.Message{
		ID: "m1", ConversationID: "old", Role: domain.RoleUser, Content: "hi",
		CreatedAt: base.Add(2 * time.Hour),
	}))

	list, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "old", list[0].ID)
}

func TestConversationStore_Messages(t *testing.T) {
	store := NewConversationStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.Create(ctx, &domain.Conversation{ID: "c1"}))

	module := &domain.Module{ID: "mod", Title: "Focus"}
	require.NoError(t, store.AppendMessage(ctx, &domain.Message{
		ID: "m2", ConversationID: "c1", Role: domain.RoleAssistant, Content: "answer",
		Module: module, CreatedAt: base.Add(time.Minute),
	}))
	require.NoError(t, store.AppendMessage(ctx, &domain.Message{
		ID: "m1", ConversationID: "c1", Role: domain.RoleUser, Content: "question",
		CreatedAt: base,
	}))

	msgs, err := store.Messages(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "m1", msgs[0].ID)
	assert.Equal(t, "m2", msgs[1].ID)
	require.NotNil(t, msgs[1].Module)
	assert.Equal(t, "Focus", msgs[1].Module.Title)

	empty, err := store.Messages(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestConversationStore_AppendToMissingConversation(t *testing.T) {
	err := NewConversationStore().AppendMessage(context.Background(),
		&domain.Message{ID: "m", ConversationID: "nope", Role: domain.RoleUser})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConversationStore_DeleteRemovesMessages(t *testing.T) {
	store := NewConversationStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &domain.Conversation{ID: "c1"}))
	require.NoError(t, store.AppendMessage(ctx, &domain.Message{ID: "m1", ConversationID: "c1", Role: domain.RoleUser}))

	require.NoError(t, store.Delete(ctx, "c1"))

	_, err := store.Get(ctx, "c1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	msgs, err := store.Messages(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, msgs)

	assert.ErrorIs(t, store.Delete(ctx, "c1"), domain.ErrNotFound)
}
