package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
)

func TestConversationStore_CreateAndGet(t *testing.T) {
	store := setupTestStore(t).ConversationStore()
	ctx := context.Background()

	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	conv := &domain.Conversation{ID: "c1", Title: "Students lose focus", CreatedAt: created}
	require.NoError(t, store.Create(ctx, conv))
	assert.Equal(t, created, conv.UpdatedAt, "updated_at defaults to created_at")

	got, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Students lose focus", got.Title)
	assert.True(t, got.CreatedAt.Equal(created))
	assert.True(t, got.UpdatedAt.Equal(created))
}

func TestConversationStore_Get_NotFound(t *testing.T) {
	store := setupTestStore(t).ConversationStore()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConversationStore_Create_Duplicate(t *testing.T) {
	store := setupTestStore(t).ConversationStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &domain.Conversation{ID: "c1", Title: "a"}))
	assert.Error(t, store.Create(ctx, &domain.Conversation{ID: "c1", Title: "b"}))
}

func TestConversationStore_AppendAndMessages(t *testing.T) {
	store := setupTestStore(t).ConversationStore()
	ctx := context.Background()

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.Create(ctx, &domain.Conversation{ID: "c1", Title: "t", CreatedAt: start}))

	module := &domain.Module{
		ID:    "m1",
		Title: "Focus Reset",
		Sections: []domain.ModuleSection{
			{Title: "Warm-up", Content: "Stretch", Activity: "Pairs", DurationMinutes: 4},
		},
		TotalDuration:   4,
		DifficultyLevel: domain.DifficultyBeginner,
		Language:        domain.DefaultLanguage,
	}

	msgs := []*domain.Message{
		{ID: "m-1", ConversationID: "c1", Role: domain.RoleUser, Content: "help", CreatedAt: start.Add(time.Minute)},
		{ID: "m-2", ConversationID: "c1", Role: domain.RoleAssistant, Content: "Module generated", Module: module, CreatedAt: start.Add(2 * time.Minute)},
		{ID: "m-3", ConversationID: "c1", Role: domain.RoleUser, Content: "shorter please", CreatedAt: start.Add(3 * time.Minute)},
	}
	for _, m := range msgs {
		require.NoError(t, store.AppendMessage(ctx, m))
	}

	got, err := store.Messages(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"m-1", "m-2", "m-3"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, domain.RoleAssistant, got[1].Role)
	assert.Nil(t, got[0].Module)
	require.NotNil(t, got[1].Module)
	assert.Equal(t, "Focus Reset", got[1].Module.Title)
	assert.Equal(t, module.Sections, got[1].Module.Sections)

	conv, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, conv.UpdatedAt.Equal(start.Add(3*time.Minute)), "append bumps updated_at")
}

func TestConversationStore_AppendMessage_UnknownConversation(t *testing.T) {
	store := setupTestStore(t).ConversationStore()

	err := store.AppendMessage(context.Background(), &domain.Message{
		ID: "m", ConversationID: "nope", Role: domain.RoleUser, Content: "x",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConversationStore_List_NewestFirst(t *testing.T) {
	store := setupTestStore(t).ConversationStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Create(ctx, &domain.Conversation{ID: "old", Title: "o", CreatedAt: base}))
	require.NoError(t, store.Create(ctx, &domain.Conversation{ID: "new", Title: "n", CreatedAt: base.Add(time.Hour)}))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].ID)

	// A new message moves the older conversation to the top.
	require.NoError(t, store.AppendMessage(ctx, &domain.Message{
		ID: "m", ConversationID: "old", Role: domain.RoleUser, Content: "x", CreatedAt: base.Add(2 * time.Hour),
	}))
	list, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "old", list[0].ID)
}

func TestConversationStore_List_Empty(t *testing.T) {
	list, err := setupTestStore(t).ConversationStore().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestConversationStore_Delete_Cascades(t *testing.T) {
	s := setupTestStore(t)
	store := s.ConversationStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &domain.Conversation{ID: "c1", Title: "t"}))
	require.NoError(t, store.AppendMessage(ctx, &domain.Message{ID: "m", ConversationID: "c1", Role: domain.RoleUser, Content: "x"}))

	require.NoError(t, store.Delete(ctx, "c1"))

	var count int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&count))
	assert.Zero(t, count)

	assert.ErrorIs(t, store.Delete(ctx, "c1"), domain.ErrNotFound)
}
