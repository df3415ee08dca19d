package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
)

func TestConversationCmd_Alias(t *testing.T) {
	assert.Contains(t, conversationCmd.Aliases, "conv")
}

func TestConversationListCmd(t *testing.T) {
	t.Run("no service", func(t *testing.T) {
		_, err := runCommand(t, Services{}, "conversation", "list")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "conversation service not configured")
	})

	t.Run("empty", func(t *testing.T) {
		convs := new(mockConversationService)
		convs.On("List", mock.Anything).Return([]domain.Conversation{}, nil)

		out, err := runCommand(t, Services{Conversation: convs}, "conv", "list")

		require.NoError(t, err)
		assert.Contains(t, out, "No conversations yet.")
	})

	t.Run("lists conversations", func(t *testing.T) {
		convs := new(mockConversationService)
		convs.On("List", mock.Anything).Return([]domain.Conversation{
			{ID: "c1", Title: "Noisy classroom", UpdatedAt: time.Now()},
			{ID: "c2", Title: "Fractions", UpdatedAt: time.Now()},
		}, nil)

		out, err := runCommand(t, Services{Conversation: convs}, "conversation", "list")

		require.NoError(t, err)
		assert.Contains(t, out, "c1")
		assert.Contains(t, out, "Noisy classroom")
		assert.Contains(t, out, "Total: 2 conversations")
	})
}

func TestConversationShowCmd(t *testing.T) {
	conv := &domain.Conversation{ID: "c1", Title: "Noisy classroom", CreatedAt: time.Now()}
	messages := []domain.Message{
		{Role: domain.RoleUser, Content: "Group work gets too loud"},
		{
			Role:    domain.RoleAssistant,
			Content: "Generated module",
			Module: &domain.Module{
				Title:           "Calm Group Work",
				TotalDuration:   8,
				DifficultyLevel: domain.DifficultyBeginner,
				Language:        "eng_Latn",
				Sections:        []domain.ModuleSection{{Title: "Signals", Content: "Agree a quiet signal.", DurationMinutes: 8}},
			},
		},
	}

	t.Run("text", func(t *testing.T) {
		convs := new(mockConversationService)
		convs.On("Get", mock.Anything, "c1").Return(conv, nil)
		convs.On("Messages", mock.Anything, "c1").Return(messages, nil)

		out, err := runCommand(t, Services{Conversation: convs}, "conversation", "show", "c1")

		require.NoError(t, err)
		assert.Contains(t, out, "Noisy classroom")
		assert.Contains(t, out, "2 messages")
		assert.Contains(t, out, "Teacher: Group work gets too loud")
		assert.Contains(t, out, "Assistant: Generated module")
		assert.Contains(t, out, "1. Signals (8 min)")
	})

	t.Run("json", func(t *testing.T) {
		convs := new(mockConversationService)
		convs.On("Get", mock.Anything, "c1").Return(conv, nil)
		convs.On("Messages", mock.Anything, "c1").Return(messages, nil)

		out, err := runCommand(t, Services{Conversation: convs}, "conversation", "show", "c1", "--format", "json")

		require.NoError(t, err)
		assert.Contains(t, out, `"module_data"`)
		assert.Contains(t, out, `"title": "Calm Group Work"`)
	})

	t.Run("not found", func(t *testing.T) {
		convs := new(mockConversationService)
		convs.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

		_, err := runCommand(t, Services{Conversation: convs}, "conversation", "show", "missing")

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		convs.AssertNotCalled(t, "Messages", mock.Anything, mock.Anything)
	})
}

func TestConversationDeleteCmd(t *testing.T) {
	convs := new(mockConversationService)
	convs.On("Delete", mock.Anything, "c1").Return(nil)

	out, err := runCommand(t, Services{Conversation: convs}, "conversation", "delete", "c1")

	require.NoError(t, err)
	assert.Contains(t, out, "Deleted conversation c1")
	convs.AssertExpectations(t)
}
