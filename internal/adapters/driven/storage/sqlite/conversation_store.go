package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driven"
)

// conversationStore implements driven.ConversationStore.
type conversationStore struct {
	store *Store
}

var _ driven.ConversationStore = (*conversationStore)(nil)

// Create stores a new conversation.
func (s *conversationStore) Create(ctx context.Context, conv *domain.Conversation) error {
	now := time.Now().UTC()
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = now
	}
	if conv.UpdatedAt.IsZero() {
		conv.UpdatedAt = conv.CreatedAt
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO conversations (id, title, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, conv.ID, conv.Title, conv.CreatedAt.UTC(), conv.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving conversation: %w", err)
	}
	return nil
}

// Get retrieves a conversation by ID.
func (s *conversationStore) Get(ctx context.Context, id string) (*domain.Conversation, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, title, created_at, updated_at FROM conversations WHERE id = ?
	`, id)

	conv, err := scanConversation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning conversation: %w", err)
	}
	return conv, nil
}

// List returns all conversations, most recently updated first.
func (s *conversationStore) List(ctx context.Context) ([]domain.Conversation, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, title, created_at, updated_at
		FROM conversations
		ORDER BY updated_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying conversations: %w", err)
	}
	defer rows.Close()

	var convs []domain.Conversation //nolint:prealloc // size unknown from query
	for rows.Next() {
		conv, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning conversation: %w", err)
		}
		convs = append(convs, *conv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating conversations: %w", err)
	}
	return convs, nil
}

// AppendMessage stores a message and bumps the conversation's updated time.
func (s *conversationStore) AppendMessage(ctx context.Context, msg *domain.Message) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	var moduleJSON sql.NullString
	if msg.Module != nil {
		data, err := json.Marshal(msg.Module)
		if err != nil {
			return fmt.Errorf("marshalling module: %w", err)
		}
		moduleJSON = sql.NullString{String: string(data), Valid: true}
	}

	return s.store.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"UPDATE conversations SET updated_at = ? WHERE id = ?",
			msg.CreatedAt.UTC(), msg.ConversationID)
		if err != nil {
			return fmt.Errorf("touching conversation: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return domain.ErrNotFound
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO messages (id, conversation_id, role, content, module_data, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, msg.ID, msg.ConversationID, string(msg.Role), msg.Content, moduleJSON, msg.CreatedAt.UTC())
		if err != nil {
			return fmt.Errorf("saving message: %w", err)
		}
		return nil
	})
}

// Messages returns a conversation's messages in chronological order.
func (s *conversationStore) Messages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, conversation_id, role, content, module_data, created_at
		FROM messages
		WHERE conversation_id = ?
		ORDER BY created_at, rowid
	`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var msgs []domain.Message //nolint:prealloc // size unknown from query
	for rows.Next() {
		var msg domain.Message
		var role string
		var moduleJSON sql.NullString
		var createdAt sql.NullTime
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &role, &msg.Content, &moduleJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		msg.Role = domain.Role(role)
		if createdAt.Valid {
			msg.CreatedAt = createdAt.Time
		}
		if moduleJSON.Valid && moduleJSON.String != "" {
			var module domain.Module
			if err := json.Unmarshal([]byte(moduleJSON.String), &module); err != nil {
				return nil, fmt.Errorf("unmarshaling module: %w", err)
			}
			msg.Module = &module
		}
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating messages: %w", err)
	}
	return msgs, nil
}

// Delete removes a conversation; messages cascade.
func (s *conversationStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM conversations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting conversation: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanConversation(row rowScanner) (*domain.Conversation, error) {
	var conv domain.Conversation
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&conv.ID, &conv.Title, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if createdAt.Valid {
		conv.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		conv.UpdatedAt = updatedAt.Time
	}
	return &conv, nil
}
