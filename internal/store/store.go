package store

import (
	"context"

	"github.com/eazymytrip/backend/internal/domain"
)

// Store defines the persistence interface for chats and messages.
type Store interface {
	// CreateChat inserts a new chat row.
	CreateChat(ctx context.Context, chat *domain.Chat) error

	// GetChat retrieves a chat by ID. Returns (nil, nil) if not found.
	GetChat(ctx context.Context, chatID string) (*domain.Chat, error)

	// ListChatsByUser returns all chats belonging to a user, oldest first.
	ListChatsByUser(ctx context.Context, userID string) ([]domain.Chat, error)

	// VerifyChatOwnership reports whether the chat exists and belongs to
	// the given user.
	VerifyChatOwnership(ctx context.Context, chatID, userID string) (bool, error)

	// CreateMessage validates and inserts a message, then updates the
	// chat's denormalized summary. A summary update failure is logged
	// but does not fail the insert.
	CreateMessage(ctx context.Context, msg *domain.Message) error

	// ListMessages returns up to limit messages for a chat, oldest first.
	// When before > 0 only messages with a timestamp strictly below it are
	// returned. The second result reports whether older messages remain.
	ListMessages(ctx context.Context, chatID string, before int64, limit int) ([]domain.Message, bool, error)

	// Close closes the store.
	Close() error
}
