package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/eazymytrip/backend/internal/domain"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string, logger zerolog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db, logger: logger}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS chats (
			chat_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			last_message TEXT,
			last_sender TEXT,
			timestamp INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chats_user ON chats(user_id, timestamp)`,
		`CREATE TABLE IF NOT EXISTS messages (
			message_id TEXT PRIMARY KEY,
			chat_id TEXT NOT NULL,
			timestamp INTEGER NOT NULL,
			sender TEXT NOT NULL,
			text TEXT,
			attachment TEXT,
			delivery_status TEXT NOT NULL DEFAULT 'sent',
			FOREIGN KEY (chat_id) REFERENCES chats(chat_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_chat ON messages(chat_id, timestamp)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateChat inserts a new chat row.
func (s *SQLiteStore) CreateChat(ctx context.Context, chat *domain.Chat) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chats (chat_id, user_id, last_message, last_sender, timestamp) VALUES (?, ?, ?, ?, ?)`,
		chat.ID, chat.UserID, chat.LastMessage, chat.LastSender, chat.Timestamp)
	return err
}

// GetChat retrieves a chat by ID. Returns (nil, nil) if not found.
func (s *SQLiteStore) GetChat(ctx context.Context, chatID string) (*domain.Chat, error) {
	var chat domain.Chat
	var lastMessage, lastSender sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT chat_id, user_id, last_message, last_sender, timestamp FROM chats WHERE chat_id = ?`,
		chatID).Scan(&chat.ID, &chat.UserID, &lastMessage, &lastSender, &chat.Timestamp)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	chat.LastMessage = lastMessage.String
	chat.LastSender = domain.MessageSender(lastSender.String)
	return &chat, nil
}

// ListChatsByUser returns all chats for a user, oldest first.
func (s *SQLiteStore) ListChatsByUser(ctx context.Context, userID string) ([]domain.Chat, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT chat_id, user_id, last_message, last_sender, timestamp FROM chats WHERE user_id = ? ORDER BY timestamp ASC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []domain.Chat
	for rows.Next() {
		var chat domain.Chat
		var lastMessage, lastSender sql.NullString
		if err := rows.Scan(&chat.ID, &chat.UserID, &lastMessage, &lastSender, &chat.Timestamp); err != nil {
			return nil, err
		}
		chat.LastMessage = lastMessage.String
		chat.LastSender = domain.MessageSender(lastSender.String)
		chats = append(chats, chat)
	}
	return chats, rows.Err()
}

// VerifyChatOwnership reports whether the chat exists and belongs to the user.
func (s *SQLiteStore) VerifyChatOwnership(ctx context.Context, chatID, userID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM chats WHERE chat_id = ? AND user_id = ?`,
		chatID, userID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateMessage validates and inserts a message, then updates the chat's
// denormalized summary.
func (s *SQLiteStore) CreateMessage(ctx context.Context, msg *domain.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (message_id, chat_id, timestamp, sender, text, attachment, delivery_status) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		msg.MessageID, msg.ChatID, msg.Timestamp, msg.Sender, msg.Text, msg.Attachment, msg.DeliveryStatus)
	if err != nil {
		return err
	}

	// Summary failures must not surface; the message itself is stored.
	if _, err := s.db.ExecContext(ctx,
		`UPDATE chats SET last_message = ?, last_sender = ?, timestamp = ? WHERE chat_id = ?`,
		msg.Text, msg.Sender, msg.Timestamp, msg.ChatID); err != nil {
		s.logger.Warn().Err(err).Str("chat_id", msg.ChatID).Msg("failed to update chat summary")
	}

	return nil
}

// ListMessages returns up to limit messages for a chat, oldest first.
func (s *SQLiteStore) ListMessages(ctx context.Context, chatID string, before int64, limit int) ([]domain.Message, bool, error) {
	query := `SELECT message_id, chat_id, timestamp, sender, text, attachment, delivery_status FROM messages WHERE chat_id = ?`
	args := []interface{}{chatID}

	if before > 0 {
		query += ` AND timestamp < ?`
		args = append(args, before)
	}

	// Newest first with insertion order as tiebreaker, one extra row to
	// detect whether older messages remain.
	query += ` ORDER BY timestamp DESC, rowid DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit+1)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		var text, attachment sql.NullString
		if err := rows.Scan(&msg.MessageID, &msg.ChatID, &msg.Timestamp, &msg.Sender, &text, &attachment, &msg.DeliveryStatus); err != nil {
			return nil, false, err
		}
		msg.Text = text.String
		msg.Attachment = attachment.String
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	hasMore := false
	if limit > 0 && len(messages) > limit {
		hasMore = true
		messages = messages[:limit]
	}

	// Reverse the page so callers see it oldest first.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, hasMore, nil
}
