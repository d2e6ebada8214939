package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/eazymytrip/backend/internal/domain"
)

// Sentinel errors the transport maps to HTTP statuses.
var (
	ErrChatNotFound = errors.New("chat not found")
	ErrAccessDenied = errors.New("access denied")
	ErrNoReply      = errors.New("no response from assistant")
)

// ChatPayload is one inbound user turn.
type ChatPayload struct {
	SessionID   string `json:"session_id"`
	UserMessage string `json:"user_message"`
	UserID      string `json:"-"`
}

func newMessageID() string {
	return "msg_" + uuid.New().String()[:8]
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// HandleChat processes one user turn: it ensures the chat row exists,
// persists the user message, runs the assistant, and persists the reply.
// A failure to persist the user message aborts the turn; the reply is
// only returned after it has been stored.
func (s *Service) HandleChat(ctx context.Context, payload ChatPayload) (*domain.Reply, error) {
	if payload.SessionID == "" || payload.UserMessage == "" {
		return nil, errors.New("session_id and user_message are required")
	}

	chat, err := s.store.GetChat(ctx, payload.SessionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up chat")
	}
	if chat == nil {
		if err := s.store.CreateChat(ctx, &domain.Chat{
			ID:        payload.SessionID,
			UserID:    payload.UserID,
			Timestamp: nowMillis(),
		}); err != nil {
			return nil, errors.Wrap(err, "failed to create chat")
		}
	} else if chat.UserID != payload.UserID {
		return nil, ErrAccessDenied
	}

	// Timestamps order the history; keep them strictly increasing even
	// when turns land within the same millisecond.
	userTs := nowMillis()
	if chat != nil && chat.Timestamp >= userTs {
		userTs = chat.Timestamp + 1
	}
	if err := s.store.CreateMessage(ctx, &domain.Message{
		MessageID:      newMessageID(),
		ChatID:         payload.SessionID,
		Timestamp:      userTs,
		Sender:         domain.SenderUser,
		Text:           payload.UserMessage,
		DeliveryStatus: domain.DeliverySent,
	}); err != nil {
		return nil, errors.Wrap(err, "failed to persist user message")
	}

	reply := s.assistant.HandleMessage(ctx, payload.SessionID, payload.UserMessage)
	if reply == nil || reply.Reply == "" {
		return nil, ErrNoReply
	}

	text := reply.Reply
	if reply.Data != nil {
		// Structured turns are stored whole so a client can re-render
		// the offers from history.
		if serialized, err := json.Marshal(reply); err == nil {
			text = string(serialized)
		} else {
			s.logger.Warn().Err(err).Str("chat_id", payload.SessionID).
				Msg("failed to serialize assistant reply, storing text only")
		}
	}

	// The reply must sort after the user message even within one millisecond.
	modelTs := nowMillis()
	if modelTs <= userTs {
		modelTs = userTs + 1
	}

	if err := s.store.CreateMessage(ctx, &domain.Message{
		MessageID:      newMessageID(),
		ChatID:         payload.SessionID,
		Timestamp:      modelTs,
		Sender:         domain.SenderModel,
		Text:           text,
		DeliveryStatus: domain.DeliverySent,
	}); err != nil {
		return nil, errors.Wrap(err, "failed to persist assistant message")
	}

	return reply, nil
}

// ListChats returns all chats owned by the user.
func (s *Service) ListChats(ctx context.Context, userID string) ([]domain.Chat, error) {
	chats, err := s.store.ListChatsByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list chats")
	}
	return chats, nil
}

// GetChat returns a chat owned by the user along with its full message
// history, oldest first. Chats that do not exist and chats owned by
// someone else are both reported as not found.
func (s *Service) GetChat(ctx context.Context, chatID, userID string) (*domain.Chat, []domain.Message, error) {
	owner, err := s.store.VerifyChatOwnership(ctx, chatID, userID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to verify chat ownership")
	}
	if !owner {
		return nil, nil, ErrChatNotFound
	}

	chat, err := s.store.GetChat(ctx, chatID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to fetch chat")
	}
	if chat == nil {
		return nil, nil, ErrChatNotFound
	}

	messages, _, err := s.store.ListMessages(ctx, chatID, 0, 0)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to fetch chat messages")
	}
	return chat, messages, nil
}

// ListMessages returns a page of messages for a chat the user owns,
// oldest first. before is a unix millisecond timestamp cursor; zero means
// the newest page.
func (s *Service) ListMessages(ctx context.Context, chatID, userID string, before int64, limit int) ([]domain.Message, bool, error) {
	owner, err := s.store.VerifyChatOwnership(ctx, chatID, userID)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to verify chat ownership")
	}
	if !owner {
		return nil, false, ErrChatNotFound
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}

	messages, hasMore, err := s.store.ListMessages(ctx, chatID, before, limit)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to list messages")
	}
	return messages, hasMore, nil
}

// CreateMessage appends a message to a chat the user owns.
func (s *Service) CreateMessage(ctx context.Context, userID string, msg *domain.Message) (string, error) {
	owner, err := s.store.VerifyChatOwnership(ctx, msg.ChatID, userID)
	if err != nil {
		return "", errors.Wrap(err, "failed to verify chat ownership")
	}
	if !owner {
		return "", ErrAccessDenied
	}

	msg.MessageID = newMessageID()
	if msg.Timestamp == 0 {
		msg.Timestamp = nowMillis()
	}
	if msg.DeliveryStatus == "" {
		msg.DeliveryStatus = domain.DeliverySent
	}

	if err := s.store.CreateMessage(ctx, msg); err != nil {
		return "", errors.Wrap(err, "failed to create message")
	}
	return msg.MessageID, nil
}
