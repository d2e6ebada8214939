package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/eazymytrip/backend/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:", zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestChatLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	chat := &domain.Chat{ID: "c1", UserID: "u1", Timestamp: 100}
	if err := s.CreateChat(ctx, chat); err != nil {
		t.Fatalf("CreateChat failed: %v", err)
	}

	got, err := s.GetChat(ctx, "c1")
	if err != nil {
		t.Fatalf("GetChat failed: %v", err)
	}
	if got == nil || got.ID != "c1" || got.UserID != "u1" {
		t.Fatalf("unexpected chat: %+v", got)
	}

	missing, err := s.GetChat(ctx, "nope")
	if err != nil {
		t.Fatalf("GetChat failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing chat, got %+v", missing)
	}
}

func TestVerifyChatOwnership(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateChat(ctx, &domain.Chat{ID: "c1", UserID: "u1"}); err != nil {
		t.Fatalf("CreateChat failed: %v", err)
	}

	owner, err := s.VerifyChatOwnership(ctx, "c1", "u1")
	if err != nil || !owner {
		t.Fatalf("expected owner=true, got %v err %v", owner, err)
	}

	owner, err = s.VerifyChatOwnership(ctx, "c1", "u2")
	if err != nil || owner {
		t.Fatalf("expected owner=false, got %v err %v", owner, err)
	}
}

func TestListChatsByUserOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i, ts := range []int64{300, 100, 200} {
		chat := &domain.Chat{ID: fmt.Sprintf("c%d", i), UserID: "u1", Timestamp: ts}
		if err := s.CreateChat(ctx, chat); err != nil {
			t.Fatalf("CreateChat failed: %v", err)
		}
	}
	if err := s.CreateChat(ctx, &domain.Chat{ID: "other", UserID: "u2", Timestamp: 50}); err != nil {
		t.Fatalf("CreateChat failed: %v", err)
	}

	chats, err := s.ListChatsByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListChatsByUser failed: %v", err)
	}
	if len(chats) != 3 {
		t.Fatalf("expected 3 chats, got %d", len(chats))
	}
	for i := 1; i < len(chats); i++ {
		if chats[i-1].Timestamp > chats[i].Timestamp {
			t.Fatalf("chats not in ascending order: %+v", chats)
		}
	}
}

func TestCreateMessageUpdatesChatSummary(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateChat(ctx, &domain.Chat{ID: "c1", UserID: "u1"}); err != nil {
		t.Fatalf("CreateChat failed: %v", err)
	}

	msg := &domain.Message{
		MessageID:      "m1",
		ChatID:         "c1",
		Timestamp:      500,
		Sender:         domain.SenderUser,
		Text:           "hello",
		DeliveryStatus: domain.DeliverySent,
	}
	if err := s.CreateMessage(ctx, msg); err != nil {
		t.Fatalf("CreateMessage failed: %v", err)
	}

	chat, err := s.GetChat(ctx, "c1")
	if err != nil {
		t.Fatalf("GetChat failed: %v", err)
	}
	if chat.LastMessage != "hello" || chat.LastSender != domain.SenderUser || chat.Timestamp != 500 {
		t.Fatalf("summary not updated: %+v", chat)
	}
}

func TestCreateMessageRejectsInvalid(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.CreateMessage(ctx, &domain.Message{
		MessageID: "m1",
		ChatID:    "c1",
		Sender:    domain.SenderUser,
	})
	if err == nil {
		t.Fatal("expected error for message without text or attachment")
	}

	err = s.CreateMessage(ctx, &domain.Message{
		MessageID: "m2",
		ChatID:    "c1",
		Sender:    "bot",
		Text:      "hi",
	})
	if err == nil {
		t.Fatal("expected error for invalid sender")
	}
}

func TestListMessagesPagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateChat(ctx, &domain.Chat{ID: "c1", UserID: "u1"}); err != nil {
		t.Fatalf("CreateChat failed: %v", err)
	}
	for i := 1; i <= 5; i++ {
		msg := &domain.Message{
			MessageID:      fmt.Sprintf("m%d", i),
			ChatID:         "c1",
			Timestamp:      int64(i * 100),
			Sender:         domain.SenderUser,
			Text:           fmt.Sprintf("msg %d", i),
			DeliveryStatus: domain.DeliverySent,
		}
		if err := s.CreateMessage(ctx, msg); err != nil {
			t.Fatalf("CreateMessage failed: %v", err)
		}
	}

	// Newest page of 2: messages 4 and 5, ascending, with more behind.
	page, hasMore, err := s.ListMessages(ctx, "c1", 0, 2)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if !hasMore {
		t.Fatal("expected hasMore=true")
	}
	if len(page) != 2 || page[0].MessageID != "m4" || page[1].MessageID != "m5" {
		t.Fatalf("unexpected page: %+v", page)
	}

	// Page before timestamp 400: messages 2 and 3.
	page, hasMore, err = s.ListMessages(ctx, "c1", 400, 2)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if !hasMore {
		t.Fatal("expected hasMore=true")
	}
	if len(page) != 2 || page[0].MessageID != "m2" || page[1].MessageID != "m3" {
		t.Fatalf("unexpected page: %+v", page)
	}

	// Final page: only message 1 remains.
	page, hasMore, err = s.ListMessages(ctx, "c1", 200, 2)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if hasMore {
		t.Fatal("expected hasMore=false")
	}
	if len(page) != 1 || page[0].MessageID != "m1" {
		t.Fatalf("unexpected page: %+v", page)
	}
}
