package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/eazymytrip/backend/internal/domain"
	"github.com/eazymytrip/backend/tests/helpers"
)

type fakeAssistant struct {
	reply *domain.Reply
	calls int
}

func (f *fakeAssistant) HandleMessage(ctx context.Context, sessionID, userMessage string) *domain.Reply {
	f.calls++
	return f.reply
}

func newTestService(t *testing.T, assistant Assistant) *Service {
	t.Helper()
	return New(helpers.NewTestSQLiteStore(t), assistant, zerolog.Nop())
}

func TestHandleChatPersistsBothSides(t *testing.T) {
	fa := &fakeAssistant{reply: &domain.Reply{Reply: "Where to?"}}
	svc := newTestService(t, fa)
	ctx := context.Background()

	reply, err := svc.HandleChat(ctx, ChatPayload{
		SessionID:   "s1",
		UserMessage: "plan a trip",
		UserID:      "u1",
	})
	if err != nil {
		t.Fatalf("HandleChat failed: %v", err)
	}
	if reply.Reply != "Where to?" {
		t.Fatalf("unexpected reply %q", reply.Reply)
	}
	if fa.calls != 1 {
		t.Fatalf("expected 1 assistant call, got %d", fa.calls)
	}

	messages, _, err := svc.ListMessages(ctx, "s1", "u1", 0, 10)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Sender != domain.SenderUser || messages[0].Text != "plan a trip" {
		t.Fatalf("unexpected user message: %+v", messages[0])
	}
	if messages[1].Sender != domain.SenderModel || messages[1].Text != "Where to?" {
		t.Fatalf("unexpected model message: %+v", messages[1])
	}
}

func TestHandleChatReusesExistingChat(t *testing.T) {
	fa := &fakeAssistant{reply: &domain.Reply{Reply: "ok"}}
	svc := newTestService(t, fa)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.HandleChat(ctx, ChatPayload{
			SessionID: "s1", UserMessage: "hello", UserID: "u1",
		}); err != nil {
			t.Fatalf("HandleChat failed: %v", err)
		}
	}

	chats, err := svc.ListChats(ctx, "u1")
	if err != nil {
		t.Fatalf("ListChats failed: %v", err)
	}
	if len(chats) != 1 {
		t.Fatalf("expected 1 chat, got %d", len(chats))
	}

	// Two turns persist four messages, strictly alternating user/model.
	messages, _, err := svc.ListMessages(ctx, "s1", "u1", 0, 10)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}
	for i, msg := range messages {
		want := domain.SenderUser
		if i%2 == 1 {
			want = domain.SenderModel
		}
		if msg.Sender != want {
			t.Fatalf("message %d: sender %q, want %q", i, msg.Sender, want)
		}
	}
}

func TestHandleChatRejectsForeignChat(t *testing.T) {
	fa := &fakeAssistant{reply: &domain.Reply{Reply: "ok"}}
	svc := newTestService(t, fa)
	ctx := context.Background()

	if _, err := svc.HandleChat(ctx, ChatPayload{
		SessionID: "s1", UserMessage: "hello", UserID: "u1",
	}); err != nil {
		t.Fatalf("HandleChat failed: %v", err)
	}

	_, err := svc.HandleChat(ctx, ChatPayload{
		SessionID: "s1", UserMessage: "hello", UserID: "u2",
	})
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestHandleChatStoresStructuredReplyAsJSON(t *testing.T) {
	offers := []domain.FlightOffer{{ID: "1", From: "DEL", To: "LHR", Price: "450.00"}}
	fa := &fakeAssistant{reply: &domain.Reply{Reply: "Here are flights", Data: offers}}
	svc := newTestService(t, fa)
	ctx := context.Background()

	if _, err := svc.HandleChat(ctx, ChatPayload{
		SessionID: "s1", UserMessage: "flights", UserID: "u1",
	}); err != nil {
		t.Fatalf("HandleChat failed: %v", err)
	}

	messages, _, err := svc.ListMessages(ctx, "s1", "u1", 0, 10)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}

	var stored domain.Reply
	if err := json.Unmarshal([]byte(messages[1].Text), &stored); err != nil {
		t.Fatalf("model message is not JSON: %v", err)
	}
	if stored.Reply != "Here are flights" || stored.Data == nil {
		t.Fatalf("unexpected stored reply: %+v", stored)
	}
}

func TestHandleChatNoReply(t *testing.T) {
	fa := &fakeAssistant{reply: &domain.Reply{Reply: ""}}
	svc := newTestService(t, fa)

	_, err := svc.HandleChat(context.Background(), ChatPayload{
		SessionID: "s1", UserMessage: "hello", UserID: "u1",
	})
	if !errors.Is(err, ErrNoReply) {
		t.Fatalf("expected ErrNoReply, got %v", err)
	}
}

func TestGetChatHidesForeignChats(t *testing.T) {
	fa := &fakeAssistant{reply: &domain.Reply{Reply: "ok"}}
	svc := newTestService(t, fa)
	ctx := context.Background()

	if _, err := svc.HandleChat(ctx, ChatPayload{
		SessionID: "s1", UserMessage: "hello", UserID: "u1",
	}); err != nil {
		t.Fatalf("HandleChat failed: %v", err)
	}

	if _, _, err := svc.GetChat(ctx, "s1", "u2"); !errors.Is(err, ErrChatNotFound) {
		t.Fatalf("expected ErrChatNotFound, got %v", err)
	}
	if _, _, err := svc.GetChat(ctx, "missing", "u1"); !errors.Is(err, ErrChatNotFound) {
		t.Fatalf("expected ErrChatNotFound, got %v", err)
	}

	chat, messages, err := svc.GetChat(ctx, "s1", "u1")
	if err != nil {
		t.Fatalf("GetChat failed: %v", err)
	}
	if chat.ID != "s1" {
		t.Fatalf("unexpected chat: %+v", chat)
	}
	if len(messages) != 2 {
		t.Fatalf("expected full history, got %d messages", len(messages))
	}
}

func TestCreateMessageRequiresOwnership(t *testing.T) {
	fa := &fakeAssistant{reply: &domain.Reply{Reply: "ok"}}
	svc := newTestService(t, fa)
	ctx := context.Background()

	if _, err := svc.HandleChat(ctx, ChatPayload{
		SessionID: "s1", UserMessage: "hello", UserID: "u1",
	}); err != nil {
		t.Fatalf("HandleChat failed: %v", err)
	}

	_, err := svc.CreateMessage(ctx, "u2", &domain.Message{
		ChatID: "s1", Sender: domain.SenderUser, Text: "intruder",
	})
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}

	id, err := svc.CreateMessage(ctx, "u1", &domain.Message{
		ChatID: "s1", Sender: domain.SenderUser, Text: "mine",
	})
	if err != nil {
		t.Fatalf("CreateMessage failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected a message id")
	}
}
