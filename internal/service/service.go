// Package service bridges the HTTP transport, chat persistence and the
// conversational assistant.
package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/eazymytrip/backend/internal/domain"
	"github.com/eazymytrip/backend/internal/store"
)

// Assistant is the dialogue engine surface the service depends on.
type Assistant interface {
	HandleMessage(ctx context.Context, sessionID, userMessage string) *domain.Reply
}

// Service implements the chat operations behind the HTTP API.
type Service struct {
	store     store.Store
	assistant Assistant
	logger    zerolog.Logger
}

// New creates a service.
func New(st store.Store, assistant Assistant, logger zerolog.Logger) *Service {
	return &Service{
		store:     st,
		assistant: assistant,
		logger:    logger,
	}
}
