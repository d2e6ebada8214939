package assistant

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/eazymytrip/backend/internal/adapter/genai"
	"github.com/eazymytrip/backend/internal/domain"
)

// Fixed user-facing replies for failure modes during a turn.
const (
	replyInvalidFlightParams = "Oops, I got invalid flight search parameters."
	replyInvalidHotelParams  = "Oops, I got invalid hotel search parameters."
	replyNotAllowed          = "Sorry, I can't help with that request."
	replyInternalError       = "Sorry, I encountered an error processing your request. Please try again."
)

// maxToolRounds bounds how many times one user turn may loop through
// tool dispatch before the model must answer in text.
const maxToolRounds = 4

// FlightSearcher searches flights for validated criteria.
type FlightSearcher interface {
	Search(ctx context.Context, criteria domain.FlightCriteria) []domain.FlightOffer
}

// HotelSearcher searches hotels for validated criteria.
type HotelSearcher interface {
	Search(ctx context.Context, criteria domain.HotelCriteria) []domain.HotelOffer
}

// PolicyGate decides whether a tool call may be dispatched.
type PolicyGate interface {
	Allow(ctx context.Context, tool string, args map[string]any) (bool, string, error)
}

// Engine runs one conversational turn at a time per session: it sends the
// history to the model, dispatches every tool call the model makes, feeds
// the results back, and returns the final text reply.
type Engine struct {
	gen      genai.Client
	model    string
	flights  FlightSearcher
	hotels   HotelSearcher
	policy   PolicyGate
	sessions *SessionStore
	logger   zerolog.Logger
}

// NewEngine creates a dialogue engine.
func NewEngine(gen genai.Client, model string, flights FlightSearcher, hotels HotelSearcher, policy PolicyGate, sessions *SessionStore, logger zerolog.Logger) *Engine {
	return &Engine{
		gen:      gen,
		model:    model,
		flights:  flights,
		hotels:   hotels,
		policy:   policy,
		sessions: sessions,
		logger:   logger,
	}
}

// Sessions exposes the session store, mainly for eviction wiring.
func (e *Engine) Sessions() *SessionStore {
	return e.sessions
}

// HandleMessage runs one user turn. It never returns an error; every
// failure mode maps to a fixed reply so the conversation can continue.
// Turns within one session are serialized; different sessions proceed
// in parallel.
func (e *Engine) HandleMessage(ctx context.Context, sessionID, userMessage string) *domain.Reply {
	sess := e.sessions.GetOrCreate(sessionID)
	sess.Lock()
	defer sess.Unlock()
	defer sess.Touch()

	sess.AppendUserTurn(userMessage)

	resp, err := e.gen.GenerateContent(ctx, e.model, &genai.GenerateRequest{
		Contents: sess.History(),
		SystemInstruction: &genai.Content{
			Parts: []genai.Part{{Text: systemPrompt(time.Now())}},
		},
		Tools: toolDeclarations(),
	})
	if err != nil {
		e.logger.Error().Err(err).Str("session_id", sessionID).Msg("model call failed")
		return &domain.Reply{Reply: replyInternalError}
	}

	var invocations []domain.ToolInvocation

	for round := 0; round < maxToolRounds; round++ {
		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			break
		}

		// Gate and validate every call before the history is touched, so
		// a rejected turn leaves no dangling function call behind.
		for _, call := range calls {
			allowed, reason, err := e.policy.Allow(ctx, call.Name, call.Args)
			if err != nil {
				e.logger.Error().Err(err).Str("tool", call.Name).Msg("policy evaluation failed")
				return &domain.Reply{Reply: replyInternalError}
			}
			if !allowed {
				e.logger.Warn().Str("tool", call.Name).Str("reason", reason).
					Str("session_id", sessionID).Msg("tool call blocked by policy")
				return &domain.Reply{Reply: replyNotAllowed}
			}

			switch call.Name {
			case ToolConfirmBooking:
				// Terminal: the breakdown is the reply, no follow-up turn.
				return &domain.Reply{Reply: parseBookingArgs(call.Args), Done: true}
			case ToolSearchFlights:
				if _, err := parseFlightArgs(call.Args); err != nil {
					e.logger.Warn().Err(err).Str("session_id", sessionID).Msg("invalid flight arguments")
					return &domain.Reply{Reply: replyInvalidFlightParams}
				}
			case ToolSearchHotels:
				if _, err := parseHotelArgs(call.Args); err != nil {
					e.logger.Warn().Err(err).Str("session_id", sessionID).Msg("invalid hotel arguments")
					return &domain.Reply{Reply: replyInvalidHotelParams}
				}
			}
		}

		sess.AppendModelTurn(*resp.Content())

		for _, call := range calls {
			var result any
			switch call.Name {
			case ToolSearchFlights:
				criteria, _ := parseFlightArgs(call.Args)
				result = e.flights.Search(ctx, criteria)
			case ToolSearchHotels:
				criteria, _ := parseHotelArgs(call.Args)
				result = e.hotels.Search(ctx, criteria)
			}
			sess.AttachToolResult(call.Name, result)
			invocations = append(invocations, domain.ToolInvocation{
				Tool:   call.Name,
				Args:   call.Args,
				Result: result,
			})
		}

		// Follow-up turn with the tool results in the history. The system
		// instruction is sent only on the opening call of the turn.
		resp, err = e.gen.GenerateContent(ctx, e.model, &genai.GenerateRequest{
			Contents: sess.History(),
			Tools:    toolDeclarations(),
		})
		if err != nil {
			e.logger.Error().Err(err).Str("session_id", sessionID).Msg("follow-up model call failed")
			return &domain.Reply{Reply: replyInternalError}
		}
	}

	text := resp.Text()
	sess.AppendModelTurn(genai.Content{Parts: []genai.Part{{Text: text}}})

	reply := &domain.Reply{Reply: text}
	switch len(invocations) {
	case 0:
	case 1:
		reply.Data = invocations[0].Result
	default:
		reply.Data = invocations
	}
	return reply
}
