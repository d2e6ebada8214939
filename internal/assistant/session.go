// Package assistant implements the conversational trip-planning engine.
package assistant

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/eazymytrip/backend/internal/adapter/genai"
)

// Session holds the in-memory conversation history for one chat. Callers
// must hold the session lock across a whole turn; the accessor methods
// themselves do not lock.
type Session struct {
	ID string

	mu           sync.Mutex
	turns        []genai.Content
	lastActivity time.Time
}

// Lock acquires the session for exclusive use.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session.
func (s *Session) Unlock() { s.mu.Unlock() }

// Touch marks the session as recently used.
func (s *Session) Touch() { s.lastActivity = time.Now() }

// AppendUserTurn adds a user text turn to the history.
func (s *Session) AppendUserTurn(text string) {
	s.turns = append(s.turns, genai.Content{
		Role:  "user",
		Parts: []genai.Part{{Text: text}},
	})
}

// AppendModelTurn adds a model turn to the history.
func (s *Session) AppendModelTurn(c genai.Content) {
	c.Role = "model"
	s.turns = append(s.turns, c)
}

// AttachToolResult appends a function response part to the most recent
// turn, so the follow-up model call sees the tool output in place.
func (s *Session) AttachToolResult(name string, result any) {
	if len(s.turns) == 0 {
		return
	}
	last := &s.turns[len(s.turns)-1]
	last.Parts = append(last.Parts, genai.Part{
		FunctionResponse: &genai.FunctionResponse{
			Name:     name,
			Response: map[string]any{"result": result},
		},
	})
}

// History returns the conversation turns. The returned slice is the live
// backing array; callers must hold the session lock while using it.
func (s *Session) History() []genai.Content {
	return s.turns
}

// SessionStore keeps sessions in memory and evicts idle ones so a
// long-running process does not accumulate history forever.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	idleTTL       time.Duration
	sweepInterval time.Duration
	logger        zerolog.Logger
}

// NewSessionStore creates a session store with the given eviction settings.
func NewSessionStore(idleTTL, sweepInterval time.Duration, logger zerolog.Logger) *SessionStore {
	return &SessionStore{
		sessions:      make(map[string]*Session),
		idleTTL:       idleTTL,
		sweepInterval: sweepInterval,
		logger:        logger,
	}
}

// GetOrCreate returns the session for id, creating it when absent.
func (ss *SessionStore) GetOrCreate(id string) *Session {
	ss.mu.RLock()
	sess, ok := ss.sessions[id]
	ss.mu.RUnlock()
	if ok {
		return sess
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()
	if sess, ok := ss.sessions[id]; ok {
		return sess
	}
	sess = &Session{ID: id, lastActivity: time.Now()}
	ss.sessions[id] = sess
	return sess
}

// Len returns the number of live sessions.
func (ss *SessionStore) Len() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.sessions)
}

// StartEvictionLoop sweeps idle sessions until ctx is cancelled.
func (ss *SessionStore) StartEvictionLoop(ctx context.Context) {
	if ss.idleTTL <= 0 || ss.sweepInterval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(ss.sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				ss.evictIdleOnce()
			}
		}
	}()
}

// evictIdleOnce removes sessions idle longer than the TTL. Sessions whose
// lock is held are mid-turn and skipped; the next sweep will catch them.
func (ss *SessionStore) evictIdleOnce() {
	cutoff := time.Now().Add(-ss.idleTTL)

	ss.mu.Lock()
	defer ss.mu.Unlock()
	for id, sess := range ss.sessions {
		if !sess.mu.TryLock() {
			continue
		}
		idle := sess.lastActivity.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(ss.sessions, id)
			ss.logger.Debug().Str("session_id", id).Msg("evicted idle session")
		}
	}
}
