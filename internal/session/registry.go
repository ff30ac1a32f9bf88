package session

import (
	"context"
	"sync"

	"github.com/pawconnect/assistant/internal/services"
)

// Session bundles one user's conversation and document managers.
type Session struct {
	Conversations *ConversationManager
	Documents     *DocumentManager
}

// Registry hands out one Session per user id, creating and loading it on
// first access. Sessions live for the process lifetime or until Remove.
type Registry struct {
	mu        sync.Mutex
	gw        Gateway
	extractor Extractor
	logger    services.Logger
	sessions  map[string]*Session
}

func NewRegistry(gw Gateway, extractor Extractor, logger services.Logger) *Registry {
	if logger == nil {
		logger = &services.NoOpLogger{}
	}
	return &Registry{
		gw:        gw,
		extractor: extractor,
		logger:    logger,
		sessions:  make(map[string]*Session),
	}
}

// Session returns the user's session, creating it and loading its history on
// first access.
func (r *Registry) Session(ctx context.Context, userID string) *Session {
	r.mu.Lock()
	s, ok := r.sessions[userID]
	if !ok {
		cm := NewConversationManager(r.gw, r.logger)
		dm := NewDocumentManager(r.gw, r.extractor, cm, r.logger)
		s = &Session{Conversations: cm, Documents: dm}
		r.sessions[userID] = s
	}
	r.mu.Unlock()

	if !ok {
		s.Conversations.Load(ctx)
		s.Documents.Load(ctx)
	}
	return s
}

// Remove drops the user's session, typically on sign-out.
func (r *Registry) Remove(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, userID)
}
