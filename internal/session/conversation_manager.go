package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/pawconnect/assistant/internal/domain"
	"github.com/pawconnect/assistant/internal/services"
)

// titleRuneLimit bounds a title derived from the first message.
const titleRuneLimit = 40

// ConversationManager owns one user's conversation list, the active
// conversation id, and the displayed transcript. An empty active id means no
// conversation is selected and the transcript holds only the greeting.
//
// The transcript is append-only: a failed send appends an error bubble
// instead of retracting the optimistically appended user message.
type ConversationManager struct {
	mu            sync.Mutex
	gw            Gateway
	logger        services.Logger
	conversations []domain.Conversation
	activeID      string
	transcript    []ChatMessage
	pending       bool
	loadGen       uint64
	createGroup   singleflight.Group
	now           func() time.Time
}

func NewConversationManager(gw Gateway, logger services.Logger) *ConversationManager {
	if logger == nil {
		logger = &services.NoOpLogger{}
	}
	m := &ConversationManager{
		gw:     gw,
		logger: logger,
		now:    time.Now,
	}
	m.transcript = []ChatMessage{welcomeMessage(m.now())}
	return m
}

// Load fetches the user's conversations and selects the most recent one.
// Failures leave the manager in its fresh state: an anonymous visitor gets
// the greeting, not an auth error.
func (m *ConversationManager) Load(ctx context.Context) {
	convs, err := m.gw.ListConversations(ctx)
	if err != nil {
		m.logger.Debug("conversation history unavailable", "error", err)
		return
	}

	m.mu.Lock()
	m.conversations = convs
	m.mu.Unlock()

	if len(convs) > 0 {
		m.Select(ctx, convs[0].ID)
	}
}

// Select makes the conversation active and reloads its transcript. Selecting
// the already-active conversation is a no-op and issues no load. A load that
// finishes after a newer selection is discarded.
func (m *ConversationManager) Select(ctx context.Context, conversationID string) {
	m.mu.Lock()
	if conversationID == m.activeID {
		m.mu.Unlock()
		return
	}
	m.activeID = conversationID
	m.loadGen++
	gen := m.loadGen
	m.mu.Unlock()

	msgs, err := m.gw.LoadMessages(ctx, conversationID)

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.loadGen {
		return
	}
	if err != nil {
		m.logger.Warn("message load failed", "conversation_id", conversationID, "error", err)
		m.transcript = []ChatMessage{welcomeMessage(m.now())}
		return
	}

	transcript := make([]ChatMessage, 0, len(msgs)+1)
	transcript = append(transcript, welcomeMessage(time.Unix(0, 0).UTC()))
	for _, msg := range msgs {
		transcript = append(transcript, ChatMessage{
			ID:        msg.ID,
			Text:      msg.Content,
			IsUser:    msg.Role == domain.RoleUser,
			Timestamp: msg.CreatedAt,
		})
	}
	m.transcript = transcript
}

// NewChat resets to the unselected state with a fresh greeting.
func (m *ConversationManager) NewChat() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activeID = ""
	m.loadGen++
	m.transcript = []ChatMessage{welcomeMessage(m.now())}
}

// Delete removes the conversation remotely and locally. If it was active,
// the next most recent conversation is selected, or the manager falls back
// to the unselected state when none remain.
func (m *ConversationManager) Delete(ctx context.Context, conversationID string) error {
	if err := m.gw.DeleteConversation(ctx, conversationID); err != nil {
		return err
	}

	m.mu.Lock()
	for i := range m.conversations {
		if m.conversations[i].ID == conversationID {
			m.conversations = append(m.conversations[:i], m.conversations[i+1:]...)
			break
		}
	}
	wasActive := m.activeID == conversationID
	var next string
	if wasActive {
		m.activeID = ""
		m.loadGen++
		m.transcript = []ChatMessage{welcomeMessage(m.now())}
		if len(m.conversations) > 0 {
			next = m.conversations[0].ID
		}
	}
	m.mu.Unlock()

	if next != "" {
		m.Select(ctx, next)
	}
	return nil
}

// Send runs one chat turn. Empty input and sends while a response is
// pending are no-ops. The user message is appended before any network call
// and never removed; exactly one assistant-authored entry follows it, either
// the answer or an error bubble.
func (m *ConversationManager) Send(ctx context.Context, text string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return
	}

	m.mu.Lock()
	if m.pending {
		m.mu.Unlock()
		return
	}
	m.pending = true
	m.transcript = append(m.transcript, ChatMessage{
		ID:        uuid.NewString(),
		Text:      trimmed,
		IsUser:    true,
		Timestamp: m.now(),
	})
	convID := m.activeID
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.pending = false
		m.mu.Unlock()
	}()

	if convID == "" {
		// Single-flight keyed on the manager so a double submit cannot
		// create two conversations for one first message.
		v, err, _ := m.createGroup.Do("create", func() (interface{}, error) {
			return m.gw.CreateConversation(ctx, deriveTitle(trimmed))
		})
		if err != nil {
			m.appendAssistant("Error: " + err.Error())
			return
		}
		conv := v.(*domain.Conversation)

		m.mu.Lock()
		m.activeID = conv.ID
		m.conversations = append([]domain.Conversation{*conv}, m.conversations...)
		m.mu.Unlock()
		convID = conv.ID
	}

	answer, err := m.gw.SendMessage(ctx, trimmed, convID)
	if err != nil {
		m.appendAssistant("Error: " + err.Error())
		return
	}

	m.mu.Lock()
	m.transcript = append(m.transcript, ChatMessage{
		ID:        uuid.NewString(),
		Text:      answer,
		IsUser:    false,
		Timestamp: m.now(),
	})
	m.promote(convID, m.now())
	m.mu.Unlock()
}

// AppendNotice posts a synthetic assistant-authored entry to the current
// transcript, whatever conversation is active. Upload progress and
// confirmations use it.
func (m *ConversationManager) AppendNotice(text string) {
	m.appendAssistant(text)
}

func (m *ConversationManager) appendAssistant(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transcript = append(m.transcript, ChatMessage{
		ID:        uuid.NewString(),
		Text:      text,
		IsUser:    false,
		Timestamp: m.now(),
	})
}

// promote bumps the conversation's recency and moves it to the front of the
// list, keeping most-recently-used order without a full refetch.
func (m *ConversationManager) promote(conversationID string, ts time.Time) {
	for i := range m.conversations {
		if m.conversations[i].ID == conversationID {
			conv := m.conversations[i]
			conv.UpdatedAt = ts
			m.conversations = append(m.conversations[:i], m.conversations[i+1:]...)
			m.conversations = append([]domain.Conversation{conv}, m.conversations...)
			return
		}
	}
}

func deriveTitle(text string) string {
	runes := []rune(text)
	if len(runes) <= titleRuneLimit {
		return text
	}
	return string(runes[:titleRuneLimit]) + "..."
}

// ActiveID returns the active conversation id, empty when unselected.
func (m *ConversationManager) ActiveID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeID
}

// Pending reports whether a completion request is outstanding.
func (m *ConversationManager) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending
}

// Conversations returns a copy of the listing, most recently updated first.
func (m *ConversationManager) Conversations() []domain.Conversation {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Conversation, len(m.conversations))
	copy(out, m.conversations)
	return out
}

// Transcript returns a copy of the displayed messages.
func (m *ConversationManager) Transcript() []ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ChatMessage, len(m.transcript))
	copy(out, m.transcript)
	return out
}
