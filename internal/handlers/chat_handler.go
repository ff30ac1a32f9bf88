package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pawconnect/assistant/internal/session"
)

// ChatHandler exposes the conversation session over HTTP. Each signed-in
// user gets one server-side session from the registry.
type ChatHandler struct {
	registry *session.Registry
}

func NewChatHandler(registry *session.Registry) *ChatHandler {
	return &ChatHandler{registry: registry}
}

type chatStatePayload struct {
	ActiveID      string              `json:"activeConversationId"`
	Conversations interface{}         `json:"conversations"`
	Transcript    []transcriptMessage `json:"transcript"`
	Pending       bool                `json:"pending"`
}

func (h *ChatHandler) statePayload(s *session.Session) chatStatePayload {
	return chatStatePayload{
		ActiveID:      s.Conversations.ActiveID(),
		Conversations: s.Conversations.Conversations(),
		Transcript:    toTranscriptPayload(s.Conversations.Transcript()),
		Pending:       s.Conversations.Pending(),
	}
}

// GetState returns the full chat state: listing, active id, transcript.
func (h *ChatHandler) GetState(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFrom(w, r)
	if !ok {
		return
	}

	s := h.registry.Session(r.Context(), id.UserID)
	writeJSON(w, http.StatusOK, h.statePayload(s))
}

// SendMessage runs one chat turn and returns the updated state. Empty or
// whitespace-only input changes nothing.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFrom(w, r)
	if !ok {
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Bad Request", http.StatusBadRequest)
		return
	}

	s := h.registry.Session(r.Context(), id.UserID)
	s.Conversations.Send(r.Context(), req.Message)
	writeJSON(w, http.StatusOK, h.statePayload(s))
}

// SelectConversation switches the active conversation and reloads its
// transcript.
func (h *ChatHandler) SelectConversation(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFrom(w, r)
	if !ok {
		return
	}

	conversationID := mux.Vars(r)["id"]
	if conversationID == "" {
		writeError(w, "Invalid conversation ID", http.StatusBadRequest)
		return
	}

	s := h.registry.Session(r.Context(), id.UserID)
	s.Conversations.Select(r.Context(), conversationID)
	writeJSON(w, http.StatusOK, h.statePayload(s))
}

// NewChat resets to the unselected state with a fresh greeting.
func (h *ChatHandler) NewChat(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFrom(w, r)
	if !ok {
		return
	}

	s := h.registry.Session(r.Context(), id.UserID)
	s.Conversations.NewChat()
	writeJSON(w, http.StatusOK, h.statePayload(s))
}

// DeleteConversation removes a conversation and returns the updated state.
func (h *ChatHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFrom(w, r)
	if !ok {
		return
	}

	conversationID := mux.Vars(r)["id"]
	if conversationID == "" {
		writeError(w, "Invalid conversation ID", http.StatusBadRequest)
		return
	}

	s := h.registry.Session(r.Context(), id.UserID)
	if err := s.Conversations.Delete(r.Context(), conversationID); err != nil {
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, h.statePayload(s))
}
