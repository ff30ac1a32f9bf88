package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawconnect/assistant/internal/auth"
	"github.com/pawconnect/assistant/internal/domain"
	"github.com/pawconnect/assistant/internal/services"
	"github.com/pawconnect/assistant/internal/session"
)

type fakeGateway struct {
	answer    string
	answerErr error
}

func (f *fakeGateway) CreateConversation(_ context.Context, title string) (*domain.Conversation, error) {
	return &domain.Conversation{ID: "conv-1", UserID: "user-1", Title: title}, nil
}

func (f *fakeGateway) ListConversations(_ context.Context) ([]domain.Conversation, error) {
	return nil, nil
}

func (f *fakeGateway) LoadMessages(_ context.Context, conversationID string) ([]domain.Message, error) {
	return nil, nil
}

func (f *fakeGateway) DeleteConversation(_ context.Context, conversationID string) error {
	return nil
}

func (f *fakeGateway) SendMessage(_ context.Context, question, conversationID string) (string, error) {
	if f.answerErr != nil {
		return "", f.answerErr
	}
	return f.answer, nil
}

func (f *fakeGateway) ListDocuments(_ context.Context) ([]domain.Document, error) {
	return nil, nil
}

func (f *fakeGateway) DeleteDocument(_ context.Context, documentID string) error {
	return nil
}

func (f *fakeGateway) IngestDocument(_ context.Context, title, content string) error {
	return nil
}

func newTestRegistry(gw session.Gateway) *session.Registry {
	extractor := session.ExtractorFunc(func(filename string, data []byte) (string, error) {
		return string(data), nil
	})
	return session.NewRegistry(gw, extractor, &services.NoOpLogger{})
}

func signedInRequest(method, target string, body string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := auth.WithIdentity(r.Context(), auth.Identity{Token: "tok", UserID: "user-1"})
	return r.WithContext(ctx)
}

func TestGetStateRequiresIdentity(t *testing.T) {
	h := NewChatHandler(newTestRegistry(&fakeGateway{}))
	w := httptest.NewRecorder()

	h.GetState(w, httptest.NewRequest("GET", "/api/chat", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Please sign in to use the chat.", body["error"])
}

func TestSendMessageReturnsRenderedTranscript(t *testing.T) {
	h := NewChatHandler(newTestRegistry(&fakeGateway{answer: "**Bold** advice"}))
	w := httptest.NewRecorder()

	h.SendMessage(w, signedInRequest("POST", "/api/chat/send", `{"message":"Hello"}`))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		ActiveID   string `json:"activeConversationId"`
		Transcript []struct {
			Text   string `json:"text"`
			HTML   string `json:"html"`
			IsUser bool   `json:"isUser"`
		} `json:"transcript"`
		Pending bool `json:"pending"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "conv-1", body.ActiveID)
	assert.False(t, body.Pending)
	require.Len(t, body.Transcript, 3)
	assert.Equal(t, "Hello", body.Transcript[1].Text)
	assert.True(t, body.Transcript[1].IsUser)
	assert.Empty(t, body.Transcript[1].HTML)
	assert.Equal(t, "**Bold** advice", body.Transcript[2].Text)
	assert.Contains(t, body.Transcript[2].HTML, "<strong>Bold</strong>")
}

func TestSendMessageErrorBecomesBubble(t *testing.T) {
	h := NewChatHandler(newTestRegistry(&fakeGateway{answerErr: errors.New("Request failed (500)")}))
	w := httptest.NewRecorder()

	h.SendMessage(w, signedInRequest("POST", "/api/chat/send", `{"message":"Hello"}`))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Transcript []struct {
			Text string `json:"text"`
		} `json:"transcript"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Transcript, 3)
	assert.Equal(t, "Error: Request failed (500)", body.Transcript[2].Text)
}

type fakePublic struct {
	answer string
	err    error
}

func (f *fakePublic) AnswerPublic(_ context.Context, question string) (string, error) {
	return f.answer, f.err
}

func TestPublicAsk(t *testing.T) {
	h := NewPublicChatHandler(&fakePublic{answer: "Woof!"})
	w := httptest.NewRecorder()

	h.Ask(w, httptest.NewRequest("POST", "/api/public/chat", strings.NewReader(`{"question":"Hi?"}`)))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Woof!", body["answer"])
}

func TestPublicAskRejectsEmptyQuestion(t *testing.T) {
	h := NewPublicChatHandler(&fakePublic{})
	w := httptest.NewRecorder()

	h.Ask(w, httptest.NewRequest("POST", "/api/public/chat", strings.NewReader(`{"question":"   "}`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublicAskSurfacesFailure(t *testing.T) {
	h := NewPublicChatHandler(&fakePublic{err: errors.New("Request failed (500)")})
	w := httptest.NewRecorder()

	h.Ask(w, httptest.NewRequest("POST", "/api/public/chat", strings.NewReader(`{"question":"Hi?"}`)))

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Request failed (500)", body["error"])
}
