package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawconnect/assistant/internal/services"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(DefaultConfig(server.URL, "anon-key"), &services.NoOpLogger{})
	require.NoError(t, err)
	return client, server
}

func TestNewClientValidatesConfig(t *testing.T) {
	_, err := NewClient(&Config{}, &services.NoOpLogger{})
	require.Error(t, err)

	var assistantErr *AssistantError
	require.ErrorAs(t, err, &assistantErr)
	assert.Equal(t, ErrTypeConfig, assistantErr.Type)
}

func TestAnswerSendsContractAndHeaders(t *testing.T) {
	var got struct {
		Question       string `json:"question"`
		UserID         string `json:"user_id"`
		ConversationID string `json:"conversation_id"`
	}
	var gotAuth, gotKey string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/functions/v1/chat-response", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("apikey")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{"answer": "Hi there!"})
	})

	answer, err := client.Answer(context.Background(), "tok", "user-1", "c1", "Hello")
	require.NoError(t, err)
	assert.Equal(t, "Hi there!", answer)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "anon-key", gotKey)
	assert.Equal(t, "Hello", got.Question)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "c1", got.ConversationID)
}

func TestAnswerUsesServerErrorMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "quota exhausted"})
	})

	_, err := client.Answer(context.Background(), "tok", "user-1", "c1", "Hello")
	require.EqualError(t, err, "quota exhausted")
}

func TestAnswerFallsBackToStatusMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Answer(context.Background(), "tok", "user-1", "c1", "Hello")
	require.EqualError(t, err, "Request failed (500)")

	var assistantErr *AssistantError
	require.ErrorAs(t, err, &assistantErr)
	assert.Equal(t, ErrTypeCompletion, assistantErr.Type)
	assert.Equal(t, http.StatusInternalServerError, assistantErr.Status)
}

func TestAnswerPublicOmitsBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]string{"answer": "Woof!"})
	})

	answer, err := client.AnswerPublic(context.Background(), "What is PawConnect?")
	require.NoError(t, err)
	assert.Equal(t, "Woof!", answer)
	assert.Empty(t, gotAuth)
}

func TestIngestSendsContract(t *testing.T) {
	var got struct {
		Title      string `json:"title"`
		Content    string `json:"content"`
		UploadedBy string `json:"uploaded_by"`
	}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/functions/v1/generate-embeddings", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	})

	err := client.Ingest(context.Background(), "tok", "user-1", "notes.pdf", "page one\n\npage two")
	require.NoError(t, err)
	assert.Equal(t, "notes.pdf", got.Title)
	assert.Equal(t, "page one\n\npage two", got.Content)
	assert.Equal(t, "user-1", got.UploadedBy)
}

func TestIngestFallsBackToStatusMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := client.Ingest(context.Background(), "tok", "user-1", "notes.pdf", "text")
	require.EqualError(t, err, "Upload failed (502)")
}

func TestAnswerTransportFailure(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := client.Answer(context.Background(), "tok", "user-1", "c1", "Hello")
	require.Error(t, err)

	var assistantErr *AssistantError
	require.ErrorAs(t, err, &assistantErr)
	assert.Equal(t, ErrTypeTransport, assistantErr.Type)
}
