package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

// Client talks to the hosted completion and embedding-ingestion functions
// over their fixed REST contract.
type Client struct {
	config *Config
	client *http.Client
	logger Logger
}

// Logger matches the services logging interface without importing it,
// keeping this package dependency-free below net/http.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

func NewClient(config *Config, logger Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, NewConfigError(err.Error())
	}

	return &Client{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger,
	}, nil
}

type completionRequest struct {
	Question       string `json:"question"`
	UserID         string `json:"user_id,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
}

type completionResponse struct {
	Answer string `json:"answer"`
	Error  string `json:"error"`
}

type ingestionRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	UploadedBy string `json:"uploaded_by"`
}

type ingestionResponse struct {
	Error string `json:"error"`
}

// Answer asks the completion function for a reply on behalf of a signed-in
// user. The bearer token identifies the caller; the api key is sent always.
func (c *Client) Answer(ctx context.Context, token, userID, conversationID, question string) (string, error) {
	body := completionRequest{
		Question:       question,
		UserID:         userID,
		ConversationID: conversationID,
	}

	var parsed completionResponse
	status, err := c.post(ctx, completionPath, token, body, &parsed)
	if err != nil {
		c.logger.Error("completion request failed", "error", err)
		return "", NewTransportError("completion", err)
	}
	if status != http.StatusOK {
		c.logger.Warn("completion returned non-200", "status", status, "server_error", parsed.Error)
		return "", NewCompletionError(status, parsed.Error)
	}

	return parsed.Answer, nil
}

// AnswerPublic is the unauthenticated landing-page variant: api key only,
// no bearer token, no conversation context.
func (c *Client) AnswerPublic(ctx context.Context, question string) (string, error) {
	var parsed completionResponse
	status, err := c.post(ctx, completionPath, "", completionRequest{Question: question}, &parsed)
	if err != nil {
		c.logger.Error("public completion request failed", "error", err)
		return "", NewTransportError("completion", err)
	}
	if status != http.StatusOK {
		return "", NewCompletionError(status, parsed.Error)
	}

	return parsed.Answer, nil
}

// Ingest sends extracted document text to the embedding function.
func (c *Client) Ingest(ctx context.Context, token, userID, title, content string) error {
	body := ingestionRequest{Title: title, Content: content, UploadedBy: userID}

	var parsed ingestionResponse
	status, err := c.post(ctx, ingestionPath, token, body, &parsed)
	if err != nil {
		c.logger.Error("ingestion request failed", "error", err, "title", title)
		return NewTransportError("ingestion", err)
	}
	if status != http.StatusOK {
		c.logger.Warn("ingestion returned non-200", "status", status, "server_error", parsed.Error)
		return NewIngestionError(status, parsed.Error)
	}

	return nil
}

// post issues the request and decodes whatever JSON comes back. A body
// that fails to decode is ignored: the status-based fallback message
// covers servers that return nothing structured.
func (c *Client) post(ctx context.Context, path, token string, body, out interface{}) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.config.APIKey)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	_ = json.NewDecoder(resp.Body).Decode(out)
	return resp.StatusCode, nil
}
