package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/pawconnect/assistant/internal/auth"
	"github.com/pawconnect/assistant/internal/session"
)

// writeJSON sends a JSON response.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError sends a JSON error response.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// identityFrom reads the identity set by the auth middleware. A missing
// identity writes a 401 and reports false.
func identityFrom(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, err := auth.ContextProvider{}.Identity(r.Context())
	if err != nil {
		writeError(w, err.Error(), http.StatusUnauthorized)
		return auth.Identity{}, false
	}
	return id, true
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// renderMarkdown converts assistant markdown into HTML for display. On a
// conversion failure the raw text is returned and the client falls back to
// plain rendering.
func renderMarkdown(text string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return text
	}
	return buf.String()
}

// transcriptMessage is the wire shape of one transcript entry. Assistant
// messages carry a rendered HTML body alongside the raw text.
type transcriptMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	HTML      string    `json:"html,omitempty"`
	IsUser    bool      `json:"isUser"`
	Timestamp time.Time `json:"timestamp"`
}

func toTranscriptPayload(msgs []session.ChatMessage) []transcriptMessage {
	out := make([]transcriptMessage, 0, len(msgs))
	for _, msg := range msgs {
		entry := transcriptMessage{
			ID:        msg.ID,
			Text:      msg.Text,
			IsUser:    msg.IsUser,
			Timestamp: msg.Timestamp,
		}
		if !msg.IsUser {
			entry.HTML = renderMarkdown(msg.Text)
		}
		out = append(out, entry)
	}
	return out
}
