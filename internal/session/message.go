package session

import "time"

// WelcomeText is the synthetic greeting shown first in every transcript. It
// is never persisted.
const WelcomeText = "👋 Hello! I'm your AI assistant. How can I help you today?"

// ChatMessage is one displayed transcript entry. Synthetic entries (the
// welcome greeting, error bubbles, upload notices) share this shape with
// persisted messages.
type ChatMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	IsUser    bool      `json:"isUser"`
	Timestamp time.Time `json:"timestamp"`
}

// welcomeMessage builds the greeting. Callers pass the epoch when persisted
// history follows it, so it always sorts first, and the current time for a
// fresh transcript.
func welcomeMessage(ts time.Time) ChatMessage {
	return ChatMessage{
		ID:        "welcome",
		Text:      WelcomeText,
		IsUser:    false,
		Timestamp: ts,
	}
}
