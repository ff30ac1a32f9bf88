package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn within a conversation. Messages are immutable
// once created; they are only removed when their conversation is deleted.
type Message struct {
	ID             string    `json:"id" gorm:"primaryKey;size:36"`
	ConversationID string    `json:"conversation_id" gorm:"size:36;not null;index"`
	UserID         string    `json:"user_id" gorm:"size:36;index"`
	Role           string    `json:"role" gorm:"not null"`
	Content        string    `json:"content" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
}

// The hosted store calls this table chat_history; keep that name so the
// row shape stays interchangeable with the dashboard frontend's reads.
func (Message) TableName() string { return "chat_history" }

func (m *Message) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
