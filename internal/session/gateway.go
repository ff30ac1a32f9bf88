package session

import (
	"context"

	"github.com/pawconnect/assistant/internal/domain"
)

// Gateway is the persistence and remote-call surface the session managers
// depend on. The gateway package's Gateway satisfies it.
type Gateway interface {
	CreateConversation(ctx context.Context, title string) (*domain.Conversation, error)
	ListConversations(ctx context.Context) ([]domain.Conversation, error)
	LoadMessages(ctx context.Context, conversationID string) ([]domain.Message, error)
	DeleteConversation(ctx context.Context, conversationID string) error
	SendMessage(ctx context.Context, question, conversationID string) (string, error)
	ListDocuments(ctx context.Context) ([]domain.Document, error)
	DeleteDocument(ctx context.Context, documentID string) error
	IngestDocument(ctx context.Context, title, content string) error
}
