package message

import (
	"context"

	"github.com/pawconnect/assistant/internal/domain"
)

// Repository handles message row access. Messages have no update or
// individual delete operation; they live and die with their conversation.
type Repository interface {
	Create(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	FindByConversationID(ctx context.Context, conversationID string) ([]domain.Message, error)
	CountByConversationID(ctx context.Context, conversationID string) (int64, error)
	DeleteByConversationID(ctx context.Context, conversationID string) error
}
