package conversation

import (
	"context"

	"github.com/pawconnect/assistant/internal/domain"
)

// Repository handles conversation row access.
type Repository interface {
	Create(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error)
	FindByID(ctx context.Context, id string) (*domain.Conversation, error)
	FindByUserID(ctx context.Context, userID string) ([]domain.Conversation, error)
	Delete(ctx context.Context, id, userID string) error
	TouchUpdatedAt(ctx context.Context, id string) error
}
