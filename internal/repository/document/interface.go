package document

import (
	"context"

	"github.com/pawconnect/assistant/internal/domain"
)

// Repository handles knowledge-base document metadata.
type Repository interface {
	Create(ctx context.Context, doc *domain.Document) (*domain.Document, error)
	FindByUploader(ctx context.Context, userID string) ([]domain.Document, error)
	Delete(ctx context.Context, id, userID string) error
}
