package document

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/pawconnect/assistant/internal/domain"
)

var ErrDocumentNotFound = errors.New("document not found")
var ErrUnauthorizedAccess = errors.New("unauthorized access to document")

type gormDocumentRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormDocumentRepository{db: db}
}

func (r *gormDocumentRepository) Create(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	if err := r.validateInput(doc); err != nil {
		log.Printf("[DocumentRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
		log.Printf("[DocumentRepository] Database error creating document for user %s: %v", doc.UploadedBy, err)
		return nil, errors.New("database error creating document")
	}

	return doc, nil
}

// FindByUploader returns the user's documents, newest first.
func (r *gormDocumentRepository) FindByUploader(ctx context.Context, userID string) ([]domain.Document, error) {
	if userID == "" {
		return nil, errors.New("invalid user ID")
	}

	var docs []domain.Document
	err := r.db.WithContext(ctx).
		Where("uploaded_by = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&docs).Error
	if err != nil {
		log.Printf("[DocumentRepository] Database error finding documents for user %s: %v", userID, err)
		return nil, errors.New("database error fetching documents")
	}

	return docs, nil
}

func (r *gormDocumentRepository) Delete(ctx context.Context, id, userID string) error {
	if id == "" || userID == "" {
		return errors.New("invalid document ID or user ID")
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND uploaded_by = ?", id, userID).
		Delete(&domain.Document{})
	if result.Error != nil {
		log.Printf("[DocumentRepository] Database error deleting document %s for user %s: %v", id, userID, result.Error)
		return errors.New("database error deleting document")
	}
	if result.RowsAffected == 0 {
		return ErrUnauthorizedAccess
	}

	return nil
}

func (r *gormDocumentRepository) validateInput(doc *domain.Document) error {
	if doc == nil {
		return errors.New("document cannot be nil")
	}
	if doc.UploadedBy == "" {
		return errors.New("uploader ID is required")
	}
	if strings.TrimSpace(doc.Title) == "" {
		return errors.New("document title cannot be empty")
	}
	return nil
}
