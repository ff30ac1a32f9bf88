package conversation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/pawconnect/assistant/internal/domain"
)

var ErrConversationNotFound = errors.New("conversation not found")
var ErrUnauthorizedAccess = errors.New("unauthorized access to conversation")

// Titles are bounded well above the 43 characters the first-message
// derivation produces, to leave room for user-set titles later.
const maxTitleLength = 200

type gormConversationRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormConversationRepository{db: db}
}

func (r *gormConversationRepository) Create(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error) {
	if err := r.validateInput(conv); err != nil {
		log.Printf("[ConversationRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(conv).Error; err != nil {
		log.Printf("[ConversationRepository] Database error creating conversation for user %s: %v", conv.UserID, err)
		return nil, errors.New("database error creating conversation")
	}

	return conv, nil
}

func (r *gormConversationRepository) FindByID(ctx context.Context, id string) (*domain.Conversation, error) {
	if id == "" {
		return nil, errors.New("invalid conversation ID")
	}

	var conv domain.Conversation
	err := r.db.WithContext(ctx).First(&conv, "id = ?", id).Error
	return r.handleFindError(err, &conv, "FindByID")
}

// FindByUserID returns every conversation the user owns, most recently
// updated first.
func (r *gormConversationRepository) FindByUserID(ctx context.Context, userID string) ([]domain.Conversation, error) {
	if userID == "" {
		return nil, errors.New("invalid user ID")
	}

	var convs []domain.Conversation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC, id DESC").
		Find(&convs).Error
	if err != nil {
		log.Printf("[ConversationRepository] Database error finding conversations for user %s: %v", userID, err)
		return nil, errors.New("database error fetching conversations")
	}

	return convs, nil
}

// Delete removes the conversation and all of its messages. Ownership is part
// of the predicate, so deleting someone else's conversation affects no rows.
func (r *gormConversationRepository) Delete(ctx context.Context, id, userID string) error {
	if id == "" || userID == "" {
		return errors.New("invalid conversation ID or user ID")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Conversation{})
		if result.Error != nil {
			log.Printf("[ConversationRepository] Database error deleting conversation %s for user %s: %v", id, userID, result.Error)
			return errors.New("database error deleting conversation")
		}
		if result.RowsAffected == 0 {
			return ErrUnauthorizedAccess
		}

		if err := tx.Where("conversation_id = ?", id).Delete(&domain.Message{}).Error; err != nil {
			log.Printf("[ConversationRepository] Database error deleting messages for conversation %s: %v", id, err)
			return errors.New("database error deleting conversation messages")
		}
		return nil
	})
}

func (r *gormConversationRepository) TouchUpdatedAt(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("invalid conversation ID")
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Conversation{}).
		Where("id = ?", id).
		Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP"))
	if result.Error != nil {
		log.Printf("[ConversationRepository] Database error updating timestamp for conversation %s: %v", id, result.Error)
		return errors.New("database error updating conversation timestamp")
	}
	if result.RowsAffected == 0 {
		return ErrConversationNotFound
	}

	return nil
}

func (r *gormConversationRepository) validateInput(conv *domain.Conversation) error {
	if conv == nil {
		return errors.New("conversation cannot be nil")
	}
	if conv.UserID == "" {
		return errors.New("user ID is required")
	}
	if len(conv.Title) > maxTitleLength {
		return errors.New("title must be 200 characters or less")
	}
	if strings.Contains(conv.Title, "<script") || strings.Contains(conv.Title, "javascript:") {
		return errors.New("invalid characters detected in title")
	}
	return nil
}

func (r *gormConversationRepository) handleFindError(err error, conv *domain.Conversation, operation string) (*domain.Conversation, error) {
	if err == nil {
		return conv, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConversationNotFound
	}
	log.Printf("[ConversationRepository] %s database error: %v", operation, err)
	return nil, errors.New("database query failed")
}
