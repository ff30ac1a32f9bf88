package message

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/pawconnect/assistant/internal/domain"
)

var ErrMessageNotFound = errors.New("message not found")

const maxContentLength = 10000

type gormMessageRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormMessageRepository{db: db}
}

func (r *gormMessageRepository) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	if err := r.validateInput(msg); err != nil {
		log.Printf("[MessageRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		log.Printf("[MessageRepository] Database error creating message for conversation %s: %v", msg.ConversationID, err)
		return nil, errors.New("database error creating message")
	}

	return msg, nil
}

// FindByConversationID returns the full transcript in creation order. The
// caller never reorders; display order is exactly this order.
func (r *gormMessageRepository) FindByConversationID(ctx context.Context, conversationID string) ([]domain.Message, error) {
	if conversationID == "" {
		return nil, errors.New("invalid conversation ID")
	}

	var msgs []domain.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at asc").
		Find(&msgs).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error finding messages for conversation %s: %v", conversationID, err)
		return nil, errors.New("database error fetching messages")
	}

	return msgs, nil
}

func (r *gormMessageRepository) CountByConversationID(ctx context.Context, conversationID string) (int64, error) {
	if conversationID == "" {
		return 0, errors.New("invalid conversation ID")
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("conversation_id = ?", conversationID).
		Count(&count).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error counting messages for conversation %s: %v", conversationID, err)
		return 0, errors.New("database error counting messages")
	}

	return count, nil
}

func (r *gormMessageRepository) DeleteByConversationID(ctx context.Context, conversationID string) error {
	if conversationID == "" {
		return errors.New("invalid conversation ID")
	}

	result := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Delete(&domain.Message{})
	if result.Error != nil {
		log.Printf("[MessageRepository] Database error deleting messages for conversation %s: %v", conversationID, result.Error)
		return errors.New("database error deleting messages by conversation ID")
	}

	return nil
}

func (r *gormMessageRepository) validateInput(msg *domain.Message) error {
	if msg == nil {
		return errors.New("message cannot be nil")
	}
	if msg.ConversationID == "" {
		return errors.New("conversation ID is required")
	}
	if strings.TrimSpace(msg.Content) == "" {
		return errors.New("message content cannot be empty")
	}
	if len(msg.Content) > maxContentLength {
		return errors.New("message content too long (max 10000 characters)")
	}
	if msg.Role != domain.RoleUser && msg.Role != domain.RoleAssistant {
		return errors.New("invalid message role")
	}
	return nil
}
