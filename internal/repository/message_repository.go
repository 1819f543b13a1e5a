package repository

import (
	"context"

	"gorm.io/gorm"

	"mealbridge/internal/model"
)

// MessageRepository defines contact message persistence operations.
type MessageRepository interface {
	Create(ctx context.Context, message *model.ContactMessage) error
	List(ctx context.Context) ([]model.ContactMessage, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new contact message repository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *model.ContactMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) List(ctx context.Context) ([]model.ContactMessage, error) {
	var messages []model.ContactMessage
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
