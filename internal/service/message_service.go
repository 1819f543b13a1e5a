package service

import (
	"context"
	"fmt"

	"mealbridge/internal/errors"
	"mealbridge/internal/model"
	"mealbridge/internal/repository"
)

// MessageService handles the public contact form.
type MessageService interface {
	Submit(ctx context.Context, name, email, message string) (*model.ContactMessage, error)
	List(ctx context.Context) ([]model.ContactMessage, error)
}

type messageService struct {
	repo repository.MessageRepository
}

// NewMessageService creates a new contact message service.
func NewMessageService(repo repository.MessageRepository) MessageService {
	return &messageService{repo: repo}
}

// Submit stores an unauthenticated contact message.
func (s *messageService) Submit(ctx context.Context, name, email, message string) (*model.ContactMessage, error) {
	if name == "" || email == "" || message == "" {
		return nil, errors.ErrMissingFields
	}

	msg := &model.ContactMessage{Name: name, Email: email, Message: message}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return msg, nil
}

// List returns all contact messages, newest first. Admin use only.
func (s *messageService) List(ctx context.Context) ([]model.ContactMessage, error) {
	return s.repo.List(ctx)
}
