package services

import (
	"context"

	pgrepo "github.com/barman-ayush/imitate.ai/internal/repositories/postgres"

	"github.com/barman-ayush/imitate.ai/internal/models"
	"github.com/barman-ayush/imitate.ai/internal/utils"
)

type MessageService interface {
	// ListByCompanion returns the caller's dialogue with a companion,
	// oldest first, bounded by limit.
	ListByCompanion(ctx context.Context, userID, companionID string, limit int) ([]models.Message, error)
}

type messageService struct {
	messages pgrepo.MessageRepository
}

func NewMessageService(messages pgrepo.MessageRepository) MessageService {
	return &messageService{messages: messages}
}

func (s *messageService) ListByCompanion(ctx context.Context, userID, companionID string, limit int) ([]models.Message, error) {
	const op = "MessageService.ListByCompanion"

	if userID == "" || companionID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and companion_id are required", nil)
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	rows, err := s.messages.ListByCompanion(ctx, companionID, userID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list messages", err)
	}
	return rows, nil
}
