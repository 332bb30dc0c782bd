package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/barman-ayush/imitate.ai/internal/models"
)

type MessageRepository interface {
	Insert(ctx context.Context, m *models.Message) error
	// LatestN returns the newest n messages for the pair, newest first.
	LatestN(ctx context.Context, companionID, userID string, n int) ([]models.Message, error)
	// ListByCompanion returns a bounded window in chronological order.
	ListByCompanion(ctx context.Context, companionID, userID string, limit int) ([]models.Message, error)
}

type messageRepo struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) Insert(ctx context.Context, m *models.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *messageRepo) LatestN(ctx context.Context, companionID, userID string, n int) ([]models.Message, error) {
	if n <= 0 {
		n = 30
	}
	var rows []models.Message
	err := r.db.WithContext(ctx).
		Where("companion_id = ? AND user_id = ?", companionID, userID).
		Order("created_at DESC").
		Limit(n).
		Find(&rows).Error
	return rows, err
}

func (r *messageRepo) ListByCompanion(ctx context.Context, companionID, userID string, limit int) ([]models.Message, error) {
	rows, err := r.LatestN(ctx, companionID, userID, limit)
	if err != nil {
		return nil, err
	}
	// LatestN returns DESC; callers want ASC.
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}
