package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/barman-ayush/imitate.ai/internal/models"
	"github.com/barman-ayush/imitate.ai/internal/utils"
)

type CompanionRepository interface {
	Insert(ctx context.Context, c *models.Companion) error
	GetByID(ctx context.Context, id string) (*models.Companion, error)
	List(ctx context.Context, limit int) ([]models.Companion, error)
	Update(ctx context.Context, c *models.Companion) error
	Delete(ctx context.Context, id string) error
}

type companionRepo struct {
	db *gorm.DB
}

func NewCompanionRepo(db *gorm.DB) CompanionRepository {
	return &companionRepo{db: db}
}

func (r *companionRepo) Insert(ctx context.Context, c *models.Companion) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *companionRepo) GetByID(ctx context.Context, id string) (*models.Companion, error) {
	var c models.Companion
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &c, err
}

func (r *companionRepo) List(ctx context.Context, limit int) ([]models.Companion, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []models.Companion
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *companionRepo) Update(ctx context.Context, c *models.Companion) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *companionRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Companion{}).Error
}
