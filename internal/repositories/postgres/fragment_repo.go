package postgres

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/barman-ayush/imitate.ai/internal/models"
)

type FragmentRepository interface {
	Insert(ctx context.Context, f *models.MemoryFragment) error
	// Search runs a cosine KNN lookup inside the companion's namespace
	// and drops hits below minSim.
	Search(ctx context.Context, companionID string, embedding []float32, k int, minSim float64) ([]models.MemoryFragment, error)
}

type fragmentRepo struct {
	db *gorm.DB
}

func NewFragmentRepo(db *gorm.DB) FragmentRepository {
	return &fragmentRepo{db: db}
}

func (r *fragmentRepo) Insert(ctx context.Context, f *models.MemoryFragment) error {
	return r.db.WithContext(ctx).Create(f).Error
}

type fragmentHit struct {
	models.MemoryFragment `gorm:"embedded"`
	Distance              float64 `gorm:"column:distance"`
}

func (r *fragmentRepo) Search(ctx context.Context, companionID string, embedding []float32, k int, minSim float64) ([]models.MemoryFragment, error) {
	if k <= 0 {
		k = 3
	}
	vec := pgvector.NewVector(embedding)

	var hits []fragmentHit
	err := r.db.WithContext(ctx).
		Model(&models.MemoryFragment{}).
		Select("*, embedding <=> ? AS distance", vec).
		Where("companion_id = ?", companionID).
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                "embedding <=> ?",
			Vars:               []interface{}{vec},
			WithoutParentheses: true,
		}}).
		Limit(k).
		Scan(&hits).Error
	if err != nil {
		return nil, err
	}

	out := make([]models.MemoryFragment, 0, len(hits))
	for _, h := range hits {
		// cosine distance -> similarity
		if 1-h.Distance < minSim {
			continue
		}
		out = append(out, h.MemoryFragment)
	}
	return out, nil
}
