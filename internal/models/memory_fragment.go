package models

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// MemoryFragment is an embedded text chunk in a companion's long-term
// memory. Fragments are written once at ingestion and read many times
// via similarity search.
type MemoryFragment struct {
	ID          string          `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CompanionID string          `gorm:"column:companion_id;type:uuid;index" json:"companion_id"`
	Content     string          `gorm:"column:content;type:text" json:"content"`
	Embedding   pgvector.Vector `gorm:"column:embedding;type:vector(1536)" json:"-"`
	Metadata    datatypes.JSON  `gorm:"column:metadata;type:jsonb" json:"metadata"`
	CreatedAt   time.Time       `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (MemoryFragment) TableName() string { return "memory_fragments" }
