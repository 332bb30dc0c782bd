package models

import (
	"time"

	"github.com/lib/pq"
)

// Companion is a persona: behavioral instructions plus a seed transcript
// used to bootstrap its chat history for a new user.
type Companion struct {
	ID           string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID       string         `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	UserName     string         `gorm:"column:user_name;type:text" json:"user_name"`
	Name         string         `gorm:"column:name;type:text;index" json:"name"`
	Description  string         `gorm:"column:description;type:text" json:"description"`
	Instructions string         `gorm:"column:instructions;type:text" json:"instructions"`
	Seed         string         `gorm:"column:seed;type:text" json:"seed"`
	Src          string         `gorm:"column:src;type:text" json:"src"`
	Tags         pq.StringArray `gorm:"column:tags;type:text[]" json:"tags"`
	CreatedAt    time.Time      `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`

	Messages []Message `gorm:"foreignKey:CompanionID" json:"-"`
}

func (Companion) TableName() string { return "companions" }
