package models

import "time"

const (
	RoleUser   = "user"
	RoleSystem = "system"
)

type Message struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CompanionID string    `gorm:"column:companion_id;type:uuid;index" json:"companion_id"`
	UserID      string    `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	Role        string    `gorm:"column:role;type:text" json:"role"` // "user" | "system"
	Content     string    `gorm:"column:content;type:text" json:"content"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamptz;index" json:"created_at"`
}

func (Message) TableName() string { return "messages" }
