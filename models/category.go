package models

import (
	"time"
)

// Category forms a forest via ParentID. A nil ParentID marks a root node.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	ParentID  *uint     `json:"parent_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Children []Category `json:"children,omitempty" gorm:"foreignKey:ParentID"`
}
