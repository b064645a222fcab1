package models

import (
	"time"
)

type Brand struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	PrivateLabel bool      `json:"private_label" gorm:"default:false"`
	SupplierID   *uint     `json:"supplier_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
