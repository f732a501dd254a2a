package models

import (
	"time"
)

// OrderFile points at a blob in the configured storage backend.
// Filepath holds the storage key, not a filesystem path.
type OrderFile struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	OrderID   uint64    `gorm:"not null" json:"order_id"`
	Filename  string    `gorm:"type:varchar(255);not null" json:"filename"`
	Filepath  string    `gorm:"type:varchar(512);not null" json:"filepath"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
