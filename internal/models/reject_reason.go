package models

import (
	"time"
)

// RejectReason is written every time an order or task is rejected.
// Rows outlive the entity they annotate.
type RejectReason struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
