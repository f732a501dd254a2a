package models

import (
	"time"
)

type MaintenanceLog struct {
	ID            uint64    `gorm:"primarykey" json:"id"`
	WorkstationID uint64    `gorm:"not null" json:"workstation_id"`
	Type          string    `gorm:"type:varchar(100);not null" json:"type"`
	Description   string    `gorm:"type:text" json:"description"`
	CreatedAt     time.Time `json:"created_at"`

	// Relations
	Workstation *Workstation `gorm:"foreignKey:WorkstationID" json:"-"`
}
