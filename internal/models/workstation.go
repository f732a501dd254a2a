package models

import (
	"time"
)

type Workstation struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Tasks           []Task           `gorm:"foreignKey:WorkstationID" json:"-"`
	MaintenanceLogs []MaintenanceLog `gorm:"foreignKey:WorkstationID" json:"-"`
}
