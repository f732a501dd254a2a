package models

import (
	"time"
)

type Order struct {
	ID        uint64     `gorm:"primarykey" json:"id"`
	Name      string     `gorm:"type:varchar(255);not null" json:"name"`
	Status    Status     `gorm:"type:varchar(20);not null;default:'ReadyToStart'" json:"status"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Relations
	Tasks []Task      `gorm:"foreignKey:OrderID" json:"tasks,omitempty"`
	Files []OrderFile `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"files,omitempty"`
}
