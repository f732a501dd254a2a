package models

import (
	"time"
)

type Task struct {
	ID             uint64     `gorm:"primarykey" json:"id"`
	Name           string     `gorm:"type:varchar(255);not null" json:"name"`
	OrderID        uint64     `gorm:"not null" json:"order_id"`
	WorkstationID  uint64     `gorm:"not null" json:"workstation_id"`
	OperatorID     *uint64    `json:"operator_id"`
	Status         Status     `gorm:"type:varchar(20);not null;default:'ReadyToStart'" json:"status"`
	StartTime      *time.Time `json:"start_time"`
	EndTime        *time.Time `json:"end_time"`
	RejectReasonID *uint64    `json:"reject_reason_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relations
	Order        *Order        `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	Workstation  *Workstation  `gorm:"foreignKey:WorkstationID" json:"workstation,omitempty"`
	Operator     *User         `gorm:"foreignKey:OperatorID" json:"operator,omitempty"`
	RejectReason *RejectReason `gorm:"foreignKey:RejectReasonID;constraint:OnDelete:SET NULL" json:"reject_reason,omitempty"`
}
