package models

import (
	"time"
)

// DefaultPerformancePoints is awarded for every completed task.
const DefaultPerformancePoints = 1

// Performance records points earned by an operator. UserID is nil when the
// completed task had no operator assigned.
type Performance struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    *uint64   `json:"user_id"`
	TaskID    uint64    `gorm:"not null" json:"task_id"`
	Points    int       `gorm:"not null" json:"points"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"-"`
	Task *Task `gorm:"foreignKey:TaskID" json:"-"`
}

func (Performance) TableName() string {
	return "performance"
}
