package models

import (
	"time"

	"github.com/google/uuid"
)

// Result is a published match result, optionally tied to a schedule
type Result struct {
	BaseModel
	ScheduleID  *uuid.UUID `json:"scheduleId" gorm:"type:uuid;index"`
	Title       string     `json:"title" gorm:"size:200;not null"`
	Description *string    `json:"description" gorm:"type:text"`
	ImageURL    *string    `json:"imageUrl" gorm:"size:1000"`
	Date        time.Time  `json:"date" gorm:"not null"`

	// Relationships
	Schedule *Schedule `json:"-" gorm:"foreignKey:ScheduleID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for Result
func (Result) TableName() string {
	return "results"
}
