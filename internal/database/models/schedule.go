package models

import (
	"time"
)

// DefaultMaxTeams is the lobby size used when a schedule does not set one
const DefaultMaxTeams = 16

// Schedule is a scrim event published by an admin
type Schedule struct {
	BaseModel
	Title       string         `json:"title" gorm:"size:200;not null"`
	Description *string        `json:"description" gorm:"type:text"`
	Date        time.Time      `json:"date" gorm:"not null"`
	MaxTeams    int            `json:"maxTeams" gorm:"not null;default:16"`
	Status      ScheduleStatus `json:"status" gorm:"type:varchar(20);not null;default:'upcoming'"`
}

// TableName returns the table name for Schedule
func (Schedule) TableName() string {
	return "schedules"
}
