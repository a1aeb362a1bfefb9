package models

import (
	"time"
)

// Team is a four-player roster registered by its captain
type Team struct {
	BaseModel
	Name           string     `json:"name" gorm:"size:30;not null"`
	Tag            string     `json:"tag" gorm:"size:5;not null"`
	Logo           *string    `json:"logo" gorm:"size:500"`
	CaptainID      string     `json:"captainId" gorm:"size:255;not null;uniqueIndex:idx_teams_captain_id"`
	Player1        string     `json:"player1" gorm:"size:100;not null"`
	Player2        string     `json:"player2" gorm:"size:100;not null"`
	Player3        string     `json:"player3" gorm:"size:100;not null"`
	Player4        string     `json:"player4" gorm:"size:100;not null"`
	DiscordContact *string    `json:"discordContact" gorm:"size:100"`
	Status         TeamStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	IsVip          bool       `json:"isVip" gorm:"not null;default:false"`
	Slot           *int       `json:"slot"`
	UpdatedAt      time.Time  `json:"updatedAt"`

	// Relationships
	Captain *User `json:"-" gorm:"foreignKey:CaptainID;references:ID"`
}

// TableName returns the table name for Team
func (Team) TableName() string {
	return "teams"
}

// IsPublic reports whether the team may appear in public listings
func (t *Team) IsPublic() bool {
	return t.Status == TeamStatusApproved
}
