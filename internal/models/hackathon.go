package models

import (
	"time"

	"gorm.io/gorm"
)

type Hackathon struct {
	gorm.Model

	Title           string    `gorm:"not null"`
	Description     string
	StartAt         time.Time `gorm:"not null"`
	EndAt           time.Time `gorm:"not null"`
	Prize           string
	MaxParticipants *int
	CreatedBy       uint `gorm:"not null;index"`

	// Relationships
	Owner        User                   `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Participants []HackathonParticipant `gorm:"foreignKey:HackathonID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
