package models

import "gorm.io/gorm"

// HackathonParticipant is created when a hackathon application is approved.
// Append-only, no further lifecycle.
type HackathonParticipant struct {
	gorm.Model

	HackathonID uint `gorm:"not null;uniqueIndex:idx_hackathon_user"`
	UserID      uint `gorm:"not null;uniqueIndex:idx_hackathon_user"`

	// Relationships
	Hackathon Hackathon `gorm:"foreignKey:HackathonID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
