package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	ProjectStatusRecruiting = "recruiting"
	ProjectStatusActive     = "active"
	ProjectStatusCompleted  = "completed"
)

type Project struct {
	gorm.Model

	Title           string         `gorm:"size:80;not null"`
	Description     string         `gorm:"not null"`
	CreatedBy       uint           `gorm:"not null;index"`
	Status          string         `gorm:"not null;default:'recruiting'"` // recruiting, active, completed
	TechStack       pq.StringArray `gorm:"type:text[]"`
	ProgressPercent float64        `gorm:"default:0"`
	Prize           string
	Deadline        *time.Time
	MaxParticipants *int
	HackathonID     *uint

	// Relationships
	Owner            User              `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Hackathon        *Hackathon        `gorm:"foreignKey:HackathonID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Memberships      []Membership      `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Tasks            []Task            `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	RoleRequirements []RoleRequirement `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func ValidProjectStatus(status string) bool {
	switch status {
	case ProjectStatusRecruiting, ProjectStatusActive, ProjectStatusCompleted:
		return true
	}
	return false
}
