package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	RoleStudent  = "student"
	RoleMentor   = "mentor"
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	gorm.Model

	Email        string         `gorm:"uniqueIndex;not null"`
	PasswordHash string         `gorm:"not null"`
	Name         string         `gorm:"not null"`
	Role         string         `gorm:"not null;default:'student'"` // student, mentor, customer, admin
	Skills       pq.StringArray `gorm:"type:text[]"`
	Bio          string
	AvatarURL    string

	// Relationships
	OwnedProjects   []Project      `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	OwnedHackathons []Hackathon    `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Memberships     []Membership   `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Applications    []Application  `gorm:"foreignKey:ApplicantID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Notifications   []Notification `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleMentor, RoleCustomer, RoleAdmin:
		return true
	}
	return false
}
