package models

import "gorm.io/gorm"

const (
	MembershipInvited = "invited"
	MembershipActive  = "active"
)

type Membership struct {
	gorm.Model

	ProjectID  uint   `gorm:"not null;uniqueIndex:idx_project_member"`
	UserID     uint   `gorm:"not null;uniqueIndex:idx_project_member"`
	RoleInTeam string `gorm:"not null"`
	Status     string `gorm:"not null;default:'active'"` // invited | active
	InvitedBy  *uint

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
