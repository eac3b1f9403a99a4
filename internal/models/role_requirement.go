package models

import "gorm.io/gorm"

// RoleRequirement describes an open role slot on a project.
type RoleRequirement struct {
	gorm.Model

	ProjectID uint   `gorm:"not null;uniqueIndex:idx_project_role"`
	RoleName  string `gorm:"size:64;not null;uniqueIndex:idx_project_role"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
