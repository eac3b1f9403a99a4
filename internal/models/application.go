package models

import "gorm.io/gorm"

const (
	TargetProject   = "project"
	TargetHackathon = "hackathon"

	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

// Application is a user's request to join a project or hackathon. The target
// is identified by (Type, TargetID); status moves pending -> approved|rejected
// exactly once and is never reversed. The partial unique index keeps at most
// one pending row per (Type, TargetID, ApplicantID) under concurrent submits.
type Application struct {
	gorm.Model

	Type        string `gorm:"not null;index:idx_app_target;uniqueIndex:uq_application_pending,where:status = 'pending'"` // project | hackathon
	TargetID    uint   `gorm:"not null;index:idx_app_target;uniqueIndex:uq_application_pending,where:status = 'pending'"`
	ApplicantID uint   `gorm:"not null;index;uniqueIndex:uq_application_pending,where:status = 'pending'"`
	Message     string
	Status      string `gorm:"not null;default:'pending'"` // pending, approved, rejected

	// Relationships
	Applicant User `gorm:"foreignKey:ApplicantID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func ValidTargetType(t string) bool {
	return t == TargetProject || t == TargetHackathon
}
