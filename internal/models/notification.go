package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	NotificationInvite            = "invite"
	NotificationApplicationStatus = "application_status"
	NotificationTaskDone          = "task_done"
)

type Notification struct {
	gorm.Model

	UserID  uint           `gorm:"not null;index"`
	Type    string         `gorm:"not null"` // invite, application_status, task_done
	Payload datatypes.JSON `gorm:"type:jsonb"`
	IsRead  bool           `gorm:"default:false"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
