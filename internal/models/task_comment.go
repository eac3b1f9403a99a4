package models

import "gorm.io/gorm"

type TaskComment struct {
	gorm.Model

	TaskID   uint   `gorm:"not null;index"`
	AuthorID uint   `gorm:"not null"`
	Body     string `gorm:"not null"`

	// Relationships
	Task   Task `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Author User `gorm:"foreignKey:AuthorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
