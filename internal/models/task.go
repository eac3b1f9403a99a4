package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

type Task struct {
	gorm.Model

	ProjectID   uint   `gorm:"not null;index"`
	Title       string `gorm:"size:120;not null"`
	Description string
	Status      string `gorm:"not null;default:'todo'"` // todo, in_progress, done
	AssigneeID  *uint
	DueDate     *time.Time

	// Relationships
	Project  Project       `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Assignee *User         `gorm:"foreignKey:AssigneeID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Comments []TaskComment `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func ValidTaskStatus(status string) bool {
	switch status {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}
