package models

import (
	"time"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

type Task struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Title        string     `json:"title" gorm:"not null;size:255" validate:"required,max=255"`
	Description  *string    `json:"description" gorm:"type:text" validate:"omitempty,max=5000"`
	InternshipID uint       `json:"internship_id" gorm:"not null;index"`
	StudentID    uint       `json:"student_id" gorm:"not null;index"`
	AssignedBy   uint       `json:"assigned_by" gorm:"not null;index"`
	DueDate      *time.Time `json:"due_date" gorm:"index"`
	Status       TaskStatus `json:"status" gorm:"not null;size:50;default:pending;index" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Progress     int        `json:"progress" gorm:"not null;default:0" validate:"min=0,max=100"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	Internship *Internship `json:"internship,omitempty" gorm:"foreignKey:InternshipID"`
	Student    *User       `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Assigner   *User       `json:"assigner,omitempty" gorm:"foreignKey:AssignedBy"`
}

func (Task) TableName() string {
	return "tasks"
}
