package models

import (
	"time"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Application is a student's application to one internship. The
// (student_id, internship_id) pair is unique; the index backs the
// duplicate check done at creation time.
type Application struct {
	ID           uint              `json:"id" gorm:"primaryKey"`
	StudentID    uint              `json:"student_id" gorm:"not null;uniqueIndex:idx_student_internship"`
	InternshipID uint              `json:"internship_id" gorm:"not null;uniqueIndex:idx_student_internship"`
	Status       ApplicationStatus `json:"status" gorm:"not null;size:50;default:pending;index" validate:"omitempty,oneof=pending approved rejected"`
	CoverLetter  *string           `json:"cover_letter" gorm:"type:text" validate:"omitempty,max=5000"`
	ResumeURL    *string           `json:"resume_url" gorm:"size:500"`
	AppliedAt    time.Time         `json:"applied_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time         `json:"updated_at"`

	// Relations
	Student    *User       `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Internship *Internship `json:"internship,omitempty" gorm:"foreignKey:InternshipID"`
}

func (Application) TableName() string {
	return "internship_applications"
}
