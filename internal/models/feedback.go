package models

import (
	"time"
)

// Feedback is a mentor's rating of a student for one internship. It has an
// independent lifecycle and is cascade-deleted with either participant.
type Feedback struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	StudentID    uint      `json:"student_id" gorm:"not null;index"`
	MentorID     uint      `json:"mentor_id" gorm:"not null;index"`
	InternshipID uint      `json:"internship_id" gorm:"not null;index"`
	Rating       int       `json:"rating" gorm:"not null" validate:"required,min=1,max=5"`
	Comments     *string   `json:"comments" gorm:"type:text" validate:"omitempty,max=5000"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Student    *User       `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Mentor     *User       `json:"mentor,omitempty" gorm:"foreignKey:MentorID"`
	Internship *Internship `json:"internship,omitempty" gorm:"foreignKey:InternshipID"`
}

func (Feedback) TableName() string {
	return "feedback"
}
