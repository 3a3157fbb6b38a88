package models

import (
	"time"
)

type Internship struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title" gorm:"not null;size:255;index" validate:"required,max=255"`
	Description *string `json:"description" gorm:"type:text" validate:"omitempty,max=5000"`
	Company     string  `json:"company" gorm:"not null;size:255" validate:"required,max=255"`

	// Logistics
	Location     *string    `json:"location" gorm:"size:255"`
	Duration     *string    `json:"duration" gorm:"size:100"`
	Stipend      *string    `json:"stipend" gorm:"size:100"`
	Requirements *string    `json:"requirements" gorm:"type:text"`
	Deadline     *time.Time `json:"deadline"`

	CreatedBy uint      `json:"created_by" gorm:"not null;index"`
	IsActive  bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Creator      *User         `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	Applications []Application `json:"applications,omitempty" gorm:"foreignKey:InternshipID"`
	Tasks        []Task        `json:"tasks,omitempty" gorm:"foreignKey:InternshipID"`
}

func (Internship) TableName() string {
	return "internships"
}
