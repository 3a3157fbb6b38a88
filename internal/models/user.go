package models

import (
	"time"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleAdmin   UserRole = "admin"
	RoleMentor  UserRole = "mentor"
)

// ValidRole reports whether r is one of the roles the system knows about.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleStudent, RoleAdmin, RoleMentor:
		return true
	}
	return false
}

// DefaultProfilePicture is the placeholder avatar; it is never removed from storage.
const DefaultProfilePicture = "default_avatar.png"

type User struct {
	ID             uint     `json:"id" gorm:"primaryKey"`
	Email          string   `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`
	HashedPassword string   `json:"-" gorm:"not null;size:255"`
	FullName       string   `json:"full_name" gorm:"not null;size:255" validate:"required,max=255"`
	Role           UserRole `json:"role" gorm:"not null;size:50;index" validate:"required,oneof=student admin mentor"`

	// Profile info
	Phone          *string `json:"phone" gorm:"size:20"`
	Department     *string `json:"department" gorm:"size:255"`
	ProfilePicture string  `json:"profile_picture" gorm:"size:500;default:default_avatar.png"`

	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// HasCustomPicture reports whether the user has uploaded their own avatar.
func (u *User) HasCustomPicture() bool {
	return u.ProfilePicture != "" && u.ProfilePicture != DefaultProfilePicture
}

// CanOwnInternships reports whether the user's role allows creating internships.
func (u *User) CanOwnInternships() bool {
	return u.Role == RoleMentor || u.Role == RoleAdmin
}
