package models

// ===== UPDATE STRUCTS =====
//
// Updates are explicit allow-lists: only the fields declared here can be
// changed through the corresponding operation. Immutable fields (id,
// created_at) are not representable at all.

// ProfileUpdate is what a user may change about themselves.
type ProfileUpdate struct {
	FullName       *string `json:"full_name" validate:"omitempty,min=1,max=255"`
	Phone          *string `json:"phone" validate:"omitempty,max=20"`
	Department     *string `json:"department" validate:"omitempty,max=255"`
	ProfilePicture *string `json:"profile_picture" validate:"omitempty,max=500"`
}

// AdminUserUpdate is what an admin may change about any user.
type AdminUserUpdate struct {
	Email      *string   `json:"email" validate:"omitempty,email"`
	FullName   *string   `json:"full_name" validate:"omitempty,min=1,max=255"`
	Role       *UserRole `json:"role" validate:"omitempty,oneof=student admin mentor"`
	Phone      *string   `json:"phone" validate:"omitempty,max=20"`
	Department *string   `json:"department" validate:"omitempty,max=255"`
	IsActive   *bool     `json:"is_active"`
}

// InternshipUpdate is what the owning mentor or an admin may change.
type InternshipUpdate struct {
	Title        *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description  *string `json:"description" validate:"omitempty,max=5000"`
	Company      *string `json:"company" validate:"omitempty,min=1,max=255"`
	Location     *string `json:"location" validate:"omitempty,max=255"`
	Duration     *string `json:"duration" validate:"omitempty,max=100"`
	Stipend      *string `json:"stipend" validate:"omitempty,max=100"`
	Requirements *string `json:"requirements" validate:"omitempty,max=5000"`
	Deadline     *string `json:"deadline"`
	IsActive     *bool   `json:"is_active"`
}

// FeedbackUpdate is what the authoring mentor may change.
type FeedbackUpdate struct {
	Rating   *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comments *string `json:"comments" validate:"omitempty,max=5000"`
}

// ===== STATS =====

type SystemStats struct {
	TotalUsers        int64 `json:"total_users"`
	TotalStudents     int64 `json:"total_students"`
	TotalAdmins       int64 `json:"total_admins"`
	TotalMentors      int64 `json:"total_mentors"`
	TotalInternships  int64 `json:"total_internships"`
	TotalApplications int64 `json:"total_applications"`
	TotalTasks        int64 `json:"total_tasks"`
}

type MentorStats struct {
	TotalInternships    int64 `json:"total_internships"`
	TotalApplications   int64 `json:"total_applications"`
	PendingApplications int64 `json:"pending_applications"`
}
