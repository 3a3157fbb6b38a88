package validator

// Request DTOs shared by handlers and services. The validate tags are the
// first validation layer; business rules (duplicate application, ownership,
// status transitions) live in the services.

type RegisterRequest struct {
	Email      string  `json:"email" form:"email" validate:"required,email"`
	Password   string  `json:"password" form:"password" validate:"required,min=6,max=72"`
	FullName   string  `json:"full_name" form:"full_name" validate:"required,max=255"`
	Role       string  `json:"role" form:"role" validate:"required,oneof=student admin mentor"`
	Phone      *string `json:"phone" form:"phone" validate:"omitempty,max=20"`
	Department *string `json:"department" form:"department" validate:"omitempty,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type InternshipCreateRequest struct {
	Title        string  `json:"title" form:"title" validate:"required,max=255"`
	Description  *string `json:"description" form:"description" validate:"omitempty,max=5000"`
	Company      string  `json:"company" form:"company" validate:"required,max=255"`
	Location     *string `json:"location" form:"location" validate:"omitempty,max=255"`
	Duration     *string `json:"duration" form:"duration" validate:"omitempty,max=100"`
	Stipend      *string `json:"stipend" form:"stipend" validate:"omitempty,max=100"`
	Requirements *string `json:"requirements" form:"requirements" validate:"omitempty,max=5000"`
	Deadline     *string `json:"deadline" form:"deadline"`
}

type ApplicationCreateRequest struct {
	InternshipID uint    `json:"internship_id" form:"internship_id" validate:"required"`
	CoverLetter  *string `json:"cover_letter" form:"cover_letter" validate:"omitempty,max=5000"`
	ResumeURL    *string `json:"resume_url" form:"resume_url" validate:"omitempty,max=500"`
}

type ApplicationStatusRequest struct {
	Status string `json:"status" form:"status" validate:"required,oneof=approved rejected"`
}

type TaskCreateRequest struct {
	Title        string  `json:"title" form:"title" validate:"required,max=255"`
	Description  *string `json:"description" form:"description" validate:"omitempty,max=5000"`
	InternshipID uint    `json:"internship_id" form:"internship_id" validate:"required"`
	StudentID    uint    `json:"student_id" form:"student_id" validate:"required"`
	DueDate      *string `json:"due_date" form:"due_date"`
}

type TaskProgressRequest struct {
	Progress int `json:"progress" form:"progress"`
}

type FeedbackCreateRequest struct {
	StudentID    uint    `json:"student_id" form:"student_id" validate:"required"`
	InternshipID uint    `json:"internship_id" form:"internship_id" validate:"required"`
	Rating       int     `json:"rating" form:"rating" validate:"required,min=1,max=5"`
	Comments     *string `json:"comments" form:"comments" validate:"omitempty,max=5000"`
}
