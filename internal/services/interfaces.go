package services

import (
	"context"
	"io"
	"time"

	"github.com/internlink/internship-service/internal/models"
	"github.com/internlink/internship-service/internal/repositories"
	"github.com/internlink/internship-service/internal/validator"
)

// ===== REQUEST DTOs =====

// Use the request types from the validator package so tag-level rules live
// next to their structs.
type RegisterRequest = validator.RegisterRequest
type LoginRequest = validator.LoginRequest
type InternshipCreateRequest = validator.InternshipCreateRequest
type ApplicationCreateRequest = validator.ApplicationCreateRequest
type TaskCreateRequest = validator.TaskCreateRequest
type FeedbackCreateRequest = validator.FeedbackCreateRequest

// ===== SERVICE INTERFACES =====

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)
	// Login verifies credentials and returns a signed session token.
	Login(ctx context.Context, req *LoginRequest) (string, *models.User, error)
	// Resolve maps a raw credential to a user or a typed authentication error.
	Resolve(ctx context.Context, credential string) (*models.User, error)
	ResolveOptional(ctx context.Context, credential string) *models.User
	IssueToken(identity string, ttl time.Duration) (string, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID uint) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uint, update *models.ProfileUpdate) (*models.User, error)
	SetProfilePicture(ctx context.Context, userID uint, filename string, r io.Reader) (*models.User, error)
	RemoveProfilePicture(ctx context.Context, userID uint) error

	// Admin operations.
	List(ctx context.Context, actor *models.User, filters repositories.UserFilters) ([]*models.User, int64, error)
	Get(ctx context.Context, actor *models.User, id uint) (*models.User, error)
	AdminUpdate(ctx context.Context, actor *models.User, id uint, update *models.AdminUserUpdate) (*models.User, error)
	// Delete removes the user and every dependent row as one atomic unit.
	Delete(ctx context.Context, actor *models.User, targetID uint) error

	SystemStats(ctx context.Context, actor *models.User) (*models.SystemStats, error)
	MentorStats(ctx context.Context, mentorID uint) (*models.MentorStats, error)
}

type InternshipService interface {
	Create(ctx context.Context, actor *models.User, req *InternshipCreateRequest) (*models.Internship, error)
	GetByID(ctx context.Context, id uint) (*models.Internship, error)
	List(ctx context.Context, filters repositories.InternshipFilters) ([]*models.Internship, int64, error)
	ListByMentor(ctx context.Context, actor *models.User, mentorID uint) ([]*models.Internship, error)
	Update(ctx context.Context, actor *models.User, id uint, update *models.InternshipUpdate) (*models.Internship, error)
	// Delete removes the internship with its applications, tasks and
	// feedback as one atomic unit.
	Delete(ctx context.Context, actor *models.User, id uint) error
}

type ApplicationService interface {
	Create(ctx context.Context, student *models.User, req *ApplicationCreateRequest) (*models.Application, error)
	Withdraw(ctx context.Context, student *models.User, applicationID uint) error
	UpdateStatus(ctx context.Context, actor *models.User, applicationID uint, status models.ApplicationStatus) (*models.Application, error)
	ListByStudent(ctx context.Context, actor *models.User, studentID uint) ([]*models.Application, error)
	ListForMentor(ctx context.Context, mentor *models.User) ([]*models.Application, error)
	ListByInternship(ctx context.Context, actor *models.User, internshipID uint) ([]*models.Application, error)
}

type TaskService interface {
	Create(ctx context.Context, actor *models.User, req *TaskCreateRequest) (*models.Task, error)
	UpdateProgress(ctx context.Context, student *models.User, taskID uint, progress int) (*models.Task, error)
	// Cancel is the administrative out-of-band transition; a cancelled task
	// accepts no further progress updates.
	Cancel(ctx context.Context, actor *models.User, taskID uint) (*models.Task, error)
	ListByStudent(ctx context.Context, actor *models.User, studentID uint) ([]*models.Task, error)
	ListByInternship(ctx context.Context, actor *models.User, internshipID uint) ([]*models.Task, error)
}

type FeedbackService interface {
	Create(ctx context.Context, mentor *models.User, req *FeedbackCreateRequest) (*models.Feedback, error)
	Update(ctx context.Context, mentor *models.User, feedbackID uint, update *models.FeedbackUpdate) (*models.Feedback, error)
	ListByStudent(ctx context.Context, actor *models.User, studentID uint) ([]*models.Feedback, error)
	ListByMentor(ctx context.Context, mentor *models.User) ([]*models.Feedback, error)
	ListByInternship(ctx context.Context, actor *models.User, internshipID uint) ([]*models.Feedback, error)
}

type NotificationService interface {
	// The three emitters below are fire-and-forget: they enqueue delivery
	// and return immediately; failures are logged, never propagated.
	ApplicationSubmitted(ctx context.Context, application *models.Application, student *models.User, internship *models.Internship)
	ApplicationStatusChanged(ctx context.Context, application *models.Application, student *models.User, internship *models.Internship)
	TaskAssigned(ctx context.Context, task *models.Task, student *models.User)

	// DeadlineReminder is called synchronously by the scanner, which owns
	// its own error handling.
	DeadlineReminder(ctx context.Context, task *models.Task, daysLeft int) error

	ListForUser(ctx context.Context, userID uint, unreadOnly bool) ([]*models.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID uint) error
}

// ServiceManager wires every service to its dependencies and owns their
// lifecycle.
type ServiceManager interface {
	Auth() AuthService
	Users() UserService
	Internships() InternshipService
	Applications() ApplicationService
	Tasks() TaskService
	Feedback() FeedbackService
	Notifications() NotificationService
	DeadlineScanner() *DeadlineScanner

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
