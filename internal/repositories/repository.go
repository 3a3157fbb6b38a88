package repositories

import (
	"context"

	"github.com/internlink/internship-service/internal/models"
)

// Repository aggregates all entity repositories. Services only mutate state
// through it, and multi-entity mutations go through WithTransaction so that
// every write in the closure commits or rolls back as one unit.
type Repository interface {
	Users() UserRepository
	Internships() InternshipRepository
	Applications() ApplicationRepository
	Tasks() TaskRepository
	Feedback() FeedbackRepository
	Notifications() NotificationRepository

	// WithTransaction runs fn against a Repository whose sub-repositories are
	// bound to a single database transaction. A non-nil error from fn rolls
	// everything back.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	CountByRole(ctx context.Context, role *models.UserRole) (int64, error)
}

type InternshipRepository interface {
	Create(ctx context.Context, internship *models.Internship) error
	GetByID(ctx context.Context, id uint) (*models.Internship, error)
	List(ctx context.Context, filters InternshipFilters) ([]*models.Internship, int64, error)
	GetByCreator(ctx context.Context, creatorID uint) ([]*models.Internship, error)
	Update(ctx context.Context, internship *models.Internship) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type ApplicationRepository interface {
	Create(ctx context.Context, application *models.Application) error
	GetByID(ctx context.Context, id uint) (*models.Application, error)
	GetByStudentAndInternship(ctx context.Context, studentID, internshipID uint) (*models.Application, error)
	GetByStudent(ctx context.Context, studentID uint) ([]*models.Application, error)
	GetByInternship(ctx context.Context, internshipID uint) ([]*models.Application, error)
	// GetForMentor returns applications to internships created by mentorID.
	GetForMentor(ctx context.Context, mentorID uint) ([]*models.Application, error)
	Update(ctx context.Context, application *models.Application) error
	Delete(ctx context.Context, id uint) error
	DeleteByStudent(ctx context.Context, studentID uint) error
	DeleteByInternship(ctx context.Context, internshipID uint) error
	Count(ctx context.Context) (int64, error)
	CountForMentor(ctx context.Context, mentorID uint, status *models.ApplicationStatus) (int64, error)
}

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uint) (*models.Task, error)
	GetByStudent(ctx context.Context, studentID uint) ([]*models.Task, error)
	GetByInternship(ctx context.Context, internshipID uint) ([]*models.Task, error)
	// GetDueBetween returns tasks with a due date inside [from, to] whose
	// status is one of the given ones, with the student relation loaded.
	GetDueBetween(ctx context.Context, filters DueTaskFilters) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id uint) error
	DeleteByStudent(ctx context.Context, studentID uint) error
	DeleteByAssigner(ctx context.Context, assignerID uint) error
	DeleteByInternship(ctx context.Context, internshipID uint) error
	Count(ctx context.Context) (int64, error)
}

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	GetByID(ctx context.Context, id uint) (*models.Feedback, error)
	GetByStudent(ctx context.Context, studentID uint) ([]*models.Feedback, error)
	GetByMentor(ctx context.Context, mentorID uint) ([]*models.Feedback, error)
	GetByInternship(ctx context.Context, internshipID uint) ([]*models.Feedback, error)
	Update(ctx context.Context, feedback *models.Feedback) error
	// DeleteByParticipant removes all feedback where userID is the student
	// or the mentor.
	DeleteByParticipant(ctx context.Context, userID uint) error
	DeleteByInternship(ctx context.Context, internshipID uint) error
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByUser(ctx context.Context, userID uint, unreadOnly bool) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id, userID uint) error
	DeleteByUser(ctx context.Context, userID uint) error
}
