package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/internlink/internship-service/internal/models"
	"github.com/internlink/internship-service/internal/repositories"
	"github.com/internlink/internship-service/internal/validator"
)

type applicationService struct {
	repo          repositories.Repository
	notifications NotificationService
	logger        *slog.Logger
	validator     *validator.Validator
}

func NewApplicationService(repo repositories.Repository, notifications NotificationService, logger *slog.Logger, v *validator.Validator) ApplicationService {
	return &applicationService{
		repo:          repo,
		notifications: notifications,
		logger:        logger,
		validator:     v,
	}
}

// Create submits an application. The existence check, the duplicate check
// and the insert run in one transaction so two concurrent submissions for
// the same (student, internship) pair cannot both land; the unique index is
// the backstop for whatever the pre-check misses.
func (s *applicationService) Create(ctx context.Context, student *models.User, req *ApplicationCreateRequest) (*models.Application, error) {
	if err := RequireRole(student, models.RoleStudent); err != nil {
		return nil, err
	}
	if errs := s.validator.Struct(req); errs != nil {
		return nil, errs
	}

	var internship *models.Internship
	application := &models.Application{
		StudentID:    student.ID,
		InternshipID: req.InternshipID,
		Status:       models.ApplicationPending,
		CoverLetter:  req.CoverLetter,
		ResumeURL:    req.ResumeURL,
	}

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		var err error
		internship, err = tx.Internships().GetByID(ctx, req.InternshipID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return NewNotFoundError("internship", req.InternshipID)
			}
			return err
		}
		if !internship.IsActive {
			return NewValidationError("internship_id", "internship is no longer accepting applications")
		}

		_, err = tx.Applications().GetByStudentAndInternship(ctx, student.ID, req.InternshipID)
		if err == nil {
			return ErrDuplicateApplication
		}
		if !repositories.IsNotFoundError(err) {
			return err
		}

		return tx.Applications().Create(ctx, application)
	})
	if err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateApplication
		}
		return nil, err
	}

	s.logger.Info("application submitted", "application_id", application.ID, "student_id", student.ID, "internship_id", req.InternshipID)
	s.notifications.ApplicationSubmitted(ctx, application, student, internship)
	return application, nil
}

func (s *applicationService) Withdraw(ctx context.Context, student *models.User, applicationID uint) error {
	if err := RequireRole(student, models.RoleStudent); err != nil {
		return err
	}

	application, err := s.getApplication(ctx, applicationID)
	if err != nil {
		return err
	}
	// Another student's application is indistinguishable from a missing one.
	if application.StudentID != student.ID {
		return NewNotFoundError("application", applicationID)
	}
	// A decided application is a closed record; withdrawing it would let the
	// student apply again around the decision.
	if application.Status.IsTerminal() {
		return NewInvalidTransitionError("application", string(application.Status), "withdrawn")
	}

	if err := s.repo.Applications().Delete(ctx, applicationID); err != nil {
		return fmt.Errorf("withdraw application: %w", err)
	}
	s.logger.Info("application withdrawn", "application_id", applicationID, "student_id", student.ID)
	return nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, actor *models.User, applicationID uint, status models.ApplicationStatus) (*models.Application, error) {
	if err := RequireRole(actor, models.RoleMentor, models.RoleAdmin); err != nil {
		return nil, err
	}

	application, err := s.getApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	internship, err := s.repo.Internships().GetByID(ctx, application.InternshipID)
	if err != nil {
		return nil, fmt.Errorf("get internship for application: %w", err)
	}
	// A mentor may only decide applications to their own postings. Hide the
	// rest rather than confirming they exist.
	if actor.Role != models.RoleAdmin && internship.CreatedBy != actor.ID {
		return nil, NewNotFoundError("application", applicationID)
	}

	if !application.Status.CanTransitionTo(status) {
		return nil, NewInvalidTransitionError("application", string(application.Status), string(status))
	}

	application.Status = status
	if err := s.repo.Applications().Update(ctx, application); err != nil {
		return nil, fmt.Errorf("update application status: %w", err)
	}

	s.logger.Info("application status changed",
		"application_id", applicationID, "status", status, "actor_id", actor.ID)

	student, err := s.repo.Users().GetByID(ctx, application.StudentID)
	if err != nil {
		s.logger.Warn("applicant lookup failed, notification skipped", "student_id", application.StudentID, "error", err)
		return application, nil
	}
	s.notifications.ApplicationStatusChanged(ctx, application, student, internship)
	return application, nil
}

func (s *applicationService) ListByStudent(ctx context.Context, actor *models.User, studentID uint) ([]*models.Application, error) {
	if err := RequireSelfOrRole(actor, studentID, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repo.Applications().GetByStudent(ctx, studentID)
}

func (s *applicationService) ListForMentor(ctx context.Context, mentor *models.User) ([]*models.Application, error) {
	if err := RequireRole(mentor, models.RoleMentor, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repo.Applications().GetForMentor(ctx, mentor.ID)
}

func (s *applicationService) ListByInternship(ctx context.Context, actor *models.User, internshipID uint) ([]*models.Application, error) {
	if err := RequireRole(actor, models.RoleMentor, models.RoleAdmin); err != nil {
		return nil, err
	}
	internship, err := s.repo.Internships().GetByID(ctx, internshipID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("internship", internshipID)
		}
		return nil, fmt.Errorf("get internship: %w", err)
	}
	if actor.Role != models.RoleAdmin && internship.CreatedBy != actor.ID {
		return nil, NewPermissionError(actor.ID, "internship", "list applications", "not the creator")
	}
	return s.repo.Applications().GetByInternship(ctx, internshipID)
}

func (s *applicationService) getApplication(ctx context.Context, id uint) (*models.Application, error) {
	application, err := s.repo.Applications().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("application", id)
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	return application, nil
}
