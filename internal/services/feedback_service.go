package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/internlink/internship-service/internal/models"
	"github.com/internlink/internship-service/internal/repositories"
	"github.com/internlink/internship-service/internal/validator"
)

type feedbackService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewFeedbackService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) FeedbackService {
	return &feedbackService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *feedbackService) Create(ctx context.Context, mentor *models.User, req *FeedbackCreateRequest) (*models.Feedback, error) {
	if err := RequireRole(mentor, models.RoleMentor, models.RoleAdmin); err != nil {
		return nil, err
	}
	if errs := s.validator.Struct(req); errs != nil {
		return nil, errs
	}

	student, err := s.repo.Users().GetByID(ctx, req.StudentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("user", req.StudentID)
		}
		return nil, fmt.Errorf("get student: %w", err)
	}
	if student.Role != models.RoleStudent {
		return nil, NewValidationError("student_id", "feedback can only be given to students")
	}
	if _, err := s.repo.Internships().GetByID(ctx, req.InternshipID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("internship", req.InternshipID)
		}
		return nil, fmt.Errorf("get internship: %w", err)
	}

	feedback := &models.Feedback{
		StudentID:    req.StudentID,
		MentorID:     mentor.ID,
		InternshipID: req.InternshipID,
		Rating:       req.Rating,
		Comments:     req.Comments,
	}
	if err := s.repo.Feedback().Create(ctx, feedback); err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}

	s.logger.Info("feedback created", "feedback_id", feedback.ID, "student_id", req.StudentID, "mentor_id", mentor.ID)
	return feedback, nil
}

func (s *feedbackService) Update(ctx context.Context, mentor *models.User, feedbackID uint, update *models.FeedbackUpdate) (*models.Feedback, error) {
	if err := RequireRole(mentor, models.RoleMentor, models.RoleAdmin); err != nil {
		return nil, err
	}
	if errs := s.validator.Struct(update); errs != nil {
		return nil, errs
	}

	feedback, err := s.repo.Feedback().GetByID(ctx, feedbackID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("feedback", feedbackID)
		}
		return nil, fmt.Errorf("get feedback: %w", err)
	}
	// Only the authoring mentor may revise; admins included, to keep the
	// record attributable.
	if feedback.MentorID != mentor.ID {
		return nil, NewNotFoundError("feedback", feedbackID)
	}

	if update.Rating != nil {
		feedback.Rating = *update.Rating
	}
	if update.Comments != nil {
		feedback.Comments = update.Comments
	}

	if err := s.repo.Feedback().Update(ctx, feedback); err != nil {
		return nil, fmt.Errorf("update feedback: %w", err)
	}
	return feedback, nil
}

func (s *feedbackService) ListByStudent(ctx context.Context, actor *models.User, studentID uint) ([]*models.Feedback, error) {
	if err := RequireSelfOrRole(actor, studentID, models.RoleAdmin, models.RoleMentor); err != nil {
		return nil, err
	}
	return s.repo.Feedback().GetByStudent(ctx, studentID)
}

func (s *feedbackService) ListByMentor(ctx context.Context, mentor *models.User) ([]*models.Feedback, error) {
	if err := RequireRole(mentor, models.RoleMentor, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repo.Feedback().GetByMentor(ctx, mentor.ID)
}

func (s *feedbackService) ListByInternship(ctx context.Context, actor *models.User, internshipID uint) ([]*models.Feedback, error) {
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
		return nil, NewPermissionError(actor.ID, "internship", "list feedback", "not the creator")
	}
	return s.repo.Feedback().GetByInternship(ctx, internshipID)
}
