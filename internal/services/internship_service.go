package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/internlink/internship-service/internal/models"
	"github.com/internlink/internship-service/internal/repositories"
	"github.com/internlink/internship-service/internal/validator"
)

type internshipService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewInternshipService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) InternshipService {
	return &internshipService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *internshipService) Create(ctx context.Context, actor *models.User, req *InternshipCreateRequest) (*models.Internship, error) {
	if err := RequireRole(actor, models.RoleMentor, models.RoleAdmin); err != nil {
		return nil, err
	}
	if errs := s.validator.Struct(req); errs != nil {
		return nil, errs
	}

	deadline, err := parseDate("deadline", req.Deadline)
	if err != nil {
		return nil, err
	}

	internship := &models.Internship{
		Title:        req.Title,
		Company:      req.Company,
		Description:  req.Description,
		Location:     req.Location,
		Duration:     req.Duration,
		Stipend:      req.Stipend,
		Requirements: req.Requirements,
		Deadline:     deadline,
		CreatedBy:    actor.ID,
		IsActive:     true,
	}
	if err := s.repo.Internships().Create(ctx, internship); err != nil {
		return nil, fmt.Errorf("create internship: %w", err)
	}

	s.logger.Info("internship created", "internship_id", internship.ID, "created_by", actor.ID)
	return internship, nil
}

func (s *internshipService) GetByID(ctx context.Context, id uint) (*models.Internship, error) {
	internship, err := s.repo.Internships().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("internship", id)
		}
		return nil, fmt.Errorf("get internship: %w", err)
	}
	return internship, nil
}

func (s *internshipService) List(ctx context.Context, filters repositories.InternshipFilters) ([]*models.Internship, int64, error) {
	return s.repo.Internships().List(ctx, filters)
}

func (s *internshipService) ListByMentor(ctx context.Context, actor *models.User, mentorID uint) ([]*models.Internship, error) {
	if err := RequireSelfOrRole(actor, mentorID, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repo.Internships().GetByCreator(ctx, mentorID)
}

func (s *internshipService) Update(ctx context.Context, actor *models.User, id uint, update *models.InternshipUpdate) (*models.Internship, error) {
	if errs := s.validator.Struct(update); errs != nil {
		return nil, errs
	}

	internship, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwnership(actor, internship, "update"); err != nil {
		return nil, err
	}

	if update.Title != nil {
		internship.Title = *update.Title
	}
	if update.Description != nil {
		internship.Description = update.Description
	}
	if update.Company != nil {
		internship.Company = *update.Company
	}
	if update.Location != nil {
		internship.Location = update.Location
	}
	if update.Duration != nil {
		internship.Duration = update.Duration
	}
	if update.Stipend != nil {
		internship.Stipend = update.Stipend
	}
	if update.Requirements != nil {
		internship.Requirements = update.Requirements
	}
	if update.Deadline != nil {
		deadline, err := parseDate("deadline", update.Deadline)
		if err != nil {
			return nil, err
		}
		internship.Deadline = deadline
	}
	if update.IsActive != nil {
		internship.IsActive = *update.IsActive
	}

	if err := s.repo.Internships().Update(ctx, internship); err != nil {
		return nil, fmt.Errorf("update internship: %w", err)
	}
	return internship, nil
}

// Delete removes the internship together with its applications, tasks and
// feedback in one transaction. Live applications go with it; the posting
// owner takes that outcome by deleting.
func (s *internshipService) Delete(ctx context.Context, actor *models.User, id uint) error {
	internship, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireOwnership(actor, internship, "delete"); err != nil {
		return err
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := deleteInternshipDependents(ctx, tx, id); err != nil {
			return err
		}
		if err := tx.Internships().Delete(ctx, id); err != nil {
			return fmt.Errorf("delete internship row: %w", err)
		}
		return nil
	})
	if err != nil {
		return NewIntegrityError("cascade internship deletion", err)
	}

	s.logger.Info("internship deleted", "internship_id", id, "actor_id", actor.ID)
	return nil
}

// requireOwnership lets the creating mentor or any admin through. Everyone
// else gets a permission error, mentors included.
func (s *internshipService) requireOwnership(actor *models.User, internship *models.Internship, action string) error {
	if err := RequireRole(actor, models.RoleMentor, models.RoleAdmin); err != nil {
		return err
	}
	if actor.Role == models.RoleAdmin || internship.CreatedBy == actor.ID {
		return nil
	}
	return NewPermissionError(actor.ID, "internship", action, "not the creator")
}
