package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/internlink/internship-service/internal/models"
	"github.com/internlink/internship-service/internal/repositories"
	"github.com/internlink/internship-service/internal/validator"
)

type taskService struct {
	repo          repositories.Repository
	notifications NotificationService
	logger        *slog.Logger
	validator     *validator.Validator
}

func NewTaskService(repo repositories.Repository, notifications NotificationService, logger *slog.Logger, v *validator.Validator) TaskService {
	return &taskService{
		repo:          repo,
		notifications: notifications,
		logger:        logger,
		validator:     v,
	}
}

func (s *taskService) Create(ctx context.Context, actor *models.User, req *TaskCreateRequest) (*models.Task, error) {
	if err := RequireRole(actor, models.RoleMentor, models.RoleAdmin); err != nil {
		return nil, err
	}
	if errs := s.validator.Struct(req); errs != nil {
		return nil, errs
	}

	dueDate, err := parseDate("due_date", req.DueDate)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Internships().GetByID(ctx, req.InternshipID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("internship", req.InternshipID)
		}
		return nil, fmt.Errorf("get internship: %w", err)
	}

	student, err := s.repo.Users().GetByID(ctx, req.StudentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("user", req.StudentID)
		}
		return nil, fmt.Errorf("get student: %w", err)
	}
	if student.Role != models.RoleStudent {
		return nil, NewValidationError("student_id", "tasks can only be assigned to students")
	}

	task := &models.Task{
		Title:        req.Title,
		Description:  req.Description,
		InternshipID: req.InternshipID,
		StudentID:    req.StudentID,
		AssignedBy:   actor.ID,
		DueDate:      dueDate,
		Status:       models.TaskPending,
		Progress:     0,
	}
	if err := s.repo.Tasks().Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.logger.Info("task assigned", "task_id", task.ID, "student_id", req.StudentID, "assigned_by", actor.ID)
	s.notifications.TaskAssigned(ctx, task, student)
	return task, nil
}

// UpdateProgress moves a task along its lifecycle. The status is derived
// from progress, never set directly: 0 is pending, 100 is completed,
// anything in between is in_progress.
func (s *taskService) UpdateProgress(ctx context.Context, student *models.User, taskID uint, progress int) (*models.Task, error) {
	if err := RequireRole(student, models.RoleStudent); err != nil {
		return nil, err
	}
	if progress < 0 || progress > 100 {
		return nil, NewValidationError("progress", "progress must be between 0 and 100")
	}

	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.StudentID != student.ID {
		return nil, NewNotFoundError("task", taskID)
	}
	if !task.Status.AcceptsProgressUpdates() {
		return nil, NewInvalidTransitionError("task", string(task.Status), string(models.TaskStatusForProgress(progress)))
	}

	task.Progress = progress
	task.Status = models.TaskStatusForProgress(progress)
	if err := s.repo.Tasks().Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task progress: %w", err)
	}
	return task, nil
}

func (s *taskService) Cancel(ctx context.Context, actor *models.User, taskID uint) (*models.Task, error) {
	if err := RequireRole(actor, models.RoleMentor, models.RoleAdmin); err != nil {
		return nil, err
	}

	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleAdmin && task.AssignedBy != actor.ID {
		return nil, NewNotFoundError("task", taskID)
	}
	if task.Status == models.TaskCancelled {
		return nil, NewInvalidTransitionError("task", string(task.Status), string(models.TaskCancelled))
	}

	task.Status = models.TaskCancelled
	if err := s.repo.Tasks().Update(ctx, task); err != nil {
		return nil, fmt.Errorf("cancel task: %w", err)
	}

	s.logger.Info("task cancelled", "task_id", taskID, "actor_id", actor.ID)
	return task, nil
}

func (s *taskService) ListByStudent(ctx context.Context, actor *models.User, studentID uint) ([]*models.Task, error) {
	if err := RequireSelfOrRole(actor, studentID, models.RoleAdmin, models.RoleMentor); err != nil {
		return nil, err
	}
	return s.repo.Tasks().GetByStudent(ctx, studentID)
}

func (s *taskService) ListByInternship(ctx context.Context, actor *models.User, internshipID uint) ([]*models.Task, error) {
	if err := RequireRole(actor, models.RoleMentor, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repo.Tasks().GetByInternship(ctx, internshipID)
}

func (s *taskService) getTask(ctx context.Context, id uint) (*models.Task, error) {
	task, err := s.repo.Tasks().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("task", id)
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}
