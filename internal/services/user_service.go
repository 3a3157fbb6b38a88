package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/internlink/internship-service/internal/models"
	"github.com/internlink/internship-service/internal/repositories"
	"github.com/internlink/internship-service/internal/storage"
	"github.com/internlink/internship-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	files     storage.FileStore
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(repo repositories.Repository, files storage.FileStore, logger *slog.Logger, v *validator.Validator) UserService {
	return &userService{
		repo:      repo,
		files:     files,
		logger:    logger,
		validator: v,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.repo.Users().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("user", userID)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint, update *models.ProfileUpdate) (*models.User, error) {
	if errs := s.validator.Struct(update); errs != nil {
		return nil, errs
	}

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Only the allow-listed fields are applied.
	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	if update.Phone != nil {
		user.Phone = update.Phone
	}
	if update.Department != nil {
		user.Department = update.Department
	}
	if update.ProfilePicture != nil && *update.ProfilePicture != user.ProfilePicture {
		s.removePictureFile(user)
		user.ProfilePicture = *update.ProfilePicture
	}

	if err := s.repo.Users().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

func (s *userService) SetProfilePicture(ctx context.Context, userID uint, filename string, r io.Reader) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	stored, err := s.files.Save(userID, filename, r)
	if err != nil {
		return nil, NewValidationError("profile_picture", err.Error())
	}

	s.removePictureFile(user)
	user.ProfilePicture = stored
	if err := s.repo.Users().Update(ctx, user); err != nil {
		// The row is the source of truth; drop the freshly stored file.
		_ = s.files.Remove(stored)
		return nil, fmt.Errorf("update profile picture: %w", err)
	}
	return user, nil
}

func (s *userService) RemoveProfilePicture(ctx context.Context, userID uint) error {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	s.removePictureFile(user)
	user.ProfilePicture = models.DefaultProfilePicture
	if err := s.repo.Users().Update(ctx, user); err != nil {
		return fmt.Errorf("reset profile picture: %w", err)
	}
	return nil
}

// ===== ADMIN OPERATIONS =====

func (s *userService) List(ctx context.Context, actor *models.User, filters repositories.UserFilters) ([]*models.User, int64, error) {
	if err := RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, 0, err
	}
	return s.repo.Users().List(ctx, filters)
}

func (s *userService) Get(ctx context.Context, actor *models.User, id uint) (*models.User, error) {
	if err := RequireSelfOrRole(actor, id, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, id)
}

func (s *userService) AdminUpdate(ctx context.Context, actor *models.User, id uint, update *models.AdminUserUpdate) (*models.User, error) {
	if err := RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	if errs := s.validator.Struct(update); errs != nil {
		return nil, errs
	}

	user, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*update.Email))
	}
	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	if update.Role != nil {
		user.Role = *update.Role
	}
	if update.Phone != nil {
		user.Phone = update.Phone
	}
	if update.Department != nil {
		user.Department = update.Department
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}

	if err := s.repo.Users().Update(ctx, user); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.Info("user updated by admin", "user_id", id, "admin_id", actor.ID)
	return user, nil
}

// Delete removes the target user together with every row that references
// them, in dependency order, inside one transaction. Any failure rolls the
// whole unit back; no partial deletion is ever observable.
func (s *userService) Delete(ctx context.Context, actor *models.User, targetID uint) error {
	if err := RequireRole(actor, models.RoleAdmin); err != nil {
		return err
	}
	if actor.ID == targetID {
		return NewPermissionError(actor.ID, "user", "delete", "cannot delete own account")
	}

	var target *models.User
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		var err error
		// Re-read inside the transaction so the dependent-row collection and
		// the deletes see one consistent snapshot.
		target, err = tx.Users().GetByID(ctx, targetID)
		if err != nil {
			return err
		}

		// Dependency order: feedback, applications, tasks, then internships
		// the user owns (with their own dependents), then the user row.
		if err := tx.Feedback().DeleteByParticipant(ctx, targetID); err != nil {
			return fmt.Errorf("delete feedback: %w", err)
		}
		if err := tx.Applications().DeleteByStudent(ctx, targetID); err != nil {
			return fmt.Errorf("delete applications: %w", err)
		}
		if err := tx.Tasks().DeleteByStudent(ctx, targetID); err != nil {
			return fmt.Errorf("delete assigned tasks: %w", err)
		}
		if err := tx.Tasks().DeleteByAssigner(ctx, targetID); err != nil {
			return fmt.Errorf("delete authored tasks: %w", err)
		}

		if target.CanOwnInternships() {
			owned, err := tx.Internships().GetByCreator(ctx, targetID)
			if err != nil {
				return fmt.Errorf("collect owned internships: %w", err)
			}
			for _, internship := range owned {
				if err := deleteInternshipDependents(ctx, tx, internship.ID); err != nil {
					return err
				}
				if err := tx.Internships().Delete(ctx, internship.ID); err != nil {
					return fmt.Errorf("delete internship %d: %w", internship.ID, err)
				}
			}
		}

		if err := tx.Notifications().DeleteByUser(ctx, targetID); err != nil {
			return fmt.Errorf("delete notifications: %w", err)
		}
		if err := tx.Users().Delete(ctx, targetID); err != nil {
			return fmt.Errorf("delete user row: %w", err)
		}
		return nil
	})
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return NewNotFoundError("user", targetID)
		}
		return NewIntegrityError("cascade user deletion", err)
	}

	// Stored files live outside the transaction; their absence must never
	// fail the deletion.
	s.removePictureFile(target)

	s.logger.Info("user deleted", "user_id", targetID, "admin_id", actor.ID, "role", target.Role)
	return nil
}

// deleteInternshipDependents removes everything referencing one internship.
// Shared with the internship service so both cascade paths stay in step.
func deleteInternshipDependents(ctx context.Context, tx repositories.Repository, internshipID uint) error {
	if err := tx.Feedback().DeleteByInternship(ctx, internshipID); err != nil {
		return fmt.Errorf("delete internship %d feedback: %w", internshipID, err)
	}
	if err := tx.Applications().DeleteByInternship(ctx, internshipID); err != nil {
		return fmt.Errorf("delete internship %d applications: %w", internshipID, err)
	}
	if err := tx.Tasks().DeleteByInternship(ctx, internshipID); err != nil {
		return fmt.Errorf("delete internship %d tasks: %w", internshipID, err)
	}
	return nil
}

func (s *userService) SystemStats(ctx context.Context, actor *models.User) (*models.SystemStats, error) {
	if err := RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	stats := &models.SystemStats{}
	var err error
	if stats.TotalUsers, err = s.repo.Users().CountByRole(ctx, nil); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	for role, dest := range map[models.UserRole]*int64{
		models.RoleStudent: &stats.TotalStudents,
		models.RoleAdmin:   &stats.TotalAdmins,
		models.RoleMentor:  &stats.TotalMentors,
	} {
		r := role
		if *dest, err = s.repo.Users().CountByRole(ctx, &r); err != nil {
			return nil, fmt.Errorf("count %s users: %w", role, err)
		}
	}
	if stats.TotalInternships, err = s.repo.Internships().Count(ctx); err != nil {
		return nil, fmt.Errorf("count internships: %w", err)
	}
	if stats.TotalApplications, err = s.repo.Applications().Count(ctx); err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}
	if stats.TotalTasks, err = s.repo.Tasks().Count(ctx); err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}
	return stats, nil
}

func (s *userService) MentorStats(ctx context.Context, mentorID uint) (*models.MentorStats, error) {
	stats := &models.MentorStats{}

	internships, err := s.repo.Internships().GetByCreator(ctx, mentorID)
	if err != nil {
		return nil, fmt.Errorf("list mentor internships: %w", err)
	}
	stats.TotalInternships = int64(len(internships))

	if stats.TotalApplications, err = s.repo.Applications().CountForMentor(ctx, mentorID, nil); err != nil {
		return nil, fmt.Errorf("count mentor applications: %w", err)
	}
	pending := models.ApplicationPending
	if stats.PendingApplications, err = s.repo.Applications().CountForMentor(ctx, mentorID, &pending); err != nil {
		return nil, fmt.Errorf("count pending applications: %w", err)
	}
	return stats, nil
}

func (s *userService) removePictureFile(user *models.User) {
	if user == nil || !user.HasCustomPicture() {
		return
	}
	if err := s.files.Remove(user.ProfilePicture); err != nil {
		s.logger.Warn("profile picture not removed", "user_id", user.ID, "error", err)
	}
}
