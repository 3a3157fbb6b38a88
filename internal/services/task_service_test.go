package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/internlink/internship-service/internal/events"
	"github.com/internlink/internship-service/internal/models"
	"github.com/internlink/internship-service/internal/validator"
)

func newTaskServiceForTest(repo *fakeRepository) (TaskService, *events.MockEventPublisher) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := events.NewMockEventPublisher(logger)
	notifications := NewNotificationService(repo, publisher, logger)
	return NewTaskService(repo, notifications, logger, validator.New()), publisher
}

func TestTaskCreate(t *testing.T) {
	repo := newFakeRepository()
	mentor := repo.seedUser(models.RoleMentor, "mentor@example.com")
	student := repo.seedUser(models.RoleStudent, "student@example.com")
	internship := repo.seedInternship(mentor.ID)

	svc, publisher := newTaskServiceForTest(repo)
	ctx := context.Background()

	due := "2026-09-15"
	task, err := svc.Create(ctx, mentor, &TaskCreateRequest{
		Title:        "Set up project",
		InternshipID: internship.ID,
		StudentID:    student.ID,
		DueDate:      &due,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.Status != models.TaskPending || task.Progress != 0 {
		t.Errorf("new task must start pending at 0, got %s/%d", task.Status, task.Progress)
	}
	if task.DueDate == nil {
		t.Errorf("due date not parsed")
	}

	published := waitForEvents(t, publisher, 1)
	if published[0].Type != events.TypeTaskAssigned {
		t.Errorf("expected task assigned event, got %s", published[0].Type)
	}
}

func TestTaskCreate_Validation(t *testing.T) {
	repo := newFakeRepository()
	mentor := repo.seedUser(models.RoleMentor, "mentor@example.com")
	otherMentor := repo.seedUser(models.RoleMentor, "other@example.com")
	student := repo.seedUser(models.RoleStudent, "student@example.com")
	internship := repo.seedInternship(mentor.ID)

	svc, _ := newTaskServiceForTest(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, student, &TaskCreateRequest{Title: "x", InternshipID: internship.ID, StudentID: student.ID}); !IsPermissionDenied(err) {
		t.Errorf("students must not assign tasks, got %v", err)
	}
	if _, err := svc.Create(ctx, mentor, &TaskCreateRequest{Title: "x", InternshipID: 9999, StudentID: student.ID}); !IsNotFound(err) {
		t.Errorf("unknown internship must be not found, got %v", err)
	}
	if _, err := svc.Create(ctx, mentor, &TaskCreateRequest{Title: "x", InternshipID: internship.ID, StudentID: otherMentor.ID}); !IsValidationError(err) {
		t.Errorf("assigning to a mentor must fail validation, got %v", err)
	}

	bad := "not a date"
	if _, err := svc.Create(ctx, mentor, &TaskCreateRequest{Title: "x", InternshipID: internship.ID, StudentID: student.ID, DueDate: &bad}); !IsValidationError(err) {
		t.Errorf("unparseable due date must fail validation, got %v", err)
	}
}

func TestTaskUpdateProgress(t *testing.T) {
	repo := newFakeRepository()
	mentor := repo.seedUser(models.RoleMentor, "mentor@example.com")
	student := repo.seedUser(models.RoleStudent, "student@example.com")
	other := repo.seedUser(models.RoleStudent, "other@example.com")
	internship := repo.seedInternship(mentor.ID)
	task := repo.seedTask(student.ID, internship.ID, mentor.ID)

	svc, _ := newTaskServiceForTest(repo)
	ctx := context.Background()

	t.Run("out of range is a hard error", func(t *testing.T) {
		for _, progress := range []int{-1, 101} {
			if _, err := svc.UpdateProgress(ctx, student, task.ID, progress); !IsValidationError(err) {
				t.Errorf("progress %d must be rejected, got %v", progress, err)
			}
		}
	})

	t.Run("status derives from progress", func(t *testing.T) {
		updated, err := svc.UpdateProgress(ctx, student, task.ID, 50)
		if err != nil {
			t.Fatalf("progress 50: %v", err)
		}
		if updated.Status != models.TaskInProgress {
			t.Errorf("expected in_progress at 50, got %s", updated.Status)
		}

		updated, err = svc.UpdateProgress(ctx, student, task.ID, 100)
		if err != nil {
			t.Fatalf("progress 100: %v", err)
		}
		if updated.Status != models.TaskCompleted {
			t.Errorf("expected completed at 100, got %s", updated.Status)
		}

		updated, err = svc.UpdateProgress(ctx, student, task.ID, 0)
		if err != nil {
			t.Fatalf("progress 0: %v", err)
		}
		if updated.Status != models.TaskPending {
			t.Errorf("expected pending at 0, got %s", updated.Status)
		}
	})

	t.Run("only the assignee", func(t *testing.T) {
		if _, err := svc.UpdateProgress(ctx, other, task.ID, 10); !IsNotFound(err) {
			t.Errorf("someone else's task must read as missing, got %v", err)
		}
		if _, err := svc.UpdateProgress(ctx, mentor, task.ID, 10); !IsPermissionDenied(err) {
			t.Errorf("mentors do not report progress, got %v", err)
		}
	})
}

func TestTaskCancel_FreezesTask(t *testing.T) {
	repo := newFakeRepository()
	mentor := repo.seedUser(models.RoleMentor, "mentor@example.com")
	student := repo.seedUser(models.RoleStudent, "student@example.com")
	internship := repo.seedInternship(mentor.ID)
	task := repo.seedTask(student.ID, internship.ID, mentor.ID)

	svc, _ := newTaskServiceForTest(repo)
	ctx := context.Background()

	cancelled, err := svc.Cancel(ctx, mentor, task.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != models.TaskCancelled {
		t.Errorf("expected cancelled, got %s", cancelled.Status)
	}

	if _, err := svc.Cancel(ctx, mentor, task.ID); !IsInvalidTransition(err) {
		t.Errorf("double cancel must be invalid, got %v", err)
	}
	if _, err := svc.UpdateProgress(ctx, student, task.ID, 50); !IsInvalidTransition(err) {
		t.Errorf("cancelled task must reject progress, got %v", err)
	}
}
