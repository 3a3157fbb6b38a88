package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/internlink/internship-service/internal/models"
	"github.com/internlink/internship-service/internal/validator"
)

func newFeedbackServiceForTest(repo *fakeRepository) FeedbackService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewFeedbackService(repo, logger, validator.New())
}

func TestFeedbackCreate(t *testing.T) {
	repo := newFakeRepository()
	mentor := repo.seedUser(models.RoleMentor, "mentor@example.com")
	student := repo.seedUser(models.RoleStudent, "student@example.com")
	internship := repo.seedInternship(mentor.ID)

	svc := newFeedbackServiceForTest(repo)
	ctx := context.Background()

	feedback, err := svc.Create(ctx, mentor, &FeedbackCreateRequest{
		StudentID:    student.ID,
		InternshipID: internship.ID,
		Rating:       5,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if feedback.MentorID != mentor.ID {
		t.Errorf("author not recorded: %d", feedback.MentorID)
	}

	if _, err := svc.Create(ctx, student, &FeedbackCreateRequest{StudentID: student.ID, InternshipID: internship.ID, Rating: 5}); !IsPermissionDenied(err) {
		t.Errorf("students must not write feedback, got %v", err)
	}
	if _, err := svc.Create(ctx, mentor, &FeedbackCreateRequest{StudentID: mentor.ID, InternshipID: internship.ID, Rating: 5}); !IsValidationError(err) {
		t.Errorf("feedback target must be a student, got %v", err)
	}
	if _, err := svc.Create(ctx, mentor, &FeedbackCreateRequest{StudentID: student.ID, InternshipID: internship.ID, Rating: 9}); !IsValidationError(err) {
		t.Errorf("rating 9 must fail validation, got %v", err)
	}
}

func TestFeedbackUpdate_AuthorOnly(t *testing.T) {
	repo := newFakeRepository()
	mentor := repo.seedUser(models.RoleMentor, "mentor@example.com")
	other := repo.seedUser(models.RoleMentor, "other@example.com")
	student := repo.seedUser(models.RoleStudent, "student@example.com")
	internship := repo.seedInternship(mentor.ID)
	feedback := repo.seedFeedback(student.ID, mentor.ID, internship.ID)

	svc := newFeedbackServiceForTest(repo)
	ctx := context.Background()
	rating := 2

	if _, err := svc.Update(ctx, other, feedback.ID, &models.FeedbackUpdate{Rating: &rating}); !IsNotFound(err) {
		t.Errorf("non-author must not see the record, got %v", err)
	}

	updated, err := svc.Update(ctx, mentor, feedback.ID, &models.FeedbackUpdate{Rating: &rating})
	if err != nil {
		t.Fatalf("author update: %v", err)
	}
	if updated.Rating != rating {
		t.Errorf("rating not applied: %d", updated.Rating)
	}
}

func TestFeedbackListByStudent_SelfOrElevated(t *testing.T) {
	repo := newFakeRepository()
	mentor := repo.seedUser(models.RoleMentor, "mentor@example.com")
	student := repo.seedUser(models.RoleStudent, "student@example.com")
	other := repo.seedUser(models.RoleStudent, "other@example.com")
	internship := repo.seedInternship(mentor.ID)
	repo.seedFeedback(student.ID, mentor.ID, internship.ID)

	svc := newFeedbackServiceForTest(repo)
	ctx := context.Background()

	if list, err := svc.ListByStudent(ctx, student, student.ID); err != nil || len(list) != 1 {
		t.Errorf("self read: %v, %d items", err, len(list))
	}
	if list, err := svc.ListByStudent(ctx, mentor, student.ID); err != nil || len(list) != 1 {
		t.Errorf("mentor read: %v, %d items", err, len(list))
	}
	if _, err := svc.ListByStudent(ctx, other, student.ID); !IsPermissionDenied(err) {
		t.Errorf("another student must be denied, got %v", err)
	}
}

func TestFeedbackListByInternship_CreatorOrAdmin(t *testing.T) {
	repo := newFakeRepository()
	admin := repo.seedUser(models.RoleAdmin, "admin@example.com")
	mentor := repo.seedUser(models.RoleMentor, "mentor@example.com")
	otherMentor := repo.seedUser(models.RoleMentor, "other-mentor@example.com")
	student := repo.seedUser(models.RoleStudent, "student@example.com")
	internship := repo.seedInternship(mentor.ID)
	repo.seedFeedback(student.ID, mentor.ID, internship.ID)

	svc := newFeedbackServiceForTest(repo)
	ctx := context.Background()

	if list, err := svc.ListByInternship(ctx, mentor, internship.ID); err != nil || len(list) != 1 {
		t.Errorf("creator read: %v, %d items", err, len(list))
	}
	if list, err := svc.ListByInternship(ctx, admin, internship.ID); err != nil || len(list) != 1 {
		t.Errorf("admin read: %v, %d items", err, len(list))
	}
	if _, err := svc.ListByInternship(ctx, otherMentor, internship.ID); !IsPermissionDenied(err) {
		t.Errorf("a mentor who did not create the posting must be denied, got %v", err)
	}
	if _, err := svc.ListByInternship(ctx, student, internship.ID); !IsPermissionDenied(err) {
		t.Errorf("students must be denied, got %v", err)
	}
	if _, err := svc.ListByInternship(ctx, admin, 9999); !IsNotFound(err) {
		t.Errorf("unknown internship must read as missing, got %v", err)
	}
}
