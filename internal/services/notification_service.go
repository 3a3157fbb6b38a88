package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/internlink/internship-service/internal/events"
	"github.com/internlink/internship-service/internal/models"
	"github.com/internlink/internship-service/internal/repositories"
)

// dispatchTimeout bounds how long a background delivery may take once the
// originating request has already returned.
const dispatchTimeout = 30 * time.Second

type notificationService struct {
	repo      repositories.Repository
	publisher events.Publisher
	logger    *slog.Logger
}

func NewNotificationService(repo repositories.Repository, publisher events.Publisher, logger *slog.Logger) NotificationService {
	return &notificationService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *notificationService) ApplicationSubmitted(_ context.Context, application *models.Application, student *models.User, internship *models.Internship) {
	payload := &events.ApplicationEvent{
		ApplicationID:   application.ID,
		StudentID:       student.ID,
		StudentEmail:    student.Email,
		StudentName:     student.FullName,
		InternshipID:    internship.ID,
		InternshipTitle: internship.Title,
		Company:         internship.Company,
		MentorID:        internship.CreatedBy,
		Status:          string(application.Status),
	}
	event := events.NewEvent(events.TypeApplicationSubmitted, payload)

	s.dispatch(events.TopicApplications, event, student.ID,
		models.NotificationApplicationSubmitted,
		"Application submitted",
		fmt.Sprintf("Your application for %s at %s has been submitted.", internship.Title, internship.Company))
}

func (s *notificationService) ApplicationStatusChanged(_ context.Context, application *models.Application, student *models.User, internship *models.Internship) {
	payload := &events.ApplicationEvent{
		ApplicationID:   application.ID,
		StudentID:       student.ID,
		StudentEmail:    student.Email,
		StudentName:     student.FullName,
		InternshipID:    internship.ID,
		InternshipTitle: internship.Title,
		Company:         internship.Company,
		MentorID:        internship.CreatedBy,
		Status:          string(application.Status),
	}
	event := events.NewEvent(events.TypeApplicationStatusChanged, payload)

	s.dispatch(events.TopicApplications, event, student.ID,
		models.NotificationApplicationStatus,
		"Application "+string(application.Status),
		fmt.Sprintf("Your application for %s has been %s.", internship.Title, application.Status))
}

func (s *notificationService) TaskAssigned(_ context.Context, task *models.Task, student *models.User) {
	payload := &events.TaskEvent{
		TaskID:       task.ID,
		Title:        task.Title,
		StudentID:    student.ID,
		StudentEmail: student.Email,
		StudentName:  student.FullName,
		InternshipID: task.InternshipID,
		AssignedBy:   task.AssignedBy,
	}
	if task.DueDate != nil {
		payload.DueDate = task.DueDate.Format("2006-01-02")
	}
	event := events.NewEvent(events.TypeTaskAssigned, payload)

	s.dispatch(events.TopicTasks, event, student.ID,
		models.NotificationTaskAssigned,
		"New task assigned",
		fmt.Sprintf("You have been assigned a new task: %s.", task.Title))
}

func (s *notificationService) DeadlineReminder(ctx context.Context, task *models.Task, daysLeft int) error {
	if task.Student == nil {
		return fmt.Errorf("task %d has no student loaded", task.ID)
	}

	payload := &events.TaskEvent{
		TaskID:       task.ID,
		Title:        task.Title,
		StudentID:    task.StudentID,
		StudentEmail: task.Student.Email,
		StudentName:  task.Student.FullName,
		InternshipID: task.InternshipID,
		DaysLeft:     daysLeft,
	}
	if task.DueDate != nil {
		payload.DueDate = task.DueDate.Format("2006-01-02")
	}
	event := events.NewEvent(events.TypeDeadlineReminder, payload)

	if err := s.publisher.Publish(ctx, events.TopicTasks, event); err != nil {
		return fmt.Errorf("publish deadline reminder: %w", err)
	}

	s.persist(ctx, event, task.StudentID, models.NotificationDeadlineReminder,
		"Deadline approaching",
		fmt.Sprintf("Task %q is due in %d day(s).", task.Title, daysLeft))
	return nil
}

func (s *notificationService) ListForUser(ctx context.Context, userID uint, unreadOnly bool) ([]*models.Notification, error) {
	rows, err := s.repo.Notifications().GetByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return rows, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	err := s.repo.Notifications().MarkRead(ctx, notificationID, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return NewNotFoundError("notification", notificationID)
		}
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

// dispatch enqueues delivery of one event and returns immediately. The
// originating request must never wait on, or fail because of, delivery.
func (s *notificationService) dispatch(topic string, event *events.Event, userID uint, nType models.NotificationType, title, message string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		if err := s.publisher.Publish(ctx, topic, event); err != nil {
			s.logger.Error("notification publish failed", "type", event.Type, "error", err)
			return
		}
		s.persist(ctx, event, userID, nType, title, message)
	}()
}

// persist mirrors the event into the user's in-app feed, best effort.
func (s *notificationService) persist(ctx context.Context, event *events.Event, userID uint, nType models.NotificationType, title, message string) {
	payload, err := json.Marshal(event.Data)
	if err != nil {
		s.logger.Warn("notification payload marshal failed", "type", event.Type, "error", err)
		payload = nil
	}

	row := &models.Notification{
		UserID:  userID,
		Type:    nType,
		Title:   title,
		Message: message,
		Payload: payload,
	}
	if err := s.repo.Notifications().Create(ctx, row); err != nil {
		s.logger.Warn("notification row not persisted", "type", event.Type, "error", err)
	}
}
