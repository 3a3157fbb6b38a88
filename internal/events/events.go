package events

import (
	"context"
	"time"
)

// Topic names, one per event family. Consumers (the mailer, dashboards)
// subscribe by topic; the core never knows who listens.
const (
	TopicApplications = "internship.applications"
	TopicTasks        = "internship.tasks"
)

// Event types carried on the topics above.
const (
	TypeApplicationSubmitted     = "application.submitted"
	TypeApplicationStatusChanged = "application.status_changed"
	TypeTaskAssigned             = "task.assigned"
	TypeDeadlineReminder         = "task.deadline_reminder"
)

// Event is the envelope published for every notification-worthy change. It
// carries only the identifiers a consumer needs to render a message.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// ApplicationEvent is the payload for application.submitted and
// application.status_changed.
type ApplicationEvent struct {
	ApplicationID   uint   `json:"application_id"`
	StudentID       uint   `json:"student_id"`
	StudentEmail    string `json:"student_email"`
	StudentName     string `json:"student_name"`
	InternshipID    uint   `json:"internship_id"`
	InternshipTitle string `json:"internship_title"`
	Company         string `json:"company"`
	MentorID        uint   `json:"mentor_id"`
	MentorEmail     string `json:"mentor_email,omitempty"`
	Status          string `json:"status"`
}

// TaskEvent is the payload for task.assigned and task.deadline_reminder.
type TaskEvent struct {
	TaskID       uint   `json:"task_id"`
	Title        string `json:"title"`
	StudentID    uint   `json:"student_id"`
	StudentEmail string `json:"student_email"`
	StudentName  string `json:"student_name"`
	InternshipID uint   `json:"internship_id"`
	AssignedBy   uint   `json:"assigned_by,omitempty"`
	DueDate      string `json:"due_date,omitempty"`
	DaysLeft     int    `json:"days_left,omitempty"`
}

// Publisher is the outbound boundary for notification events. Publish must
// be safe for concurrent use; implementations own serialization.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *Event) error
	Close() error
}
