package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"
)

func TestNewEventEnvelope(t *testing.T) {
	payload := &TaskEvent{TaskID: 5, Title: "Write report"}
	event := NewEvent(TypeTaskAssigned, payload)

	if event.ID == "" {
		t.Error("event must get an ID")
	}
	if event.Type != TypeTaskAssigned {
		t.Errorf("type: %q", event.Type)
	}
	if event.Source != eventSource || event.Version != "1.0" {
		t.Errorf("envelope fields wrong: %+v", event)
	}
	if time.Since(event.Timestamp) > time.Minute {
		t.Errorf("timestamp not current: %v", event.Timestamp)
	}
}

func TestEventSerialization(t *testing.T) {
	event := NewEvent(TypeApplicationSubmitted, &ApplicationEvent{
		ApplicationID: 3,
		StudentID:     7,
		StudentEmail:  "alice@example.com",
		Status:        "pending",
	})

	raw, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		Type string `json:"type"`
		Data struct {
			ApplicationID uint   `json:"application_id"`
			StudentEmail  string `json:"student_email"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Type != TypeApplicationSubmitted || decoded.Data.ApplicationID != 3 || decoded.Data.StudentEmail != "alice@example.com" {
		t.Errorf("wire shape wrong: %+v", decoded)
	}
}

func TestGoChannelPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := NewGoChannelPublisher(logger)
	defer publisher.Close()

	event := NewEvent(TypeDeadlineReminder, &TaskEvent{TaskID: 1, DaysLeft: 2})
	if err := publisher.Publish(context.Background(), TopicTasks, event); err != nil {
		t.Fatalf("publish: %v", err)
	}
}

func TestMockPublisher_FailureInjection(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mock := NewMockEventPublisher(logger)

	event := NewEvent(TypeTaskAssigned, &TaskEvent{TaskID: 1})
	if err := mock.Publish(context.Background(), TopicTasks, event); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if got := mock.GetPublishedEvents(); len(got) != 1 {
		t.Fatalf("expected 1 recorded event, got %d", len(got))
	}

	mock.FailWith = context.DeadlineExceeded
	if err := mock.Publish(context.Background(), TopicTasks, event); err == nil {
		t.Fatal("expected injected failure")
	}
	if got := mock.GetPublishedEvents(); len(got) != 1 {
		t.Errorf("failed publish must not be recorded, got %d", len(got))
	}

	mock.ClearEvents()
	if got := mock.GetPublishedEvents(); len(got) != 0 {
		t.Errorf("clear must empty the log, got %d", len(got))
	}
}
