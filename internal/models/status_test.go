package models

import "testing"

func TestApplicationTransitions(t *testing.T) {
	tests := []struct {
		from    ApplicationStatus
		to      ApplicationStatus
		allowed bool
	}{
		{ApplicationPending, ApplicationApproved, true},
		{ApplicationPending, ApplicationRejected, true},
		{ApplicationPending, ApplicationPending, false},
		{ApplicationApproved, ApplicationRejected, false},
		{ApplicationApproved, ApplicationPending, false},
		{ApplicationRejected, ApplicationApproved, false},
		{ApplicationRejected, ApplicationPending, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestApplicationTerminalStates(t *testing.T) {
	if ApplicationPending.IsTerminal() {
		t.Error("pending must not be terminal")
	}
	if !ApplicationApproved.IsTerminal() || !ApplicationRejected.IsTerminal() {
		t.Error("approved and rejected must be terminal")
	}
}

func TestTaskStatusForProgress(t *testing.T) {
	tests := []struct {
		progress int
		want     TaskStatus
	}{
		{0, TaskPending},
		{1, TaskInProgress},
		{50, TaskInProgress},
		{99, TaskInProgress},
		{100, TaskCompleted},
	}
	for _, tt := range tests {
		if got := TaskStatusForProgress(tt.progress); got != tt.want {
			t.Errorf("progress %d: got %s, want %s", tt.progress, got, tt.want)
		}
	}
}

func TestTaskAcceptsProgressUpdates(t *testing.T) {
	for _, status := range []TaskStatus{TaskPending, TaskInProgress, TaskCompleted} {
		if !status.AcceptsProgressUpdates() {
			t.Errorf("%s must accept progress updates", status)
		}
	}
	if TaskCancelled.AcceptsProgressUpdates() {
		t.Error("cancelled tasks are frozen")
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []UserRole{RoleStudent, RoleAdmin, RoleMentor} {
		if !ValidRole(role) {
			t.Errorf("%s must be valid", role)
		}
	}
	for _, role := range []UserRole{"", "teacher", "Student"} {
		if ValidRole(role) {
			t.Errorf("%q must be invalid", role)
		}
	}
}
