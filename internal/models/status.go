package models

// Application status transitions. pending may move to approved or rejected;
// both of those are terminal.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending:  {ApplicationApproved, ApplicationRejected},
	ApplicationApproved: {},
	ApplicationRejected: {},
}

// CanTransitionTo reports whether an application in state s may move to target.
func (s ApplicationStatus) CanTransitionTo(target ApplicationStatus) bool {
	for _, t := range applicationTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition is defined out of s.
func (s ApplicationStatus) IsTerminal() bool {
	return len(applicationTransitions[s]) == 0
}

// TaskStatusForProgress derives the task status from a progress value:
// 0 is pending, 100 is completed, anything in between is in_progress.
// Progress must already be validated to [0,100]; cancelled is never derived
// from progress, it is only reachable through the administrative cancel path.
func TaskStatusForProgress(progress int) TaskStatus {
	switch {
	case progress <= 0:
		return TaskPending
	case progress >= 100:
		return TaskCompleted
	default:
		return TaskInProgress
	}
}

// AcceptsProgressUpdates reports whether the task status still allows
// progress changes. A cancelled task is frozen.
func (s TaskStatus) AcceptsProgressUpdates() bool {
	return s != TaskCancelled
}
