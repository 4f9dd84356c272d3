package domain

import "time"

// The status graph: pending -> in_progress -> completed, with cancelled
// reachable from pending or in_progress. Terminal states are left only
// through Reopen. Progress and status are kept coupled here so the invariant
// lives at the call site instead of a save hook:
//
//	completed  <=> progress == 100 and CompletedAt set
//	pending     => progress == 0

// ApplyProgress sets the task's progress and adjusts status to keep the
// coupling invariant. Reaching 100 completes the task and stamps CompletedAt;
// dropping below 100 on a completed task reopens it to in_progress; any
// progress above 0 moves a pending task to in_progress.
func ApplyProgress(t *Task, value int, now time.Time) error {
	if value < 0 || value > 100 {
		return ErrInvalidProgress
	}

	t.Progress = value
	switch {
	case value == 100:
		if t.Status != TaskStatusCompleted {
			t.Status = TaskStatusCompleted
			completed := now
			t.CompletedAt = &completed
		}
	case t.Status == TaskStatusCompleted:
		t.Status = TaskStatusInProgress
		t.CompletedAt = nil
	case value > 0 && t.Status == TaskStatusPending:
		t.Status = TaskStatusInProgress
	}
	return nil
}

// MarkCompleted is an idempotent convenience for ApplyProgress(t, 100, now).
func MarkCompleted(t *Task, now time.Time) error {
	return ApplyProgress(t, 100, now)
}

// ApplyStatus transitions the task to newStatus, clamping progress to keep
// the invariant: completed forces 100, pending forces 0, cancelled leaves
// progress where it was. Unreachable transitions fail with
// ErrInvalidTransition.
func ApplyStatus(t *Task, newStatus TaskStatus, now time.Time) error {
	if !canTransition(t.Status, newStatus) {
		return ErrInvalidTransition
	}

	t.Status = newStatus
	switch newStatus {
	case TaskStatusCompleted:
		t.Progress = 100
		if t.CompletedAt == nil {
			completed := now
			t.CompletedAt = &completed
		}
	case TaskStatusPending:
		t.Progress = 0
		t.CompletedAt = nil
	case TaskStatusInProgress:
		t.CompletedAt = nil
	}
	return nil
}

// Reopen moves a terminal task back to in_progress with a caller-supplied
// progress below 100, clearing CompletedAt.
func Reopen(t *Task, progress int, now time.Time) error {
	if !t.Status.IsTerminal() {
		return ErrInvalidTransition
	}
	if progress < 0 || progress >= 100 {
		return ErrInvalidProgress
	}

	t.Status = TaskStatusInProgress
	t.Progress = progress
	t.CompletedAt = nil
	return nil
}

func canTransition(from, to TaskStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case TaskStatusPending:
		return to == TaskStatusInProgress || to == TaskStatusCompleted || to == TaskStatusCancelled
	case TaskStatusInProgress:
		return to == TaskStatusCompleted || to == TaskStatusCancelled || to == TaskStatusPending
	default:
		// completed and cancelled are terminal; only Reopen leaves them.
		return false
	}
}
