package domain

import "errors"

// Validation and lifecycle errors returned by the task engine. Handlers map
// these to HTTP statuses with errors.Is; anything else is a store failure.
var (
	// ErrInvalidProgress means a progress value outside [0,100].
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")

	// ErrInvalidTransition means the requested status is unreachable from the
	// task's current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidTimeRange means an elapsed time log with end before start.
	ErrInvalidTimeRange = errors.New("end time must not be before start time")

	// ErrInvalidDuration means a negative manual-hours value.
	ErrInvalidDuration = errors.New("logged hours must not be negative")

	// ErrUnresolvableReminder means a reminder with no basis to compute a fire
	// time (task has no due date and the reminder has no absolute timestamp).
	ErrUnresolvableReminder = errors.New("reminder fire time cannot be resolved")

	// ErrReminderAfterDue means an absolute reminder timestamp past the
	// task's due date; a reminder must fire at or before the deadline.
	ErrReminderAfterDue = errors.New("reminder must fire at or before the due date")

	// ErrNotFound covers both a missing entity and an entity owned by another
	// user, so existence is never leaked across owners.
	ErrNotFound = errors.New("not found")

	// ErrEmptyTitle means a task created or renamed with a blank title.
	ErrEmptyTitle = errors.New("title must not be empty")

	// ErrDuplicateName means a category name the user already has; names are
	// unique per user.
	ErrDuplicateName = errors.New("name already in use")

	// ErrEmptyContent means a comment with no content.
	ErrEmptyContent = errors.New("content must not be empty")
)
