package repository

import (
	"time"

	"taskhub-backend/internal/task/domain"
)

// TaskFilter narrows task list queries. Soft-deleted tasks are always
// excluded; that is the query boundary, not the caller's job.
type TaskFilter struct {
	Status        *domain.TaskStatus
	CategoryID    *string
	ImportantOnly bool
	Limit         int
	Offset        int
}

// TaskRepository defines the persistence boundary for tasks. Implementations
// must apply each mutation atomically so a task's status/progress pair is
// never observed mid-update.
type TaskRepository interface {
	// Create inserts a new task.
	Create(task *domain.Task) error

	// FindByID returns a non-deleted task, or nil when absent.
	FindByID(id string) (*domain.Task, error)

	// FindByUserID returns a user's non-deleted tasks ordered by priority
	// level descending (tasks without a priority last), then due date, plus
	// the total count for pagination.
	FindByUserID(userID string, filter TaskFilter) ([]*domain.Task, int64, error)

	// Update persists the task's current field values.
	Update(task *domain.Task) error

	// CountByStatus returns the user's non-deleted task counts grouped by
	// status.
	CountByStatus(userID string) (map[domain.TaskStatus]int, error)

	// FindOverdueCandidates returns the user's non-deleted tasks that have a
	// due date and are not in a terminal status; overdue itself is evaluated
	// by the caller against an injected clock.
	FindOverdueCandidates(userID string) ([]*domain.Task, error)
}

// CategoryRepository persists per-user task categories.
type CategoryRepository interface {
	Create(category *domain.Category) error
	FindByID(id string) (*domain.Category, error)
	// FindByName returns the user's category with that exact name, or nil.
	FindByName(userID, name string) (*domain.Category, error)
	// FindByUserID returns the user's active categories with derived task
	// counts (deleted tasks excluded).
	FindByUserID(userID string) ([]*domain.Category, error)
	Update(category *domain.Category) error
	// Ensure returns the user's category with the given name, creating it if
	// missing. Idempotent.
	Ensure(userID, name string) (*domain.Category, error)
	// TaskCount counts the category's non-deleted tasks.
	TaskCount(categoryID string) (int64, error)
}

// PriorityRepository persists the shared priority levels.
type PriorityRepository interface {
	FindByID(id string) (*domain.Priority, error)
	// FindAll returns priorities ordered by level ascending.
	FindAll() ([]*domain.Priority, error)
	// Seed inserts the default Low/Medium/High levels when the table is
	// empty. Idempotent.
	Seed() error
}

// CommentRepository persists task comments.
type CommentRepository interface {
	Create(comment *domain.Comment) error
	FindByID(id string) (*domain.Comment, error)
	// FindByTaskID returns the task's comments in creation order.
	FindByTaskID(taskID string) ([]*domain.Comment, error)
	Update(comment *domain.Comment) error
}

// TimeLogRepository persists the append-only time ledger. Logs are never
// updated or deleted.
type TimeLogRepository interface {
	Create(log *domain.TimeLog) error

	// FindByTaskID returns one task's logs only; summing a task must not
	// touch other tasks' logs.
	FindByTaskID(taskID string) ([]*domain.TimeLog, error)

	// FindByUserInWindow returns the user's logs created inside [from, to).
	FindByUserInWindow(userID string, from, to time.Time) ([]*domain.TimeLog, error)
}

// PendingReminder pairs an undelivered reminder with its task so the
// scheduler can resolve fire times without extra reads.
type PendingReminder struct {
	Reminder *domain.Reminder
	Task     *domain.Task
}

// ReminderRepository persists reminders. MarkDelivered is the engine's one
// concurrency guard and must be a compare-and-set.
type ReminderRepository interface {
	Create(reminder *domain.Reminder) error
	FindByID(id string) (*domain.Reminder, error)
	FindByTaskID(taskID string) ([]*domain.Reminder, error)
	Delete(id string) error

	// FindPending returns every undelivered reminder whose task is neither
	// soft-deleted nor in a terminal status. A fresh read on each call.
	FindPending() ([]PendingReminder, error)

	// MarkDelivered atomically flips delivered to true with delivered_at set
	// to at. Returns false when another racer already delivered; exactly one
	// concurrent caller observes true.
	MarkDelivered(id string, at time.Time) (bool, error)
}
