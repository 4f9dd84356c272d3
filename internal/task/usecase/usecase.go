package usecase

import (
	"time"

	"taskhub-backend/internal/task/domain"
)

// TaskUsecase defines the business operations on tasks. Every method takes
// the authenticated owner's ID; a task belonging to someone else is
// indistinguishable from a missing one (domain.ErrNotFound).
type TaskUsecase interface {
	// CreateTask creates a task in pending status with progress 0.
	CreateTask(userID string, req CreateTaskRequest) (*domain.Task, error)

	// GetTask returns one of the user's tasks.
	GetTask(userID, taskID string) (*domain.Task, error)

	// ListTasks returns the user's tasks in default priority order plus the
	// total count.
	ListTasks(userID string, filter ListFilter) ([]*domain.Task, int64, error)

	// UpdateTask applies partial edits to title, description, category,
	// priority and due date.
	UpdateTask(userID, taskID string, req UpdateTaskRequest) (*domain.Task, error)

	// SetProgress sets progress in [0,100], auto-adjusting status per the
	// lifecycle rules.
	SetProgress(userID, taskID string, progress int) (*domain.Task, error)

	// SetStatus transitions the task along the status graph, clamping
	// progress to keep the invariant.
	SetStatus(userID, taskID string, status domain.TaskStatus) (*domain.Task, error)

	// MarkCompleted is the idempotent shorthand for SetProgress 100.
	MarkCompleted(userID, taskID string) (*domain.Task, error)

	// Reopen moves a completed or cancelled task back to in_progress with
	// the given progress (< 100).
	Reopen(userID, taskID string, progress int) (*domain.Task, error)

	// ToggleImportant flips the importance flag.
	ToggleImportant(userID, taskID string) (*domain.Task, error)

	// SearchTasks fuzzy-matches the query against the user's task titles and
	// descriptions, most relevant first.
	SearchTasks(userID, query string) ([]*domain.Task, error)

	// SoftDelete hides the task from all default queries but keeps the row.
	SoftDelete(userID, taskID string) error

	// AddComment appends a comment authored by the user.
	AddComment(userID, taskID, content string) (*domain.Comment, error)

	// ListComments returns the task's comments in creation order.
	ListComments(userID, taskID string) ([]*domain.Comment, error)

	// EditComment replaces a comment's content; only the author may edit.
	EditComment(userID, commentID, content string) (*domain.Comment, error)

	// CreateReminder schedules a reminder for the task. Timing-based
	// reminders need the task to have a due date; absolute ones must not
	// fire after it.
	CreateReminder(userID, taskID string, req CreateReminderRequest) (*domain.Reminder, error)

	// ListReminders returns the task's reminders.
	ListReminders(userID, taskID string) ([]*domain.Reminder, error)

	// CancelReminder removes an undelivered reminder.
	CancelReminder(userID, reminderID string) error
}

// TimeLedgerUsecase is the append-only time ledger over tasks.
type TimeLedgerUsecase interface {
	// RecordElapsed appends an elapsed-mode log; end must not precede start.
	RecordElapsed(userID, taskID string, start, end time.Time, description string) (*domain.TimeLog, error)

	// RecordManual appends a manual-mode log; hours must not be negative.
	RecordManual(userID, taskID string, hours float64, description string) (*domain.TimeLog, error)

	// ListLogs returns one task's logs in creation order.
	ListLogs(userID, taskID string) ([]*domain.TimeLog, error)

	// TotalDuration folds the task's log durations.
	TotalDuration(userID, taskID string) (time.Duration, error)

	// TotalDurationForUser folds the user's log durations recorded inside
	// [from, to).
	TotalDurationForUser(userID string, from, to time.Time) (time.Duration, error)
}

// CategoryUsecase manages per-user categories and the shared priorities.
type CategoryUsecase interface {
	CreateCategory(userID string, req CategoryRequest) (*domain.Category, error)
	ListCategories(userID string) ([]*domain.Category, error)
	UpdateCategory(userID, categoryID string, req CategoryRequest) (*domain.Category, error)
	// DeactivateCategory soft-deletes the category; its tasks keep the
	// reference.
	DeactivateCategory(userID, categoryID string) error
	// EnsureCategory is an explicit idempotent get-or-create by name.
	EnsureCategory(userID, name string) (*domain.Category, error)
	ListPriorities() ([]*domain.Priority, error)
}

// StatsUsecase is the read-only productivity aggregator.
type StatsUsecase interface {
	// Snapshot computes the user's aggregate over non-deleted tasks, with
	// logged time restricted to [from, to). Overdue is evaluated against the
	// injected clock at call time.
	Snapshot(userID string, from, to time.Time) (*domain.StatisticsSnapshot, error)
}

// CreateTaskRequest carries the fields accepted at task creation.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CategoryID  *string    `json:"category_id"`
	PriorityID  *string    `json:"priority_id"`
	DueDate     *time.Time `json:"due_date"`
	IsImportant bool       `json:"is_important"`
}

// UpdateTaskRequest carries the optional fields of a partial task edit. A nil
// field is left untouched; pointers to empty values clear the field.
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	CategoryID  *string    `json:"category_id,omitempty"`
	PriorityID  *string    `json:"priority_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	ClearDue    bool       `json:"clear_due_date,omitempty"`
}

// CreateReminderRequest carries the reminder type and timing. AbsoluteAt is
// required when Timing is "absolute".
type CreateReminderRequest struct {
	Type       domain.ReminderType   `json:"type"`
	Timing     domain.ReminderTiming `json:"timing"`
	AbsoluteAt *time.Time            `json:"absolute_at,omitempty"`
}

// CategoryRequest carries the editable category fields.
type CategoryRequest struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// ListFilter narrows ListTasks.
type ListFilter struct {
	Status        *domain.TaskStatus
	CategoryID    *string
	ImportantOnly bool
	Limit         int
	Offset        int
}
