package domain

import "time"

// TaskStatus represents the current state of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// IsTerminal reports whether the status allows no further transitions other
// than an explicit reopen.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusCancelled
}

// IsValid reports whether s is one of the known statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

// Task represents a single user's unit of work. The owner is fixed at
// creation; soft-deleted tasks stay in the store for audit but are excluded
// from every default query.
type Task struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	UserID      string     `json:"user_id" gorm:"index;not null"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description,omitempty"`
	CategoryID  *string    `json:"category_id,omitempty" gorm:"index"`
	PriorityID  *string    `json:"priority_id,omitempty" gorm:"index"`
	Status      TaskStatus `json:"status" gorm:"default:pending;index"`
	Progress    int        `json:"progress" gorm:"default:0"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	IsImportant bool       `json:"is_important" gorm:"default:false"`
	IsDeleted   bool       `json:"is_deleted" gorm:"default:false;index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsOverdue reports whether the task's due date has passed while the task is
// still open. Derived, never stored.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Status.IsTerminal() {
		return false
	}
	return t.DueDate.Before(now)
}

// TimeRemaining returns the time left until the due date. ok is false when
// the task has no due date or it has already passed; that is not an error.
func (t *Task) TimeRemaining(now time.Time) (time.Duration, bool) {
	if t.DueDate == nil || !t.DueDate.After(now) {
		return 0, false
	}
	return t.DueDate.Sub(now), true
}
