package domain

import "time"

// ReminderType is the delivery channel. Open enumeration: unknown values are
// stored as-is and the scheduler decides what to do with them.
type ReminderType string

const (
	ReminderTypeInApp ReminderType = "in_app"
	ReminderTypeEmail ReminderType = "email"
)

// ReminderTiming is a named offset relative to the task's due date.
type ReminderTiming string

const (
	Timing15MinutesBefore ReminderTiming = "15_minutes_before"
	Timing1HourBefore     ReminderTiming = "1_hour_before"
	Timing1DayBefore      ReminderTiming = "1_day_before"
	Timing1WeekBefore     ReminderTiming = "1_week_before"
	// TimingAbsolute means the reminder carries its own timestamp and ignores
	// the due date.
	TimingAbsolute ReminderTiming = "absolute"
)

// Offset returns the duration before the due date the timing stands for.
// ok is false for absolute or unknown timings.
func (t ReminderTiming) Offset() (time.Duration, bool) {
	switch t {
	case Timing15MinutesBefore:
		return 15 * time.Minute, true
	case Timing1HourBefore:
		return time.Hour, true
	case Timing1DayBefore:
		return 24 * time.Hour, true
	case Timing1WeekBefore:
		return 7 * 24 * time.Hour, true
	}
	return 0, false
}

// Reminder schedules a one-shot notification for a task. Delivered flips to
// true exactly once, under a compare-and-set in the store, so overlapping
// scheduler ticks never double-fire.
type Reminder struct {
	ID          string         `json:"id" gorm:"primaryKey"`
	TaskID      string         `json:"task_id" gorm:"index;not null"`
	UserID      string         `json:"user_id" gorm:"index;not null"`
	Type        ReminderType   `json:"type" gorm:"default:in_app"`
	Timing      ReminderTiming `json:"timing"`
	AbsoluteAt  *time.Time     `json:"absolute_at,omitempty"`
	Delivered   bool           `json:"delivered" gorm:"default:false;index"`
	DeliveredAt *time.Time     `json:"delivered_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ResolveFireTime computes the absolute moment the reminder becomes due from
// the task's current due date. It is deliberately recomputed on every call
// rather than cached at creation, so a later due-date edit moves the fire
// time with it. Fails with ErrUnresolvableReminder when the task has no due
// date and the reminder no absolute timestamp.
func ResolveFireTime(r *Reminder, task *Task) (time.Time, error) {
	if r.AbsoluteAt != nil {
		return *r.AbsoluteAt, nil
	}
	offset, ok := r.Timing.Offset()
	if !ok || task.DueDate == nil {
		return time.Time{}, ErrUnresolvableReminder
	}
	return task.DueDate.Add(-offset), nil
}
