package domain

import "time"

// TimeLog is one immutable entry in a task's time ledger. Exactly one mode is
// populated: elapsed (start/end pair) or manual (direct hours). Corrections
// are new compensating logs, never edits, so aggregation stays a plain fold.
type TimeLog struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	TaskID      string     `json:"task_id" gorm:"index;not null"`
	UserID      string     `json:"user_id" gorm:"index;not null"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	ManualHours float64    `json:"manual_hours,omitempty"`
	IsManual    bool       `json:"is_manual" gorm:"default:false"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewElapsedLog builds an elapsed-mode log. The range must not be inverted.
func NewElapsedLog(taskID, userID string, start, end time.Time, description string) (*TimeLog, error) {
	if end.Before(start) {
		return nil, ErrInvalidTimeRange
	}
	return &TimeLog{
		TaskID:      taskID,
		UserID:      userID,
		StartTime:   &start,
		EndTime:     &end,
		Description: description,
	}, nil
}

// NewManualLog builds a manual-mode log from a direct hours value.
func NewManualLog(taskID, userID string, hours float64, description string) (*TimeLog, error) {
	if hours < 0 {
		return nil, ErrInvalidDuration
	}
	return &TimeLog{
		TaskID:      taskID,
		UserID:      userID,
		ManualHours: hours,
		IsManual:    true,
		Description: description,
	}, nil
}

// Duration is the log's derived length: end-start for elapsed mode, the
// hours value for manual mode. Never negative for logs built through the
// constructors.
func (l *TimeLog) Duration() time.Duration {
	if l.IsManual {
		return time.Duration(l.ManualHours * float64(time.Hour))
	}
	if l.StartTime == nil || l.EndTime == nil {
		return 0
	}
	return l.EndTime.Sub(*l.StartTime)
}

// SumDurations folds a set of logs into a total. O(len(logs)).
func SumDurations(logs []*TimeLog) time.Duration {
	var total time.Duration
	for _, l := range logs {
		total += l.Duration()
	}
	return total
}
