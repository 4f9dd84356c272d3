package domain

import "time"

// StatisticsSnapshot is a derived, non-authoritative aggregate over one
// user's non-deleted tasks, computed fresh on every request.
type StatisticsSnapshot struct {
	UserID         string             `json:"user_id"`
	StatusCounts   map[TaskStatus]int `json:"status_counts"`
	OverdueCount   int                `json:"overdue_count"`
	CompletionRate float64            `json:"completion_rate"`
	TotalLogged    time.Duration      `json:"total_logged"`
	WindowStart    time.Time          `json:"window_start"`
	WindowEnd      time.Time          `json:"window_end"`
	GeneratedAt    time.Time          `json:"generated_at"`
}

// CompletionRate computes completed / (total - cancelled) with 0/0 defined
// as 0.
func CompletionRate(counts map[TaskStatus]int) float64 {
	total := 0
	for _, n := range counts {
		total += n
	}
	denom := total - counts[TaskStatusCancelled]
	if denom <= 0 {
		return 0
	}
	return float64(counts[TaskStatusCompleted]) / float64(denom)
}
