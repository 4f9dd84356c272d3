package usecase

import (
	"time"

	"taskhub-backend/internal/task/domain"
	"taskhub-backend/internal/task/repository"
)

// statsUsecase implements StatsUsecase. It is purely read-side: it composes
// the task repository and the time ledger without mutating either, and
// nothing here is cached.
type statsUsecase struct {
	taskRepo repository.TaskRepository
	ledger   TimeLedgerUsecase
	now      func() time.Time
}

// NewStatsUsecase creates a new instance of statsUsecase.
func NewStatsUsecase(taskRepo repository.TaskRepository, ledger TimeLedgerUsecase) StatsUsecase {
	return &statsUsecase{
		taskRepo: taskRepo,
		ledger:   ledger,
		now:      time.Now,
	}
}

// SetClock overrides the wall clock. Tests only.
func (u *statsUsecase) SetClock(now func() time.Time) {
	u.now = now
}

func (u *statsUsecase) Snapshot(userID string, from, to time.Time) (*domain.StatisticsSnapshot, error) {
	now := u.now()

	counts, err := u.taskRepo.CountByStatus(userID)
	if err != nil {
		return nil, err
	}
	// Every status keys the map even at zero, so consumers need no nil
	// checks.
	for _, s := range []domain.TaskStatus{
		domain.TaskStatusPending, domain.TaskStatusInProgress,
		domain.TaskStatusCompleted, domain.TaskStatusCancelled,
	} {
		if _, ok := counts[s]; !ok {
			counts[s] = 0
		}
	}

	// Overdue is evaluated per task at aggregation time, never cached.
	candidates, err := u.taskRepo.FindOverdueCandidates(userID)
	if err != nil {
		return nil, err
	}
	overdue := 0
	for _, t := range candidates {
		if t.IsOverdue(now) {
			overdue++
		}
	}

	logged, err := u.ledger.TotalDurationForUser(userID, from, to)
	if err != nil {
		return nil, err
	}

	return &domain.StatisticsSnapshot{
		UserID:         userID,
		StatusCounts:   counts,
		OverdueCount:   overdue,
		CompletionRate: domain.CompletionRate(counts),
		TotalLogged:    logged,
		WindowStart:    from,
		WindowEnd:      to,
		GeneratedAt:    now,
	}, nil
}
