package usecase

import (
	"errors"
	"testing"
	"time"

	"taskhub-backend/internal/task/domain"
)

func TestTotalDurationScopedToTask(t *testing.T) {
	tasks := newFakeTaskRepo(newFakePriorityRepo())
	logs := newFakeTimeLogRepo()
	ledger := NewTimeLedgerUsecase(tasks, logs)

	a := &domain.Task{UserID: "user-1", Title: "a"}
	b := &domain.Task{UserID: "user-1", Title: "b"}
	for _, task := range []*domain.Task{a, b} {
		if err := tasks.Create(task); err != nil {
			t.Fatalf("create task: %v", err)
		}
	}

	if _, err := ledger.RecordManual("user-1", a.ID, 2, ""); err != nil {
		t.Fatalf("record manual: %v", err)
	}
	if _, err := ledger.RecordManual("user-1", b.ID, 5, ""); err != nil {
		t.Fatalf("record manual: %v", err)
	}

	total, err := ledger.TotalDuration("user-1", a.ID)
	if err != nil {
		t.Fatalf("total duration: %v", err)
	}
	if total != 2*time.Hour {
		t.Fatalf("expected 2h for task a only, got %v", total)
	}
}

func TestRecordElapsedRejectsInvertedRange(t *testing.T) {
	tasks := newFakeTaskRepo(newFakePriorityRepo())
	ledger := NewTimeLedgerUsecase(tasks, newFakeTimeLogRepo())

	task := &domain.Task{UserID: "user-1", Title: "x"}
	if err := tasks.Create(task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	_, err := ledger.RecordElapsed("user-1", task.ID, start, start.Add(-time.Minute), "")
	if !errors.Is(err, domain.ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange, got %v", err)
	}
}

func TestRecordingOnForeignTaskFails(t *testing.T) {
	tasks := newFakeTaskRepo(newFakePriorityRepo())
	ledger := NewTimeLedgerUsecase(tasks, newFakeTimeLogRepo())

	task := &domain.Task{UserID: "user-1", Title: "x"}
	if err := tasks.Create(task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	if _, err := ledger.RecordManual("user-2", task.ID, 1, ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSnapshotAggregates(t *testing.T) {
	tasks := newFakeTaskRepo(newFakePriorityRepo())
	logs := newFakeTimeLogRepo()
	ledger := NewTimeLedgerUsecase(tasks, logs)
	stats := NewStatsUsecase(tasks, ledger).(*statsUsecase)
	stats.SetClock(func() time.Time { return frozenNow })

	overdueDue := frozenNow.Add(-time.Hour)
	futureDue := frozenNow.Add(time.Hour)
	fixtures := []*domain.Task{
		{UserID: "user-1", Title: "late", Status: domain.TaskStatusInProgress, DueDate: &overdueDue},
		{UserID: "user-1", Title: "on time", Status: domain.TaskStatusPending, DueDate: &futureDue},
		{UserID: "user-1", Title: "done", Status: domain.TaskStatusCompleted, Progress: 100},
		{UserID: "user-1", Title: "dropped", Status: domain.TaskStatusCancelled},
		{UserID: "user-2", Title: "someone else's", Status: domain.TaskStatusPending},
	}
	for _, task := range fixtures {
		if err := tasks.Create(task); err != nil {
			t.Fatalf("create task: %v", err)
		}
	}

	if _, err := ledger.RecordManual("user-1", fixtures[0].ID, 2.5, ""); err != nil {
		t.Fatalf("record manual: %v", err)
	}

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	snapshot, err := stats.Snapshot("user-1", from, to)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	if snapshot.StatusCounts[domain.TaskStatusPending] != 1 ||
		snapshot.StatusCounts[domain.TaskStatusInProgress] != 1 ||
		snapshot.StatusCounts[domain.TaskStatusCompleted] != 1 ||
		snapshot.StatusCounts[domain.TaskStatusCancelled] != 1 {
		t.Fatalf("unexpected status counts: %v", snapshot.StatusCounts)
	}
	if snapshot.OverdueCount != 1 {
		t.Fatalf("expected 1 overdue, got %d", snapshot.OverdueCount)
	}
	// completed / (total - cancelled) = 1/3
	if want := 1.0 / 3.0; snapshot.CompletionRate != want {
		t.Fatalf("expected completion rate %v, got %v", want, snapshot.CompletionRate)
	}
	if snapshot.TotalLogged != 2*time.Hour+30*time.Minute {
		t.Fatalf("expected 2h30m logged, got %v", snapshot.TotalLogged)
	}
}

func TestSnapshotEmptyUser(t *testing.T) {
	tasks := newFakeTaskRepo(newFakePriorityRepo())
	ledger := NewTimeLedgerUsecase(tasks, newFakeTimeLogRepo())
	stats := NewStatsUsecase(tasks, ledger)

	snapshot, err := stats.Snapshot("nobody", frozenNow.Add(-time.Hour), frozenNow)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snapshot.CompletionRate != 0 {
		t.Fatalf("expected completion rate 0 with no tasks, got %v", snapshot.CompletionRate)
	}
	for _, s := range []domain.TaskStatus{
		domain.TaskStatusPending, domain.TaskStatusInProgress,
		domain.TaskStatusCompleted, domain.TaskStatusCancelled,
	} {
		if _, ok := snapshot.StatusCounts[s]; !ok {
			t.Fatalf("expected %s keyed at zero", s)
		}
	}
}

func TestSnapshotWindowBoundsLoggedTime(t *testing.T) {
	tasks := newFakeTaskRepo(newFakePriorityRepo())
	logs := newFakeTimeLogRepo()
	ledger := NewTimeLedgerUsecase(tasks, logs)
	stats := NewStatsUsecase(tasks, ledger)

	task := &domain.Task{UserID: "user-1", Title: "x"}
	if err := tasks.Create(task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	inside := &domain.TimeLog{TaskID: task.ID, UserID: "user-1", ManualHours: 1, IsManual: true, CreatedAt: frozenNow}
	outside := &domain.TimeLog{TaskID: task.ID, UserID: "user-1", ManualHours: 4, IsManual: true, CreatedAt: frozenNow.Add(-48 * time.Hour)}
	for _, log := range []*domain.TimeLog{inside, outside} {
		if err := logs.Create(log); err != nil {
			t.Fatalf("create log: %v", err)
		}
	}

	snapshot, err := stats.Snapshot("user-1", frozenNow.Add(-time.Hour), frozenNow.Add(time.Hour))
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snapshot.TotalLogged != time.Hour {
		t.Fatalf("expected only the in-window hour, got %v", snapshot.TotalLogged)
	}
}
