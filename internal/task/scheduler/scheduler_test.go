package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"taskhub-backend/internal/task/domain"
	"taskhub-backend/internal/task/repository"
)

var tickNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// memReminderRepo is an in-memory ReminderRepository whose MarkDelivered is a
// real compare-and-set under a mutex, so concurrent deliveries race the same
// way they do against the database row update.
type memReminderRepo struct {
	mu        sync.Mutex
	reminders map[string]*domain.Reminder
	tasks     map[string]*domain.Task
}

func newMemReminderRepo() *memReminderRepo {
	return &memReminderRepo{
		reminders: make(map[string]*domain.Reminder),
		tasks:     make(map[string]*domain.Task),
	}
}

func (r *memReminderRepo) add(task *domain.Task, reminder *domain.Reminder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = task
	reminder.TaskID = task.ID
	r.reminders[reminder.ID] = reminder
}

func (r *memReminderRepo) Create(reminder *domain.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reminders[reminder.ID] = reminder
	return nil
}

func (r *memReminderRepo) FindByID(id string) (*domain.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reminder, ok := r.reminders[id]
	if !ok {
		return nil, nil
	}
	copied := *reminder
	return &copied, nil
}

func (r *memReminderRepo) FindByTaskID(taskID string) ([]*domain.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Reminder
	for _, reminder := range r.reminders {
		if reminder.TaskID == taskID {
			copied := *reminder
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *memReminderRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.reminders, id)
	return nil
}

func (r *memReminderRepo) FindPending() ([]repository.PendingReminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var pending []repository.PendingReminder
	for _, reminder := range r.reminders {
		if reminder.Delivered {
			continue
		}
		task, ok := r.tasks[reminder.TaskID]
		if !ok || task.IsDeleted || task.Status.IsTerminal() {
			continue
		}
		remCopy := *reminder
		taskCopy := *task
		pending = append(pending, repository.PendingReminder{Reminder: &remCopy, Task: &taskCopy})
	}
	return pending, nil
}

func (r *memReminderRepo) MarkDelivered(id string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reminder, ok := r.reminders[id]
	if !ok || reminder.Delivered {
		return false, nil
	}
	reminder.Delivered = true
	delivered := at
	reminder.DeliveredAt = &delivered
	return true, nil
}

// countingNotifier records every Notify call.
type countingNotifier struct {
	calls int64
}

func (n *countingNotifier) Notify(ctx context.Context, reminder *domain.Reminder, task *domain.Task) error {
	atomic.AddInt64(&n.calls, 1)
	return nil
}

func (n *countingNotifier) count() int64 {
	return atomic.LoadInt64(&n.calls)
}

func newTestScheduler(repo *memReminderRepo, notifier Notifier) *ReminderScheduler {
	s := NewReminderScheduler(repo, notifier, time.Minute)
	s.SetClock(func() time.Time { return tickNow })
	return s
}

func TestTickDeliversDueReminder(t *testing.T) {
	repo := newMemReminderRepo()
	notifier := &countingNotifier{}
	s := newTestScheduler(repo, notifier)

	due := tickNow.Add(30 * time.Minute)
	task := &domain.Task{ID: "task-1", UserID: "user-1", Status: domain.TaskStatusPending, DueDate: &due}
	repo.add(task, &domain.Reminder{ID: "rem-1", UserID: "user-1", Timing: domain.Timing1HourBefore})

	s.Tick(context.Background())

	if got := notifier.count(); got != 1 {
		t.Fatalf("expected 1 notification, got %d", got)
	}
	stored, err := repo.FindByID("rem-1")
	if err != nil {
		t.Fatalf("find reminder: %v", err)
	}
	if !stored.Delivered || stored.DeliveredAt == nil || !stored.DeliveredAt.Equal(tickNow) {
		t.Fatalf("expected delivered at %v, got %+v", tickNow, stored)
	}
}

func TestTickSkipsFutureReminder(t *testing.T) {
	repo := newMemReminderRepo()
	notifier := &countingNotifier{}
	s := newTestScheduler(repo, notifier)

	// Due in 2 hours, timing 1 hour before: fires an hour from now.
	due := tickNow.Add(2 * time.Hour)
	task := &domain.Task{ID: "task-1", UserID: "user-1", Status: domain.TaskStatusPending, DueDate: &due}
	repo.add(task, &domain.Reminder{ID: "rem-1", UserID: "user-1", Timing: domain.Timing1HourBefore})

	s.Tick(context.Background())

	if got := notifier.count(); got != 0 {
		t.Fatalf("expected no notifications yet, got %d", got)
	}
}

func TestTickIsIdempotent(t *testing.T) {
	repo := newMemReminderRepo()
	notifier := &countingNotifier{}
	s := newTestScheduler(repo, notifier)

	due := tickNow.Add(10 * time.Minute)
	task := &domain.Task{ID: "task-1", UserID: "user-1", Status: domain.TaskStatusInProgress, DueDate: &due}
	repo.add(task, &domain.Reminder{ID: "rem-1", UserID: "user-1", Timing: domain.Timing15MinutesBefore})

	s.Tick(context.Background())
	s.Tick(context.Background())
	s.Tick(context.Background())

	if got := notifier.count(); got != 1 {
		t.Fatalf("expected exactly 1 notification across repeated ticks, got %d", got)
	}
}

func TestConcurrentDeliveryFiresOnce(t *testing.T) {
	repo := newMemReminderRepo()
	notifier := &countingNotifier{}
	s := newTestScheduler(repo, notifier)

	due := tickNow.Add(time.Minute)
	task := &domain.Task{ID: "task-1", UserID: "user-1", Status: domain.TaskStatusPending, DueDate: &due}
	repo.add(task, &domain.Reminder{ID: "rem-1", UserID: "user-1", Timing: domain.Timing15MinutesBefore})

	pending, err := repo.FindPending()
	if err != nil {
		t.Fatalf("find pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending reminder, got %d", len(pending))
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Deliver(context.Background(), pending[0], tickNow); err != nil {
				t.Errorf("deliver: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := notifier.count(); got != 1 {
		t.Fatalf("expected exactly 1 notification under 16 racers, got %d", got)
	}
}

func TestTerminalTaskSuppressesReminder(t *testing.T) {
	repo := newMemReminderRepo()
	notifier := &countingNotifier{}
	s := newTestScheduler(repo, notifier)

	due := tickNow.Add(time.Minute)
	completed := &domain.Task{ID: "task-1", UserID: "user-1", Status: domain.TaskStatusCompleted, DueDate: &due}
	cancelled := &domain.Task{ID: "task-2", UserID: "user-1", Status: domain.TaskStatusCancelled, DueDate: &due}
	repo.add(completed, &domain.Reminder{ID: "rem-1", UserID: "user-1", Timing: domain.Timing15MinutesBefore})
	repo.add(cancelled, &domain.Reminder{ID: "rem-2", UserID: "user-1", Timing: domain.Timing15MinutesBefore})

	s.Tick(context.Background())

	if got := notifier.count(); got != 0 {
		t.Fatalf("terminal tasks must not fire reminders, got %d", got)
	}
	stored, err := repo.FindByID("rem-1")
	if err != nil {
		t.Fatalf("find reminder: %v", err)
	}
	if stored.Delivered {
		t.Fatal("suppressed reminder must stay undelivered")
	}
}

func TestDueDateEditMovesFireTime(t *testing.T) {
	repo := newMemReminderRepo()
	notifier := &countingNotifier{}
	s := newTestScheduler(repo, notifier)

	// Initially due far out: nothing fires.
	due := tickNow.Add(48 * time.Hour)
	task := &domain.Task{ID: "task-1", UserID: "user-1", Status: domain.TaskStatusPending, DueDate: &due}
	repo.add(task, &domain.Reminder{ID: "rem-1", UserID: "user-1", Timing: domain.Timing1DayBefore})

	s.Tick(context.Background())
	if got := notifier.count(); got != 0 {
		t.Fatalf("expected no notifications before the edit, got %d", got)
	}

	// The due date moves to tomorrow; 1 day before is now in the past.
	moved := tickNow.Add(12 * time.Hour)
	repo.mu.Lock()
	repo.tasks["task-1"].DueDate = &moved
	repo.mu.Unlock()

	s.Tick(context.Background())
	if got := notifier.count(); got != 1 {
		t.Fatalf("expected the edited due date to make the reminder due, got %d", got)
	}
}

func TestDueDateRemovalLeavesReminderPending(t *testing.T) {
	repo := newMemReminderRepo()
	notifier := &countingNotifier{}
	s := newTestScheduler(repo, notifier)

	due := tickNow.Add(time.Minute)
	task := &domain.Task{ID: "task-1", UserID: "user-1", Status: domain.TaskStatusPending, DueDate: &due}
	repo.add(task, &domain.Reminder{ID: "rem-1", UserID: "user-1", Timing: domain.Timing15MinutesBefore})

	repo.mu.Lock()
	repo.tasks["task-1"].DueDate = nil
	repo.mu.Unlock()

	s.Tick(context.Background())

	if got := notifier.count(); got != 0 {
		t.Fatalf("unresolvable reminder must not fire, got %d", got)
	}
	stored, err := repo.FindByID("rem-1")
	if err != nil {
		t.Fatalf("find reminder: %v", err)
	}
	if stored.Delivered {
		t.Fatal("unresolvable reminder must stay undelivered")
	}
}

func TestAbsoluteReminderIgnoresDueDate(t *testing.T) {
	repo := newMemReminderRepo()
	notifier := &countingNotifier{}
	s := newTestScheduler(repo, notifier)

	due := tickNow.Add(72 * time.Hour)
	at := tickNow.Add(-time.Minute)
	task := &domain.Task{ID: "task-1", UserID: "user-1", Status: domain.TaskStatusPending, DueDate: &due}
	repo.add(task, &domain.Reminder{ID: "rem-1", UserID: "user-1", Timing: domain.TimingAbsolute, AbsoluteAt: &at})

	s.Tick(context.Background())

	if got := notifier.count(); got != 1 {
		t.Fatalf("expected absolute reminder to fire, got %d", got)
	}
}
