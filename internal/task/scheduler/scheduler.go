package scheduler

import (
	"context"
	"log"
	"time"

	"taskhub-backend/internal/task/domain"
	"taskhub-backend/internal/task/repository"
)

// Notifier pushes one reminder to its downstream channel (FCM, email). The
// scheduler claims the reminder before calling it, so implementations may
// assume at-most-once invocation per reminder.
type Notifier interface {
	Notify(ctx context.Context, reminder *domain.Reminder, task *domain.Task) error
}

// ReminderScheduler periodically finds due reminders and delivers each one
// exactly once. Delivery is guarded by a compare-and-set on the reminder's
// delivered flag, so overlapping ticks (or a tick racing a manual
// reschedule) never double-fire.
type ReminderScheduler struct {
	reminderRepo repository.ReminderRepository
	notifier     Notifier
	interval     time.Duration
	stopChan     chan struct{}
	now          func() time.Time
}

// NewReminderScheduler creates a new scheduler.
func NewReminderScheduler(reminderRepo repository.ReminderRepository, notifier Notifier, interval time.Duration) *ReminderScheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &ReminderScheduler{
		reminderRepo: reminderRepo,
		notifier:     notifier,
		interval:     interval,
		stopChan:     make(chan struct{}),
		now:          time.Now,
	}
}

// SetClock overrides the wall clock. Tests only.
func (s *ReminderScheduler) SetClock(now func() time.Time) {
	s.now = now
}

// Start begins the scheduler loop.
func (s *ReminderScheduler) Start() {
	log.Printf("[ReminderScheduler] Starting (interval: %s)", s.interval)

	go func() {
		// Run immediately on start
		s.Tick(context.Background())

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.Tick(context.Background())
			case <-s.stopChan:
				log.Println("[ReminderScheduler] Stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the scheduler.
func (s *ReminderScheduler) Stop() {
	close(s.stopChan)
}

// Tick runs one delivery pass at the injected clock's current time.
func (s *ReminderScheduler) Tick(ctx context.Context) {
	now := s.now()

	due, err := s.DueReminders(now)
	if err != nil {
		log.Printf("[ReminderScheduler] Error finding due reminders: %v", err)
		return
	}
	if len(due) == 0 {
		return
	}

	log.Printf("[ReminderScheduler] Found %d due reminders", len(due))
	for _, p := range due {
		if err := s.Deliver(ctx, p, now); err != nil {
			log.Printf("[ReminderScheduler] Error delivering reminder %s: %v", p.Reminder.ID, err)
		}
	}
}

// DueReminders returns the undelivered reminders whose resolved fire time is
// at or before now. Each call is a fresh read: fire times are recomputed
// from the tasks' current due dates, and reminders whose task reached a
// terminal state are excluded by the repository query even though their
// delivered flag is still false.
func (s *ReminderScheduler) DueReminders(now time.Time) ([]repository.PendingReminder, error) {
	pending, err := s.reminderRepo.FindPending()
	if err != nil {
		return nil, err
	}

	var due []repository.PendingReminder
	for _, p := range pending {
		fireAt, err := domain.ResolveFireTime(p.Reminder, p.Task)
		if err != nil {
			// No basis to fire (due date removed after creation); leave it
			// undelivered until the task gets a due date again.
			continue
		}
		if !fireAt.After(now) {
			due = append(due, p)
		}
	}
	return due, nil
}

// Deliver claims the reminder and, having won the claim, pushes it
// downstream. Losing the compare-and-set means another racer delivered;
// that is expected and reported as success. A notification failure after a
// won claim is logged but not retried here: retry policy belongs to the
// channel, and re-firing would break the at-most-once guarantee.
func (s *ReminderScheduler) Deliver(ctx context.Context, p repository.PendingReminder, at time.Time) error {
	won, err := s.reminderRepo.MarkDelivered(p.Reminder.ID, at)
	if err != nil {
		return err
	}
	if !won {
		// The other racer already delivered.
		return nil
	}

	if err := s.notifier.Notify(ctx, p.Reminder, p.Task); err != nil {
		log.Printf("[ReminderScheduler] Notification for reminder %s failed: %v", p.Reminder.ID, err)
	}
	return nil
}
