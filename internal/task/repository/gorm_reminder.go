package repository

import (
	"errors"
	"time"

	"taskhub-backend/internal/task/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormReminderRepository implements ReminderRepository using GORM.
type gormReminderRepository struct {
	db *gorm.DB
}

// NewGormReminderRepository creates a new GORM-based ReminderRepository.
func NewGormReminderRepository(db *gorm.DB) ReminderRepository {
	return &gormReminderRepository{db: db}
}

func (r *gormReminderRepository) Create(reminder *domain.Reminder) error {
	if reminder.ID == "" {
		reminder.ID = uuid.New().String()
	}
	reminder.CreatedAt = time.Now()
	reminder.UpdatedAt = time.Now()
	return r.db.Create(reminder).Error
}

func (r *gormReminderRepository) FindByID(id string) (*domain.Reminder, error) {
	var reminder domain.Reminder
	err := r.db.Where("id = ?", id).First(&reminder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reminder, nil
}

func (r *gormReminderRepository) FindByTaskID(taskID string) ([]*domain.Reminder, error) {
	var reminders []*domain.Reminder
	err := r.db.
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&reminders).Error
	return reminders, err
}

func (r *gormReminderRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&domain.Reminder{}).Error
}

// FindPending joins undelivered reminders with their tasks, excluding tasks
// that are soft-deleted or already terminal. Reminders on completed or
// cancelled tasks are thereby implicitly suppressed even though their
// delivered flag is still false.
func (r *gormReminderRepository) FindPending() ([]PendingReminder, error) {
	var reminders []*domain.Reminder
	err := r.db.
		Joins("JOIN tasks ON tasks.id = reminders.task_id").
		Where("reminders.delivered = ?", false).
		Where("tasks.is_deleted = ?", false).
		Where("tasks.status NOT IN ?", []domain.TaskStatus{domain.TaskStatusCompleted, domain.TaskStatusCancelled}).
		Find(&reminders).Error
	if err != nil {
		return nil, err
	}
	if len(reminders) == 0 {
		return nil, nil
	}

	taskIDs := make([]string, 0, len(reminders))
	for _, rem := range reminders {
		taskIDs = append(taskIDs, rem.TaskID)
	}

	var tasks []*domain.Task
	if err := r.db.Where("id IN ?", taskIDs).Find(&tasks).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	pending := make([]PendingReminder, 0, len(reminders))
	for _, rem := range reminders {
		task, ok := byID[rem.TaskID]
		if !ok {
			continue
		}
		pending = append(pending, PendingReminder{Reminder: rem, Task: task})
	}
	return pending, nil
}

// MarkDelivered is a compare-and-set on the delivered flag. The WHERE clause
// makes concurrent deliveries race on a single row update; exactly one caller
// sees RowsAffected == 1.
func (r *gormReminderRepository) MarkDelivered(id string, at time.Time) (bool, error) {
	res := r.db.Model(&domain.Reminder{}).
		Where("id = ? AND delivered = ?", id, false).
		Updates(map[string]interface{}{
			"delivered":    true,
			"delivered_at": at,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
