package repository

import (
	"errors"
	"time"

	"taskhub-backend/internal/task/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormTaskRepository implements TaskRepository using GORM.
type gormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GORM-based TaskRepository.
func NewGormTaskRepository(db *gorm.DB) TaskRepository {
	return &gormTaskRepository{db: db}
}

func (r *gormTaskRepository) Create(task *domain.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = time.Now()
	return r.db.Create(task).Error
}

func (r *gormTaskRepository) FindByID(id string) (*domain.Task, error) {
	var task domain.Task
	err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (r *gormTaskRepository) FindByUserID(userID string, filter TaskFilter) ([]*domain.Task, int64, error) {
	var tasks []*domain.Task
	var total int64

	query := r.db.Model(&domain.Task{}).
		Where("tasks.user_id = ? AND tasks.is_deleted = ?", userID, false)

	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.CategoryID != nil {
		query = query.Where("tasks.category_id = ?", *filter.CategoryID)
	}
	if filter.ImportantOnly {
		query = query.Where("tasks.is_important = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Default order: priority level descending with priority-less tasks last,
	// then due date (nulls last), then newest first.
	query = query.
		Joins("LEFT JOIN priorities ON priorities.id = tasks.priority_id").
		Order("CASE WHEN priorities.level IS NULL THEN 1 ELSE 0 END, priorities.level DESC").
		Order("CASE WHEN tasks.due_date IS NULL THEN 1 ELSE 0 END, tasks.due_date ASC").
		Order("tasks.created_at DESC")

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	err := query.Find(&tasks).Error
	return tasks, total, err
}

func (r *gormTaskRepository) Update(task *domain.Task) error {
	task.UpdatedAt = time.Now()
	return r.db.Save(task).Error
}

func (r *gormTaskRepository) CountByStatus(userID string) (map[domain.TaskStatus]int, error) {
	var rows []struct {
		Status domain.TaskStatus
		N      int
	}
	err := r.db.Model(&domain.Task{}).
		Select("status, count(*) as n").
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.TaskStatus]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.N
	}
	return counts, nil
}

func (r *gormTaskRepository) FindOverdueCandidates(userID string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := r.db.
		Where("user_id = ? AND is_deleted = ? AND due_date IS NOT NULL AND status NOT IN ?",
			userID, false,
			[]domain.TaskStatus{domain.TaskStatusCompleted, domain.TaskStatusCancelled}).
		Find(&tasks).Error
	return tasks, err
}
