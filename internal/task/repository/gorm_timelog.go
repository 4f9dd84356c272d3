package repository

import (
	"time"

	"taskhub-backend/internal/task/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormTimeLogRepository implements TimeLogRepository using GORM. The ledger
// is append-only: no Update or Delete exists at the interface.
type gormTimeLogRepository struct {
	db *gorm.DB
}

// NewGormTimeLogRepository creates a new GORM-based TimeLogRepository.
func NewGormTimeLogRepository(db *gorm.DB) TimeLogRepository {
	return &gormTimeLogRepository{db: db}
}

func (r *gormTimeLogRepository) Create(log *domain.TimeLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	log.CreatedAt = time.Now()
	return r.db.Create(log).Error
}

func (r *gormTimeLogRepository) FindByTaskID(taskID string) ([]*domain.TimeLog, error) {
	var logs []*domain.TimeLog
	err := r.db.
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}

func (r *gormTimeLogRepository) FindByUserInWindow(userID string, from, to time.Time) ([]*domain.TimeLog, error) {
	var logs []*domain.TimeLog
	err := r.db.
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}
