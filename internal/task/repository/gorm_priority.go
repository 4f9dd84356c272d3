package repository

import (
	"errors"
	"time"

	"taskhub-backend/internal/task/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormPriorityRepository implements PriorityRepository using GORM.
type gormPriorityRepository struct {
	db *gorm.DB
}

// NewGormPriorityRepository creates a new GORM-based PriorityRepository.
func NewGormPriorityRepository(db *gorm.DB) PriorityRepository {
	return &gormPriorityRepository{db: db}
}

func (r *gormPriorityRepository) FindByID(id string) (*domain.Priority, error) {
	var priority domain.Priority
	err := r.db.Where("id = ?", id).First(&priority).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &priority, nil
}

func (r *gormPriorityRepository) FindAll() ([]*domain.Priority, error) {
	var priorities []*domain.Priority
	err := r.db.Order("level ASC").Find(&priorities).Error
	return priorities, err
}

// Seed inserts the default levels once. Priorities are shared across users,
// so seeding happens at startup, not per request.
func (r *gormPriorityRepository) Seed() error {
	var count int64
	if err := r.db.Model(&domain.Priority{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []*domain.Priority{
		{Name: "Low", Level: 1, Color: "#28a745"},
		{Name: "Medium", Level: 2, Color: "#ffc107"},
		{Name: "High", Level: 3, Color: "#dc3545"},
	}
	for _, p := range defaults {
		p.ID = uuid.New().String()
		p.CreatedAt = time.Now()
		p.UpdatedAt = time.Now()
	}
	return r.db.Create(&defaults).Error
}
