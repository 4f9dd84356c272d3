package repository

import (
	"errors"
	"time"

	"taskhub-backend/internal/task/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormCategoryRepository implements CategoryRepository using GORM.
type gormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GORM-based CategoryRepository.
func NewGormCategoryRepository(db *gorm.DB) CategoryRepository {
	return &gormCategoryRepository{db: db}
}

func (r *gormCategoryRepository) Create(category *domain.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	category.IsActive = true
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()
	return r.db.Create(category).Error
}

func (r *gormCategoryRepository) FindByID(id string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *gormCategoryRepository) FindByName(userID, name string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.Where("user_id = ? AND name = ?", userID, name).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *gormCategoryRepository) FindByUserID(userID string) ([]*domain.Category, error) {
	var categories []*domain.Category
	err := r.db.
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}

	for _, c := range categories {
		count, err := r.TaskCount(c.ID)
		if err != nil {
			return nil, err
		}
		c.TaskCount = count
	}
	return categories, nil
}

func (r *gormCategoryRepository) Update(category *domain.Category) error {
	category.UpdatedAt = time.Now()
	return r.db.Save(category).Error
}

// Ensure is an explicit get-or-create on (user, name). A transaction keeps
// the lookup and insert atomic against the per-user unique index.
func (r *gormCategoryRepository) Ensure(userID, name string) (*domain.Category, error) {
	category := &domain.Category{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Where("user_id = ? AND name = ?", userID, name).
			FirstOrCreate(category).Error
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (r *gormCategoryRepository) TaskCount(categoryID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Task{}).
		Where("category_id = ? AND is_deleted = ?", categoryID, false).
		Count(&count).Error
	return count, err
}
