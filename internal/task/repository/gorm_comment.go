package repository

import (
	"errors"
	"time"

	"taskhub-backend/internal/task/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormCommentRepository implements CommentRepository using GORM.
type gormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GORM-based CommentRepository.
func NewGormCommentRepository(db *gorm.DB) CommentRepository {
	return &gormCommentRepository{db: db}
}

func (r *gormCommentRepository) Create(comment *domain.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = time.Now()
	return r.db.Create(comment).Error
}

func (r *gormCommentRepository) FindByID(id string) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.db.Where("id = ?", id).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

func (r *gormCommentRepository) FindByTaskID(taskID string) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	err := r.db.
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *gormCommentRepository) Update(comment *domain.Comment) error {
	comment.UpdatedAt = time.Now()
	return r.db.Save(comment).Error
}
