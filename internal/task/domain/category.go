package domain

import "time"

// Category groups one user's tasks by area (work, study, errands). Name is
// unique within the owner's categories. Deactivation is a soft delete.
type Category struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"index:idx_user_category_name,unique;not null"`
	Name        string    `json:"name" gorm:"index:idx_user_category_name,unique;not null"`
	Color       string    `json:"color,omitempty"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// TaskCount is derived at read time and excludes soft-deleted tasks.
	TaskCount int64 `json:"task_count" gorm:"-"`
}

// Priority is a shared (not user-owned) urgency level. Level defines a total
// order, higher meaning more urgent; it drives default task ordering.
type Priority struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Level       int       `json:"level" gorm:"not null"`
	Color       string    `json:"color,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
