package domain

import "time"

// Comment is a note on a task by its author, listed in creation order.
// Content changes only through an explicit author edit.
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	TaskID    string    `json:"task_id" gorm:"index;not null"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
