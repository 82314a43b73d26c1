package models

import (
	"time"

	"gorm.io/gorm"
)

// TaskStatus represents the status of a task
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

// Task belongs to a team and is assigned to a single user.
type Task struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Title          string     `json:"title" gorm:"size:255;not null"`
	Description    *string    `json:"description"`
	TeamID         uint       `json:"team_id" gorm:"not null;index"`
	AssignedUserID uint       `json:"assigned_user_id" gorm:"not null;index"`
	Status         TaskStatus `json:"status" gorm:"size:20;not null;default:'pending'"`
	DueDate        *time.Time `json:"due_date"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Team         *Team `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	AssignedUser *User `json:"-" gorm:"foreignKey:AssignedUserID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}

// AssignedTo scopes a task query to the given assignee.
func AssignedTo(userID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("assigned_user_id = ?", userID)
	}
}

// TasksForUser is the lookup behind the legacy per-user listing.
func TasksForUser(db *gorm.DB, userID uint) ([]Task, error) {
	tasks := []Task{}
	err := db.Scopes(AssignedTo(userID)).Order("id asc").Find(&tasks).Error
	return tasks, err
}
