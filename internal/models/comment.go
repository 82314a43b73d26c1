package models

import "time"

// TaskComment is a note left on a task by its author.
type TaskComment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TaskID    uint      `json:"task_id" gorm:"not null;index"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Comment   string    `json:"comment" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Task *Task `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	User *User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for TaskComment Model
func (TaskComment) TableName() string {
	return "task_comments"
}

// CommentWithAuthor is the serialised form of a comment.
type CommentWithAuthor struct {
	ID        uint         `json:"id"`
	TaskID    uint         `json:"task_id"`
	UserID    uint         `json:"user_id"`
	Comment   string       `json:"comment"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	User      *UserSummary `json:"user"`
}

// WithAuthor builds the response shape; User must be preloaded for the author to appear.
func (c TaskComment) WithAuthor() CommentWithAuthor {
	out := CommentWithAuthor{
		ID:        c.ID,
		TaskID:    c.TaskID,
		UserID:    c.UserID,
		Comment:   c.Comment,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.User != nil {
		s := c.User.Summary()
		out.User = &s
	}
	return out
}
