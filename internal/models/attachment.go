package models

import "time"

// TaskAttachment stores file metadata only; no content is kept.
type TaskAttachment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TaskID    uint      `json:"task_id" gorm:"not null;index"`
	Filename  string    `json:"filename" gorm:"size:255;not null"`
	Filepath  string    `json:"filepath" gorm:"size:1024;not null"`
	Filetype  *string   `json:"filetype" gorm:"size:255"`
	Filesize  *int64    `json:"filesize"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Task *Task `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for TaskAttachment Model
func (TaskAttachment) TableName() string {
	return "task_attachments"
}
