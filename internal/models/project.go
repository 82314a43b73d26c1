package models

import "time"

// Project belongs to exactly one team.
type Project struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description *string   `json:"description"`
	TeamID      uint      `json:"team_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Team *Team `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Project Model
func (Project) TableName() string {
	return "projects"
}
