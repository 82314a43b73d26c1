package models

import "time"

// Team groups users; membership is the root of project and task-creation access.
type Team struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Users is only filled by the show endpoint.
	Users []User `json:"users,omitempty" gorm:"-"`
}

// TableName specifies the table name for Team Model
func (Team) TableName() string {
	return "teams"
}

// TeamMember is a row of the team/user pivot.
type TeamMember struct {
	TeamID    uint      `json:"team_id" gorm:"primaryKey;autoIncrement:false"`
	UserID    uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Team *Team `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	User *User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for TeamMember Model
func (TeamMember) TableName() string {
	return "team_user"
}
