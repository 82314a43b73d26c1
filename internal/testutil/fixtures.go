package testutil

import (
	"fmt"

	"taskboard-api/internal/models"

	"gorm.io/gorm"
)

// CreateUser inserts a user with an unusable password hash.
func CreateUser(db *gorm.DB, name string) (*models.User, error) {
	u := &models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s@example.com", name),
		PasswordHash: "x",
	}
	if err := db.Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// CreateTeam inserts a team and makes every given user a member.
func CreateTeam(db *gorm.DB, name string, members ...*models.User) (*models.Team, error) {
	team := &models.Team{Name: name}
	if err := db.Create(team).Error; err != nil {
		return nil, err
	}
	for _, m := range members {
		if err := db.Create(&models.TeamMember{TeamID: team.ID, UserID: m.ID}).Error; err != nil {
			return nil, err
		}
	}
	return team, nil
}

// CreateTask inserts a pending task in team assigned to assignee.
func CreateTask(db *gorm.DB, team *models.Team, assignee *models.User, title string) (*models.Task, error) {
	task := &models.Task{
		Title:          title,
		TeamID:         team.ID,
		AssignedUserID: assignee.ID,
		Status:         models.StatusPending,
	}
	if err := db.Create(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}
