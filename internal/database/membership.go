package database

import (
	"context"

	"taskboard-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MembershipStore reads and writes the team_user pivot.
type MembershipStore struct {
	db *gorm.DB
}

func NewMembershipStore(db *gorm.DB) *MembershipStore {
	return &MembershipStore{db: db}
}

// IsMember reports whether userID belongs to teamID.
func (s *MembershipStore) IsMember(ctx context.Context, userID, teamID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error
	return count > 0, err
}

// Add attaches userID to teamID. Adding an existing member is a no-op.
func (s *MembershipStore) Add(ctx context.Context, teamID, userID uint) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.TeamMember{TeamID: teamID, UserID: userID}).Error
}

// Remove detaches userID from teamID.
func (s *MembershipStore) Remove(ctx context.Context, teamID, userID uint) error {
	return s.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&models.TeamMember{}).Error
}

// TeamIDs returns the ids of every team userID belongs to.
func (s *MembershipStore) TeamIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	err := s.db.WithContext(ctx).
		Model(&models.TeamMember{}).
		Where("user_id = ?", userID).
		Pluck("team_id", &ids).Error
	return ids, err
}

// Teams returns the teams userID belongs to, oldest first.
func (s *MembershipStore) Teams(ctx context.Context, userID uint) ([]models.Team, error) {
	teams := []models.Team{}
	err := s.db.WithContext(ctx).
		Joins("JOIN team_user ON team_user.team_id = teams.id").
		Where("team_user.user_id = ?", userID).
		Order("teams.id asc").
		Find(&teams).Error
	return teams, err
}

// Members returns the users of teamID in the order they joined.
func (s *MembershipStore) Members(ctx context.Context, teamID uint) ([]models.User, error) {
	users := []models.User{}
	err := s.db.WithContext(ctx).
		Joins("JOIN team_user ON team_user.user_id = users.id").
		Where("team_user.team_id = ?", teamID).
		Order("team_user.created_at asc, users.id asc").
		Find(&users).Error
	return users, err
}
