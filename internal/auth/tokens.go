package auth

import (
	"errors"
	"fmt"
	"time"

	"taskboard-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrInvalidToken is returned when a token fails signature or claim checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenRevoked is returned when a validly signed token has no stored record.
	ErrTokenRevoked = errors.New("token revoked")
)

// IssueToken records a new access token for user and returns its signed form.
func IssueToken(db *gorm.DB, user *models.User, name string) (string, error) {
	record := models.AccessToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Name:      name,
		ExpiresAt: time.Now().Add(current().TTL),
	}
	if err := db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("store access token: %w", err)
	}

	token, err := GenerateToken(user.ID, record.ID, record.ExpiresAt)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return token, nil
}

// ResolveToken validates tokenString and returns its owner and stored record.
func ResolveToken(db *gorm.DB, tokenString string) (*models.User, *models.AccessToken, error) {
	claims, err := ValidateToken(tokenString)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var record models.AccessToken
	if err := db.Where("id = ? AND user_id = ?", claims.ID, claims.UserID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTokenRevoked
		}
		return nil, nil, fmt.Errorf("load access token: %w", err)
	}

	var user models.User
	if err := db.First(&user, record.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTokenRevoked
		}
		return nil, nil, fmt.Errorf("load token owner: %w", err)
	}
	return &user, &record, nil
}

// RevokeToken deletes a single access token. Unknown ids are ignored.
func RevokeToken(db *gorm.DB, tokenID string) error {
	return db.Where("id = ?", tokenID).Delete(&models.AccessToken{}).Error
}
