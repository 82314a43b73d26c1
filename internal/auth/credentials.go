package auth

import (
	"errors"
	"strings"

	"taskboard-api/internal/models"

	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned for any login mismatch. Callers must not
// tell an unknown email apart from a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Authenticate looks up the user by email and checks password.
func Authenticate(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	err := db.Where("email = ?", strings.TrimSpace(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		CheckPassword(password, string(dummyHash))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}
