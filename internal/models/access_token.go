package models

import "time"

// AccessToken records an issued bearer token so it can be revoked on its own.
// ID is the JWT "jti" claim.
type AccessToken struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    uint      `gorm:"not null;index"`
	Name      string    `gorm:"size:255;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time

	User *User `gorm:"constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for AccessToken Model
func (AccessToken) TableName() string {
	return "personal_access_tokens"
}
