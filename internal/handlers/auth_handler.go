package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"taskboard-api/internal/auth"
	"taskboard-api/internal/logging"
	"taskboard-api/internal/middleware"
	"taskboard-api/internal/models"
	"taskboard-api/internal/realtime"
	"taskboard-api/internal/validation"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const tokenName = "api-token"

// RegisterRequest represents the registration payload
type RegisterRequest struct {
	Name                 string `json:"name" binding:"required,max=255"`
	Email                string `json:"email" binding:"required,email,max=255"`
	Password             string `json:"password" binding:"required,min=6,max=72"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func abortEmailTaken(c *gin.Context) {
	errs := validation.Errors{}
	errs.Add("email", "The email has already been taken.")
	abortWithValidation(c, errs)
}

// Register handles POST /api/register
func Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	// bcrypt rejects inputs longer than 72 bytes; max=72 above counts runes.
	if len(req.Password) > auth.MaxPasswordBytes {
		errs := validation.Errors{}
		errs.Add("password", fmt.Sprintf("The password field must not be greater than %d bytes.", auth.MaxPasswordBytes))
		abortWithValidation(c, errs)
		return
	}

	var count int64
	if err := db(c).Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		abortWithServerError(c, "REGISTER_FAILED", err)
		return
	}
	if count > 0 {
		abortEmailTaken(c)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		abortWithServerError(c, "REGISTER_FAILED", err)
		return
	}

	user := models.User{Name: req.Name, Email: req.Email, PasswordHash: hash}
	if err := db(c).Create(&user).Error; err != nil {
		// a concurrent registration can take the email after the count above
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			abortEmailTaken(c)
			return
		}
		abortWithServerError(c, "REGISTER_FAILED", err)
		return
	}

	token, err := auth.IssueToken(db(c), &user, tokenName)
	if err != nil {
		abortWithServerError(c, "TOKEN_ISSUE_FAILED", err)
		return
	}

	logging.Logger.Infof("Event ID: USER_REGISTERED, Description: User %d registered", user.ID)
	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: &user})
}

// Login handles POST /api/login
func Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := auth.Authenticate(db(c), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			logging.Logger.Warnf("Event ID: LOGIN_FAILED, Description: Invalid credentials from %s", c.ClientIP())
			abortWithMessage(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		abortWithServerError(c, "LOGIN_FAILED", err)
		return
	}

	token, err := auth.IssueToken(db(c), user, tokenName)
	if err != nil {
		abortWithServerError(c, "TOKEN_ISSUE_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
}

// Logout handles POST /api/logout
// Only the token presented on this request is revoked.
func Logout(c *gin.Context) {
	if tokenID := c.GetString(middleware.TokenIDKey); tokenID != "" {
		if err := auth.RevokeToken(db(c), tokenID); err != nil {
			abortWithServerError(c, "LOGOUT_FAILED", err)
			return
		}
		realtime.GetHub().Drop("", subscribedWith(tokenID))
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// CurrentUser handles GET /api/user
func CurrentUser(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}
