package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"taskboard-api/internal/database"
	"taskboard-api/internal/logging"
	"taskboard-api/internal/middleware"
	"taskboard-api/internal/models"
	"taskboard-api/internal/policy"
	"taskboard-api/internal/realtime"
	"taskboard-api/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"
)

// db returns the shared connection bound to the request context.
func db(c *gin.Context) *gorm.DB {
	return database.GetDB().WithContext(c.Request.Context())
}

func currentUser(c *gin.Context) *models.User {
	return middleware.CurrentUser(c)
}

func abortWithMessage(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}

func abortNotFound(c *gin.Context) {
	abortWithMessage(c, http.StatusNotFound, "Not Found")
}

func abortWithValidation(c *gin.Context, errs validation.Errors) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
		"message": errs.First(),
		"errors":  errs,
	})
}

func abortWithServerError(c *gin.Context, event string, err error) {
	logging.Logger.Errorf("Event ID: %s, Description: %s %s failed: %v", event, c.Request.Method, c.FullPath(), err)
	abortWithMessage(c, http.StatusInternalServerError, "Server Error")
}

// bindJSON binds and validates the body into req. An empty body is validated
// as if it were "{}". It writes a 422 response and returns false on failure.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(req)
	}
	if err != nil {
		abortWithValidation(c, validation.FromBindError(err))
		return false
	}
	return true
}

// authorize runs the gate and writes the refusal response when needed.
func authorize(c *gin.Context, res policy.Resource, action policy.Action) bool {
	gate := policy.NewGate(database.NewMembershipStore(db(c)))
	decision, err := gate.Authorize(c.Request.Context(), currentUser(c), res, action)
	if err != nil {
		abortWithServerError(c, "AUTHORIZATION_FAILED", err)
		return false
	}
	if !decision.Allowed() {
		abortWithMessage(c, decision.Status(), decision.Message())
		return false
	}
	return true
}

// findByParam loads the row whose primary key is the named path parameter.
// Missing rows and non-numeric ids both answer 404.
func findByParam[T any](c *gin.Context, param string) (*T, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		abortNotFound(c)
		return nil, false
	}

	var row T
	if err := db(c).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			abortNotFound(c)
		} else {
			abortWithServerError(c, "LOOKUP_FAILED", err)
		}
		return nil, false
	}
	return &row, true
}

// exists reports whether a row of model with the given id is stored.
func exists(c *gin.Context, model any, id uint) (bool, error) {
	var count int64
	err := db(c).Model(model).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func publish(channel, event string, id uint) {
	realtime.GetHub().Publish(channel, realtime.Event{Event: event, ID: id})
}
