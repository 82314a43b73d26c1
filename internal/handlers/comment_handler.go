package handlers

import (
	"net/http"

	"taskboard-api/internal/models"
	"taskboard-api/internal/policy"
	"taskboard-api/internal/realtime"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CommentRequest is used to create and to edit a comment.
type CommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

func withAuthor(db *gorm.DB) *gorm.DB {
	return db.Preload("User", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "name", "email")
	})
}

// loadComment resolves the path task and comment and authorizes action on them.
func loadComment(c *gin.Context, action policy.Action) (*models.TaskComment, bool) {
	task, ok := findByParam[models.Task](c, "id")
	if !ok {
		return nil, false
	}
	comment, ok := findByParam[models.TaskComment](c, "comment")
	if !ok {
		return nil, false
	}
	if !authorize(c, policy.Comment{Task: task, Comment: comment}, action) {
		return nil, false
	}
	return comment, true
}

// GetComments handles GET /api/tasks/:id/comments
// Comments are returned oldest first with a reduced author projection.
func GetComments(c *gin.Context) {
	task, ok := findByParam[models.Task](c, "id")
	if !ok {
		return
	}
	if !authorize(c, policy.Comment{Task: task}, policy.ViewAny) {
		return
	}

	var comments []models.TaskComment
	err := db(c).Scopes(withAuthor).
		Where("task_id = ?", task.ID).
		Order("created_at asc").
		Order("id asc").
		Find(&comments).Error
	if err != nil {
		abortWithServerError(c, "COMMENT_LIST_FAILED", err)
		return
	}

	resp := make([]models.CommentWithAuthor, 0, len(comments))
	for _, cm := range comments {
		resp = append(resp, cm.WithAuthor())
	}
	c.JSON(http.StatusOK, resp)
}

// CreateComment handles POST /api/tasks/:id/comments
func CreateComment(c *gin.Context) {
	task, ok := findByParam[models.Task](c, "id")
	if !ok {
		return
	}
	if !authorize(c, policy.Comment{Task: task}, policy.Create) {
		return
	}

	var req CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	user := currentUser(c)
	comment := models.TaskComment{TaskID: task.ID, UserID: user.ID, Comment: req.Comment}
	if err := db(c).Create(&comment).Error; err != nil {
		abortWithServerError(c, "COMMENT_CREATE_FAILED", err)
		return
	}
	comment.User = user

	publish(realtime.ForUser(task.AssignedUserID), "comment.created", comment.ID)
	c.JSON(http.StatusCreated, comment.WithAuthor())
}

// UpdateComment handles PUT/PATCH /api/tasks/:id/comments/:comment
// Only the author, while assigned to the task, may edit.
func UpdateComment(c *gin.Context) {
	comment, ok := loadComment(c, policy.Update)
	if !ok {
		return
	}

	var req CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment.Comment = req.Comment
	if err := db(c).Save(comment).Error; err != nil {
		abortWithServerError(c, "COMMENT_UPDATE_FAILED", err)
		return
	}
	comment.User = currentUser(c)

	c.JSON(http.StatusOK, comment.WithAuthor())
}

// DeleteComment handles DELETE /api/tasks/:id/comments/:comment
func DeleteComment(c *gin.Context) {
	comment, ok := loadComment(c, policy.Delete)
	if !ok {
		return
	}

	if err := db(c).Delete(comment).Error; err != nil {
		abortWithServerError(c, "COMMENT_DELETE_FAILED", err)
		return
	}

	c.Status(http.StatusNoContent)
}
