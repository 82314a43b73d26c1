package handlers

import (
	"net/http"

	"taskboard-api/internal/models"
	"taskboard-api/internal/policy"

	"github.com/gin-gonic/gin"
)

// CreateAttachmentRequest carries metadata only; no file content is accepted.
type CreateAttachmentRequest struct {
	Filename string  `json:"filename" binding:"required,max=255"`
	Filepath string  `json:"filepath" binding:"required,max=1024"`
	Filetype *string `json:"filetype" binding:"omitnil,max=255"`
	Filesize *int64  `json:"filesize" binding:"omitnil,min=0"`
}

// GetAttachments handles GET /api/tasks/:id/attachments
func GetAttachments(c *gin.Context) {
	task, ok := findByParam[models.Task](c, "id")
	if !ok {
		return
	}
	if !authorize(c, policy.Attachment{Task: task}, policy.ViewAny) {
		return
	}

	attachments := []models.TaskAttachment{}
	if err := db(c).Where("task_id = ?", task.ID).Order("id asc").Find(&attachments).Error; err != nil {
		abortWithServerError(c, "ATTACHMENT_LIST_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, attachments)
}

// CreateAttachment handles POST /api/tasks/:id/attachments
func CreateAttachment(c *gin.Context) {
	task, ok := findByParam[models.Task](c, "id")
	if !ok {
		return
	}
	if !authorize(c, policy.Attachment{Task: task}, policy.Create) {
		return
	}

	var req CreateAttachmentRequest
	if !bindJSON(c, &req) {
		return
	}

	attachment := models.TaskAttachment{
		TaskID:   task.ID,
		Filename: req.Filename,
		Filepath: req.Filepath,
		Filetype: req.Filetype,
		Filesize: req.Filesize,
	}
	if err := db(c).Create(&attachment).Error; err != nil {
		abortWithServerError(c, "ATTACHMENT_CREATE_FAILED", err)
		return
	}

	c.JSON(http.StatusCreated, attachment)
}

// DeleteAttachment handles DELETE /api/tasks/:id/attachments/:attachment
func DeleteAttachment(c *gin.Context) {
	task, ok := findByParam[models.Task](c, "id")
	if !ok {
		return
	}
	attachment, ok := findByParam[models.TaskAttachment](c, "attachment")
	if !ok {
		return
	}
	if !authorize(c, policy.Attachment{Task: task, Attachment: attachment}, policy.Delete) {
		return
	}

	if err := db(c).Delete(attachment).Error; err != nil {
		abortWithServerError(c, "ATTACHMENT_DELETE_FAILED", err)
		return
	}

	c.Status(http.StatusNoContent)
}
