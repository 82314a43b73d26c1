package handlers

import (
	"net/http"
	"time"

	"taskboard-api/internal/logging"
	"taskboard-api/internal/models"
	"taskboard-api/internal/policy"
	"taskboard-api/internal/realtime"
	"taskboard-api/internal/validation"

	"github.com/gin-gonic/gin"
)

// CreateTaskRequest represents the request payload for creating a task
type CreateTaskRequest struct {
	Title          string  `json:"title" binding:"required,max=255"`
	Description    *string `json:"description"`
	TeamID         uint    `json:"team_id" binding:"required"`
	AssignedUserID *uint   `json:"assigned_user_id"`
	Status         *string `json:"status" binding:"omitnil,oneof=pending in_progress completed"`
	DueDate        *string `json:"due_date"`
}

// UpdateTaskRequest represents the request payload for updating a task.
// The assignee is fixed at creation and cannot be changed here.
type UpdateTaskRequest struct {
	Title       *string          `json:"title" binding:"omitnil,min=1,max=255"`
	Description Nullable[string] `json:"description"`
	Status      *string          `json:"status" binding:"omitnil,oneof=pending in_progress completed"`
	DueDate     Nullable[string] `json:"due_date"`
}

func parseDateFlexible(dateStr string) (time.Time, bool) {
	if dateStr == "" {
		return time.Time{}, false
	}
	layouts := []string{
		"2006-01-02",  // ISO date
		time.RFC3339,  // full RFC3339
		"2 Jan 2006",  // e.g., 30 Oct 2025
		"02 Jan 2006", // zero-padded day
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseDueDate validates an optional due date into errs.
func parseDueDate(raw *string, errs validation.Errors) *time.Time {
	if raw == nil {
		return nil
	}
	t, ok := parseDateFlexible(*raw)
	if !ok {
		errs.Add("due_date", "The due date field must be a valid date.")
		return nil
	}
	return &t
}

// GetTasks handles GET /api/tasks
// Returns tasks assigned to the requester, newest first.
func GetTasks(c *gin.Context) {
	tasks := []models.Task{}
	err := db(c).
		Scopes(models.AssignedTo(currentUser(c).ID)).
		Order("created_at desc").
		Order("id desc").
		Find(&tasks).Error
	if err != nil {
		abortWithServerError(c, "TASK_LIST_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// GetTasksForUser handles GET /api/user/tasks
// Legacy listing kept for older clients; prefer GET /api/tasks.
func GetTasksForUser(c *gin.Context) {
	tasks, err := models.TasksForUser(db(c), currentUser(c).ID)
	if err != nil {
		abortWithServerError(c, "TASK_LIST_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// CreateTask handles POST /api/tasks
// The requester must belong to the team; the assignee defaults to the requester.
func CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	errs := validation.Errors{}
	dueDate := parseDueDate(req.DueDate, errs)
	if ok, err := exists(c, &models.Team{}, req.TeamID); err != nil {
		abortWithServerError(c, "TASK_CREATE_FAILED", err)
		return
	} else if !ok {
		errs.Add("team_id", "The selected team id is invalid.")
	}
	if req.AssignedUserID != nil {
		if ok, err := exists(c, &models.User{}, *req.AssignedUserID); err != nil {
			abortWithServerError(c, "TASK_CREATE_FAILED", err)
			return
		} else if !ok {
			errs.Add("assigned_user_id", "The selected assigned user id is invalid.")
		}
	}
	if errs.Any() {
		abortWithValidation(c, errs)
		return
	}

	if !authorize(c, policy.Task{TeamID: req.TeamID}, policy.Create) {
		return
	}

	user := currentUser(c)
	task := models.Task{
		Title:          req.Title,
		Description:    req.Description,
		TeamID:         req.TeamID,
		AssignedUserID: user.ID,
		Status:         models.StatusPending,
		DueDate:        dueDate,
	}
	if req.AssignedUserID != nil {
		task.AssignedUserID = *req.AssignedUserID
	}
	if req.Status != nil {
		task.Status = models.TaskStatus(*req.Status)
	}

	if err := db(c).Create(&task).Error; err != nil {
		abortWithServerError(c, "TASK_CREATE_FAILED", err)
		return
	}

	logging.Logger.Infof("Event ID: TASK_CREATED, Description: Task %d created by user %d for user %d", task.ID, user.ID, task.AssignedUserID)
	publish(realtime.ForUser(task.AssignedUserID), "task.created", task.ID)
	c.JSON(http.StatusCreated, task)
}

// GetTaskByID handles GET /api/tasks/:id
// Only the assignee may read a task; team membership is not re-checked.
func GetTaskByID(c *gin.Context) {
	task, ok := findByParam[models.Task](c, "id")
	if !ok {
		return
	}
	if !authorize(c, policy.TaskOf(task), policy.View) {
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTask handles PUT/PATCH /api/tasks/:id
func UpdateTask(c *gin.Context) {
	task, ok := findByParam[models.Task](c, "id")
	if !ok {
		return
	}
	if !authorize(c, policy.TaskOf(task), policy.Update) {
		return
	}

	var req UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	errs := validation.Errors{}
	dueDate := parseDueDate(req.DueDate.Value, errs)
	if errs.Any() {
		abortWithValidation(c, errs)
		return
	}

	// Update fields if provided; an explicit null clears nullable columns
	if req.Title != nil {
		task.Title = *req.Title
	}
	req.Description.Apply(&task.Description)
	if req.Status != nil {
		task.Status = models.TaskStatus(*req.Status)
	}
	if req.DueDate.Set {
		task.DueDate = dueDate
	}

	if err := db(c).Save(task).Error; err != nil {
		abortWithServerError(c, "TASK_UPDATE_FAILED", err)
		return
	}

	publish(realtime.ForUser(task.AssignedUserID), "task.updated", task.ID)
	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/:id
func DeleteTask(c *gin.Context) {
	task, ok := findByParam[models.Task](c, "id")
	if !ok {
		return
	}
	if !authorize(c, policy.TaskOf(task), policy.Delete) {
		return
	}

	if err := db(c).Delete(task).Error; err != nil {
		abortWithServerError(c, "TASK_DELETE_FAILED", err)
		return
	}

	publish(realtime.ForUser(task.AssignedUserID), "task.deleted", task.ID)
	c.Status(http.StatusNoContent)
}
