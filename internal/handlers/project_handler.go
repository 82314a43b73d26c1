package handlers

import (
	"net/http"

	"taskboard-api/internal/database"
	"taskboard-api/internal/models"
	"taskboard-api/internal/policy"
	"taskboard-api/internal/realtime"
	"taskboard-api/internal/validation"

	"github.com/gin-gonic/gin"
)

// CreateProjectRequest represents the request payload for creating a project
type CreateProjectRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
	TeamID      uint    `json:"team_id" binding:"required"`
}

// UpdateProjectRequest represents the request payload for updating a project
type UpdateProjectRequest struct {
	Name        *string          `json:"name" binding:"omitnil,min=1,max=255"`
	Description Nullable[string] `json:"description"`
}

// GetProjects handles GET /api/projects
// Returns every project of every team the requester belongs to.
func GetProjects(c *gin.Context) {
	teamIDs, err := database.NewMembershipStore(db(c)).TeamIDs(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		abortWithServerError(c, "PROJECT_LIST_FAILED", err)
		return
	}

	projects := []models.Project{}
	if len(teamIDs) > 0 {
		if err := db(c).Where("team_id IN ?", teamIDs).Order("id asc").Find(&projects).Error; err != nil {
			abortWithServerError(c, "PROJECT_LIST_FAILED", err)
			return
		}
	}

	c.JSON(http.StatusOK, projects)
}

// CreateProject handles POST /api/projects
func CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}
	if ok, err := exists(c, &models.Team{}, req.TeamID); err != nil {
		abortWithServerError(c, "PROJECT_CREATE_FAILED", err)
		return
	} else if !ok {
		errs := validation.Errors{}
		errs.Add("team_id", "The selected team id is invalid.")
		abortWithValidation(c, errs)
		return
	}
	if !authorize(c, policy.Project{TeamID: req.TeamID}, policy.Create) {
		return
	}

	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		TeamID:      req.TeamID,
	}
	if err := db(c).Create(&project).Error; err != nil {
		abortWithServerError(c, "PROJECT_CREATE_FAILED", err)
		return
	}

	publish(realtime.ForTeam(project.TeamID), "project.created", project.ID)
	c.JSON(http.StatusCreated, project)
}

// GetProject handles GET /api/projects/:id
func GetProject(c *gin.Context) {
	project, ok := findByParam[models.Project](c, "id")
	if !ok {
		return
	}
	if !authorize(c, policy.Project{TeamID: project.TeamID}, policy.View) {
		return
	}

	c.JSON(http.StatusOK, project)
}

// UpdateProject handles PUT/PATCH /api/projects/:id
func UpdateProject(c *gin.Context) {
	project, ok := findByParam[models.Project](c, "id")
	if !ok {
		return
	}
	if !authorize(c, policy.Project{TeamID: project.TeamID}, policy.Update) {
		return
	}

	var req UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Name != nil {
		project.Name = *req.Name
	}
	req.Description.Apply(&project.Description)

	if err := db(c).Save(project).Error; err != nil {
		abortWithServerError(c, "PROJECT_UPDATE_FAILED", err)
		return
	}

	publish(realtime.ForTeam(project.TeamID), "project.updated", project.ID)
	c.JSON(http.StatusOK, project)
}

// DeleteProject handles DELETE /api/projects/:id
func DeleteProject(c *gin.Context) {
	project, ok := findByParam[models.Project](c, "id")
	if !ok {
		return
	}
	if !authorize(c, policy.Project{TeamID: project.TeamID}, policy.Delete) {
		return
	}

	if err := db(c).Delete(project).Error; err != nil {
		abortWithServerError(c, "PROJECT_DELETE_FAILED", err)
		return
	}

	publish(realtime.ForTeam(project.TeamID), "project.deleted", project.ID)
	c.Status(http.StatusNoContent)
}
