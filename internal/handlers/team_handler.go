package handlers

import (
	"net/http"

	"taskboard-api/internal/database"
	"taskboard-api/internal/logging"
	"taskboard-api/internal/models"
	"taskboard-api/internal/policy"
	"taskboard-api/internal/realtime"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateTeamRequest represents the request payload for creating a team
type CreateTeamRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// UpdateTeamRequest represents a partial team update
type UpdateTeamRequest struct {
	Name *string `json:"name" binding:"omitnil,min=1,max=255"`
}

// GetTeams handles GET /api/teams
// Returns only the teams the requester belongs to.
func GetTeams(c *gin.Context) {
	teams, err := database.NewMembershipStore(db(c)).Teams(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		abortWithServerError(c, "TEAM_LIST_FAILED", err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

// CreateTeam handles POST /api/teams
// The creator becomes the first member.
func CreateTeam(c *gin.Context) {
	var req CreateTeamRequest
	if !bindJSON(c, &req) {
		return
	}
	if !authorize(c, policy.Team{}, policy.Create) {
		return
	}

	user := currentUser(c)
	team := models.Team{Name: req.Name}
	err := db(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return err
		}
		return database.NewMembershipStore(tx).Add(c.Request.Context(), team.ID, user.ID)
	})
	if err != nil {
		abortWithServerError(c, "TEAM_CREATE_FAILED", err)
		return
	}

	logging.Logger.Infof("Event ID: TEAM_CREATED, Description: Team %d created by user %d", team.ID, user.ID)
	c.JSON(http.StatusCreated, team)
}

// GetTeam handles GET /api/teams/:id
func GetTeam(c *gin.Context) {
	team, ok := findByParam[models.Team](c, "id")
	if !ok {
		return
	}
	if !authorize(c, policy.Team{TeamID: team.ID}, policy.View) {
		return
	}

	users, err := database.NewMembershipStore(db(c)).Members(c.Request.Context(), team.ID)
	if err != nil {
		abortWithServerError(c, "TEAM_MEMBERS_FAILED", err)
		return
	}
	team.Users = users

	c.JSON(http.StatusOK, team)
}

// UpdateTeam handles PUT/PATCH /api/teams/:id
func UpdateTeam(c *gin.Context) {
	team, ok := findByParam[models.Team](c, "id")
	if !ok {
		return
	}
	if !authorize(c, policy.Team{TeamID: team.ID}, policy.Update) {
		return
	}

	var req UpdateTeamRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Name != nil {
		team.Name = *req.Name
	}

	if err := db(c).Save(team).Error; err != nil {
		abortWithServerError(c, "TEAM_UPDATE_FAILED", err)
		return
	}

	publish(realtime.ForTeam(team.ID), "team.updated", team.ID)
	c.JSON(http.StatusOK, team)
}

// DeleteTeam handles DELETE /api/teams/:id
// Dependent projects and tasks are left to the store's foreign keys.
func DeleteTeam(c *gin.Context) {
	team, ok := findByParam[models.Team](c, "id")
	if !ok {
		return
	}
	if !authorize(c, policy.Team{TeamID: team.ID}, policy.Delete) {
		return
	}

	if err := db(c).Delete(team).Error; err != nil {
		abortWithServerError(c, "TEAM_DELETE_FAILED", err)
		return
	}

	logging.Logger.Infof("Event ID: TEAM_DELETED, Description: Team %d deleted by user %d", team.ID, currentUser(c).ID)
	publish(realtime.ForTeam(team.ID), "team.deleted", team.ID)
	realtime.GetHub().Drop(realtime.ForTeam(team.ID), nil)
	c.Status(http.StatusNoContent)
}
