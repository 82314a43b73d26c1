package handlers

import (
	"net/http"

	"taskboard-api/internal/database"
	"taskboard-api/internal/logging"
	"taskboard-api/internal/models"
	"taskboard-api/internal/policy"
	"taskboard-api/internal/realtime"
	"taskboard-api/internal/validation"

	"github.com/gin-gonic/gin"
)

// AddMemberRequest represents the payload for adding a user to a team
type AddMemberRequest struct {
	TeamID uint `json:"team_id" binding:"required"`
	UserID uint `json:"user_id" binding:"required"`
}

// AddMember handles POST /api/member
// Any member may add any user; there is no invitation step.
func AddMember(c *gin.Context) {
	var req AddMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	errs := validation.Errors{}
	if ok, err := exists(c, &models.User{}, req.UserID); err != nil {
		abortWithServerError(c, "MEMBER_ADD_FAILED", err)
		return
	} else if !ok {
		errs.Add("user_id", "The selected user id is invalid.")
	}
	if ok, err := exists(c, &models.Team{}, req.TeamID); err != nil {
		abortWithServerError(c, "MEMBER_ADD_FAILED", err)
		return
	} else if !ok {
		errs.Add("team_id", "The selected team id is invalid.")
	}
	if errs.Any() {
		abortWithValidation(c, errs)
		return
	}

	if !authorize(c, policy.Team{TeamID: req.TeamID}, policy.AddMember) {
		return
	}

	if err := database.NewMembershipStore(db(c)).Add(c.Request.Context(), req.TeamID, req.UserID); err != nil {
		abortWithServerError(c, "MEMBER_ADD_FAILED", err)
		return
	}

	logging.Logger.Infof("Event ID: MEMBER_ADDED, Description: User %d added to team %d by user %d", req.UserID, req.TeamID, currentUser(c).ID)
	c.JSON(http.StatusCreated, gin.H{"message": "User added to team"})
}

// LeaveTeam handles DELETE /api/member/:id where :id is the team.
// Members can only remove themselves.
func LeaveTeam(c *gin.Context) {
	team, ok := findByParam[models.Team](c, "id")
	if !ok {
		return
	}
	if !authorize(c, policy.Team{TeamID: team.ID}, policy.RemoveMember) {
		return
	}

	user := currentUser(c)
	if err := database.NewMembershipStore(db(c)).Remove(c.Request.Context(), team.ID, user.ID); err != nil {
		abortWithServerError(c, "MEMBER_REMOVE_FAILED", err)
		return
	}

	realtime.GetHub().Drop(realtime.ForTeam(team.ID), subscriberOf(user.ID))

	logging.Logger.Infof("Event ID: MEMBER_LEFT, Description: User %d left team %d", user.ID, team.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Removed from team"})
}
