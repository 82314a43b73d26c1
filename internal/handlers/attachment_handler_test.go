package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"taskboard-api/internal/models"
	"taskboard-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func attachmentRouter() *gin.Engine {
	r := protected()
	r.GET("/api/tasks/:id/attachments", GetAttachments)
	r.POST("/api/tasks/:id/attachments", CreateAttachment)
	r.DELETE("/api/tasks/:id/attachments/:attachment", DeleteAttachment)
	return r
}

func TestAttachments_Lifecycle(t *testing.T) {
	db := setupDB(t)
	alice, token := seedUser(t, db, "alice")
	team, err := testutil.CreateTeam(db, "Core", alice)
	require.NoError(t, err)
	task, err := testutil.CreateTask(db, team, alice, "Mine")
	require.NoError(t, err)
	r := attachmentRouter()
	path := fmt.Sprintf("/api/tasks/%d/attachments", task.ID)

	w := doJSON(t, r, http.MethodPost, path, token, map[string]any{
		"filename": "spec.pdf",
		"filepath": "uploads/spec.pdf",
		"filetype": "application/pdf",
		"filesize": 2048,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[models.TaskAttachment](t, w)
	require.Equal(t, task.ID, created.TaskID)
	require.Equal(t, int64(2048), *created.Filesize)

	w = doJSON(t, r, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decode[[]models.TaskAttachment](t, w), 1)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("%s/%d", path, created.ID), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, path, token, nil)
	require.JSONEq(t, `[]`, w.Body.String())
}

func TestAttachments_Validation(t *testing.T) {
	db := setupDB(t)
	alice, token := seedUser(t, db, "alice")
	team, err := testutil.CreateTeam(db, "Core", alice)
	require.NoError(t, err)
	task, err := testutil.CreateTask(db, team, alice, "Mine")
	require.NoError(t, err)

	w := doJSON(t, attachmentRouter(), http.MethodPost, fmt.Sprintf("/api/tasks/%d/attachments", task.ID), token, map[string]any{
		"filename": "a.txt",
		"filesize": -1,
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	body := decode[errorBody](t, w)
	require.Contains(t, body.Errors, "filepath")
	require.Contains(t, body.Errors, "filesize")
}

func TestAttachments_NonAssigneeForbidden(t *testing.T) {
	db := setupDB(t)
	alice, _ := seedUser(t, db, "alice")
	_, bobToken := seedUser(t, db, "bob")
	team, err := testutil.CreateTeam(db, "Core", alice)
	require.NoError(t, err)
	task, err := testutil.CreateTask(db, team, alice, "Alice's")
	require.NoError(t, err)

	w := doJSON(t, attachmentRouter(), http.MethodGet, fmt.Sprintf("/api/tasks/%d/attachments", task.ID), bobToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteAttachment_WrongParentIsNotFound(t *testing.T) {
	db := setupDB(t)
	alice, token := seedUser(t, db, "alice")
	team, err := testutil.CreateTeam(db, "Core", alice)
	require.NoError(t, err)
	taskA, err := testutil.CreateTask(db, team, alice, "A")
	require.NoError(t, err)
	taskB, err := testutil.CreateTask(db, team, alice, "B")
	require.NoError(t, err)
	attachment := models.TaskAttachment{TaskID: taskA.ID, Filename: "a.txt", Filepath: "uploads/a.txt"}
	require.NoError(t, db.Create(&attachment).Error)

	w := doJSON(t, attachmentRouter(), http.MethodDelete, fmt.Sprintf("/api/tasks/%d/attachments/%d", taskB.ID, attachment.ID), token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
