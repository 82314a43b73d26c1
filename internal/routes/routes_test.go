package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard-api/internal/database"
	"taskboard-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type client struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newClient(t *testing.T) *client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db
	return &client{t: t, router: SetupRoutes()}
}

func (c *client) as(token string) *client {
	return &client{t: c.t, router: c.router, token: token}
}

func (c *client) do(method, path string, payload any) (int, map[string]any) {
	c.t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(c.t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

func (c *client) list(path string) []map[string]any {
	c.t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+c.token)
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	require.Equal(c.t, http.StatusOK, w.Code)

	var out []map[string]any
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// register signs a user up and returns their token and id.
func (c *client) register(name string) (string, uint) {
	c.t.Helper()
	code, body := c.do(http.MethodPost, "/api/register", map[string]any{
		"name":                  name,
		"email":                 name + "@example.com",
		"password":              "secret123",
		"password_confirmation": "secret123",
	})
	require.Equal(c.t, http.StatusCreated, code)
	user := body["user"].(map[string]any)
	return body["token"].(string), uint(user["id"].(float64))
}

func id(body map[string]any) uint {
	return uint(body["id"].(float64))
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := SetupRoutes()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	c := newClient(t)

	for _, path := range []string{"/api/user", "/api/teams", "/api/projects", "/api/tasks"} {
		code, body := c.do(http.MethodGet, path, nil)
		require.Equal(t, http.StatusUnauthorized, code, path)
		require.Equal(t, "Unauthenticated.", body["message"], path)
	}
}

func TestSessionLifecycle(t *testing.T) {
	c := newClient(t)
	registered, _ := c.register("alice")

	code, body := c.do(http.MethodPost, "/api/login", map[string]any{"email": "alice@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, code)
	loggedIn := body["token"].(string)
	require.NotEqual(t, registered, loggedIn)

	code, _ = c.as(loggedIn).do(http.MethodPost, "/api/logout", nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = c.as(loggedIn).do(http.MethodGet, "/api/user", nil)
	require.Equal(t, http.StatusUnauthorized, code)

	// the registration token is still valid
	code, body = c.as(registered).do(http.MethodGet, "/api/user", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "alice@example.com", body["email"])
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	c := newClient(t)
	c.register("alice")

	code1, body1 := c.do(http.MethodPost, "/api/login", map[string]any{"email": "alice@example.com", "password": "wrong"})
	code2, body2 := c.do(http.MethodPost, "/api/login", map[string]any{"email": "nobody@example.com", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, code1)
	require.Equal(t, code1, code2)
	require.Equal(t, body1, body2)
}

func TestTeamMembershipGatesAccess(t *testing.T) {
	c := newClient(t)
	aliceToken, _ := c.register("alice")
	bobToken, bobID := c.register("bob")
	alice, bob := c.as(aliceToken), c.as(bobToken)

	code, team := alice.do(http.MethodPost, "/api/teams", map[string]any{"name": "Core"})
	require.Equal(t, http.StatusCreated, code)
	teamPath := fmt.Sprintf("/api/teams/%d", id(team))

	code, _ = bob.do(http.MethodGet, teamPath, nil)
	require.Equal(t, http.StatusForbidden, code)

	code, _ = alice.do(http.MethodPost, "/api/member", map[string]any{"team_id": id(team), "user_id": bobID})
	require.Equal(t, http.StatusCreated, code)

	code, body := bob.do(http.MethodGet, teamPath, nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, body["users"], 2)
	require.Len(t, bob.list("/api/teams"), 1)

	code, _ = bob.do(http.MethodDelete, fmt.Sprintf("/api/member/%d", id(team)), nil)
	require.Equal(t, http.StatusOK, code)
	require.Empty(t, bob.list("/api/teams"))
}

func TestTaskAssignmentScenario(t *testing.T) {
	c := newClient(t)
	aliceToken, aliceID := c.register("alice")
	bobToken, bobID := c.register("bob")
	alice, bob := c.as(aliceToken), c.as(bobToken)

	_, team := alice.do(http.MethodPost, "/api/teams", map[string]any{"name": "Core"})
	alice.do(http.MethodPost, "/api/member", map[string]any{"team_id": id(team), "user_id": bobID})

	// assignee defaults to the creator
	code, own := alice.do(http.MethodPost, "/api/tasks", map[string]any{"title": "Mine", "team_id": id(team)})
	require.Equal(t, http.StatusCreated, code)
	require.EqualValues(t, aliceID, own["assigned_user_id"])

	code, task := alice.do(http.MethodPost, "/api/tasks", map[string]any{"title": "For Bob", "team_id": id(team), "assigned_user_id": bobID})
	require.Equal(t, http.StatusCreated, code)
	taskPath := fmt.Sprintf("/api/tasks/%d", id(task))

	code, _ = bob.do(http.MethodGet, taskPath, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = alice.do(http.MethodGet, taskPath, nil)
	require.Equal(t, http.StatusForbidden, code)

	// the assignee cannot be changed afterwards
	code, updated := bob.do(http.MethodPatch, taskPath, map[string]any{"assigned_user_id": aliceID, "status": "in_progress"})
	require.Equal(t, http.StatusOK, code)
	require.EqualValues(t, bobID, updated["assigned_user_id"])
	require.Equal(t, "in_progress", updated["status"])

	require.Len(t, alice.list("/api/tasks"), 1)
	require.Len(t, bob.list("/api/tasks"), 1)
}

func TestCommentsScenario(t *testing.T) {
	c := newClient(t)
	aliceToken, _ := c.register("alice")
	alice := c.as(aliceToken)

	_, team := alice.do(http.MethodPost, "/api/teams", map[string]any{"name": "Core"})
	_, taskA := alice.do(http.MethodPost, "/api/tasks", map[string]any{"title": "A", "team_id": id(team)})
	_, taskB := alice.do(http.MethodPost, "/api/tasks", map[string]any{"title": "B", "team_id": id(team)})
	commentsA := fmt.Sprintf("/api/tasks/%d/comments", id(taskA))

	code, first := alice.do(http.MethodPost, commentsA, map[string]any{"comment": "one"})
	require.Equal(t, http.StatusCreated, code)
	alice.do(http.MethodPost, commentsA, map[string]any{"comment": "two"})

	comments := alice.list(commentsA)
	require.Len(t, comments, 2)
	require.Equal(t, "one", comments[0]["comment"])
	require.Equal(t, "two", comments[1]["comment"])
	author := comments[0]["user"].(map[string]any)
	require.Equal(t, "alice", author["name"])
	require.NotContains(t, author, "password")

	// a comment addressed through the wrong task does not exist
	code, _ = alice.do(http.MethodDelete, fmt.Sprintf("/api/tasks/%d/comments/%d", id(taskB), id(first)), nil)
	require.Equal(t, http.StatusNotFound, code)

	code, _ = alice.do(http.MethodDelete, fmt.Sprintf("%s/%d", commentsA, id(first)), nil)
	require.Equal(t, http.StatusNoContent, code)
	require.Len(t, alice.list(commentsA), 1)
}
