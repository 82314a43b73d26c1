package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name     string  `json:"name" binding:"required,max=5"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6"`
	Confirm  string  `json:"password_confirmation" binding:"eqfield=Password"`
	Status   *string `json:"status" binding:"omitnil,oneof=pending completed"`
	Size     *int64  `json:"filesize" binding:"omitnil,min=0"`
	TeamID   uint    `json:"team_id" binding:"required"`
}

func TestFromBindError_ValidatorMessages(t *testing.T) {
	status := "archived"
	size := int64(-1)
	req := sampleRequest{
		Name:     "toolong",
		Email:    "not-an-email",
		Password: "abc",
		Confirm:  "abd",
		Status:   &status,
		Size:     &size,
	}

	errs := FromBindError(binding.Validator.ValidateStruct(&req))
	require.Equal(t, []string{"The name field must not be greater than 5 characters."}, errs["name"])
	require.Equal(t, []string{"The email field must be a valid email address."}, errs["email"])
	require.Equal(t, []string{"The password field must be at least 6 characters."}, errs["password"])
	require.Equal(t, []string{"The password confirmation field does not match."}, errs["password_confirmation"])
	require.Equal(t, []string{"The selected status is invalid."}, errs["status"])
	require.Equal(t, []string{"The filesize field must be at least 0."}, errs["filesize"])
	require.Equal(t, []string{"The team id field is required."}, errs["team_id"])
	require.Equal(t, "The email field must be a valid email address.", errs.First())
}

func TestFromBindError_NilPointersAreOptional(t *testing.T) {
	req := sampleRequest{Name: "ok", Email: "a@x.com", Password: "secret1", Confirm: "secret1", TeamID: 1}
	require.NoError(t, binding.Validator.ValidateStruct(&req))
}

func TestFromBindError_TypeAndSyntax(t *testing.T) {
	var req sampleRequest
	err := json.Unmarshal([]byte(`{"team_id":"abc"}`), &req)
	errs := FromBindError(err)
	require.Equal(t, []string{"The team id field must be of type integer."}, errs["team_id"])

	err = json.Unmarshal([]byte(`{"team_id":`), &req)
	require.Contains(t, FromBindError(err), "body")

	require.True(t, FromBindError(errors.New("boom")).Any())
}
