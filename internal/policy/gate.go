// Package policy decides whether a principal may act on a resource.
//
// Team membership grants authority over teams, their projects and task
// creation. Assignment grants authority over a task and everything nested
// under it. Nested resources are checked for parentage before ownership so a
// mismatched parent always reads as NotFound.
package policy

import (
	"context"
	"fmt"

	"taskboard-api/internal/models"
)

// Action names what the principal wants to do.
type Action string

const (
	ViewAny      Action = "viewAny"
	View         Action = "view"
	Create       Action = "create"
	Update       Action = "update"
	Delete       Action = "delete"
	AddMember    Action = "addMember"
	RemoveMember Action = "removeMember"
)

// Resource is implemented by the target types below.
type Resource interface {
	resource()
}

// Team targets a team by id.
type Team struct {
	TeamID uint
}

// Project targets a project, or the team a new project would be created in.
type Project struct {
	TeamID uint
}

// Task targets a stored task. For Create only TeamID is consulted.
type Task struct {
	TeamID         uint
	AssignedUserID uint
}

// Comment targets the comments of Task. Comment is nil for ViewAny and Create.
type Comment struct {
	Task    *models.Task
	Comment *models.TaskComment
}

// Attachment targets the attachments of Task. Attachment is nil for ViewAny and Create.
type Attachment struct {
	Task       *models.Task
	Attachment *models.TaskAttachment
}

func (Team) resource()       {}
func (Project) resource()    {}
func (Task) resource()       {}
func (Comment) resource()    {}
func (Attachment) resource() {}

// TaskOf builds the Task target for a stored task.
func TaskOf(t *models.Task) Task {
	return Task{TeamID: t.TeamID, AssignedUserID: t.AssignedUserID}
}

// MembershipChecker answers team membership questions.
type MembershipChecker interface {
	IsMember(ctx context.Context, userID, teamID uint) (bool, error)
}

// Gate evaluates authorization rules against current store state.
type Gate struct {
	members MembershipChecker
}

func NewGate(members MembershipChecker) *Gate {
	return &Gate{members: members}
}

// Authorize decides whether principal may perform action on res.
// An error is returned only when the membership lookup fails.
func (g *Gate) Authorize(ctx context.Context, principal *models.User, res Resource, action Action) (Decision, error) {
	if principal == nil {
		return Deny, nil
	}

	switch r := res.(type) {
	case Team:
		if action == ViewAny || action == Create {
			return Allow, nil
		}
		return g.member(ctx, principal.ID, r.TeamID)

	case Project:
		if action == ViewAny {
			return Allow, nil
		}
		return g.member(ctx, principal.ID, r.TeamID)

	case Task:
		switch action {
		case ViewAny:
			return Allow, nil
		case Create:
			return g.member(ctx, principal.ID, r.TeamID)
		}
		return assigned(principal, r.AssignedUserID), nil

	case Comment:
		if r.Task == nil {
			return NotFound, nil
		}
		if r.Comment != nil && r.Comment.TaskID != r.Task.ID {
			return NotFound, nil
		}
		if d := assigned(principal, r.Task.AssignedUserID); !d.Allowed() {
			return d, nil
		}
		if action == Update || action == Delete {
			if r.Comment == nil || r.Comment.UserID != principal.ID {
				return Deny, nil
			}
		}
		return Allow, nil

	case Attachment:
		if r.Task == nil {
			return NotFound, nil
		}
		if r.Attachment != nil && r.Attachment.TaskID != r.Task.ID {
			return NotFound, nil
		}
		return assigned(principal, r.Task.AssignedUserID), nil
	}

	return Deny, fmt.Errorf("policy: unsupported resource %T", res)
}

func (g *Gate) member(ctx context.Context, userID, teamID uint) (Decision, error) {
	ok, err := g.members.IsMember(ctx, userID, teamID)
	if err != nil {
		return Deny, fmt.Errorf("check membership: %w", err)
	}
	if !ok {
		return Deny, nil
	}
	return Allow, nil
}

func assigned(principal *models.User, assigneeID uint) Decision {
	if assigneeID != 0 && assigneeID == principal.ID {
		return Allow
	}
	return Deny
}
