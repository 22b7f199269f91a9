package service

import "github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/models"

type Action string

const (
	ActionCreateGroup Action = "group:create"
	ActionViewGroup   Action = "group:view"
	ActionJoinGroup   Action = "group:join"
)

// Actor is the caller. A zero Actor is anonymous.
type Actor struct {
	UserID int64
	Role   models.Role
}

func (a Actor) IsAnonymous() bool {
	return a.UserID == 0
}

// Resource describes the group an action targets. IsMember is relative to the actor.
type Resource struct {
	OwnerID  int64
	IsMember bool
}

// Authorize is the single access decision for group actions.
func Authorize(actor Actor, action Action, res Resource) error {
	switch action {
	case ActionCreateGroup:
		if actor.IsAnonymous() || actor.Role != models.RoleTeacher {
			return errTeachersOnly
		}
		return nil
	case ActionJoinGroup:
		if actor.IsAnonymous() || actor.Role != models.RoleStudent {
			return errStudentsOnly
		}
		return nil
	case ActionViewGroup:
		if actor.IsAnonymous() {
			return nil
		}
		switch actor.Role {
		case models.RoleTeacher:
			if res.OwnerID == actor.UserID {
				return nil
			}
		case models.RoleStudent:
			if res.IsMember {
				return nil
			}
		}
		return errAccessDenied
	default:
		return errAccessDenied
	}
}
