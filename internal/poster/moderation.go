package poster

import (
	"fmt"

	"github.com/odezzy/wall_api/internal/model"
)

// Action is a moderator-invoked transition.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionHide    Action = "hide"
	ActionUnhide  Action = "unhide"
)

// ParseAction validates an action name from the wire.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionApprove, ActionReject, ActionHide, ActionUnhide:
		return Action(s), nil
	}
	return "", fmt.Errorf("unknown moderation action %q", s)
}

// State is the moderation state of a poster. Hidden is only meaningful
// while approved; the constructors keep the two from drifting apart.
type State struct {
	status model.ModerationStatus
	hidden bool
}

func Pending() State  { return State{status: model.ModerationPending} }
func Rejected() State { return State{status: model.ModerationRejected} }
func Approved(hidden bool) State {
	return State{status: model.ModerationApproved, hidden: hidden}
}

// StateOf reads a poster's stored fields into a State, discarding a
// hidden flag that has no meaning outside approval.
func StateOf(p model.Poster) State {
	if p.ModerationStatus == model.ModerationApproved {
		return Approved(p.Hidden)
	}
	return State{status: p.ModerationStatus}
}

func (s State) Status() model.ModerationStatus { return s.status }
func (s State) Hidden() bool                   { return s.status == model.ModerationApproved && s.hidden }

// Apply performs a moderator transition. Transitions are idempotent: an
// action whose target state already holds is a no-op, not an error.
func (s State) Apply(a Action) (State, error) {
	switch a {
	case ActionApprove:
		if s.status == model.ModerationApproved {
			return s, nil
		}
		// pending or rejected (re-approve) both land visible
		return Approved(false), nil

	case ActionReject:
		return Rejected(), nil

	case ActionHide:
		if s.status != model.ModerationApproved {
			return s, fmt.Errorf("cannot hide a %s poster", s.status)
		}
		return Approved(true), nil

	case ActionUnhide:
		if s.status != model.ModerationApproved {
			return s, fmt.Errorf("cannot unhide a %s poster", s.status)
		}
		return Approved(false), nil
	}

	return s, fmt.Errorf("unknown moderation action %q", a)
}
