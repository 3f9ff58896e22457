package poster

import (
	"testing"

	"github.com/odezzy/wall_api/internal/model"
)

func TestParseAction(t *testing.T) {
	for _, valid := range []string{"approve", "reject", "hide", "unhide"} {
		if _, err := ParseAction(valid); err != nil {
			t.Errorf("ParseAction(%q) = %v; want nil", valid, err)
		}
	}
	for _, invalid := range []string{"", "delete", "APPROVE", "approve "} {
		if _, err := ParseAction(invalid); err == nil {
			t.Errorf("ParseAction(%q) = nil error; want error", invalid)
		}
	}
}

func TestStateTransitions(t *testing.T) {
	testCases := []struct {
		name    string
		from    State
		action  Action
		want    State
		wantErr bool
	}{
		{"approve pending", Pending(), ActionApprove, Approved(false), false},
		{"approve is idempotent", Approved(false), ActionApprove, Approved(false), false},
		{"approve keeps hidden flag", Approved(true), ActionApprove, Approved(true), false},
		{"re-approve rejected lands visible", Rejected(), ActionApprove, Approved(false), false},

		{"reject pending", Pending(), ActionReject, Rejected(), false},
		{"reject approved", Approved(false), ActionReject, Rejected(), false},
		{"reject hidden approved", Approved(true), ActionReject, Rejected(), false},
		{"reject is idempotent", Rejected(), ActionReject, Rejected(), false},

		{"hide approved", Approved(false), ActionHide, Approved(true), false},
		{"hide is idempotent", Approved(true), ActionHide, Approved(true), false},
		{"hide pending fails", Pending(), ActionHide, Pending(), true},
		{"hide rejected fails", Rejected(), ActionHide, Rejected(), true},

		{"unhide hidden", Approved(true), ActionUnhide, Approved(false), false},
		{"unhide is idempotent", Approved(false), ActionUnhide, Approved(false), false},
		{"unhide pending fails", Pending(), ActionUnhide, Pending(), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.from.Apply(tc.action)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Apply(%v) = nil error; want error", tc.action)
				}
				if got != tc.from {
					t.Errorf("failed Apply changed state to %+v; want unchanged", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply(%v) = %v; want nil", tc.action, err)
			}
			if got != tc.want {
				t.Errorf("Apply(%v) = %+v; want %+v", tc.action, got, tc.want)
			}
		})
	}
}

func TestStateOf(t *testing.T) {
	testCases := []struct {
		name   string
		poster model.Poster
		want   State
	}{
		{"pending", model.Poster{ModerationStatus: model.ModerationPending}, Pending()},
		{"approved visible", model.Poster{ModerationStatus: model.ModerationApproved}, Approved(false)},
		{"approved hidden", model.Poster{ModerationStatus: model.ModerationApproved, Hidden: true}, Approved(true)},
		{
			"hidden flag ignored outside approval",
			model.Poster{ModerationStatus: model.ModerationRejected, Hidden: true},
			Rejected(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := StateOf(tc.poster)
			if got != tc.want {
				t.Errorf("StateOf = %+v; want %+v", got, tc.want)
			}
			if got.Hidden() && got.Status() != model.ModerationApproved {
				t.Error("Hidden() true outside approval")
			}
		})
	}
}
