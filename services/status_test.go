package services

import (
	"testing"

	"github.com/splitleaseteam/splitlease-monorepo-sub002/models"
)

func TestTerminalStatuses(t *testing.T) {
	terminal := []models.ProposalStatus{
		models.StatusCancelledByGuest,
		models.StatusCancelledByPlatform,
		models.StatusRejectedByHost,
		models.StatusExpired,
	}
	for _, s := range terminal {
		if !IsTerminal(s) {
			t.Errorf("IsTerminal(%s) = false, want true", s)
		}
		if IsCompleted(s) {
			t.Errorf("IsCompleted(%s) = true, want false", s)
		}
		if len(StatusFor(s).AllowedActions) != 0 {
			t.Errorf("terminal status %s should permit no actions", s)
		}
	}
}

func TestCompletedStatuses(t *testing.T) {
	completed := []models.ProposalStatus{models.StatusLeaseActivated, models.StatusStayInProgress}
	for _, s := range completed {
		if !IsCompleted(s) {
			t.Errorf("IsCompleted(%s) = false, want true", s)
		}
		if IsTerminal(s) {
			t.Errorf("IsTerminal(%s) = true, want false", s)
		}
	}
}

func TestStatusOrderIsMonotonic(t *testing.T) {
	pipeline := []models.ProposalStatus{
		models.StatusSubmitted,
		models.StatusHostReview,
		models.StatusCounterofferReview,
		models.StatusMeetingScheduled,
		models.StatusAcceptedDrafting,
		models.StatusOutForSignature,
		models.StatusLeaseActivated,
		models.StatusStayInProgress,
	}
	for i := 1; i < len(pipeline); i++ {
		if StatusOrder(pipeline[i]) <= StatusOrder(pipeline[i-1]) {
			t.Errorf("order(%s)=%d should exceed order(%s)=%d",
				pipeline[i], StatusOrder(pipeline[i]), pipeline[i-1], StatusOrder(pipeline[i-1]))
		}
	}
}

func TestAllowsAction(t *testing.T) {
	if !AllowsAction(models.StatusSubmitted, ActionModify) {
		t.Error("submitted status should allow modify")
	}
	if AllowsAction(models.StatusHostReview, ActionModify) {
		t.Error("host-review status should not allow modify")
	}
	if !AllowsAction(models.StatusCounterofferReview, ActionAcceptCounteroffer) {
		t.Error("counteroffer-review status should allow accept")
	}
	if AllowsAction(models.StatusCancelledByGuest, ActionCancel) {
		t.Error("terminal status should not allow cancel")
	}
}

func TestUnknownStatusGetsZeroInfo(t *testing.T) {
	info := StatusFor(models.ProposalStatus("made_up_status"))
	if info.Terminal || info.Completed || info.Order != 0 || len(info.AllowedActions) != 0 {
		t.Fatalf("unknown status should map to zero-value info, got %+v", info)
	}
}

func TestParseProposalStatus(t *testing.T) {
	tests := []struct {
		raw    string
		want   models.ProposalStatus
		wantOK bool
	}{
		{"submitted_awaiting_application", models.StatusSubmitted, true},
		{"  Awaiting Host Review ", models.StatusHostReview, true},
		{"COUNTEROFFER-AWAITING-GUEST-REVIEW", models.StatusCounterofferReview, true},
		{"accepted/drafting", models.StatusAcceptedDrafting, true},
		{"canceled_by_guest", models.StatusCancelledByGuest, true},
		{"something_else", models.ProposalStatus("something_else"), false},
	}
	for _, tc := range tests {
		got, ok := ParseProposalStatus(tc.raw)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("ParseProposalStatus(%q) = (%s, %v), want (%s, %v)", tc.raw, got, ok, tc.want, tc.wantOK)
		}
	}
}
