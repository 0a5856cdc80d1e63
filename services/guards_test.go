package services

import (
	"testing"

	"github.com/splitleaseteam/splitlease-monorepo-sub002/models"
)

var allStatuses = []models.ProposalStatus{
	models.StatusSubmitted,
	models.StatusHostReview,
	models.StatusCounterofferReview,
	models.StatusMeetingScheduled,
	models.StatusAcceptedDrafting,
	models.StatusOutForSignature,
	models.StatusLeaseActivated,
	models.StatusStayInProgress,
	models.StatusCancelledByGuest,
	models.StatusCancelledByPlatform,
	models.StatusRejectedByHost,
	models.StatusExpired,
}

func TestCanCancelFalseOnTerminalAndCompleted(t *testing.T) {
	for _, status := range allStatuses {
		p := &models.Proposal{Status: status}
		info := StatusFor(status)
		got := CanCancel(p)
		if info.Terminal || info.Completed {
			if got {
				t.Errorf("CanCancel(%s) = true, want false", status)
			}
		} else if !got {
			t.Errorf("CanCancel(%s) = false, want true", status)
		}
	}
}

func TestCanModifyOnlyInitialStatus(t *testing.T) {
	for _, status := range allStatuses {
		p := &models.Proposal{Status: status}
		want := status == models.StatusSubmitted
		if got := CanModify(p); got != want {
			t.Errorf("CanModify(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestHasReviewableCounterofferRequiresFlag(t *testing.T) {
	for _, status := range allStatuses {
		p := &models.Proposal{Status: status, CounterofferHappened: false}
		if HasReviewableCounteroffer(p) {
			t.Errorf("HasReviewableCounteroffer(%s, flag=false) = true, want false", status)
		}
	}

	p := &models.Proposal{Status: models.StatusCounterofferReview, CounterofferHappened: true}
	if !HasReviewableCounteroffer(p) {
		t.Fatal("expected reviewable counteroffer for counteroffer-review status with flag set")
	}
	if !CanAcceptCounteroffer(p) || !CanDeclineCounteroffer(p) {
		t.Fatal("accept/decline guards should alias HasReviewableCounteroffer")
	}
}

func TestRequiresSpecialCancellationConfirmation(t *testing.T) {
	manual := "Keys are in the lockbox."

	tests := []struct {
		status models.ProposalStatus
		manual string
		want   bool
	}{
		{models.StatusOutForSignature, manual, true},
		{models.StatusOutForSignature, "", false},
		{models.StatusOutForSignature, "   ", false},
		{models.StatusAcceptedDrafting, manual, false}, // order 5 is not > 5
		{models.StatusSubmitted, manual, false},
	}
	for _, tc := range tests {
		p := &models.Proposal{Status: tc.status}
		if got := RequiresSpecialCancellationConfirmation(p, tc.manual); got != tc.want {
			t.Errorf("RequiresSpecialCancellationConfirmation(%s, %q) = %v, want %v", tc.status, tc.manual, got, tc.want)
		}
	}
}

func TestDetermineCancellationCondition(t *testing.T) {
	manual := "House manual text"

	tests := []struct {
		name    string
		status  models.ProposalStatus
		manual  string
		want    CancellationCondition
		allowed bool
	}{
		{"already cancelled", models.StatusCancelledByGuest, "", CancellationAlreadyCancelled, false},
		{"expired is already closed", models.StatusExpired, manual, CancellationAlreadyCancelled, false},
		{"completed not cancellable", models.StatusLeaseActivated, manual, CancellationNotCancellable, false},
		{"high order with manual", models.StatusOutForSignature, manual, CancellationHighOrderWithManual, true},
		{"high order without manual", models.StatusOutForSignature, "", CancellationStandard, true},
		{"standard", models.StatusHostReview, manual, CancellationStandard, true},
	}
	for _, tc := range tests {
		p := &models.Proposal{Status: tc.status}
		decision := DetermineCancellationCondition(p, tc.manual)
		if decision.Condition != tc.want {
			t.Errorf("%s: condition = %s, want %s", tc.name, decision.Condition, tc.want)
		}
		if decision.Allowed != tc.allowed {
			t.Errorf("%s: allowed = %v, want %v", tc.name, decision.Allowed, tc.allowed)
		}
		if decision.Message == "" {
			t.Errorf("%s: message should not be empty", tc.name)
		}
	}
}

// A second cancel decision on an already-cancelled proposal must be the
// no-op already_cancelled condition, leaving the stored reason untouched.
func TestCancelThenCancelDecision(t *testing.T) {
	p := &models.Proposal{Status: models.StatusHostReview}

	first := DetermineCancellationCondition(p, "")
	if first.Condition != CancellationStandard || !first.Allowed {
		t.Fatalf("first cancel: got %s allowed=%v, want standard/allowed", first.Condition, first.Allowed)
	}

	// Apply the transition the workflow would persist.
	p.Status = models.StatusCancelledByGuest
	p.CancellationReason = "plans changed"

	second := DetermineCancellationCondition(p, "")
	if second.Condition != CancellationAlreadyCancelled || second.Allowed {
		t.Fatalf("second cancel: got %s allowed=%v, want already_cancelled/disallowed", second.Condition, second.Allowed)
	}
	if p.CancellationReason != "plans changed" {
		t.Fatal("second cancel decision must not touch the stored reason")
	}
}
