package services

import (
	"strings"

	"github.com/splitleaseteam/splitlease-monorepo-sub002/models"
)

// CancellationCondition names the outcome of the composite cancel decision.
type CancellationCondition string

const (
	CancellationAlreadyCancelled    CancellationCondition = "already_cancelled"
	CancellationNotCancellable      CancellationCondition = "not_cancellable"
	CancellationHighOrderWithManual CancellationCondition = "high_order_with_manual"
	CancellationStandard            CancellationCondition = "standard"
)

// CancellationDecision is what UI-facing cancel actions must consult before
// invoking the cancel workflow.
type CancellationDecision struct {
	Condition CancellationCondition `json:"condition"`
	Allowed   bool                  `json:"allowed"`
	Message   string                `json:"message"`
}

// CanCancel reports whether a proposal may still be cancelled. Terminal and
// completed proposals accept no further mutating transition.
func CanCancel(p *models.Proposal) bool {
	info := StatusFor(p.Status)
	return !info.Terminal && !info.Completed
}

// CanModify keys off the registry's action list; only the initial
// submitted-awaiting-application status permits the modify action.
func CanModify(p *models.Proposal) bool {
	return AllowsAction(p.Status, ActionModify)
}

// HasReviewableCounteroffer is true iff the proposal is awaiting guest
// review of a counteroffer that actually exists.
func HasReviewableCounteroffer(p *models.Proposal) bool {
	return p.Status == models.StatusCounterofferReview && p.CounterofferHappened
}

func CanAcceptCounteroffer(p *models.Proposal) bool {
	return HasReviewableCounteroffer(p)
}

func CanDeclineCounteroffer(p *models.Proposal) bool {
	return HasReviewableCounteroffer(p)
}

// RequiresSpecialCancellationConfirmation is true once the proposal has
// progressed past the drafting stage and the listing carries a house manual;
// the cancel workflow must surface a stronger confirmation message first.
func RequiresSpecialCancellationConfirmation(p *models.Proposal, houseManual string) bool {
	return StatusOrder(p.Status) > 5 && strings.TrimSpace(houseManual) != ""
}

// DetermineCancellationCondition is the single entry point for cancel-path
// decisions. It classifies the proposal into one of four named conditions
// with a user-facing confirmation message.
func DetermineCancellationCondition(p *models.Proposal, houseManual string) CancellationDecision {
	info := StatusFor(p.Status)

	if info.Terminal {
		return CancellationDecision{
			Condition: CancellationAlreadyCancelled,
			Allowed:   false,
			Message:   "This proposal has already been cancelled or closed.",
		}
	}
	if info.Completed {
		return CancellationDecision{
			Condition: CancellationNotCancellable,
			Allowed:   false,
			Message:   "This proposal has an active lease and can no longer be cancelled.",
		}
	}
	if RequiresSpecialCancellationConfirmation(p, houseManual) {
		return CancellationDecision{
			Condition: CancellationHighOrderWithManual,
			Allowed:   true,
			Message: "Your lease paperwork is underway and the host has prepared their home for your stay. " +
				"Cancelling now may affect your standing. Are you sure you want to cancel this proposal?",
		}
	}
	return CancellationDecision{
		Condition: CancellationStandard,
		Allowed:   true,
		Message:   "Are you sure you want to cancel this proposal?",
	}
}
