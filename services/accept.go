package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/splitleaseteam/splitlease-monorepo-sub002/models"
	"github.com/splitleaseteam/splitlease-monorepo-sub002/storage"
)

var (
	ErrNoReviewableCounteroffer = errors.New("proposal has no reviewable counteroffer")
	ErrTransitionLocked         = errors.New("proposal is being modified by another request")
)

// AgreementNumberWidth returns the zero-padding width for the next agreement
// number given how many leases already exist.
func AgreementNumberWidth(leaseCount int64) int {
	switch {
	case leaseCount < 10:
		return 4
	case leaseCount < 100:
		return 3
	default:
		return 2
	}
}

// FourWeekCompensation is the host payout per four-week period, always
// computed from the guest's original terms.
func FourWeekCompensation(p *models.Proposal) float64 {
	return float64(p.NightsPerWeek) * 4 * p.NightlyPrice
}

// FourWeekRent is the guest charge per four-week period, computed from the
// counteroffer terms with original-term fallback.
func FourWeekRent(p *models.Proposal) float64 {
	terms := CounterofferTerms(p)
	return float64(terms.NightsPerWeek) * 4 * terms.NightlyPrice
}

// AcceptResult reports the outcome of the accept-counteroffer workflow. A
// non-empty TriggerError means the status write committed but the lease
// trigger did not succeed yet; the outbox sweeper will retry it.
type AcceptResult struct {
	Proposal       *models.Proposal   `json:"proposal"`
	Intent         *models.LeaseIntent `json:"intent"`
	LeaseTriggered bool               `json:"leaseTriggered"`
	TriggerError   string             `json:"triggerError,omitempty"`
}

// AcceptCounteroffer runs the guarded accept workflow. awaitLease selects
// the guest-facing path, which blocks on the lease trigger before reporting
// success; the internal path leaves the intent to the sweeper.
func AcceptCounteroffer(proposalID uint, awaitLease bool) (*AcceptResult, error) {
	ctx := context.Background()
	locked, err := storage.AcquireTransitionLock(ctx, proposalID, 30*time.Second)
	if err == nil && !locked {
		return nil, ErrTransitionLocked
	}
	if err == nil {
		defer storage.ReleaseTransitionLock(ctx, proposalID)
	}

	// Step 1: fresh fetch, fail fast without a reviewable counteroffer.
	var proposal models.Proposal
	if err := storage.DB.First(&proposal, proposalID).Error; err != nil {
		return nil, err
	}
	if !CanAcceptCounteroffer(&proposal) {
		return nil, ErrNoReviewableCounteroffer
	}

	// Step 2: lease count decides the agreement-number padding width.
	var leaseCount int64
	if err := storage.DB.Model(&models.Lease{}).Count(&leaseCount).Error; err != nil {
		return nil, err
	}
	width := AgreementNumberWidth(leaseCount)

	// Step 3: payout figure from the original terms.
	compensation := FourWeekCompensation(&proposal)

	// Step 5 (computed up front; pure): rent figure from the counteroffer
	// terms with original fallback.
	rent := FourWeekRent(&proposal)

	// Step 4: status write plus the outbox intent in one transaction, so a
	// trigger failure can never be silently lost.
	intent := models.LeaseIntent{
		ProposalID:           proposal.ID,
		FourWeekRent:         rent,
		FourWeekCompensation: compensation,
		NumberOfZeros:        width,
		IsCounteroffer:       true,
		State:                models.LeaseIntentPending,
	}
	err = storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&proposal).Updates(map[string]interface{}{
			"status":       models.StatusAcceptedDrafting,
			"is_finalized": true,
		}).Error; err != nil {
			return err
		}
		if err := appendNegotiationEntry(tx, &proposal, NegotiationEntry{
			At:      time.Now(),
			Actor:   "guest",
			Event:   "counteroffer_accepted",
			Message: "Guest accepted the host's counteroffer.",
		}); err != nil {
			return err
		}
		return tx.Create(&intent).Error
	})
	if err != nil {
		return nil, err
	}

	result := &AcceptResult{Proposal: &proposal, Intent: &intent}

	// Steps 6-7: the guest path awaits the trigger; the internal path is
	// best effort. Either way the status write above is not rolled back.
	if awaitLease {
		if err := ProcessLeaseIntent(&intent); err != nil {
			result.TriggerError = err.Error()
			return result, nil
		}
		result.LeaseTriggered = true
	}
	return result, nil
}
