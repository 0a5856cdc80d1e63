package services

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/splitleaseteam/splitlease-monorepo-sub002/models"
	"github.com/splitleaseteam/splitlease-monorepo-sub002/storage"
)

// DeclineReason is the default cancellation reason recorded when a guest
// declines a counteroffer.
const DeclineReason = "counteroffer declined by guest"

// NegotiationEntry is one record in a proposal's append-only negotiation
// summary log, newest last.
type NegotiationEntry struct {
	At      time.Time `json:"at"`
	Actor   string    `json:"actor"` // guest, host, platform
	Event   string    `json:"event"`
	Message string    `json:"message,omitempty"`
}

func appendNegotiationEntry(tx *gorm.DB, p *models.Proposal, entry NegotiationEntry) error {
	var entries []NegotiationEntry
	if len(p.NegotiationLog) > 0 {
		// A malformed log is replaced rather than blocking the transition.
		_ = json.Unmarshal(p.NegotiationLog, &entries)
	}
	entries = append(entries, entry)
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return tx.Model(p).Update("negotiation_log", raw).Error
}

// CancelOutcome pairs the guard decision with the (possibly updated)
// proposal. When the decision disallows the cancel, the proposal is
// untouched.
type CancelOutcome struct {
	Decision CancellationDecision `json:"decision"`
	Proposal *models.Proposal     `json:"proposal"`
}

// CancelProposal runs the guarded cancel workflow: consult the composite
// cancellation decision on a freshly fetched proposal, then persist the
// terminal status with the reason. Re-invoking on an already terminal
// proposal is a no-op that reports already_cancelled.
func CancelProposal(proposalID uint, newStatus models.ProposalStatus, reason, actor string) (*CancelOutcome, error) {
	ctx := context.Background()
	locked, err := storage.AcquireTransitionLock(ctx, proposalID, 30*time.Second)
	if err == nil && !locked {
		return nil, ErrTransitionLocked
	}
	if err == nil {
		defer storage.ReleaseTransitionLock(ctx, proposalID)
	}

	var proposal models.Proposal
	if err := storage.DB.Preload("Listing").First(&proposal, proposalID).Error; err != nil {
		return nil, err
	}

	houseManual := ""
	if proposal.Listing != nil {
		houseManual = proposal.Listing.HouseManual
	}
	decision := DetermineCancellationCondition(&proposal, houseManual)
	outcome := &CancelOutcome{Decision: decision, Proposal: &proposal}
	if !decision.Allowed {
		return outcome, nil
	}

	err = storage.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status": newStatus,
		}
		if reason != "" {
			updates["cancellation_reason"] = reason
		}
		if err := tx.Model(&proposal).Updates(updates).Error; err != nil {
			return err
		}
		return appendNegotiationEntry(tx, &proposal, NegotiationEntry{
			At:      time.Now(),
			Actor:   actor,
			Event:   "cancelled",
			Message: reason,
		})
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// DeclineCounteroffer cancels with the default decline reason. Same guard
// and terminal-state rules as a guest cancel.
func DeclineCounteroffer(proposalID uint) (*CancelOutcome, error) {
	var proposal models.Proposal
	if err := storage.DB.First(&proposal, proposalID).Error; err != nil {
		return nil, err
	}
	if !CanDeclineCounteroffer(&proposal) {
		return &CancelOutcome{
			Decision: DetermineCancellationCondition(&proposal, ""),
			Proposal: &proposal,
		}, ErrNoReviewableCounteroffer
	}
	return CancelProposal(proposalID, models.StatusCancelledByGuest, DeclineReason, "guest")
}
