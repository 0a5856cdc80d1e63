package services

import (
	"strings"

	"golang.org/x/exp/slices"

	"github.com/splitleaseteam/splitlease-monorepo-sub002/models"
)

// Action is a user-facing operation that may be performed on a proposal.
type Action string

const (
	ActionCancel              Action = "cancel"
	ActionModify              Action = "modify"
	ActionAcceptCounteroffer  Action = "accept_counteroffer"
	ActionDeclineCounteroffer Action = "decline_counteroffer"
	ActionRequestMeeting      Action = "request_meeting"
	ActionShare               Action = "share"
)

// StatusInfo describes one proposal status: whether it is terminal (no
// further transitions), whether the lease stage has been reached, its
// position in the pipeline, and which actions it permits.
type StatusInfo struct {
	Terminal       bool     `json:"terminal"`
	Completed      bool     `json:"completed"`
	Order          int      `json:"order"`
	AllowedActions []Action `json:"allowedActions"`
	Label          string   `json:"label"`
}

// statusRegistry is the single source of truth for status-derived behavior.
// Progress indicators, guards and labels all key off this table; nothing in
// the codebase matches on substrings of the status text.
var statusRegistry = map[models.ProposalStatus]StatusInfo{
	models.StatusSubmitted: {
		Order:          1,
		AllowedActions: []Action{ActionCancel, ActionModify, ActionShare},
		Label:          "Submitted, Awaiting Application",
	},
	models.StatusHostReview: {
		Order:          2,
		AllowedActions: []Action{ActionCancel, ActionRequestMeeting, ActionShare},
		Label:          "Awaiting Host Review",
	},
	models.StatusCounterofferReview: {
		Order: 3,
		AllowedActions: []Action{
			ActionCancel, ActionAcceptCounteroffer, ActionDeclineCounteroffer, ActionRequestMeeting, ActionShare,
		},
		Label: "Counteroffer Awaiting Your Review",
	},
	models.StatusMeetingScheduled: {
		Order:          4,
		AllowedActions: []Action{ActionCancel, ActionShare},
		Label:          "Meeting Scheduled",
	},
	models.StatusAcceptedDrafting: {
		Order:          5,
		AllowedActions: []Action{ActionCancel, ActionShare},
		Label:          "Accepted, Drafting Lease",
	},
	models.StatusOutForSignature: {
		Order:          6,
		AllowedActions: []Action{ActionCancel, ActionShare},
		Label:          "Lease Out for Signature",
	},
	models.StatusLeaseActivated: {
		Order:          7,
		Completed:      true,
		AllowedActions: []Action{ActionShare},
		Label:          "Lease Activated",
	},
	models.StatusStayInProgress: {
		Order:          8,
		Completed:      true,
		AllowedActions: []Action{ActionShare},
		Label:          "Stay In Progress",
	},
	models.StatusCancelledByGuest: {
		Terminal: true,
		Label:    "Cancelled by Guest",
	},
	models.StatusCancelledByPlatform: {
		Terminal: true,
		Label:    "Cancelled by Split Lease",
	},
	models.StatusRejectedByHost: {
		Terminal: true,
		Label:    "Rejected by Host",
	},
	models.StatusExpired: {
		Terminal: true,
		Label:    "Expired",
	},
}

// StatusFor returns the registry entry for a status. Unknown statuses get a
// zero-value entry: not terminal, not completed, order 0, no actions.
func StatusFor(s models.ProposalStatus) StatusInfo {
	return statusRegistry[s]
}

func IsTerminal(s models.ProposalStatus) bool {
	return statusRegistry[s].Terminal
}

func IsCompleted(s models.ProposalStatus) bool {
	return statusRegistry[s].Completed
}

func StatusOrder(s models.ProposalStatus) int {
	return statusRegistry[s].Order
}

func AllowsAction(s models.ProposalStatus, a Action) bool {
	return slices.Contains(statusRegistry[s].AllowedActions, a)
}

// ParseProposalStatus normalizes a raw status string from an external source
// into the typed enum. Data arrives under several historical spellings; this
// is the only place they are reconciled.
func ParseProposalStatus(raw string) (models.ProposalStatus, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer(" ", "_", "-", "_", "/", "_").Replace(key)

	switch key {
	case "submitted_awaiting_application", "submitted", "awaiting_application":
		return models.StatusSubmitted, true
	case "awaiting_host_review", "host_review", "pending":
		return models.StatusHostReview, true
	case "counteroffer_awaiting_guest_review", "counteroffer_review", "countered":
		return models.StatusCounterofferReview, true
	case "meeting_scheduled":
		return models.StatusMeetingScheduled, true
	case "accepted_drafting", "accepted", "drafting":
		return models.StatusAcceptedDrafting, true
	case "lease_out_for_signature", "out_for_signature", "signing":
		return models.StatusOutForSignature, true
	case "lease_activated", "activated":
		return models.StatusLeaseActivated, true
	case "stay_in_progress", "in_progress":
		return models.StatusStayInProgress, true
	case "cancelled_by_guest", "canceled_by_guest", "cancelled":
		return models.StatusCancelledByGuest, true
	case "cancelled_by_platform", "canceled_by_platform":
		return models.StatusCancelledByPlatform, true
	case "rejected_by_host", "rejected":
		return models.StatusRejectedByHost, true
	case "expired":
		return models.StatusExpired, true
	}
	return models.ProposalStatus(key), false
}
