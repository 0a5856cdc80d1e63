package routes

import (
	"testing"

	"github.com/splitleaseteam/splitlease-monorepo-sub002/models"
	"github.com/splitleaseteam/splitlease-monorepo-sub002/utils"
)

func TestIsProposalGuest(t *testing.T) {
	proposal := &models.Proposal{GuestID: 7}

	if !isProposalGuest(&utils.AccessToken{ID: 7}, proposal) {
		t.Error("the proposal's guest must pass the ownership check")
	}
	if isProposalGuest(&utils.AccessToken{ID: 8}, proposal) {
		t.Error("another user must not pass the ownership check")
	}
	if isProposalGuest(&utils.AccessToken{ID: 8, Role: "admin"}, proposal) {
		t.Error("guest-side transitions are not granted by role; admin actions have their own routes")
	}
	if isProposalGuest(nil, proposal) {
		t.Error("missing claims must not pass the ownership check")
	}
}

func TestMayViewNegotiation(t *testing.T) {
	proposal := &models.Proposal{
		GuestID: 7,
		Listing: &models.Listing{HostID: 9},
	}

	if !mayViewNegotiation(&utils.AccessToken{ID: 7}, proposal) {
		t.Error("the guest may view the negotiation comparison")
	}
	if !mayViewNegotiation(&utils.AccessToken{ID: 9}, proposal) {
		t.Error("the listing host may view the negotiation comparison")
	}
	if mayViewNegotiation(&utils.AccessToken{ID: 11}, proposal) {
		t.Error("an unrelated user must not view the negotiation comparison")
	}

	// A proposal without its listing loaded grants nothing beyond the guest.
	bare := &models.Proposal{GuestID: 7}
	if mayViewNegotiation(&utils.AccessToken{ID: 9}, bare) {
		t.Error("host access requires the listing relation to be present")
	}
}
