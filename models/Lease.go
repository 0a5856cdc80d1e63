package models

import (
	"time"

	"gorm.io/gorm"
)

// Lease is the binding agreement created exactly once from an accepted
// proposal (direct accept or accepted counteroffer).
type Lease struct {
	gorm.Model
	AgreementNumber      string    `json:"agreementNumber" gorm:"size:32;uniqueIndex"`
	ProposalID           uint      `json:"proposalID" gorm:"index"`
	GuestID              uint      `json:"guestID" gorm:"index"`
	HostID               uint      `json:"hostID" gorm:"index"`
	ListingID            uint      `json:"listingID" gorm:"index"`
	StartDate            time.Time `json:"startDate"`
	EndDate              time.Time `json:"endDate"`
	FourWeekRent         float64   `json:"fourWeekRent"`
	FourWeekCompensation float64   `json:"fourWeekCompensation"`
	IsCounteroffer       bool      `json:"isCounteroffer" gorm:"default:false"`

	// Relationships
	Payments []LeasePayment `json:"payments,omitempty" gorm:"foreignKey:LeaseID"`
	Proposal *Proposal      `json:"proposal,omitempty" gorm:"foreignKey:ProposalID"`
	Guest    *User          `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
	Host     *User          `json:"host,omitempty" gorm:"foreignKey:HostID"`
	Listing  *Listing       `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
}
