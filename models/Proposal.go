package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProposalStatus is the typed status enum. All status-derived behavior keys
// off the registry in services/status.go, never off the raw string.
type ProposalStatus string

const (
	StatusSubmitted           ProposalStatus = "submitted_awaiting_application"
	StatusHostReview          ProposalStatus = "awaiting_host_review"
	StatusCounterofferReview  ProposalStatus = "counteroffer_awaiting_guest_review"
	StatusMeetingScheduled    ProposalStatus = "meeting_scheduled"
	StatusAcceptedDrafting    ProposalStatus = "accepted_drafting"
	StatusOutForSignature     ProposalStatus = "lease_out_for_signature"
	StatusLeaseActivated      ProposalStatus = "lease_activated"
	StatusStayInProgress      ProposalStatus = "stay_in_progress"
	StatusCancelledByGuest    ProposalStatus = "cancelled_by_guest"
	StatusCancelledByPlatform ProposalStatus = "cancelled_by_platform"
	StatusRejectedByHost      ProposalStatus = "rejected_by_host"
	StatusExpired             ProposalStatus = "expired"
)

// Proposal is a guest's request to rent a listing on a split-week schedule,
// subject to host negotiation. Counteroffer fields are only meaningful when
// CounterofferHappened is true.
type Proposal struct {
	gorm.Model
	GuestID   uint           `json:"guestID" gorm:"index"`
	ListingID uint           `json:"listingID" gorm:"index"`
	Status    ProposalStatus `json:"status" gorm:"type:varchar(64);index"`

	// Original terms as submitted by the guest
	MoveInStart      time.Time      `json:"moveInStart"`
	MoveInEnd        time.Time      `json:"moveInEnd"`
	DaysSelected     datatypes.JSON `json:"daysSelected"` // JSON array of weekday names
	NightsPerWeek    int            `json:"nightsPerWeek"`
	CheckInDay       string         `json:"checkInDay" gorm:"size:16"`
	CheckOutDay      string         `json:"checkOutDay" gorm:"size:16"`
	ReservationWeeks int            `json:"reservationWeeks"`
	NightlyPrice     float64        `json:"nightlyPrice"`
	TotalPrice       float64        `json:"totalPrice"`
	CleaningFee      float64        `json:"cleaningFee"`
	DamageDeposit    float64        `json:"damageDeposit"`
	MaintenanceFee   float64        `json:"maintenanceFee"`

	// Counteroffer terms, present only once the host counters
	CounterMoveInStart      *time.Time     `json:"counterMoveInStart,omitempty"`
	CounterMoveInEnd        *time.Time     `json:"counterMoveInEnd,omitempty"`
	CounterDaysSelected     datatypes.JSON `json:"counterDaysSelected,omitempty"`
	CounterNightsPerWeek    *int           `json:"counterNightsPerWeek,omitempty"`
	CounterCheckInDay       *string        `json:"counterCheckInDay,omitempty"`
	CounterCheckOutDay      *string        `json:"counterCheckOutDay,omitempty"`
	CounterReservationWeeks *int           `json:"counterReservationWeeks,omitempty"`
	CounterNightlyPrice     *float64       `json:"counterNightlyPrice,omitempty"`
	CounterTotalPrice       *float64       `json:"counterTotalPrice,omitempty"`
	CounterCleaningFee      *float64       `json:"counterCleaningFee,omitempty"`
	CounterDamageDeposit    *float64       `json:"counterDamageDeposit,omitempty"`
	CounterMaintenanceFee   *float64       `json:"counterMaintenanceFee,omitempty"`

	CounterofferHappened bool   `json:"counterofferHappened" gorm:"default:false"`
	IsFinalized          bool   `json:"isFinalized" gorm:"default:false"`
	CancellationReason   string `json:"cancellationReason" gorm:"size:500"`

	// Append-only negotiation summary, newest entry last
	NegotiationLog datatypes.JSON `json:"negotiationLog"`

	// Relationships
	Guest   *User    `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
	Listing *Listing `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
}
