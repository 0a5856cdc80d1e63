package models

import (
	"gorm.io/gorm"
)

// Lease intent states.
const (
	LeaseIntentPending   = "pending"
	LeaseIntentSucceeded = "succeeded"
	LeaseIntentFailed    = "failed"
)

// LeaseIntent is the outbox row recorded in the same transaction as the
// accept-counteroffer status write. A separate sweeper retries pending
// intents so a failed lease-creation call is never silently lost.
type LeaseIntent struct {
	gorm.Model
	ProposalID           uint    `json:"proposalID" gorm:"index"`
	FourWeekRent         float64 `json:"fourWeekRent"`
	FourWeekCompensation float64 `json:"fourWeekCompensation"`
	NumberOfZeros        int     `json:"numberOfZeros"`
	IsCounteroffer       bool    `json:"isCounteroffer"`
	State                string  `json:"state" gorm:"size:16;index;default:'pending'"` // pending, succeeded, failed
	Attempts             int     `json:"attempts"`
	LastError            string  `json:"lastError" gorm:"size:500"`
}
