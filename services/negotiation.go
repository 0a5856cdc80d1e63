package services

import (
	"encoding/json"
	"time"

	"golang.org/x/exp/slices"

	"github.com/splitleaseteam/splitlease-monorepo-sub002/models"
)

// TermSet is the canonical, fully populated view of one side of a
// negotiation. The counteroffer side is built with original-term fallback so
// downstream logic never deals with partially present fields.
type TermSet struct {
	MoveInStart      time.Time `json:"moveInStart"`
	MoveInEnd        time.Time `json:"moveInEnd"`
	DaysSelected     []string  `json:"daysSelected"`
	NightsPerWeek    int       `json:"nightsPerWeek"`
	CheckInDay       string    `json:"checkInDay"`
	CheckOutDay      string    `json:"checkOutDay"`
	ReservationWeeks int       `json:"reservationWeeks"`
	NightlyPrice     float64   `json:"nightlyPrice"`
	TotalPrice       float64   `json:"totalPrice"`
	CleaningFee      float64   `json:"cleaningFee"`
	DamageDeposit    float64   `json:"damageDeposit"`
	MaintenanceFee   float64   `json:"maintenanceFee"`

	// Derived fields, computed identically for both sides
	NightsReserved             int     `json:"nightsReserved"`
	PricePerFourWeeks          float64 `json:"pricePerFourWeeks"`
	NightsPerFourWeeks         int     `json:"nightsPerFourWeeks"`
	MaintenanceFeePerFourWeeks float64 `json:"maintenanceFeePerFourWeeks"`
	InitialPayment             float64 `json:"initialPayment"`
}

// FieldChange records one term the counteroffer modified.
type FieldChange struct {
	Field    string      `json:"field"`
	Original interface{} `json:"original"`
	Modified interface{} `json:"modified"`
}

// TermComparison is the original-vs-counteroffer view shown to both the host
// review UI and the guest acceptance UI. Read-only and deterministic.
type TermComparison struct {
	Original     TermSet       `json:"original"`
	Counteroffer TermSet       `json:"counteroffer"`
	Changes      []FieldChange `json:"changes"`
	HasChanges   bool          `json:"hasChanges"`
}

func decodeDays(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var days []string
	if err := json.Unmarshal(raw, &days); err != nil {
		return []string{}
	}
	return days
}

func (t *TermSet) derive() {
	t.NightsReserved = t.NightsPerWeek * t.ReservationWeeks
	t.PricePerFourWeeks = t.NightlyPrice * float64(t.NightsPerWeek) * 4
	t.NightsPerFourWeeks = t.NightsPerWeek * 4
	t.MaintenanceFeePerFourWeeks = t.MaintenanceFee * 4
	t.InitialPayment = t.TotalPrice + t.CleaningFee + t.DamageDeposit
}

// OriginalTerms builds the canonical term record from the guest's submitted
// terms.
func OriginalTerms(p *models.Proposal) TermSet {
	t := TermSet{
		MoveInStart:      p.MoveInStart,
		MoveInEnd:        p.MoveInEnd,
		DaysSelected:     decodeDays(p.DaysSelected),
		NightsPerWeek:    p.NightsPerWeek,
		CheckInDay:       p.CheckInDay,
		CheckOutDay:      p.CheckOutDay,
		ReservationWeeks: p.ReservationWeeks,
		NightlyPrice:     p.NightlyPrice,
		TotalPrice:       p.TotalPrice,
		CleaningFee:      p.CleaningFee,
		DamageDeposit:    p.DamageDeposit,
		MaintenanceFee:   p.MaintenanceFee,
	}
	t.derive()
	return t
}

// CounterofferTerms builds the canonical term record for the host's
// counteroffer. Absent counteroffer fields fall back to the original terms,
// so the result is always a complete record.
func CounterofferTerms(p *models.Proposal) TermSet {
	t := OriginalTerms(p)
	if p.CounterMoveInStart != nil {
		t.MoveInStart = *p.CounterMoveInStart
	}
	if p.CounterMoveInEnd != nil {
		t.MoveInEnd = *p.CounterMoveInEnd
	}
	if len(p.CounterDaysSelected) > 0 {
		t.DaysSelected = decodeDays(p.CounterDaysSelected)
	}
	if p.CounterNightsPerWeek != nil {
		t.NightsPerWeek = *p.CounterNightsPerWeek
	}
	if p.CounterCheckInDay != nil {
		t.CheckInDay = *p.CounterCheckInDay
	}
	if p.CounterCheckOutDay != nil {
		t.CheckOutDay = *p.CounterCheckOutDay
	}
	if p.CounterReservationWeeks != nil {
		t.ReservationWeeks = *p.CounterReservationWeeks
	}
	if p.CounterNightlyPrice != nil {
		t.NightlyPrice = *p.CounterNightlyPrice
	}
	if p.CounterTotalPrice != nil {
		t.TotalPrice = *p.CounterTotalPrice
	}
	if p.CounterCleaningFee != nil {
		t.CleaningFee = *p.CounterCleaningFee
	}
	if p.CounterDamageDeposit != nil {
		t.DamageDeposit = *p.CounterDamageDeposit
	}
	if p.CounterMaintenanceFee != nil {
		t.MaintenanceFee = *p.CounterMaintenanceFee
	}
	t.derive()
	return t
}

// CompareTerms computes the original-vs-counteroffer view with the list of
// changed fields. Scalars compare by value, the days array by deep equality.
func CompareTerms(p *models.Proposal) TermComparison {
	original := OriginalTerms(p)
	counter := CounterofferTerms(p)

	changes := []FieldChange{}
	if original.TotalPrice != counter.TotalPrice {
		changes = append(changes, FieldChange{Field: "totalPrice", Original: original.TotalPrice, Modified: counter.TotalPrice})
	}
	if original.NightlyPrice != counter.NightlyPrice {
		changes = append(changes, FieldChange{Field: "nightlyPrice", Original: original.NightlyPrice, Modified: counter.NightlyPrice})
	}
	if original.ReservationWeeks != counter.ReservationWeeks {
		changes = append(changes, FieldChange{Field: "reservationWeeks", Original: original.ReservationWeeks, Modified: counter.ReservationWeeks})
	}
	if original.NightsPerWeek != counter.NightsPerWeek {
		changes = append(changes, FieldChange{Field: "nightsPerWeek", Original: original.NightsPerWeek, Modified: counter.NightsPerWeek})
	}
	if !slices.Equal(original.DaysSelected, counter.DaysSelected) {
		changes = append(changes, FieldChange{Field: "daysSelected", Original: original.DaysSelected, Modified: counter.DaysSelected})
	}

	return TermComparison{
		Original:     original,
		Counteroffer: counter,
		Changes:      changes,
		HasChanges:   len(changes) > 0,
	}
}
