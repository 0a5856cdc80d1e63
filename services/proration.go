package services

import (
	"strings"

	"github.com/splitleaseteam/splitlease-monorepo-sub002/models"
)

// WeekPattern is the typed recurrence pattern of a split-week reservation.
// Raw pattern strings are parsed exactly once, at the data boundary.
type WeekPattern string

const (
	PatternEveryWeek     WeekPattern = "every_week"
	PatternOneOnOneOff   WeekPattern = "one_on_one_off"
	PatternTwoOnTwoOff   WeekPattern = "two_on_two_off"
	PatternOneOnThreeOff WeekPattern = "one_on_three_off"
)

// ParseWeekPattern normalizes a stored pattern string into the typed enum.
// Unknown input falls back to the every-week rule downstream.
func ParseWeekPattern(raw string) WeekPattern {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	switch WeekPattern(key) {
	case PatternOneOnOneOff, PatternTwoOnTwoOff, PatternOneOnThreeOff:
		return WeekPattern(key)
	default:
		return PatternEveryWeek
	}
}

// ProrationResult decides whether the final payment period of a lease covers
// less than a full four-week period, and what that last charge looks like.
// It selects the prorated vs standard template for the credit card
// authorization document.
type ProrationResult struct {
	IsProrated       bool    `json:"isProrated"`
	LastPaymentWeeks int     `json:"lastPaymentWeeks"`
	LastPaymentRent  float64 `json:"lastPaymentRent"`
}

// ProrationFromPayments is the primary strategy: with more than one actual
// guest payment record, the schedule is prorated iff the last charge is
// smaller than the first. Returns ok=false when the records cannot decide.
func ProrationFromPayments(payments []models.LeasePayment) (ProrationResult, bool) {
	if len(payments) < 2 {
		return ProrationResult{}, false
	}
	first := payments[0]
	last := payments[len(payments)-1]
	return ProrationResult{
		IsProrated:       last.Rent < first.Rent,
		LastPaymentWeeks: 4,
		LastPaymentRent:  last.Rent,
	}, true
}

// ProrationFromPattern is the fallback strategy used when actual payment
// records are unavailable. The decision is keyed on the remainder of the
// reservation span against the four-week billing period.
func ProrationFromPattern(pattern WeekPattern, spanWeeks int, fourWeekRent float64) ProrationResult {
	remaining := spanWeeks % 4

	switch pattern {
	case PatternOneOnOneOff:
		if remaining <= 2 {
			return ProrationResult{
				IsProrated:       true,
				LastPaymentWeeks: remaining,
				LastPaymentRent:  fourWeekRent / 2,
			}
		}
		return ProrationResult{LastPaymentWeeks: 4, LastPaymentRent: fourWeekRent}

	case PatternTwoOnTwoOff:
		if remaining < 2 {
			return ProrationResult{
				IsProrated:       remaining == 1,
				LastPaymentWeeks: remaining,
				LastPaymentRent:  fourWeekRent / 2,
			}
		}
		return ProrationResult{LastPaymentWeeks: 4, LastPaymentRent: fourWeekRent}

	case PatternOneOnThreeOff:
		// One stay week per four-week period; always a full charge.
		return ProrationResult{LastPaymentWeeks: 4, LastPaymentRent: fourWeekRent}

	default: // PatternEveryWeek and anything unknown
		lastWeeks := remaining
		if remaining == 0 {
			lastWeeks = 4
		}
		return ProrationResult{
			IsProrated:       remaining != 0,
			LastPaymentWeeks: lastWeeks,
			LastPaymentRent:  float64(lastWeeks) / 4 * fourWeekRent,
		}
	}
}

// ResolveProration picks the primary strategy when the bundle carries usable
// guest payment records and falls back to the pattern rule otherwise.
func ResolveProration(b *DocumentBundle) ProrationResult {
	if result, ok := ProrationFromPayments(b.GuestPayments); ok {
		return result
	}
	spanWeeks := 0
	fourWeekRent := 0.0
	if b.Proposal != nil {
		spanWeeks = CounterofferTerms(b.Proposal).ReservationWeeks
	}
	if b.Lease != nil {
		fourWeekRent = b.Lease.FourWeekRent
	}
	return ProrationFromPattern(b.WeekPattern, spanWeeks, fourWeekRent)
}
