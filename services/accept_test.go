package services

import (
	"testing"

	"github.com/splitleaseteam/splitlease-monorepo-sub002/models"
)

func TestAgreementNumberWidth(t *testing.T) {
	cases := []struct {
		count int64
		want  int
	}{
		{0, 4},
		{7, 4},
		{9, 4},
		{10, 3},
		{42, 3},
		{99, 3},
		{100, 2},
		{150, 2},
		{5000, 2},
	}
	for _, c := range cases {
		if got := AgreementNumberWidth(c.count); got != c.want {
			t.Errorf("AgreementNumberWidth(%d) = %d, want %d", c.count, got, c.want)
		}
	}
}

func TestFourWeekCompensationUsesOriginalTerms(t *testing.T) {
	counterNightly := 200.0
	counterNights := 5
	p := &models.Proposal{
		NightsPerWeek:        3,
		NightlyPrice:         100,
		CounterofferHappened: true,
		CounterNightlyPrice:  &counterNightly,
		CounterNightsPerWeek: &counterNights,
	}
	// The host payout ignores the counteroffer figures.
	if got := FourWeekCompensation(p); got != 3*4*100 {
		t.Errorf("FourWeekCompensation = %v, want %v", got, 3*4*100)
	}
}

func TestFourWeekRentUsesCounterofferTerms(t *testing.T) {
	counterNightly := 200.0
	counterNights := 5
	p := &models.Proposal{
		NightsPerWeek:        3,
		NightlyPrice:         100,
		CounterNightlyPrice:  &counterNightly,
		CounterNightsPerWeek: &counterNights,
	}
	if got := FourWeekRent(p); got != 5*4*200 {
		t.Errorf("FourWeekRent = %v, want %v", got, 5*4*200)
	}

	// Without counteroffer fields the original terms carry through.
	p = &models.Proposal{NightsPerWeek: 3, NightlyPrice: 100}
	if got := FourWeekRent(p); got != 3*4*100 {
		t.Errorf("FourWeekRent fallback = %v, want %v", got, 3*4*100)
	}
}
