package services

import (
	"encoding/json"
	"reflect"
	"testing"

	"gorm.io/datatypes"

	"github.com/splitleaseteam/splitlease-monorepo-sub002/models"
)

func daysJSON(t *testing.T, days []string) datatypes.JSON {
	t.Helper()
	raw, err := json.Marshal(days)
	if err != nil {
		t.Fatal(err)
	}
	return datatypes.JSON(raw)
}

func counteredProposal(t *testing.T) *models.Proposal {
	t.Helper()
	counterNightly := 110.0
	counterWeeks := 12
	counterTotal := 110.0 * 3 * 12
	return &models.Proposal{
		Status:               models.StatusCounterofferReview,
		DaysSelected:         daysJSON(t, []string{"Monday", "Tuesday", "Wednesday"}),
		NightsPerWeek:        3,
		CheckInDay:           "Monday",
		CheckOutDay:          "Thursday",
		ReservationWeeks:     10,
		NightlyPrice:         120,
		TotalPrice:           120 * 3 * 10,
		CleaningFee:          80,
		DamageDeposit:        500,
		MaintenanceFee:       25,
		CounterofferHappened: true,
		CounterNightlyPrice:  &counterNightly,
		CounterReservationWeeks: &counterWeeks,
		CounterTotalPrice:       &counterTotal,
	}
}

func TestDerivedFields(t *testing.T) {
	p := counteredProposal(t)
	original := OriginalTerms(p)

	if original.NightsReserved != 30 {
		t.Errorf("NightsReserved = %d, want 30", original.NightsReserved)
	}
	if original.PricePerFourWeeks != 120*3*4 {
		t.Errorf("PricePerFourWeeks = %v, want %v", original.PricePerFourWeeks, 120*3*4)
	}
	if original.NightsPerFourWeeks != 12 {
		t.Errorf("NightsPerFourWeeks = %d, want 12", original.NightsPerFourWeeks)
	}
	if original.MaintenanceFeePerFourWeeks != 100 {
		t.Errorf("MaintenanceFeePerFourWeeks = %v, want 100", original.MaintenanceFeePerFourWeeks)
	}
}

func TestInitialPaymentIdentity(t *testing.T) {
	cases := []*models.Proposal{
		counteredProposal(t),
		{TotalPrice: 0, CleaningFee: 0, DamageDeposit: 0},
		{TotalPrice: 1000, CleaningFee: 0, DamageDeposit: 0},
		{TotalPrice: 999.99, CleaningFee: 50.5, DamageDeposit: 250.25},
	}
	for _, p := range cases {
		for _, side := range []TermSet{OriginalTerms(p), CounterofferTerms(p)} {
			want := side.TotalPrice + side.CleaningFee + side.DamageDeposit
			if side.InitialPayment != want {
				t.Errorf("InitialPayment = %v, want %v", side.InitialPayment, want)
			}
		}
	}
}

func TestCounterofferFallsBackToOriginal(t *testing.T) {
	p := counteredProposal(t)
	counter := CounterofferTerms(p)

	// Absent counteroffer fields keep the original values.
	if counter.NightsPerWeek != 3 {
		t.Errorf("NightsPerWeek = %d, want fallback 3", counter.NightsPerWeek)
	}
	if counter.CleaningFee != 80 {
		t.Errorf("CleaningFee = %v, want fallback 80", counter.CleaningFee)
	}
	// Present counteroffer fields override.
	if counter.NightlyPrice != 110 {
		t.Errorf("NightlyPrice = %v, want 110", counter.NightlyPrice)
	}
	if counter.ReservationWeeks != 12 {
		t.Errorf("ReservationWeeks = %d, want 12", counter.ReservationWeeks)
	}
}

func TestCompareTermsChanges(t *testing.T) {
	p := counteredProposal(t)
	comparison := CompareTerms(p)

	if !comparison.HasChanges {
		t.Fatal("expected HasChanges = true")
	}
	changed := map[string]bool{}
	for _, c := range comparison.Changes {
		changed[c.Field] = true
	}
	for _, field := range []string{"totalPrice", "nightlyPrice", "reservationWeeks"} {
		if !changed[field] {
			t.Errorf("expected %s in changes, got %v", field, comparison.Changes)
		}
	}
	// Unchanged fields must not appear.
	if changed["nightsPerWeek"] || changed["daysSelected"] {
		t.Errorf("unchanged fields reported: %v", comparison.Changes)
	}
}

func TestCompareTermsNoCounterofferYieldsNoChanges(t *testing.T) {
	p := &models.Proposal{
		DaysSelected:     daysJSON(t, []string{"Friday", "Saturday"}),
		NightsPerWeek:    2,
		ReservationWeeks: 8,
		NightlyPrice:     150,
		TotalPrice:       150 * 2 * 8,
	}
	comparison := CompareTerms(p)
	if comparison.HasChanges {
		t.Fatalf("expected no changes without a counteroffer, got %v", comparison.Changes)
	}
}

func TestCompareTermsDeterministic(t *testing.T) {
	p := counteredProposal(t)
	first := CompareTerms(p)
	second := CompareTerms(p)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("CompareTerms must be deterministic for identical input")
	}
}

func TestDaysSelectedDeepEquality(t *testing.T) {
	p := counteredProposal(t)
	p.CounterDaysSelected = daysJSON(t, []string{"Monday", "Tuesday", "Thursday"})

	comparison := CompareTerms(p)
	found := false
	for _, c := range comparison.Changes {
		if c.Field == "daysSelected" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected daysSelected change when the arrays differ")
	}

	// Identical array content must not count as a change.
	p.CounterDaysSelected = daysJSON(t, []string{"Monday", "Tuesday", "Wednesday"})
	comparison = CompareTerms(p)
	for _, c := range comparison.Changes {
		if c.Field == "daysSelected" {
			t.Fatal("equal day arrays must not be reported as changed")
		}
	}
}
