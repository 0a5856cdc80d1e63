package services

import (
	"strings"
	"testing"
	"time"

	"github.com/splitleaseteam/splitlease-monorepo-sub002/models"
)

func completeBundle() *DocumentBundle {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 70)
	return &DocumentBundle{
		Lease: &models.Lease{
			AgreementNumber: "0042",
			StartDate:       start,
			EndDate:         end,
			FourWeekRent:    1800,
		},
		Proposal: &models.Proposal{
			MoveInStart:      start,
			MoveInEnd:        end,
			NightsPerWeek:    3,
			ReservationWeeks: 10,
		},
		Guest:   &models.User{FirstName: "Ana", LastName: "Ruiz"},
		Host:    &models.User{FirstName: "Ben", LastName: "Cole", Email: "ben@example.com"},
		Listing: &models.Listing{AddressLine1: "12 Main St", City: "Brooklyn", State: "NY", Zip: "11201"},
		GuestPayments: []models.LeasePayment{
			{Sequence: 1, Rent: 1800},
			{Sequence: 2, Rent: 1800},
		},
		HostPayments: []models.LeasePayment{
			{Sequence: 1, Rent: 1500},
			{Sequence: 2, Rent: 1500},
		},
		WeekPattern: PatternEveryWeek,
	}
}

func hasEntryContaining(entries []string, fragment string) bool {
	for _, e := range entries {
		if strings.Contains(e, fragment) {
			return true
		}
	}
	return false
}

func TestCheckReadinessCompleteBundle(t *testing.T) {
	r := CheckReadiness(completeBundle())
	if !r.CanGenerate() {
		t.Fatalf("complete bundle should generate, errors: %v", r.Errors)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("complete bundle should not warn, got %v", r.Warnings)
	}
}

func TestCheckReadinessMissingHostBlocks(t *testing.T) {
	b := completeBundle()
	b.Host = nil
	r := CheckReadiness(b)
	if r.CanGenerate() {
		t.Fatal("missing host must block generation")
	}
	if !hasEntryContaining(r.Errors, "Host") {
		t.Errorf("expected host error, got %v", r.Errors)
	}
}

func TestCheckReadinessMissingAgreementNumberBlocks(t *testing.T) {
	b := completeBundle()
	b.Lease.AgreementNumber = "   "
	r := CheckReadiness(b)
	if r.CanGenerate() {
		t.Fatal("blank agreement number must block generation")
	}
}

func TestCheckReadinessMissingProposalOnlyWarns(t *testing.T) {
	b := completeBundle()
	b.Proposal = nil
	r := CheckReadiness(b)
	if !r.CanGenerate() {
		t.Fatalf("missing proposal must not block, errors: %v", r.Errors)
	}
	if !hasEntryContaining(r.Warnings, "Proposal") {
		t.Errorf("expected proposal warning, got %v", r.Warnings)
	}
}

func TestCheckReadinessScheduleLengthMismatchWarns(t *testing.T) {
	b := completeBundle()
	b.HostPayments = b.HostPayments[:1]
	r := CheckReadiness(b)
	if !r.CanGenerate() {
		t.Fatalf("length mismatch must not block, errors: %v", r.Errors)
	}
	if !hasEntryContaining(r.Warnings, "different lengths") {
		t.Errorf("expected mismatch warning, got %v", r.Warnings)
	}
}

func TestCheckDocumentReadinessCreditCardAuth(t *testing.T) {
	b := completeBundle()
	b.GuestPayments = nil
	r := CheckDocumentReadiness(b, DocCreditCardAuth)
	if r.CanGenerate() {
		t.Fatal("credit card auth requires at least one guest payment record")
	}

	// The other documents do not require the guest track.
	for _, doc := range []DocumentType{DocHostPayout, DocSupplemental, DocPeriodicTenancy} {
		r := CheckDocumentReadiness(b, doc)
		if !r.CanGenerate() {
			t.Errorf("%s should not require guest payments, errors: %v", doc, r.Errors)
		}
	}
}

func TestCheckDocumentReadinessLeaseRequired(t *testing.T) {
	b := completeBundle()
	b.Lease = nil
	for _, doc := range AllDocumentTypes {
		r := CheckDocumentReadiness(b, doc)
		if r.CanGenerate() {
			t.Errorf("%s must require a lease record", doc)
		}
	}
}
