package services

import (
	"testing"
	"time"

	"github.com/splitleaseteam/splitlease-monorepo-sub002/models"
)

func TestPaymentFieldsCappedAtThirteen(t *testing.T) {
	b := completeBundle()
	b.GuestPayments = nil
	due := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 20; i++ {
		b.GuestPayments = append(b.GuestPayments, models.LeasePayment{
			Sequence: i + 1,
			DueDate:  due.AddDate(0, 0, 28*i),
			Rent:     1800,
		})
	}

	payload := BuildCreditCardAuthPayload(b, ProrationResult{})
	if payload["Number Of Payments"] != "20" {
		t.Errorf("Number Of Payments = %q, want 20", payload["Number Of Payments"])
	}
	if _, ok := payload["Rent13"]; !ok {
		t.Error("slot 13 should be filled")
	}
	if _, ok := payload["Rent14"]; ok {
		t.Error("slots past 13 must be truncated")
	}
	if payload["Date1"] != "03/02/2026" {
		t.Errorf("Date1 = %q, want 03/02/2026", payload["Date1"])
	}
}

func TestCreditCardAuthTemplateSelection(t *testing.T) {
	b := completeBundle()

	payload := BuildCreditCardAuthPayload(b, ProrationResult{})
	if payload["Template"] != "standard" {
		t.Errorf("Template = %q, want standard", payload["Template"])
	}
	if _, ok := payload["Last Payment Rent"]; ok {
		t.Error("standard template must not carry final-period fields")
	}

	payload = BuildCreditCardAuthPayload(b, ProrationResult{IsProrated: true, LastPaymentWeeks: 2, LastPaymentRent: 900})
	if payload["Template"] != "prorated" {
		t.Errorf("Template = %q, want prorated", payload["Template"])
	}
	if payload["Last Payment Weeks"] != "2" || payload["Last Payment Rent"] != "$900.00" {
		t.Errorf("final-period fields wrong: weeks=%q rent=%q", payload["Last Payment Weeks"], payload["Last Payment Rent"])
	}
}

func TestAgreementNumberSuffixes(t *testing.T) {
	b := completeBundle()
	proration := ProrationResult{}

	cases := []struct {
		doc  DocumentType
		want string
	}{
		{DocHostPayout, "0042-PO"},
		{DocSupplemental, "0042-SA"},
		{DocPeriodicTenancy, "0042"},
		{DocCreditCardAuth, "0042-CC"},
	}
	for _, c := range cases {
		payload := BuildDocumentPayload(b, c.doc, proration)
		if payload["Agreement Number"] != c.want {
			t.Errorf("%s agreement number = %q, want %q", c.doc, payload["Agreement Number"], c.want)
		}
	}
}

func TestBuildersTolerateSparseBundle(t *testing.T) {
	b := &DocumentBundle{Lease: &models.Lease{AgreementNumber: "0007"}}
	for _, doc := range AllDocumentTypes {
		payload := BuildDocumentPayload(b, doc, ProrationResult{})
		if len(payload) == 0 {
			t.Errorf("%s builder returned an empty payload", doc)
		}
	}
	payload := BuildPeriodicTenancyPayload(b)
	if payload["Guest Name"] != "" {
		t.Errorf("missing guest yields blank name, got %q", payload["Guest Name"])
	}
	if payload["Tenancy Start"] != "" {
		t.Errorf("missing dates yield blank fields, got %q", payload["Tenancy Start"])
	}
}

func TestCounterofferTermsPreferredInPayloads(t *testing.T) {
	b := completeBundle()
	counterStart := time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)
	counterNightly := 95.0
	b.Proposal.CounterofferHappened = true
	b.Proposal.CounterMoveInStart = &counterStart
	b.Proposal.CounterNightlyPrice = &counterNightly

	supplemental := BuildSupplementalPayload(b)
	if supplemental["Reservation Start"] != "04/06/2026" {
		t.Errorf("Reservation Start = %q, want counteroffer date", supplemental["Reservation Start"])
	}
	tenancy := BuildPeriodicTenancyPayload(b)
	if tenancy["Nightly Price"] != "$95.00" {
		t.Errorf("Nightly Price = %q, want counteroffer price", tenancy["Nightly Price"])
	}
}

func TestHostPayoutUsesHostTrack(t *testing.T) {
	b := completeBundle()
	payload := BuildHostPayoutPayload(b)
	if payload["Number Of Payments"] != "2" {
		t.Errorf("Number Of Payments = %q, want 2", payload["Number Of Payments"])
	}
	if payload["Rent1"] != "$1,500.00" {
		t.Errorf("Rent1 = %q, want host compensation amount", payload["Rent1"])
	}
	if payload["Host Email"] != "ben@example.com" {
		t.Errorf("Host Email = %q", payload["Host Email"])
	}
}
