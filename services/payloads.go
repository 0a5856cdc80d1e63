package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/splitleaseteam/splitlease-monorepo-sub002/models"
	"github.com/splitleaseteam/splitlease-monorepo-sub002/utils"
)

// DocumentPayload is the flat field map handed to the document renderer for
// one document type. Keys are the fixed, human-readable field names of the
// legal templates, not internal column names.
type DocumentPayload map[string]string

// maxPaymentFields is the number of numbered payment slots the legal
// templates carry. Records beyond it are silently truncated.
const maxPaymentFields = 13

func paymentFields(payload DocumentPayload, payments []models.LeasePayment) {
	for i, p := range payments {
		if i >= maxPaymentFields {
			break
		}
		n := strconv.Itoa(i + 1)
		payload["Date"+n] = utils.FormatDate(p.DueDate)
		payload["Rent"+n] = utils.FormatCurrency(p.Rent)
		payload["Total"+n] = utils.FormatCurrency(p.Rent + p.Fee + p.DamageDeposit)
	}
}

// Source priority for dates, rents and fees: counteroffer terms, then
// original proposal terms, then the lease record itself.

func (b *DocumentBundle) effectiveStartDate() time.Time {
	if b.Proposal != nil {
		if b.Proposal.CounterMoveInStart != nil {
			return *b.Proposal.CounterMoveInStart
		}
		if !b.Proposal.MoveInStart.IsZero() {
			return b.Proposal.MoveInStart
		}
	}
	if b.Lease != nil {
		return b.Lease.StartDate
	}
	return time.Time{}
}

func (b *DocumentBundle) effectiveEndDate() time.Time {
	if b.Proposal != nil {
		if b.Proposal.CounterMoveInEnd != nil {
			return *b.Proposal.CounterMoveInEnd
		}
		if !b.Proposal.MoveInEnd.IsZero() {
			return b.Proposal.MoveInEnd
		}
	}
	if b.Lease != nil {
		return b.Lease.EndDate
	}
	return time.Time{}
}

func (b *DocumentBundle) effectiveTerms() TermSet {
	if b.Proposal != nil {
		return CounterofferTerms(b.Proposal)
	}
	return TermSet{}
}

func (b *DocumentBundle) agreementNumber() string {
	if b.Lease == nil {
		return ""
	}
	return b.Lease.AgreementNumber
}

func (b *DocumentBundle) guestName() string {
	if b.Guest == nil {
		return ""
	}
	return b.Guest.FullName()
}

func (b *DocumentBundle) hostName() string {
	if b.Host == nil {
		return ""
	}
	return b.Host.FullName()
}

func (b *DocumentBundle) listingAddress() string {
	if b.Listing == nil {
		return ""
	}
	return b.Listing.Address()
}

func (b *DocumentBundle) fourWeekRent() float64 {
	if b.Lease == nil {
		return 0
	}
	return b.Lease.FourWeekRent
}

// BuildHostPayoutPayload maps the bundle into the host payout agreement
// fields. Payment slots come from the host track.
func BuildHostPayoutPayload(b *DocumentBundle) DocumentPayload {
	payload := DocumentPayload{
		"Agreement Number":       b.agreementNumber() + "-PO",
		"Host Name":              b.hostName(),
		"Listing Address":        b.listingAddress(),
		"Reservation Start":      utils.FormatDate(b.effectiveStartDate()),
		"Reservation End":        utils.FormatDate(b.effectiveEndDate()),
		"Four Week Compensation": utils.FormatCurrency(b.leaseCompensation()),
		"Number Of Payments":     strconv.Itoa(len(b.HostPayments)),
	}
	if b.Host != nil {
		payload["Host Email"] = b.Host.Email
	} else {
		payload["Host Email"] = ""
	}
	paymentFields(payload, b.HostPayments)
	return payload
}

func (b *DocumentBundle) leaseCompensation() float64 {
	if b.Lease == nil {
		return 0
	}
	return b.Lease.FourWeekCompensation
}

// BuildSupplementalPayload maps the bundle into the supplemental agreement
// fields describing the split-week schedule.
func BuildSupplementalPayload(b *DocumentBundle) DocumentPayload {
	terms := b.effectiveTerms()
	return DocumentPayload{
		"Agreement Number":  b.agreementNumber() + "-SA",
		"Guest Name":        b.guestName(),
		"Host Name":         b.hostName(),
		"Listing Address":   b.listingAddress(),
		"Nights Per Week":   strconv.Itoa(terms.NightsPerWeek),
		"Check In Day":      terms.CheckInDay,
		"Check Out Day":     terms.CheckOutDay,
		"Days Selected":     strings.Join(terms.DaysSelected, ", "),
		"Reservation Weeks": strconv.Itoa(terms.ReservationWeeks),
		"Maintenance Fee":   utils.FormatCurrency(terms.MaintenanceFee),
		"Reservation Start": utils.FormatDate(b.effectiveStartDate()),
		"Reservation End":   utils.FormatDate(b.effectiveEndDate()),
	}
}

// BuildPeriodicTenancyPayload maps the bundle into the periodic tenancy
// agreement fields. This document carries the bare agreement number.
func BuildPeriodicTenancyPayload(b *DocumentBundle) DocumentPayload {
	terms := b.effectiveTerms()
	return DocumentPayload{
		"Agreement Number": b.agreementNumber(),
		"Guest Name":       b.guestName(),
		"Host Name":        b.hostName(),
		"Listing Address":  b.listingAddress(),
		"Tenancy Start":    utils.FormatDate(b.effectiveStartDate()),
		"Tenancy End":      utils.FormatDate(b.effectiveEndDate()),
		"Four Week Rent":   utils.FormatCurrency(b.fourWeekRent()),
		"Nightly Price":    utils.FormatCurrency(terms.NightlyPrice),
		"Cleaning Fee":     utils.FormatCurrency(terms.CleaningFee),
		"Damage Deposit":   utils.FormatCurrency(terms.DamageDeposit),
		"Initial Payment":  utils.FormatCurrency(terms.InitialPayment),
	}
}

// BuildCreditCardAuthPayload maps the bundle into the credit card
// authorization fields. The proration decision selects the template variant
// and fills the final-period fields; payment slots come from the guest track.
func BuildCreditCardAuthPayload(b *DocumentBundle, proration ProrationResult) DocumentPayload {
	template := "standard"
	if proration.IsProrated {
		template = "prorated"
	}
	payload := DocumentPayload{
		"Agreement Number":   b.agreementNumber() + "-CC",
		"Guest Name":         b.guestName(),
		"Template":           template,
		"Four Week Rent":     utils.FormatCurrency(b.fourWeekRent()),
		"Number Of Payments": strconv.Itoa(len(b.GuestPayments)),
	}
	if proration.IsProrated {
		payload["Last Payment Weeks"] = strconv.Itoa(proration.LastPaymentWeeks)
		payload["Last Payment Rent"] = utils.FormatCurrency(proration.LastPaymentRent)
	}
	paymentFields(payload, b.GuestPayments)
	return payload
}

// BuildDocumentPayload dispatches to the builder for one document type.
func BuildDocumentPayload(b *DocumentBundle, t DocumentType, proration ProrationResult) DocumentPayload {
	switch t {
	case DocHostPayout:
		return BuildHostPayoutPayload(b)
	case DocSupplemental:
		return BuildSupplementalPayload(b)
	case DocPeriodicTenancy:
		return BuildPeriodicTenancyPayload(b)
	case DocCreditCardAuth:
		return BuildCreditCardAuthPayload(b, proration)
	}
	return DocumentPayload{}
}
