package services

import (
	"strings"
)

// DocumentType identifies one of the four legal documents generated for a
// lease.
type DocumentType string

const (
	DocHostPayout      DocumentType = "hostPayout"
	DocSupplemental    DocumentType = "supplemental"
	DocPeriodicTenancy DocumentType = "periodicTenancy"
	DocCreditCardAuth  DocumentType = "creditCardAuth"
)

// AllDocumentTypes in generation order. Builders are independent; the order
// only affects reporting.
var AllDocumentTypes = []DocumentType{DocHostPayout, DocSupplemental, DocPeriodicTenancy, DocCreditCardAuth}

// Readiness separates blocking errors from non-blocking warnings. Warnings
// mean generation proceeds but the output may carry empty fields.
type Readiness struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (r Readiness) CanGenerate() bool {
	return len(r.Errors) == 0
}

// CheckReadiness runs the presence checks for the whole document batch.
func CheckReadiness(b *DocumentBundle) Readiness {
	r := Readiness{Errors: []string{}, Warnings: []string{}}

	if b.Lease == nil {
		r.Errors = append(r.Errors, "Lease record is required")
	} else if strings.TrimSpace(b.Lease.AgreementNumber) == "" {
		r.Errors = append(r.Errors, "Lease agreement number is required")
	}
	if b.Host == nil {
		r.Errors = append(r.Errors, "Host record is required")
	}
	if b.Listing == nil {
		r.Errors = append(r.Errors, "Listing record is required")
	}

	if b.Proposal == nil {
		r.Warnings = append(r.Warnings, "Proposal record is missing; term fields will be blank")
	}
	if b.Lease != nil && b.Lease.EndDate.IsZero() {
		r.Warnings = append(r.Warnings, "Move-out date is missing")
	}
	if b.Guest == nil {
		r.Warnings = append(r.Warnings, "Guest record is missing")
	} else if strings.TrimSpace(b.Guest.FullName()) == "" {
		r.Warnings = append(r.Warnings, "Guest name is missing")
	}
	if b.Listing != nil && strings.TrimSpace(b.Listing.Address()) == "" {
		r.Warnings = append(r.Warnings, "Listing address is missing")
	}
	if len(b.GuestPayments) == 0 {
		r.Warnings = append(r.Warnings, "No guest payment records found")
	}
	if len(b.HostPayments) == 0 {
		r.Warnings = append(r.Warnings, "No host payment records found")
	}
	if len(b.GuestPayments) > 0 && len(b.HostPayments) > 0 && len(b.GuestPayments) != len(b.HostPayments) {
		r.Warnings = append(r.Warnings, "Guest and host payment schedules have different lengths")
	}

	return r
}

// CheckDocumentReadiness applies the narrower per-document subset of checks.
func CheckDocumentReadiness(b *DocumentBundle, t DocumentType) Readiness {
	r := Readiness{Errors: []string{}, Warnings: []string{}}

	if b.Lease == nil {
		r.Errors = append(r.Errors, "Lease record is required")
		return r
	}
	if strings.TrimSpace(b.Lease.AgreementNumber) == "" {
		r.Errors = append(r.Errors, "Lease agreement number is required")
	}

	switch t {
	case DocHostPayout:
		if b.Host == nil {
			r.Errors = append(r.Errors, "Host record is required")
		}
		if len(b.HostPayments) == 0 {
			r.Warnings = append(r.Warnings, "No host payment records found")
		}
	case DocSupplemental, DocPeriodicTenancy:
		if b.Host == nil {
			r.Errors = append(r.Errors, "Host record is required")
		}
		if b.Listing == nil {
			r.Errors = append(r.Errors, "Listing record is required")
		}
	case DocCreditCardAuth:
		if len(b.GuestPayments) == 0 {
			r.Errors = append(r.Errors, "At least one guest payment record is required")
		}
		if b.Guest == nil {
			r.Warnings = append(r.Warnings, "Guest record is missing")
		}
	}

	return r
}
