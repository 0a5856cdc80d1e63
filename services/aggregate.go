package services

import (
	"github.com/splitleaseteam/splitlease-monorepo-sub002/models"
	"github.com/splitleaseteam/splitlease-monorepo-sub002/storage"
)

// maxPaymentRecords caps how many payment records per track are fetched for
// document generation.
const maxPaymentRecords = 30

// DocumentBundle is the canonical aggregate the document pipeline consumes.
// It is assembled once at the data boundary; everything downstream
// (readiness checks, proration, payload builders) reads only this shape.
type DocumentBundle struct {
	Lease         *models.Lease
	Proposal      *models.Proposal
	Guest         *models.User
	Host          *models.User
	Listing       *models.Listing
	GuestPayments []models.LeasePayment
	HostPayments  []models.LeasePayment
	WeekPattern   WeekPattern
}

// FetchDocumentBundle loads the lease and every related record needed for
// document generation. Only the lease itself is required here; missing
// related records are left nil and classified by the readiness validator.
func FetchDocumentBundle(leaseID uint) (*DocumentBundle, error) {
	var lease models.Lease
	if err := storage.DB.First(&lease, leaseID).Error; err != nil {
		return nil, err
	}

	b := &DocumentBundle{Lease: &lease, WeekPattern: PatternEveryWeek}

	var proposal models.Proposal
	if err := storage.DB.First(&proposal, lease.ProposalID).Error; err == nil {
		b.Proposal = &proposal
	}
	var guest models.User
	if err := storage.DB.First(&guest, lease.GuestID).Error; err == nil {
		b.Guest = &guest
	}
	var host models.User
	if err := storage.DB.First(&host, lease.HostID).Error; err == nil {
		b.Host = &host
	}
	var listing models.Listing
	if err := storage.DB.First(&listing, lease.ListingID).Error; err == nil {
		b.Listing = &listing
		b.WeekPattern = ParseWeekPattern(listing.WeekPattern)
	}

	storage.DB.
		Where("lease_id = ? AND direction = ?", leaseID, models.PaymentDirectionGuest).
		Order("sequence ASC").
		Limit(maxPaymentRecords).
		Find(&b.GuestPayments)
	storage.DB.
		Where("lease_id = ? AND direction = ?", leaseID, models.PaymentDirectionHost).
		Order("sequence ASC").
		Limit(maxPaymentRecords).
		Find(&b.HostPayments)

	return b, nil
}
