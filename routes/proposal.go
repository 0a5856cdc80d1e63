package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/splitleaseteam/splitlease-monorepo-sub002/models"
	"github.com/splitleaseteam/splitlease-monorepo-sub002/services"
	"github.com/splitleaseteam/splitlease-monorepo-sub002/storage"
	"github.com/splitleaseteam/splitlease-monorepo-sub002/utils"
)

// Proposal endpoints: submission, negotiation and the guarded transitions.

type CreateProposalInput struct {
	MoveInStart      time.Time `json:"moveInStart" validate:"required"`
	MoveInEnd        time.Time `json:"moveInEnd" validate:"required"`
	DaysSelected     []string  `json:"daysSelected" validate:"required,min=1,max=7"`
	CheckInDay       string    `json:"checkInDay" validate:"required"`
	CheckOutDay      string    `json:"checkOutDay" validate:"required"`
	ReservationWeeks int       `json:"reservationWeeks" validate:"required,gte=1,lte=52"`
}

func CreateProposal(ctx iris.Context) {
	listingID := ctx.Params().Get("id")
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input CreateProposalInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !input.MoveInStart.Before(input.MoveInEnd) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "moveInStart must be before moveInEnd", ctx)
		return
	}

	var listing models.Listing
	if err := storage.DB.First(&listing, listingID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Listing not found", ctx)
		return
	}

	nightsPerWeek := len(input.DaysSelected)
	totalPrice := listing.NightlyPrice * float64(nightsPerWeek) * float64(input.ReservationWeeks)

	daysJSON, _ := jsonMarshalDays(input.DaysSelected)

	parsedID, _ := strconv.ParseUint(listingID, 10, 64)
	proposal := models.Proposal{
		GuestID:          claims.ID,
		ListingID:        uint(parsedID),
		Status:           models.StatusSubmitted,
		MoveInStart:      input.MoveInStart,
		MoveInEnd:        input.MoveInEnd,
		DaysSelected:     daysJSON,
		NightsPerWeek:    nightsPerWeek,
		CheckInDay:       input.CheckInDay,
		CheckOutDay:      input.CheckOutDay,
		ReservationWeeks: input.ReservationWeeks,
		NightlyPrice:     listing.NightlyPrice,
		TotalPrice:       totalPrice,
		CleaningFee:      listing.CleaningFee,
		DamageDeposit:    listing.DamageDeposit,
		MaintenanceFee:   listing.MaintenanceFee,
	}

	if err := storage.DB.Create(&proposal).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.DB.Preload("Listing").Preload("Guest").First(&proposal, proposal.ID)

	var guest models.User
	if err := storage.DB.First(&guest, claims.ID).Error; err == nil {
		notificationService := services.NewNotificationService()
		go notificationService.SendProposalNotificationToHost(
			proposal.ID,
			listing.ID,
			listing.HostID,
			claims.ID,
			guest.FullName(),
			listing.Title,
		)
	}

	ctx.JSON(proposal)
}

func GetUserProposals(ctx iris.Context) {
	userID := ctx.Params().Get("id")

	var proposals []models.Proposal
	res := storage.DB.Preload("Listing").Preload("Listing.Host").
		Where("guest_id = ?", userID).
		Order("created_at DESC").
		Find(&proposals)
	if res.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", res.Error.Error(), ctx)
		return
	}

	ctx.JSON(proposals)
}

// GetHostProposals returns proposals for all listings owned by the
// authenticated host.
func GetHostProposals(ctx iris.Context) {
	tok := jwt.Get(ctx)
	if tok == nil {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Missing token", ctx)
		return
	}
	user := tok.(*utils.AccessToken)

	var proposals []models.Proposal
	res := storage.DB.
		Joins("JOIN listings l ON l.id = proposals.listing_id").
		Where("l.host_id = ?", user.ID).
		Preload("Listing").
		Preload("Guest").
		Order("proposals.created_at DESC").
		Find(&proposals)
	if res.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", res.Error.Error(), ctx)
		return
	}

	ctx.JSON(proposals)
}

func GetProposalsByListingID(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var proposals []models.Proposal
	res := storage.DB.Preload("Guest").Where("listing_id = ?", id).Order("created_at DESC").Find(&proposals)
	if res.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", res.Error.Error(), ctx)
		return
	}

	ctx.JSON(proposals)
}

// GetProposalStatusInfo returns the registry entry driving progress
// indicators and the action menu for one proposal.
func GetProposalStatusInfo(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var proposal models.Proposal
	if err := storage.DB.First(&proposal, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Proposal not found", ctx)
		return
	}

	ctx.JSON(iris.Map{
		"status": proposal.Status,
		"info":   services.StatusFor(proposal.Status),
	})
}

// GetNegotiationComparison returns the original-vs-counteroffer view used by
// both the host review UI and the guest acceptance UI.
func GetNegotiationComparison(ctx iris.Context) {
	id := ctx.Params().Get("id")
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var proposal models.Proposal
	if err := storage.DB.Preload("Listing").First(&proposal, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Proposal not found", ctx)
		return
	}
	if !mayViewNegotiation(claims, &proposal) {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "Only the proposal guest or the listing host may view this negotiation", ctx)
		return
	}
	if !proposal.CounterofferHappened {
		utils.CreateError(iris.StatusBadRequest, "No Counteroffer", "This proposal has no counteroffer to compare", ctx)
		return
	}

	ctx.JSON(services.CompareTerms(&proposal))
}

// GetCancellationCondition is the read-only decision endpoint the UI must
// consult before showing the cancel confirmation.
func GetCancellationCondition(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var proposal models.Proposal
	if err := storage.DB.Preload("Listing").First(&proposal, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Proposal not found", ctx)
		return
	}

	houseManual := ""
	if proposal.Listing != nil {
		houseManual = proposal.Listing.HouseManual
	}
	ctx.JSON(services.DetermineCancellationCondition(&proposal, houseManual))
}

type CancelProposalInput struct {
	Reason string `json:"reason"`
}

func CancelProposal(ctx iris.Context) {
	proposalID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid proposal ID", ctx)
		return
	}
	existing, ok := loadOwnedProposal(ctx, proposalID)
	if !ok {
		return
	}

	// The reason is optional; a missing body is fine.
	var input CancelProposalInput
	_ = ctx.ReadJSON(&input)

	before := iris.Map{"status": existing.Status, "reason": existing.CancellationReason}

	outcome, err := services.CancelProposal(proposalID, models.StatusCancelledByGuest, input.Reason, "guest")
	if err != nil {
		handleTransitionError(err, ctx)
		return
	}
	if !outcome.Decision.Allowed {
		ctx.StatusCode(iris.StatusConflict)
		ctx.JSON(outcome.Decision)
		return
	}

	utils.Audit(ctx, "proposal.cancel", "proposal", proposalID, before, iris.Map{"status": models.StatusCancelledByGuest})
	notifyCancellation(outcome.Proposal, input.Reason)

	ctx.JSON(outcome)
}

// DeleteProposal soft-deletes a proposal, hiding it from listings without
// altering its status. Used for terminal proposals the user wants out of
// view.
func DeleteProposal(ctx iris.Context) {
	proposalID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid proposal ID", ctx)
		return
	}
	proposal, ok := loadOwnedProposal(ctx, proposalID)
	if !ok {
		return
	}

	if err := storage.DB.Delete(proposal).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

func DeclineCounterofferRoute(ctx iris.Context) {
	proposalID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid proposal ID", ctx)
		return
	}
	existing, ok := loadOwnedProposal(ctx, proposalID)
	if !ok {
		return
	}

	before := iris.Map{"status": existing.Status, "reason": existing.CancellationReason}

	outcome, err := services.DeclineCounteroffer(proposalID)
	if err != nil {
		handleTransitionError(err, ctx)
		return
	}
	if !outcome.Decision.Allowed {
		ctx.StatusCode(iris.StatusConflict)
		ctx.JSON(outcome.Decision)
		return
	}

	utils.Audit(ctx, "proposal.decline_counteroffer", "proposal", proposalID, before, iris.Map{"status": models.StatusCancelledByGuest})
	notifyCancellation(outcome.Proposal, services.DeclineReason)

	ctx.JSON(outcome)
}

// AcceptCounterofferRoute is the guest-facing acceptance path. It blocks on
// the lease-creation trigger before reporting success.
func AcceptCounterofferRoute(ctx iris.Context) {
	proposalID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid proposal ID", ctx)
		return
	}
	existing, ok := loadOwnedProposal(ctx, proposalID)
	if !ok {
		return
	}

	before := iris.Map{"status": existing.Status, "reason": existing.CancellationReason}

	result, err := services.AcceptCounteroffer(proposalID, true)
	if err != nil {
		handleTransitionError(err, ctx)
		return
	}

	utils.Audit(ctx, "proposal.accept_counteroffer", "proposal", proposalID, before, iris.Map{"status": models.StatusAcceptedDrafting})

	if result.Proposal.Listing == nil {
		storage.DB.Preload("Listing").First(result.Proposal, proposalID)
	}
	listingTitle := ""
	if result.Proposal.Listing != nil {
		listingTitle = result.Proposal.Listing.Title
	}
	notificationService := services.NewNotificationService()
	go notificationService.SendLeaseDraftedNotificationToGuest(proposalID, result.Proposal.GuestID, listingTitle)

	if result.TriggerError != "" {
		// The acceptance committed; lease creation is pending retry. Report
		// a recoverable error rather than pretending the flow finished.
		ctx.StatusCode(iris.StatusAccepted)
	}
	ctx.JSON(result)
}

type ModifyProposalInput struct {
	MoveInStart      *time.Time `json:"moveInStart"`
	MoveInEnd        *time.Time `json:"moveInEnd"`
	DaysSelected     []string   `json:"daysSelected" validate:"omitempty,min=1,max=7"`
	CheckInDay       *string    `json:"checkInDay"`
	CheckOutDay      *string    `json:"checkOutDay"`
	ReservationWeeks *int       `json:"reservationWeeks" validate:"omitempty,gte=1,lte=52"`
}

// ModifyProposal updates original terms, permitted only in the initial
// submitted status.
func ModifyProposal(ctx iris.Context) {
	proposalID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid proposal ID", ctx)
		return
	}

	var input ModifyProposalInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	loaded, ok := loadOwnedProposal(ctx, proposalID)
	if !ok {
		return
	}
	proposal := *loaded
	if !services.CanModify(&proposal) {
		utils.CreateError(iris.StatusConflict, "Not Modifiable",
			"Proposals can only be modified while awaiting application review", ctx)
		return
	}

	updates := map[string]interface{}{}
	if input.MoveInStart != nil {
		updates["move_in_start"] = *input.MoveInStart
	}
	if input.MoveInEnd != nil {
		updates["move_in_end"] = *input.MoveInEnd
	}
	if input.DaysSelected != nil {
		daysJSON, _ := jsonMarshalDays(input.DaysSelected)
		updates["days_selected"] = daysJSON
		updates["nights_per_week"] = len(input.DaysSelected)
	}
	if input.CheckInDay != nil {
		updates["check_in_day"] = *input.CheckInDay
	}
	if input.CheckOutDay != nil {
		updates["check_out_day"] = *input.CheckOutDay
	}
	if input.ReservationWeeks != nil {
		updates["reservation_weeks"] = *input.ReservationWeeks
	}
	if len(updates) == 0 {
		ctx.JSON(proposal)
		return
	}

	// Reprice when the schedule changed.
	nights := proposal.NightsPerWeek
	weeks := proposal.ReservationWeeks
	if v, ok := updates["nights_per_week"].(int); ok {
		nights = v
	}
	if input.ReservationWeeks != nil {
		weeks = *input.ReservationWeeks
	}
	updates["total_price"] = proposal.NightlyPrice * float64(nights) * float64(weeks)

	if err := storage.DB.Model(&proposal).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.DB.First(&proposal, proposal.ID)
	ctx.JSON(proposal)
}

type SubmitCounterofferInput struct {
	MoveInStart      *time.Time `json:"moveInStart"`
	MoveInEnd        *time.Time `json:"moveInEnd"`
	DaysSelected     []string   `json:"daysSelected" validate:"omitempty,min=1,max=7"`
	CheckInDay       *string    `json:"checkInDay"`
	CheckOutDay      *string    `json:"checkOutDay"`
	ReservationWeeks *int       `json:"reservationWeeks" validate:"omitempty,gte=1,lte=52"`
	NightlyPrice     *float64   `json:"nightlyPrice" validate:"omitempty,gte=0"`
	TotalPrice       *float64   `json:"totalPrice" validate:"omitempty,gte=0"`
	CleaningFee      *float64   `json:"cleaningFee" validate:"omitempty,gte=0"`
	DamageDeposit    *float64   `json:"damageDeposit" validate:"omitempty,gte=0"`
	MaintenanceFee   *float64   `json:"maintenanceFee" validate:"omitempty,gte=0"`
}

// SubmitCounteroffer is the host action that records alternate terms and
// moves the proposal into guest review.
func SubmitCounteroffer(ctx iris.Context) {
	proposalID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid proposal ID", ctx)
		return
	}
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input SubmitCounterofferInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var proposal models.Proposal
	if err := storage.DB.Preload("Listing").First(&proposal, proposalID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Proposal not found", ctx)
		return
	}
	if proposal.Listing == nil || proposal.Listing.HostID != claims.ID {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "Only the listing host may counter this proposal", ctx)
		return
	}
	info := services.StatusFor(proposal.Status)
	if info.Terminal || info.Completed {
		utils.CreateError(iris.StatusConflict, "Not Counterable", "This proposal can no longer be countered", ctx)
		return
	}

	updates := map[string]interface{}{
		"status":                models.StatusCounterofferReview,
		"counteroffer_happened": true,
	}
	if input.MoveInStart != nil {
		updates["counter_move_in_start"] = *input.MoveInStart
	}
	if input.MoveInEnd != nil {
		updates["counter_move_in_end"] = *input.MoveInEnd
	}
	if input.DaysSelected != nil {
		daysJSON, _ := jsonMarshalDays(input.DaysSelected)
		updates["counter_days_selected"] = daysJSON
		updates["counter_nights_per_week"] = len(input.DaysSelected)
	}
	if input.CheckInDay != nil {
		updates["counter_check_in_day"] = *input.CheckInDay
	}
	if input.CheckOutDay != nil {
		updates["counter_check_out_day"] = *input.CheckOutDay
	}
	if input.ReservationWeeks != nil {
		updates["counter_reservation_weeks"] = *input.ReservationWeeks
	}
	if input.NightlyPrice != nil {
		updates["counter_nightly_price"] = *input.NightlyPrice
	}
	if input.TotalPrice != nil {
		updates["counter_total_price"] = *input.TotalPrice
	}
	if input.CleaningFee != nil {
		updates["counter_cleaning_fee"] = *input.CleaningFee
	}
	if input.DamageDeposit != nil {
		updates["counter_damage_deposit"] = *input.DamageDeposit
	}
	if input.MaintenanceFee != nil {
		updates["counter_maintenance_fee"] = *input.MaintenanceFee
	}

	if err := storage.DB.Model(&proposal).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.DB.Preload("Listing").First(&proposal, proposal.ID)

	var host models.User
	if err := storage.DB.First(&host, claims.ID).Error; err == nil {
		notificationService := services.NewNotificationService()
		go notificationService.SendCounterofferNotificationToGuest(
			proposal.ID,
			proposal.GuestID,
			host.FullName(),
			proposal.Listing.Title,
		)
	}

	ctx.JSON(proposal)
}

// isProposalGuest reports whether the token belongs to the proposal's guest.
func isProposalGuest(claims *utils.AccessToken, p *models.Proposal) bool {
	return claims != nil && p != nil && claims.ID == p.GuestID
}

// mayViewNegotiation allows the guest and the listing host to read the
// comparison; the same view backs both review UIs.
func mayViewNegotiation(claims *utils.AccessToken, p *models.Proposal) bool {
	if isProposalGuest(claims, p) {
		return true
	}
	return claims != nil && p != nil && p.Listing != nil && p.Listing.HostID == claims.ID
}

// loadOwnedProposal fetches a proposal and rejects the request unless the
// authenticated user is its guest. Guest-side transitions all pass through
// here; host and platform actions have their own routes.
func loadOwnedProposal(ctx iris.Context, proposalID uint) (*models.Proposal, bool) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var proposal models.Proposal
	if err := storage.DB.First(&proposal, proposalID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Proposal not found", ctx)
		return nil, false
	}
	if !isProposalGuest(claims, &proposal) {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "Only the proposal guest may perform this action", ctx)
		return nil, false
	}
	return &proposal, true
}

func jsonMarshalDays(days []string) (datatypes.JSON, error) {
	if days == nil {
		days = []string{}
	}
	raw, err := json.Marshal(days)
	return datatypes.JSON(raw), err
}

func snapshotStatus(proposalID uint) iris.Map {
	var proposal models.Proposal
	if err := storage.DB.First(&proposal, proposalID).Error; err != nil {
		return iris.Map{}
	}
	return iris.Map{"status": proposal.Status, "reason": proposal.CancellationReason}
}

func notifyCancellation(proposal *models.Proposal, reason string) {
	if proposal == nil {
		return
	}
	var listing models.Listing
	if err := storage.DB.First(&listing, proposal.ListingID).Error; err != nil {
		return
	}
	var guest models.User
	guestName := fmt.Sprintf("Guest #%d", proposal.GuestID)
	if err := storage.DB.First(&guest, proposal.GuestID).Error; err == nil {
		guestName = guest.FullName()
	}
	notificationService := services.NewNotificationService()
	go notificationService.SendCancellationNotificationToHost(proposal.ID, listing.HostID, guestName, reason)
}

func handleTransitionError(err error, ctx iris.Context) {
	switch {
	case errors.Is(err, services.ErrNoReviewableCounteroffer):
		utils.CreateError(iris.StatusConflict, "No Counteroffer", err.Error(), ctx)
	case errors.Is(err, services.ErrTransitionLocked):
		utils.CreateError(iris.StatusConflict, "Busy", err.Error(), ctx)
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.CreateError(iris.StatusNotFound, "Not Found", "Proposal not found", ctx)
	default:
		utils.CreateError(iris.StatusInternalServerError, "Error", err.Error(), ctx)
	}
}
