package routes

import (
	"github.com/kataras/iris/v12"

	"github.com/splitleaseteam/splitlease-monorepo-sub002/models"
	"github.com/splitleaseteam/splitlease-monorepo-sub002/services"
	"github.com/splitleaseteam/splitlease-monorepo-sub002/storage"
	"github.com/splitleaseteam/splitlease-monorepo-sub002/utils"
)

// Admin endpoints. All sit behind AdminOnlyMiddleware.

func AdminListProposals(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 25
	}

	// The filter accepts the historical status spellings; anything the
	// normalizer cannot place is a client error, not an empty result.
	var statusFilter *models.ProposalStatus
	if raw := ctx.URLParam("status"); raw != "" {
		parsed, ok := services.ParseProposalStatus(raw)
		if !ok {
			utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "unknown status: "+raw)
			return
		}
		statusFilter = &parsed
	}

	countQuery := storage.DB.Model(&models.Proposal{})
	listQuery := storage.DB.Preload("Listing").Preload("Guest").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage)
	if statusFilter != nil {
		countQuery = countQuery.Where("status = ?", *statusFilter)
		listQuery = listQuery.Where("status = ?", *statusFilter)
	}

	var total int64
	countQuery.Count(&total)

	var proposals []models.Proposal
	if err := listQuery.Find(&proposals).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	utils.JSONPage(ctx, proposals, page, perPage, total)
}

type AdminCancelInput struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// AdminCancelProposal cancels on behalf of the platform. Same guard rules
// as a guest cancel; the terminal status is cancelled_by_platform.
func AdminCancelProposal(ctx iris.Context) {
	proposalID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "invalid proposal ID")
		return
	}

	var input AdminCancelInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := snapshotStatus(proposalID)

	outcome, err := services.CancelProposal(proposalID, models.StatusCancelledByPlatform, input.Reason, "platform")
	if err != nil {
		handleTransitionError(err, ctx)
		return
	}
	if !outcome.Decision.Allowed {
		ctx.StatusCode(iris.StatusConflict)
		ctx.JSON(outcome.Decision)
		return
	}

	utils.Audit(ctx, "proposal.platform_cancel", "proposal", proposalID, before, iris.Map{"status": models.StatusCancelledByPlatform})

	ctx.JSON(outcome)
}

// AdminAcceptCounteroffer is the internal acceptance path: the status write
// and outbox intent commit, but lease creation is left to the sweeper
// rather than awaited.
func AdminAcceptCounteroffer(ctx iris.Context) {
	proposalID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "invalid proposal ID")
		return
	}

	before := snapshotStatus(proposalID)

	result, err := services.AcceptCounteroffer(proposalID, false)
	if err != nil {
		handleTransitionError(err, ctx)
		return
	}

	utils.Audit(ctx, "proposal.internal_accept", "proposal", proposalID, before, iris.Map{"status": models.StatusAcceptedDrafting})

	ctx.StatusCode(iris.StatusAccepted)
	ctx.JSON(result)
}

// AdminListLeaseIntents exposes the outbox for operational visibility.
func AdminListLeaseIntents(ctx iris.Context) {
	state := ctx.URLParamDefault("state", "")

	query := storage.DB.Order("created_at DESC").Limit(100)
	if state != "" {
		query = query.Where("state = ?", state)
	}

	var intents []models.LeaseIntent
	if err := query.Find(&intents).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	ctx.JSON(intents)
}
