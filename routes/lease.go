package routes

import (
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"

	"github.com/splitleaseteam/splitlease-monorepo-sub002/models"
	"github.com/splitleaseteam/splitlease-monorepo-sub002/services"
	"github.com/splitleaseteam/splitlease-monorepo-sub002/storage"
	"github.com/splitleaseteam/splitlease-monorepo-sub002/utils"
)

// Lease endpoints: read access plus the document-generation pipeline.

func GetLease(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var lease models.Lease
	res := storage.DB.Preload("Payments", func(db *gorm.DB) *gorm.DB {
		return db.Order("lease_payments.direction, lease_payments.sequence ASC")
	}).Preload("Guest").Preload("Host").Preload("Listing").First(&lease, id)
	if res.Error != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Lease not found", ctx)
		return
	}

	ctx.JSON(lease)
}

func GetUserLeases(ctx iris.Context) {
	userID := ctx.Params().Get("id")

	var leases []models.Lease
	res := storage.DB.Preload("Listing").Where("guest_id = ?", userID).Order("created_at DESC").Find(&leases)
	if res.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", res.Error.Error(), ctx)
		return
	}

	ctx.JSON(leases)
}

// GetLeaseReadiness is the pre-flight check endpoint: it reports the
// blocking errors and non-blocking warnings without generating anything.
func GetLeaseReadiness(ctx iris.Context) {
	leaseID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid lease ID", ctx)
		return
	}

	bundle, err := services.FetchDocumentBundle(leaseID)
	if err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Lease not found", ctx)
		return
	}

	readiness := services.CheckReadiness(bundle)
	ctx.JSON(iris.Map{
		"canGenerate": readiness.CanGenerate(),
		"errors":      readiness.Errors,
		"warnings":    readiness.Warnings,
	})
}

// GenerateLeaseDocuments runs the full document pipeline for a lease. Each
// of the four document types is generated independently; the response
// carries per-type outcomes.
func GenerateLeaseDocuments(ctx iris.Context) {
	leaseID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid lease ID", ctx)
		return
	}

	claims := jwt.Get(ctx).(*utils.AccessToken)

	result, err := services.GenerateLeaseDocuments(leaseID)
	if err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Lease not found", ctx)
		return
	}

	utils.Audit(ctx, "lease.generate_documents", "lease", leaseID,
		nil, iris.Map{"success": result.Success, "requestedBy": claims.ID})

	if !result.Readiness.CanGenerate() {
		ctx.StatusCode(iris.StatusUnprocessableEntity)
	}
	ctx.JSON(result)
}
