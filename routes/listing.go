package routes

import (
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"

	"github.com/splitleaseteam/splitlease-monorepo-sub002/models"
	"github.com/splitleaseteam/splitlease-monorepo-sub002/storage"
	"github.com/splitleaseteam/splitlease-monorepo-sub002/utils"
)

type CreateListingInput struct {
	Title          string  `json:"title" validate:"required,max=200"`
	Description    string  `json:"description"`
	AddressLine1   string  `json:"addressLine1" validate:"required"`
	AddressLine2   string  `json:"addressLine2"`
	City           string  `json:"city" validate:"required"`
	State          string  `json:"state"`
	Zip            string  `json:"zip"`
	Country        string  `json:"country" validate:"required"`
	NightlyPrice   float64 `json:"nightlyPrice" validate:"required,gt=0"`
	CleaningFee    float64 `json:"cleaningFee" validate:"gte=0"`
	DamageDeposit  float64 `json:"damageDeposit" validate:"gte=0"`
	MaintenanceFee float64 `json:"maintenanceFee" validate:"gte=0"`
	WeekPattern    string  `json:"weekPattern"`
	HouseManual    string  `json:"houseManual"`
	IsActive       *bool   `json:"isActive"`
}

func CreateListing(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input CreateListingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.WeekPattern == "" {
		input.WeekPattern = "every_week"
	}

	listing := models.Listing{
		HostID:         claims.ID,
		Title:          input.Title,
		Description:    input.Description,
		AddressLine1:   input.AddressLine1,
		AddressLine2:   input.AddressLine2,
		City:           input.City,
		State:          input.State,
		Zip:            input.Zip,
		Country:        input.Country,
		NightlyPrice:   input.NightlyPrice,
		CleaningFee:    input.CleaningFee,
		DamageDeposit:  input.DamageDeposit,
		MaintenanceFee: input.MaintenanceFee,
		WeekPattern:    input.WeekPattern,
		HouseManual:    input.HouseManual,
		IsActive:       input.IsActive,
	}

	if err := storage.DB.Create(&listing).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(listing)
}

func GetListing(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var listing models.Listing
	if err := storage.DB.Preload("Host").First(&listing, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Listing not found", ctx)
		return
	}

	ctx.JSON(listing)
}

func GetHostListings(ctx iris.Context) {
	tok := jwt.Get(ctx)
	if tok == nil {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Missing token", ctx)
		return
	}
	user := tok.(*utils.AccessToken)

	var listings []models.Listing
	res := storage.DB.Where("host_id = ?", user.ID).Order("created_at DESC").Find(&listings)
	if res.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", res.Error.Error(), ctx)
		return
	}

	ctx.JSON(listings)
}
