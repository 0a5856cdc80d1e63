package routes

import (
	"github.com/kataras/iris/v12"

	"github.com/splitleaseteam/splitlease-monorepo-sub002/services"
	"github.com/splitleaseteam/splitlease-monorepo-sub002/utils"
)

// GetBuyoutQuote prices a buyout of reserved nights from the advance notice
// given and a base amount. Pure decision logic; nothing is persisted.
func GetBuyoutQuote(ctx iris.Context) {
	noticeDays, err := ctx.URLParamInt("noticeDays")
	if err != nil || noticeDays < 0 {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "noticeDays must be a non-negative integer", ctx)
		return
	}
	baseAmount, err := ctx.URLParamFloat64("baseAmount")
	if err != nil || baseAmount < 0 {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "baseAmount must be a non-negative number", ctx)
		return
	}

	ctx.JSON(services.QuoteBuyout(noticeDays, baseAmount))
}
