package routes

import (
	"github.com/kataras/iris/v12"

	"github.com/splitleaseteam/splitlease-monorepo-sub002/models"
	"github.com/splitleaseteam/splitlease-monorepo-sub002/storage"
	"github.com/splitleaseteam/splitlease-monorepo-sub002/utils"
)

func GetUserNotifications(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var notifications []models.Notification
	res := storage.DB.Where("user_id = ?", userID).Order("created_at DESC").Limit(50).Find(&notifications)
	if res.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", res.Error.Error(), ctx)
		return
	}

	ctx.JSON(notifications)
}

func MarkNotificationRead(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().Get("id")

	res := storage.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Notification not found", ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}
