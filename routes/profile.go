package routes

import (
	"strivehub/controllers"

	"github.com/gin-gonic/gin"
)

func GetProfileRouteHandler(ctx *gin.Context) {
	controllers.GetProfile(ctx)
}

func UpdateProfileRouteHandler(ctx *gin.Context) {
	controllers.UpdateProfile(ctx)
}

func GetUserRouteHandler(ctx *gin.Context) {
	controllers.GetUser(ctx)
}

func GetXPHistoryRouteHandler(ctx *gin.Context) {
	controllers.GetXPHistory(ctx)
}

func GetActivityRouteHandler(ctx *gin.Context) {
	controllers.GetActivity(ctx)
}
