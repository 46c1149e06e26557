package routes

import (
	"strivehub/controllers"

	"github.com/gin-gonic/gin"
)

// SetupCVRoutes wires CV upload and review retrieval
func SetupCVRoutes(router *gin.RouterGroup) {
	router.POST("/cv", controllers.UploadCV)
	router.GET("/cv", controllers.GetCVReviews)
	router.GET("/cv/:id", controllers.GetCVReview)
}
