package routes

import (
	"strivehub/controllers"

	"github.com/gin-gonic/gin"
)

// SetupJobRoutes wires job listings and skill-based recommendations
func SetupJobRoutes(router *gin.RouterGroup) {
	router.GET("/jobs", controllers.GetJobs)
	router.GET("/jobs/recommendations", controllers.GetJobRecommendations)
}
