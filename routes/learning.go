package routes

import (
	"strivehub/controllers"

	"github.com/gin-gonic/gin"
)

// SetupLearningRoutes wires the learning track, challenges and skills
func SetupLearningRoutes(router *gin.RouterGroup) {
	router.GET("/steps", controllers.GetLearningSteps)
	router.GET("/steps/:id/quiz", controllers.GetStepQuiz)
	router.POST("/steps/:id/quiz/submit", controllers.SubmitQuiz)

	router.GET("/challenges", controllers.GetChallenges)
	router.GET("/challenges/:id", controllers.GetChallenge)
	router.POST("/challenges/:id/submit", controllers.SubmitChallenge)

	router.POST("/skills", controllers.AddSkill)
	router.GET("/skills", controllers.GetSkills)
}
