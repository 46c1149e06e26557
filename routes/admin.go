package routes

import (
	"strivehub/controllers"
	"strivehub/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes sets up admin routes
func SetupAdminRoutes(router *gin.Engine) {
	// Public admin routes (login only - admins are added via the addadmin tool)
	adminPublic := router.Group("/admin")
	{
		adminPublic.POST("/login", controllers.AdminLogin)
	}

	// Protected admin routes
	admin := router.Group("/admin")
	admin.Use(middlewares.AdminAuthMiddleware())
	{
		// Learning step management
		admin.POST("/steps", middlewares.RBACMiddleware("step", "write"), controllers.CreateLearningStep)
		admin.PUT("/steps/:id", middlewares.RBACMiddleware("step", "write"), controllers.UpdateLearningStep)
		admin.DELETE("/steps/:id", middlewares.RBACMiddleware("step", "write"), controllers.DeleteLearningStep)

		// Challenge management
		admin.POST("/challenges", middlewares.RBACMiddleware("challenge", "write"), controllers.CreateChallenge)
		admin.DELETE("/challenges/:id", middlewares.RBACMiddleware("challenge", "write"), controllers.DeleteChallenge)

		// Job management
		admin.POST("/jobs", middlewares.RBACMiddleware("job", "write"), controllers.CreateJob)
		admin.DELETE("/jobs/:id", middlewares.RBACMiddleware("job", "write"), controllers.DeleteJob)

		// Moderation (admin and moderator can delete posts)
		admin.DELETE("/posts/:id", middlewares.RBACMiddleware("post", "delete"), controllers.AdminDeletePost)

		// User dashboard
		admin.GET("/users", middlewares.RBACMiddleware("user", "read"), controllers.ListUsers)

		// Admin action logs
		admin.GET("/logs", controllers.GetAdminActionLogs)
	}
}
