package routes

import (
	"taskboard-api/internal/handlers"
	"taskboard-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes() *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery(), middleware.RequestLogger())

	// CORS middleware (for frontend integration)
	ginRouter.Use(middleware.CORS())

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Server Taskboard API is running in Health Check Endpoint",
		})
	})

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/register", handlers.Register)
		api.POST("/login", handlers.Login)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		protectedRoutes.POST("/logout", handlers.Logout)
		protectedRoutes.GET("/user", handlers.CurrentUser)
		protectedRoutes.GET("/user/tasks", handlers.GetTasksForUser)

		// Team endpoints
		protectedRoutes.GET("/teams", handlers.GetTeams)
		protectedRoutes.POST("/teams", handlers.CreateTeam)
		protectedRoutes.GET("/teams/:id", handlers.GetTeam)
		protectedRoutes.PUT("/teams/:id", handlers.UpdateTeam)
		protectedRoutes.PATCH("/teams/:id", handlers.UpdateTeam)
		protectedRoutes.DELETE("/teams/:id", handlers.DeleteTeam)

		// Membership endpoints
		protectedRoutes.POST("/member", handlers.AddMember)
		protectedRoutes.DELETE("/member/:id", handlers.LeaveTeam)

		// Project endpoints
		protectedRoutes.GET("/projects", handlers.GetProjects)
		protectedRoutes.POST("/projects", handlers.CreateProject)
		protectedRoutes.GET("/projects/:id", handlers.GetProject)
		protectedRoutes.PUT("/projects/:id", handlers.UpdateProject)
		protectedRoutes.PATCH("/projects/:id", handlers.UpdateProject)
		protectedRoutes.DELETE("/projects/:id", handlers.DeleteProject)

		// Task endpoints
		protectedRoutes.GET("/tasks", handlers.GetTasks)
		protectedRoutes.POST("/tasks", handlers.CreateTask)
		protectedRoutes.GET("/tasks/:id", handlers.GetTaskByID)
		protectedRoutes.PUT("/tasks/:id", handlers.UpdateTask)
		protectedRoutes.PATCH("/tasks/:id", handlers.UpdateTask)
		protectedRoutes.DELETE("/tasks/:id", handlers.DeleteTask)

		// Comment endpoints (nested under tasks)
		protectedRoutes.GET("/tasks/:id/comments", handlers.GetComments)
		protectedRoutes.POST("/tasks/:id/comments", handlers.CreateComment)
		protectedRoutes.PUT("/tasks/:id/comments/:comment", handlers.UpdateComment)
		protectedRoutes.PATCH("/tasks/:id/comments/:comment", handlers.UpdateComment)
		protectedRoutes.DELETE("/tasks/:id/comments/:comment", handlers.DeleteComment)

		// Attachment endpoints (nested under tasks)
		protectedRoutes.GET("/tasks/:id/attachments", handlers.GetAttachments)
		protectedRoutes.POST("/tasks/:id/attachments", handlers.CreateAttachment)
		protectedRoutes.DELETE("/tasks/:id/attachments/:attachment", handlers.DeleteAttachment)

		// Broadcasting endpoints
		protectedRoutes.POST("/broadcasting/auth", handlers.AuthorizeChannel)
		protectedRoutes.GET("/broadcasting/socket", handlers.WebSocketHandler)
	}

	return ginRouter
}
