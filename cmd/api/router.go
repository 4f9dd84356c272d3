package api

import (
	"net/http"

	"taskhub-backend/internal/auth/delivery"
	authUsecase "taskhub-backend/internal/auth/usecase"
	taskDelivery "taskhub-backend/internal/task/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	r *gin.Engine,
	authUc authUsecase.AuthUsecase,
	authHandler *delivery.AuthHandler,
	taskHandler *taskDelivery.TaskHandler,
	timeLogHandler *taskDelivery.TimeLogHandler,
	categoryHandler *taskDelivery.CategoryHandler,
	statsHandler *taskDelivery.StatsHandler,
) {
	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", authHandler.Register)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", delivery.AuthMiddleware(authUc), authHandler.Me)
			auth.POST("/logout", authHandler.Logout)
		}

		// FCM routes (protected)
		fcm := api.Group("/fcm")
		fcm.Use(delivery.AuthMiddleware(authUc))
		{
			fcm.POST("/register", authHandler.RegisterFCMToken)
			fcm.DELETE("/:token", authHandler.UnregisterFCMToken)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(delivery.AuthMiddleware(authUc))
		{
			tasks.GET("", taskHandler.GetTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/search", taskHandler.SearchTasks)
			tasks.GET("/:id", taskHandler.GetTaskByID)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.PATCH("/:id/status", taskHandler.UpdateTaskStatus)
			tasks.PATCH("/:id/progress", taskHandler.UpdateTaskProgress)
			tasks.PATCH("/:id/important", taskHandler.ToggleImportant)
			tasks.POST("/:id/complete", taskHandler.CompleteTask)
			tasks.POST("/:id/reopen", taskHandler.ReopenTask)

			tasks.GET("/:id/comments", taskHandler.GetComments)
			tasks.POST("/:id/comments", taskHandler.AddComment)

			tasks.GET("/:id/reminders", taskHandler.GetReminders)
			tasks.POST("/:id/reminders", taskHandler.CreateReminder)

			tasks.GET("/:id/timelogs", timeLogHandler.GetTimeLogs)
			tasks.POST("/:id/timelogs", timeLogHandler.CreateTimeLog)
			tasks.GET("/:id/timelogs/total", timeLogHandler.GetTimeLogTotal)
		}

		// Comment routes (protected)
		comments := api.Group("/comments")
		comments.Use(delivery.AuthMiddleware(authUc))
		{
			comments.PUT("/:id", taskHandler.EditComment)
		}

		// Reminder routes (protected)
		reminders := api.Group("/reminders")
		reminders.Use(delivery.AuthMiddleware(authUc))
		{
			reminders.DELETE("/:id", taskHandler.CancelReminder)
		}

		// Category routes (protected)
		categories := api.Group("/categories")
		categories.Use(delivery.AuthMiddleware(authUc))
		{
			categories.GET("", categoryHandler.GetCategories)
			categories.POST("", categoryHandler.CreateCategory)
			categories.POST("/ensure", categoryHandler.EnsureCategory)
			categories.PUT("/:id", categoryHandler.UpdateCategory)
			categories.DELETE("/:id", categoryHandler.DeleteCategory)
		}

		// Priority routes (protected)
		api.GET("/priorities", delivery.AuthMiddleware(authUc), categoryHandler.GetPriorities)

		// Statistics routes (protected)
		api.GET("/stats", delivery.AuthMiddleware(authUc), statsHandler.GetStatistics)
	}
}
