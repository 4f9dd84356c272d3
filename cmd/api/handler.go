package api

import (
	authDelivery "taskhub-backend/internal/auth/delivery"
	authRepo "taskhub-backend/internal/auth/repository"
	authUsecasePkg "taskhub-backend/internal/auth/usecase"
	taskDelivery "taskhub-backend/internal/task/delivery"
	taskUsecasePkg "taskhub-backend/internal/task/usecase"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase     authUsecasePkg.AuthUsecase
	authHandler     *authDelivery.AuthHandler
	taskHandler     *taskDelivery.TaskHandler
	timeLogHandler  *taskDelivery.TimeLogHandler
	categoryHandler *taskDelivery.CategoryHandler
	statsHandler    *taskDelivery.StatsHandler
}

func NewHandler(
	authUc authUsecasePkg.AuthUsecase,
	fcmTokenRepo authRepo.FCMTokenRepository,
	taskUc taskUsecasePkg.TaskUsecase,
	ledgerUc taskUsecasePkg.TimeLedgerUsecase,
	categoryUc taskUsecasePkg.CategoryUsecase,
	statsUc taskUsecasePkg.StatsUsecase,
) *Handler {
	return &Handler{
		authUsecase:     authUc,
		authHandler:     authDelivery.NewAuthHandler(authUc, fcmTokenRepo),
		taskHandler:     taskDelivery.NewTaskHandler(taskUc),
		timeLogHandler:  taskDelivery.NewTimeLogHandler(ledgerUc),
		categoryHandler: taskDelivery.NewCategoryHandler(categoryUc),
		statsHandler:    taskDelivery.NewStatsHandler(statsUc),
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.authHandler, h.taskHandler, h.timeLogHandler, h.categoryHandler, h.statsHandler)

	return r.Run(addr)
}
