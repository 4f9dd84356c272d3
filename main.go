package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	api "taskhub-backend/cmd/api"
	authdomain "taskhub-backend/internal/auth/domain"
	authRepo "taskhub-backend/internal/auth/repository"
	authUsecase "taskhub-backend/internal/auth/usecase"
	"taskhub-backend/internal/notification"
	taskdomain "taskhub-backend/internal/task/domain"
	taskRepo "taskhub-backend/internal/task/repository"
	"taskhub-backend/internal/task/scheduler"
	taskUsecase "taskhub-backend/internal/task/usecase"
	"taskhub-backend/pkg/config"
	"taskhub-backend/pkg/database"
	"taskhub-backend/pkg/fcm"
	"taskhub-backend/pkg/mailer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&authdomain.FCMToken{},
		&taskdomain.Task{},
		&taskdomain.Category{},
		&taskdomain.Priority{},
		&taskdomain.Comment{},
		&taskdomain.TimeLog{},
		&taskdomain.Reminder{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	fcmTokenRepo := authRepo.NewFCMTokenRepository(db)
	taskRepository := taskRepo.NewGormTaskRepository(db)
	categoryRepository := taskRepo.NewGormCategoryRepository(db)
	priorityRepository := taskRepo.NewGormPriorityRepository(db)
	commentRepository := taskRepo.NewGormCommentRepository(db)
	timeLogRepository := taskRepo.NewGormTimeLogRepository(db)
	reminderRepository := taskRepo.NewGormReminderRepository(db)

	// Seed the shared priority levels on first boot
	if err := priorityRepository.Seed(); err != nil {
		log.Fatal("Failed to seed priorities:", err)
	}

	// Initialize FCM Client (optional, in-app reminders are dropped without it)
	var fcmClient *fcm.Client
	if cfg.FirebaseCredentials != "" {
		fcmClient, err = fcm.NewClient(cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("[WARN] Failed to initialize FCM client (push notifications disabled): %v", err)
		}
	} else {
		log.Printf("[WARN] No Firebase credentials configured, FCM disabled")
	}

	// Initialize mailer (optional, email reminders are dropped without it)
	var m *mailer.Mailer
	if cfg.SMTPHost != "" {
		m = mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	} else {
		log.Printf("[WARN] No SMTP host configured, email reminders disabled")
	}

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, cfg)
	taskUsecaseInstance := taskUsecase.NewTaskUsecase(taskRepository, categoryRepository, priorityRepository, commentRepository, reminderRepository)
	ledgerUsecaseInstance := taskUsecase.NewTimeLedgerUsecase(taskRepository, timeLogRepository)
	categoryUsecaseInstance := taskUsecase.NewCategoryUsecase(categoryRepository, priorityRepository)
	statsUsecaseInstance := taskUsecase.NewStatsUsecase(taskRepository, ledgerUsecaseInstance)

	// Initialize reminder delivery
	notifService := notification.NewService(fcmClient, fcmTokenRepo, userRepo, m)
	reminderScheduler := scheduler.NewReminderScheduler(reminderRepository, notifService, cfg.SchedulerInterval)
	reminderScheduler.Start()

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, fcmTokenRepo, taskUsecaseInstance, ledgerUsecaseInstance, categoryUsecaseInstance, statsUsecaseInstance)

	// Stop the scheduler cleanly on SIGINT/SIGTERM
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		reminderScheduler.Stop()
		os.Exit(0)
	}()

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
