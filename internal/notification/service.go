package notification

import (
	"context"
	"fmt"
	"log"

	authrepo "taskhub-backend/internal/auth/repository"
	"taskhub-backend/internal/task/domain"
	"taskhub-backend/pkg/fcm"
	"taskhub-backend/pkg/mailer"
)

// Service routes reminder notifications to their downstream channel: FCM
// push for in-app reminders, SMTP for email reminders. It implements the
// scheduler's Notifier interface; the scheduler has already claimed the
// reminder, so a call here happens at most once per reminder.
type Service struct {
	fcmClient *fcm.Client
	fcmRepo   authrepo.FCMTokenRepository
	userRepo  authrepo.UserRepository
	mailer    *mailer.Mailer
}

// NewService creates a notification service. fcmClient and mailer may be
// nil; reminders for a disabled channel are logged and dropped.
func NewService(fcmClient *fcm.Client, fcmRepo authrepo.FCMTokenRepository, userRepo authrepo.UserRepository, m *mailer.Mailer) *Service {
	return &Service{
		fcmClient: fcmClient,
		fcmRepo:   fcmRepo,
		userRepo:  userRepo,
		mailer:    m,
	}
}

// Notify delivers one reminder to the channel named by its type. Unknown
// types are dropped with a log line; the reminder stays marked delivered so
// it never fires again under a type nobody handles.
func (s *Service) Notify(ctx context.Context, reminder *domain.Reminder, task *domain.Task) error {
	switch reminder.Type {
	case domain.ReminderTypeInApp:
		return s.sendPush(ctx, reminder, task)
	case domain.ReminderTypeEmail:
		return s.sendEmail(reminder, task)
	default:
		log.Printf("[Notification] No channel for reminder type %q, dropping", reminder.Type)
		return nil
	}
}

func (s *Service) sendPush(ctx context.Context, reminder *domain.Reminder, task *domain.Task) error {
	if s.fcmClient == nil {
		log.Println("[Notification] FCM client not configured, dropping push reminder")
		return nil
	}

	tokens, err := s.fcmRepo.GetTokensByUserID(reminder.UserID)
	if err != nil {
		return fmt.Errorf("get fcm tokens: %w", err)
	}
	if len(tokens) == 0 {
		log.Printf("[Notification] No FCM tokens for user %s, dropping push reminder", reminder.UserID)
		return nil
	}

	tokenStrings := make([]string, 0, len(tokens))
	for _, t := range tokens {
		tokenStrings = append(tokenStrings, t.Token)
	}

	data := fcm.NotificationData{
		Title: "Reminder: " + task.Title,
		Body:  taskBody(task),
		Data: map[string]string{
			"type":         "task_reminder",
			"task_id":      task.ID,
			"reminder_id":  reminder.ID,
			"click_action": "/tasks/" + task.ID,
		},
	}

	failedTokens, err := s.fcmClient.SendToDevices(ctx, tokenStrings, data)
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}

	// Cleanup tokens FCM rejected so the next reminder skips them.
	for _, token := range failedTokens {
		if err := s.fcmRepo.DeleteToken(token); err != nil {
			log.Printf("[Notification] Failed to delete stale FCM token: %v", err)
		}
	}
	return nil
}

func (s *Service) sendEmail(reminder *domain.Reminder, task *domain.Task) error {
	if s.mailer == nil {
		log.Println("[Notification] Mailer not configured, dropping email reminder")
		return nil
	}

	user, err := s.userRepo.FindByID(reminder.UserID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		log.Printf("[Notification] User %s not found, dropping email reminder", reminder.UserID)
		return nil
	}

	subject := "Reminder: " + task.Title
	return s.mailer.Send(user.Email, subject, taskBody(task))
}

func taskBody(task *domain.Task) string {
	body := task.Description
	if body == "" {
		body = "You have a task waiting."
	}
	if task.DueDate != nil {
		body = fmt.Sprintf("%s\nDue: %s", body, task.DueDate.Format("02 Jan 2006 15:04"))
	}
	return body
}
