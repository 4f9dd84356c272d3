package usecase

import (
	"time"

	"taskhub-backend/internal/task/domain"
	"taskhub-backend/internal/task/repository"
)

// timeLedgerUsecase implements TimeLedgerUsecase. Logs are immutable once
// written; corrections are compensating new logs, so every aggregate here is
// a plain fold over derived durations.
type timeLedgerUsecase struct {
	taskRepo repository.TaskRepository
	logRepo  repository.TimeLogRepository
}

// NewTimeLedgerUsecase creates a new instance of timeLedgerUsecase.
func NewTimeLedgerUsecase(taskRepo repository.TaskRepository, logRepo repository.TimeLogRepository) TimeLedgerUsecase {
	return &timeLedgerUsecase{
		taskRepo: taskRepo,
		logRepo:  logRepo,
	}
}

func (u *timeLedgerUsecase) RecordElapsed(userID, taskID string, start, end time.Time, description string) (*domain.TimeLog, error) {
	if err := u.checkTask(userID, taskID); err != nil {
		return nil, err
	}
	log, err := domain.NewElapsedLog(taskID, userID, start, end, description)
	if err != nil {
		return nil, err
	}
	if err := u.logRepo.Create(log); err != nil {
		return nil, err
	}
	return log, nil
}

func (u *timeLedgerUsecase) RecordManual(userID, taskID string, hours float64, description string) (*domain.TimeLog, error) {
	if err := u.checkTask(userID, taskID); err != nil {
		return nil, err
	}
	log, err := domain.NewManualLog(taskID, userID, hours, description)
	if err != nil {
		return nil, err
	}
	if err := u.logRepo.Create(log); err != nil {
		return nil, err
	}
	return log, nil
}

func (u *timeLedgerUsecase) ListLogs(userID, taskID string) ([]*domain.TimeLog, error) {
	if err := u.checkTask(userID, taskID); err != nil {
		return nil, err
	}
	return u.logRepo.FindByTaskID(taskID)
}

func (u *timeLedgerUsecase) TotalDuration(userID, taskID string) (time.Duration, error) {
	if err := u.checkTask(userID, taskID); err != nil {
		return 0, err
	}
	// The repository query is scoped to this task; no other task's logs are
	// ever loaded.
	logs, err := u.logRepo.FindByTaskID(taskID)
	if err != nil {
		return 0, err
	}
	return domain.SumDurations(logs), nil
}

func (u *timeLedgerUsecase) TotalDurationForUser(userID string, from, to time.Time) (time.Duration, error) {
	logs, err := u.logRepo.FindByUserInWindow(userID, from, to)
	if err != nil {
		return 0, err
	}
	return domain.SumDurations(logs), nil
}

func (u *timeLedgerUsecase) checkTask(userID, taskID string) error {
	task, err := u.taskRepo.FindByID(taskID)
	if err != nil {
		return err
	}
	if task == nil || task.UserID != userID {
		return domain.ErrNotFound
	}
	return nil
}
