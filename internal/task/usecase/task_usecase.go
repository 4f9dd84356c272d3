package usecase

import (
	"sort"
	"strings"
	"time"

	"taskhub-backend/internal/task/domain"
	"taskhub-backend/internal/task/repository"
	"taskhub-backend/pkg/fuzzy"
)

// taskUsecase implements TaskUsecase. The clock is injected so lifecycle
// decisions stay deterministic under test.
type taskUsecase struct {
	taskRepo     repository.TaskRepository
	categoryRepo repository.CategoryRepository
	priorityRepo repository.PriorityRepository
	commentRepo  repository.CommentRepository
	reminderRepo repository.ReminderRepository
	now          func() time.Time
}

// NewTaskUsecase creates a new instance of taskUsecase.
func NewTaskUsecase(
	taskRepo repository.TaskRepository,
	categoryRepo repository.CategoryRepository,
	priorityRepo repository.PriorityRepository,
	commentRepo repository.CommentRepository,
	reminderRepo repository.ReminderRepository,
) TaskUsecase {
	return &taskUsecase{
		taskRepo:     taskRepo,
		categoryRepo: categoryRepo,
		priorityRepo: priorityRepo,
		commentRepo:  commentRepo,
		reminderRepo: reminderRepo,
		now:          time.Now,
	}
}

// SetClock overrides the wall clock. Tests only.
func (u *taskUsecase) SetClock(now func() time.Time) {
	u.now = now
}

func (u *taskUsecase) CreateTask(userID string, req CreateTaskRequest) (*domain.Task, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, domain.ErrEmptyTitle
	}
	if req.CategoryID != nil {
		if err := u.checkCategory(userID, *req.CategoryID); err != nil {
			return nil, err
		}
	}
	if req.PriorityID != nil {
		if err := u.checkPriority(*req.PriorityID); err != nil {
			return nil, err
		}
	}

	task := &domain.Task{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		PriorityID:  req.PriorityID,
		DueDate:     req.DueDate,
		Status:      domain.TaskStatusPending,
		Progress:    0,
		IsImportant: req.IsImportant,
	}
	if err := u.taskRepo.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (u *taskUsecase) GetTask(userID, taskID string) (*domain.Task, error) {
	return u.getOwned(userID, taskID)
}

func (u *taskUsecase) ListTasks(userID string, filter ListFilter) ([]*domain.Task, int64, error) {
	return u.taskRepo.FindByUserID(userID, repository.TaskFilter{
		Status:        filter.Status,
		CategoryID:    filter.CategoryID,
		ImportantOnly: filter.ImportantOnly,
		Limit:         filter.Limit,
		Offset:        filter.Offset,
	})
}

func (u *taskUsecase) UpdateTask(userID, taskID string, req UpdateTaskRequest) (*domain.Task, error) {
	task, err := u.getOwned(userID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, domain.ErrEmptyTitle
		}
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			task.CategoryID = nil
		} else {
			if err := u.checkCategory(userID, *req.CategoryID); err != nil {
				return nil, err
			}
			task.CategoryID = req.CategoryID
		}
	}
	if req.PriorityID != nil {
		if *req.PriorityID == "" {
			task.PriorityID = nil
		} else {
			if err := u.checkPriority(*req.PriorityID); err != nil {
				return nil, err
			}
			task.PriorityID = req.PriorityID
		}
	}
	if req.ClearDue {
		task.DueDate = nil
	} else if req.DueDate != nil {
		// Pending reminders pick up the new due date lazily at the next
		// scheduler tick; fire times are never cached.
		task.DueDate = req.DueDate
	}

	if err := u.taskRepo.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (u *taskUsecase) SetProgress(userID, taskID string, progress int) (*domain.Task, error) {
	task, err := u.getOwned(userID, taskID)
	if err != nil {
		return nil, err
	}
	if err := domain.ApplyProgress(task, progress, u.now()); err != nil {
		return nil, err
	}
	if err := u.taskRepo.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (u *taskUsecase) SetStatus(userID, taskID string, status domain.TaskStatus) (*domain.Task, error) {
	if !status.IsValid() {
		return nil, domain.ErrInvalidTransition
	}
	task, err := u.getOwned(userID, taskID)
	if err != nil {
		return nil, err
	}
	if err := domain.ApplyStatus(task, status, u.now()); err != nil {
		return nil, err
	}
	if err := u.taskRepo.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (u *taskUsecase) MarkCompleted(userID, taskID string) (*domain.Task, error) {
	return u.SetProgress(userID, taskID, 100)
}

func (u *taskUsecase) Reopen(userID, taskID string, progress int) (*domain.Task, error) {
	task, err := u.getOwned(userID, taskID)
	if err != nil {
		return nil, err
	}
	if err := domain.Reopen(task, progress, u.now()); err != nil {
		return nil, err
	}
	if err := u.taskRepo.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (u *taskUsecase) ToggleImportant(userID, taskID string) (*domain.Task, error) {
	task, err := u.getOwned(userID, taskID)
	if err != nil {
		return nil, err
	}
	task.IsImportant = !task.IsImportant
	if err := u.taskRepo.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (u *taskUsecase) SearchTasks(userID, query string) ([]*domain.Task, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*domain.Task{}, nil
	}

	tasks, _, err := u.taskRepo.FindByUserID(userID, repository.TaskFilter{})
	if err != nil {
		return nil, err
	}

	type scored struct {
		task  *domain.Task
		score float64
	}
	var matches []scored
	for _, t := range tasks {
		if fuzzy.FuzzyMatchTask(query, t.Title, t.Description) {
			matches = append(matches, scored{
				task:  t,
				score: fuzzy.CalculateRelevanceScore(query, t.Title, t.Description),
			})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	result := make([]*domain.Task, len(matches))
	for i, m := range matches {
		result[i] = m.task
	}
	return result, nil
}

func (u *taskUsecase) SoftDelete(userID, taskID string) error {
	task, err := u.getOwned(userID, taskID)
	if err != nil {
		return err
	}
	task.IsDeleted = true
	return u.taskRepo.Update(task)
}

func (u *taskUsecase) AddComment(userID, taskID, content string) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrEmptyContent
	}
	if _, err := u.getOwned(userID, taskID); err != nil {
		return nil, err
	}
	comment := &domain.Comment{
		TaskID:  taskID,
		UserID:  userID,
		Content: content,
	}
	if err := u.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (u *taskUsecase) ListComments(userID, taskID string) ([]*domain.Comment, error) {
	if _, err := u.getOwned(userID, taskID); err != nil {
		return nil, err
	}
	return u.commentRepo.FindByTaskID(taskID)
}

func (u *taskUsecase) EditComment(userID, commentID, content string) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrEmptyContent
	}
	comment, err := u.commentRepo.FindByID(commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil || comment.UserID != userID {
		return nil, domain.ErrNotFound
	}
	comment.Content = content
	if err := u.commentRepo.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (u *taskUsecase) CreateReminder(userID, taskID string, req CreateReminderRequest) (*domain.Reminder, error) {
	task, err := u.getOwned(userID, taskID)
	if err != nil {
		return nil, err
	}

	reminder := &domain.Reminder{
		TaskID:     taskID,
		UserID:     userID,
		Type:       req.Type,
		Timing:     req.Timing,
		AbsoluteAt: req.AbsoluteAt,
	}
	if reminder.Type == "" {
		reminder.Type = domain.ReminderTypeInApp
	}

	// Creation only checks that a fire time exists and respects the due
	// date; the actual moment is recomputed from the task at every tick.
	fireAt, err := domain.ResolveFireTime(reminder, task)
	if err != nil {
		return nil, err
	}
	if task.DueDate != nil && fireAt.After(*task.DueDate) {
		return nil, domain.ErrReminderAfterDue
	}

	if err := u.reminderRepo.Create(reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (u *taskUsecase) ListReminders(userID, taskID string) ([]*domain.Reminder, error) {
	if _, err := u.getOwned(userID, taskID); err != nil {
		return nil, err
	}
	return u.reminderRepo.FindByTaskID(taskID)
}

func (u *taskUsecase) CancelReminder(userID, reminderID string) error {
	reminder, err := u.reminderRepo.FindByID(reminderID)
	if err != nil {
		return err
	}
	if reminder == nil || reminder.UserID != userID {
		return domain.ErrNotFound
	}
	return u.reminderRepo.Delete(reminderID)
}

// getOwned resolves a task for its owner. A foreign or missing task is the
// same ErrNotFound so existence never leaks across users.
func (u *taskUsecase) getOwned(userID, taskID string) (*domain.Task, error) {
	task, err := u.taskRepo.FindByID(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil || task.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return task, nil
}

func (u *taskUsecase) checkCategory(userID, categoryID string) error {
	category, err := u.categoryRepo.FindByID(categoryID)
	if err != nil {
		return err
	}
	if category == nil || category.UserID != userID || !category.IsActive {
		return domain.ErrNotFound
	}
	return nil
}

func (u *taskUsecase) checkPriority(priorityID string) error {
	priority, err := u.priorityRepo.FindByID(priorityID)
	if err != nil {
		return err
	}
	if priority == nil {
		return domain.ErrNotFound
	}
	return nil
}
