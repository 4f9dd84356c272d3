package delivery

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"taskhub-backend/internal/task/domain"
	"taskhub-backend/internal/task/usecase"

	"github.com/gin-gonic/gin"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskUsecase usecase.TaskUsecase
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskUsecase usecase.TaskUsecase) *TaskHandler {
	return &TaskHandler{
		taskUsecase: taskUsecase,
	}
}

// respondError maps domain sentinels to HTTP statuses. Anything unrecognized
// is a store failure and surfaces as 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrInvalidProgress),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrInvalidTimeRange),
		errors.Is(err, domain.ErrInvalidDuration),
		errors.Is(err, domain.ErrUnresolvableReminder),
		errors.Is(err, domain.ErrReminderAfterDue),
		errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrEmptyContent):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrDuplicateName):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// CreateTaskRequest represents the request body for creating a task
type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	CategoryID  *string `json:"category_id"`
	PriorityID  *string `json:"priority_id"`
	DueDate     *string `json:"due_date"`
	IsImportant bool    `json:"is_important"`
}

// GetTasks returns the authenticated user's tasks
// GET /api/tasks?status=pending&category_id=&important=true&limit=50&offset=0
func (h *TaskHandler) GetTasks(c *gin.Context) {
	userID := c.GetString("userID")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := usecase.ListFilter{
		Limit:         limit,
		Offset:        offset,
		ImportantOnly: c.Query("important") == "true",
	}
	if status := c.Query("status"); status != "" {
		s := domain.TaskStatus(status)
		filter.Status = &s
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		filter.CategoryID = &categoryID
	}

	tasks, total, err := h.taskUsecase.ListTasks(userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"total": total,
	})
}

// SearchTasks fuzzy-searches the user's tasks by title and description
// GET /api/tasks/search?q=repor
func (h *TaskHandler) SearchTasks(c *gin.Context) {
	userID := c.GetString("userID")

	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	tasks, err := h.taskUsecase.SearchTasks(userID, query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"total": len(tasks),
	})
}

// GetTaskByID returns a specific task
// GET /api/tasks/:id
func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	task, err := h.taskUsecase.GetTask(userID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// CreateTask creates a new task
// POST /api/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID := c.GetString("userID")

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	create := usecase.CreateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		PriorityID:  req.PriorityID,
		IsImportant: req.IsImportant,
	}
	if req.DueDate != nil && *req.DueDate != "" {
		t, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "due_date must be RFC3339"})
			return
		}
		create.DueDate = &t
	}

	task, err := h.taskUsecase.CreateTask(userID, create)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTaskRequest represents a partial task edit
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	CategoryID  *string `json:"category_id,omitempty"`
	PriorityID  *string `json:"priority_id,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

// UpdateTask updates an existing task
// PUT /api/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := usecase.UpdateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		PriorityID:  req.PriorityID,
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			update.ClearDue = true
		} else {
			t, err := time.Parse(time.RFC3339, *req.DueDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "due_date must be RFC3339"})
				return
			}
			update.DueDate = &t
		}
	}

	task, err := h.taskUsecase.UpdateTask(userID, taskID, update)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTaskStatus changes just the status
// PATCH /api/tasks/:id/status
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskUsecase.SetStatus(userID, taskID, domain.TaskStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTaskProgress changes just the progress
// PATCH /api/tasks/:id/progress
func (h *TaskHandler) UpdateTaskProgress(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	var req struct {
		Progress *int `json:"progress" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskUsecase.SetProgress(userID, taskID, *req.Progress)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// CompleteTask marks the task completed
// POST /api/tasks/:id/complete
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	task, err := h.taskUsecase.MarkCompleted(userID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// ReopenTask moves a terminal task back to in_progress
// POST /api/tasks/:id/reopen
func (h *TaskHandler) ReopenTask(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	var req struct {
		Progress int `json:"progress"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskUsecase.Reopen(userID, taskID, req.Progress)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// ToggleImportant flips the importance flag
// PATCH /api/tasks/:id/important
func (h *TaskHandler) ToggleImportant(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	task, err := h.taskUsecase.ToggleImportant(userID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask soft-deletes a task
// DELETE /api/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	if err := h.taskUsecase.SoftDelete(userID, taskID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// GetComments lists a task's comments
// GET /api/tasks/:id/comments
func (h *TaskHandler) GetComments(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	comments, err := h.taskUsecase.ListComments(userID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}
	if comments == nil {
		comments = []*domain.Comment{}
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// AddComment appends a comment to a task
// POST /api/tasks/:id/comments
func (h *TaskHandler) AddComment(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.taskUsecase.AddComment(userID, taskID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// EditComment replaces a comment's content
// PUT /api/comments/:id
func (h *TaskHandler) EditComment(c *gin.Context) {
	userID := c.GetString("userID")
	commentID := c.Param("id")

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.taskUsecase.EditComment(userID, commentID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// CreateReminderRequest represents the request body for scheduling a reminder
type CreateReminderRequest struct {
	Type       string  `json:"type"`
	Timing     string  `json:"timing" binding:"required"`
	AbsoluteAt *string `json:"absolute_at"`
}

// CreateReminder schedules a reminder on a task
// POST /api/tasks/:id/reminders
func (h *TaskHandler) CreateReminder(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	var req CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	create := usecase.CreateReminderRequest{
		Type:   domain.ReminderType(req.Type),
		Timing: domain.ReminderTiming(req.Timing),
	}
	if req.AbsoluteAt != nil && *req.AbsoluteAt != "" {
		t, err := time.Parse(time.RFC3339, *req.AbsoluteAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "absolute_at must be RFC3339"})
			return
		}
		create.AbsoluteAt = &t
	}

	reminder, err := h.taskUsecase.CreateReminder(userID, taskID, create)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reminder)
}

// GetReminders lists a task's reminders
// GET /api/tasks/:id/reminders
func (h *TaskHandler) GetReminders(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	reminders, err := h.taskUsecase.ListReminders(userID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}
	if reminders == nil {
		reminders = []*domain.Reminder{}
	}

	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

// CancelReminder removes a reminder
// DELETE /api/reminders/:id
func (h *TaskHandler) CancelReminder(c *gin.Context) {
	userID := c.GetString("userID")
	reminderID := c.Param("id")

	if err := h.taskUsecase.CancelReminder(userID, reminderID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reminder cancelled"})
}
