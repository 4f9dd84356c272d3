package delivery

import (
	"net/http"
	"time"

	"taskhub-backend/internal/task/domain"
	"taskhub-backend/internal/task/usecase"

	"github.com/gin-gonic/gin"
)

// TimeLogHandler handles time ledger HTTP requests
type TimeLogHandler struct {
	ledger usecase.TimeLedgerUsecase
}

// NewTimeLogHandler creates a new TimeLogHandler
func NewTimeLogHandler(ledger usecase.TimeLedgerUsecase) *TimeLogHandler {
	return &TimeLogHandler{
		ledger: ledger,
	}
}

// CreateTimeLogRequest accepts either an elapsed interval or a manual hour
// count, never both.
type CreateTimeLogRequest struct {
	StartTime   *string  `json:"start_time"`
	EndTime     *string  `json:"end_time"`
	ManualHours *float64 `json:"manual_hours"`
	Description string   `json:"description"`
}

// CreateTimeLog appends a time log to a task
// POST /api/tasks/:id/timelogs
func (h *TimeLogHandler) CreateTimeLog(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	var req CreateTimeLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		log *domain.TimeLog
		err error
	)
	switch {
	case req.ManualHours != nil:
		if req.StartTime != nil || req.EndTime != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "provide either manual_hours or a start/end interval, not both"})
			return
		}
		log, err = h.ledger.RecordManual(userID, taskID, *req.ManualHours, req.Description)
	case req.StartTime != nil && req.EndTime != nil:
		start, perr := time.Parse(time.RFC3339, *req.StartTime)
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_time must be RFC3339"})
			return
		}
		end, perr := time.Parse(time.RFC3339, *req.EndTime)
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_time must be RFC3339"})
			return
		}
		log, err = h.ledger.RecordElapsed(userID, taskID, start, end, req.Description)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "provide manual_hours or both start_time and end_time"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, log)
}

// GetTimeLogs lists a task's time logs
// GET /api/tasks/:id/timelogs
func (h *TimeLogHandler) GetTimeLogs(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	logs, err := h.ledger.ListLogs(userID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}
	if logs == nil {
		logs = []*domain.TimeLog{}
	}

	c.JSON(http.StatusOK, gin.H{"timelogs": logs})
}

// GetTimeLogTotal returns a task's total logged time
// GET /api/tasks/:id/timelogs/total
func (h *TimeLogHandler) GetTimeLogTotal(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	total, err := h.ledger.TotalDuration(userID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_seconds": int64(total.Seconds()),
		"total_hours":   total.Hours(),
	})
}
