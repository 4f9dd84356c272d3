package delivery

import (
	"net/http"
	"time"

	"taskhub-backend/internal/task/usecase"

	"github.com/gin-gonic/gin"
)

// StatsHandler serves the read-only productivity snapshot
type StatsHandler struct {
	statsUsecase usecase.StatsUsecase
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsUsecase usecase.StatsUsecase) *StatsHandler {
	return &StatsHandler{
		statsUsecase: statsUsecase,
	}
}

// GetStatistics returns the user's aggregate snapshot
// GET /api/stats?from=2026-01-01T00:00:00Z&to=2026-02-01T00:00:00Z
//
// When the window is omitted it defaults to the last 30 days.
func (h *StatsHandler) GetStatistics(c *gin.Context) {
	userID := c.GetString("userID")

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -30)

	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be RFC3339"})
			return
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be RFC3339"})
			return
		}
		to = t
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not precede from"})
		return
	}

	snapshot, err := h.statsUsecase.Snapshot(userID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
