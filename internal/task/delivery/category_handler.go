package delivery

import (
	"net/http"

	"taskhub-backend/internal/task/domain"
	"taskhub-backend/internal/task/usecase"

	"github.com/gin-gonic/gin"
)

// CategoryHandler handles category and priority HTTP requests
type CategoryHandler struct {
	categoryUsecase usecase.CategoryUsecase
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryUsecase usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{
		categoryUsecase: categoryUsecase,
	}
}

// GetCategories lists the user's active categories with task counts
// GET /api/categories
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	userID := c.GetString("userID")

	categories, err := h.categoryUsecase.ListCategories(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if categories == nil {
		categories = []*domain.Category{}
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory creates a new category
// POST /api/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID := c.GetString("userID")

	var req usecase.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryUsecase.CreateCategory(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// UpdateCategory edits a category
// PUT /api/categories/:id
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	userID := c.GetString("userID")
	categoryID := c.Param("id")

	var req usecase.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryUsecase.UpdateCategory(userID, categoryID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory deactivates a category; its tasks keep the reference
// DELETE /api/categories/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID := c.GetString("userID")
	categoryID := c.Param("id")

	if err := h.categoryUsecase.DeactivateCategory(userID, categoryID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// EnsureCategory gets or creates a category by name
// POST /api/categories/ensure
func (h *CategoryHandler) EnsureCategory(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryUsecase.EnsureCategory(userID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// GetPriorities lists the shared priority levels
// GET /api/priorities
func (h *CategoryHandler) GetPriorities(c *gin.Context) {
	priorities, err := h.categoryUsecase.ListPriorities()
	if err != nil {
		respondError(c, err)
		return
	}
	if priorities == nil {
		priorities = []*domain.Priority{}
	}

	c.JSON(http.StatusOK, gin.H{"priorities": priorities})
}
