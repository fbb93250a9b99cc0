package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"awards-platform/internal/auth"
	"awards-platform/internal/services"
)

// SuggestionHandler handles user-submitted category and nominee
// proposals, gated by the current stage
type SuggestionHandler struct {
	stageService      *services.StageService
	suggestionService *services.SuggestionService
}

// NewSuggestionHandler creates a new SuggestionHandler
func NewSuggestionHandler(stageService *services.StageService, suggestionService *services.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{
		stageService:      stageService,
		suggestionService: suggestionService,
	}
}

// SuggestCategory submits a category proposal
// POST /api/suggestions/categories
func (h *SuggestionHandler) SuggestCategory(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.stageService.EnsureOpen(c.Request.Context(), services.ActionSuggestCategory); err != nil {
		respondServiceError(c, err)
		return
	}

	suggestion, err := h.suggestionService.SuggestCategory(c.Request.Context(), userID, req.Name, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    suggestion,
	})
}

// SuggestNominee submits a nominee proposal for a category
// POST /api/categories/:id/suggestions
func (h *SuggestionHandler) SuggestNominee(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.stageService.EnsureOpen(c.Request.Context(), services.ActionSuggestNominee); err != nil {
		respondServiceError(c, err)
		return
	}

	suggestion, err := h.suggestionService.SuggestNominee(c.Request.Context(), userID, uint(categoryID), req.Name, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    suggestion,
	})
}
