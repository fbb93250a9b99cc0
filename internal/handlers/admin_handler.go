package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"awards-platform/internal/models"
	"awards-platform/internal/services"
)

// AdminHandler exposes the staff surface: award configuration, stage
// transitions, suggestion moderation, jury token generation and the
// tally run
type AdminHandler struct {
	db                *gorm.DB
	stageService      *services.StageService
	suggestionService *services.SuggestionService
	tallyService      *services.TallyService
	juryService       *services.JuryService
	baseURL           string
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	db *gorm.DB,
	stageService *services.StageService,
	suggestionService *services.SuggestionService,
	tallyService *services.TallyService,
	juryService *services.JuryService,
	baseURL string,
) *AdminHandler {
	return &AdminHandler{
		db:                db,
		stageService:      stageService,
		suggestionService: suggestionService,
		tallyService:      tallyService,
		juryService:       juryService,
		baseURL:           baseURL,
	}
}

// StaffMiddleware checks if the authenticated user is staff
func (h *AdminHandler) StaffMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		var user models.User
		if err := h.db.First(&user, userID.(uint)).Error; err != nil || !user.IsStaff {
			c.JSON(http.StatusForbidden, gin.H{"error": "Staff access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// BootstrapConfig creates the award configuration row
// POST /api/admin/config
func (h *AdminHandler) BootstrapConfig(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	config, err := h.stageService.Bootstrap(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		if config != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Award configuration already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create configuration"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    config,
	})
}

// TransitionStage moves the award cycle to a new stage
// PUT /api/admin/stage
func (h *AdminHandler) TransitionStage(c *gin.Context) {
	var req struct {
		Stage string `json:"stage" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.IsValidStage(req.Stage) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stage"})
		return
	}

	config, err := h.stageService.TransitionStage(c.Request.Context(), req.Stage)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    config,
	})
}

// GetPendingCategorySuggestions returns category proposals awaiting moderation
// GET /api/admin/suggestions/categories
func (h *AdminHandler) GetPendingCategorySuggestions(c *gin.Context) {
	suggestions, err := h.suggestionService.GetPendingCategorySuggestions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch suggestions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    suggestions,
		"count":   len(suggestions),
	})
}

// GetPendingNomineeSuggestions returns nominee proposals awaiting moderation
// GET /api/admin/suggestions/nominees
func (h *AdminHandler) GetPendingNomineeSuggestions(c *gin.Context) {
	suggestions, err := h.suggestionService.GetPendingNomineeSuggestions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch suggestions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    suggestions,
		"count":   len(suggestions),
	})
}

// ModerateCategorySuggestion approves or rejects a category proposal.
// Approval creates the real category.
// POST /api/admin/suggestions/categories/:id/moderate
func (h *AdminHandler) ModerateCategorySuggestion(c *gin.Context) {
	suggestionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid suggestion ID"})
		return
	}

	var req struct {
		Action string `json:"action" binding:"required"` // "approve" or "reject"
		IsMain *bool  `json:"is_main"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Action != "approve" && req.Action != "reject" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
		return
	}

	if req.Action == "approve" {
		isMain := true
		if req.IsMain != nil {
			isMain = *req.IsMain
		}

		category, err := h.suggestionService.ApproveCategorySuggestion(c.Request.Context(), uint(suggestionID), isMain)
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Suggestion approved and category created",
			"category": category,
		})
		return
	}

	if err := h.suggestionService.RejectCategorySuggestion(c.Request.Context(), uint(suggestionID)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Suggestion rejected",
	})
}

// ModerateNomineeSuggestion approves or rejects a nominee proposal.
// Approval creates the real nominee in the proposal's category.
// POST /api/admin/suggestions/nominees/:id/moderate
func (h *AdminHandler) ModerateNomineeSuggestion(c *gin.Context) {
	suggestionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid suggestion ID"})
		return
	}

	var req struct {
		Action string `json:"action" binding:"required"` // "approve" or "reject"
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Action != "approve" && req.Action != "reject" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
		return
	}

	if req.Action == "approve" {
		nominee, err := h.suggestionService.ApproveNomineeSuggestion(c.Request.Context(), uint(suggestionID))
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Suggestion approved and nominee created",
			"nominee": nominee,
		})
		return
	}

	if err := h.suggestionService.RejectNomineeSuggestion(c.Request.Context(), uint(suggestionID)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Suggestion rejected",
	})
}

// CreateCategory creates a category directly, bypassing the suggestion flow
// POST /api/admin/categories
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		IsMain      *bool  `json:"is_main"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isMain := true
	if req.IsMain != nil {
		isMain = *req.IsMain
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
		IsMain:      isMain,
	}

	if err := h.db.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    category,
	})
}

// CreateNominee creates a nominee directly in a category
// POST /api/admin/categories/:id/nominees
func (h *AdminHandler) CreateNominee(c *gin.Context) {
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

	var category models.Category
	if err := h.db.First(&category, categoryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	nominee := models.Nominee{
		CategoryID:  category.ID,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.db.Create(&nominee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create nominee"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    nominee,
	})
}

// GenerateJuryToken issues a single-use jury token and returns the
// redeemable link
// POST /api/admin/jury-tokens
func (h *AdminHandler) GenerateJuryToken(c *gin.Context) {
	token, err := h.juryService.Issue(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"link":    h.juryService.LoginURL(h.baseURL, token),
		"data":    token,
	})
}

// PreviewTally computes the tally for every category without persisting it
// GET /api/admin/tally
func (h *AdminHandler) PreviewTally(c *gin.Context) {
	results, err := h.tallyService.Preview(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute tally"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    results,
	})
}

// RunTally commits the tally for every category. Only permitted while
// the cycle is in the results stage.
// POST /api/admin/tally
func (h *AdminHandler) RunTally(c *gin.Context) {
	if err := h.stageService.EnsureOpen(c.Request.Context(), services.ActionTally); err != nil {
		respondServiceError(c, err)
		return
	}

	results, err := h.tallyService.CommitAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Tally committed",
		"data":    results,
	})
}
