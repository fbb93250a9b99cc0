package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"awards-platform/internal/models"
	"awards-platform/internal/services"
)

// AwardHandler serves the public award pages: index, category listing
// and published results
type AwardHandler struct {
	db           *gorm.DB
	stageService *services.StageService
	tallyService *services.TallyService
}

// NewAwardHandler creates a new AwardHandler
func NewAwardHandler(db *gorm.DB, stageService *services.StageService, tallyService *services.TallyService) *AwardHandler {
	return &AwardHandler{
		db:           db,
		stageService: stageService,
		tallyService: tallyService,
	}
}

// GetIndex returns the award configuration, current stage and the main
// categories
// GET /api/awards
func (h *AwardHandler) GetIndex(c *gin.Context) {
	config, err := h.stageService.GetConfig(c.Request.Context())
	if err != nil && err != services.ErrNoConfig {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load configuration"})
		return
	}

	var mainCategories []models.Category
	if err := h.db.Where("is_main = ?", true).Order("id ASC").Find(&mainCategories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	var currentStage *string
	if config != nil {
		currentStage = &config.CurrentStage
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"config":          config,
			"current_stage":   currentStage,
			"main_categories": mainCategories,
		},
	})
}

// GetCategories returns all categories with their nominees
// GET /api/categories
func (h *AwardHandler) GetCategories(c *gin.Context) {
	var categories []models.Category
	if err := h.db.Order("id ASC").Preload("Nominees").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	stage, err := h.stageService.CurrentStage(c.Request.Context())
	if err != nil && err != services.ErrNoConfig {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load configuration"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    categories,
		"count":   len(categories),
		"stage":   stage,
	})
}

// GetPublicResults returns the published winner per category. A
// category appears only once its tally has been committed.
// GET /api/results
func (h *AwardHandler) GetPublicResults(c *gin.Context) {
	winners, err := h.tallyService.PublicResults(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch results"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    winners,
		"count":   len(winners),
	})
}
