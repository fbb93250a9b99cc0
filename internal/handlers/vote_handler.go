package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"awards-platform/internal/auth"
	"awards-platform/internal/services"
)

// VoteHandler handles ballot casting during the voting stage
type VoteHandler struct {
	stageService *services.StageService
	voteService  *services.VoteService
	authService  *services.AuthService
}

// NewVoteHandler creates a new VoteHandler
func NewVoteHandler(stageService *services.StageService, voteService *services.VoteService, authService *services.AuthService) *VoteHandler {
	return &VoteHandler{
		stageService: stageService,
		voteService:  voteService,
		authService:  authService,
	}
}

// CastVote records the user's vote for a nominee in a category. Voting
// again in the same category replaces the earlier vote.
// POST /api/categories/:id/vote
func (h *VoteHandler) CastVote(c *gin.Context) {
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
		NomineeID uint `json:"nominee_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.stageService.EnsureOpen(c.Request.Context(), services.ActionVote); err != nil {
		respondServiceError(c, err)
		return
	}

	isJury, err := h.authService.IsJury(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	outcome, err := h.voteService.RecordVote(c.Request.Context(), userID, uint(categoryID), req.NomineeID, isJury)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	status := http.StatusCreated
	if outcome == services.VoteUpdated {
		status = http.StatusOK
	}

	c.JSON(status, gin.H{
		"success": true,
		"outcome": outcome,
	})
}

// GetMyVote returns the user's current vote in a category, if any
// GET /api/categories/:id/vote
func (h *VoteHandler) GetMyVote(c *gin.Context) {
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

	vote, err := h.voteService.GetUserVote(c.Request.Context(), userID, uint(categoryID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    vote,
	})
}
