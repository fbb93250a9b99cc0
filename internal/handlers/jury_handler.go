package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"awards-platform/internal/auth"
	"awards-platform/internal/services"
)

// JuryHandler handles jury token redemption
type JuryHandler struct {
	juryService *services.JuryService
}

// NewJuryHandler creates a new JuryHandler
func NewJuryHandler(juryService *services.JuryService) *JuryHandler {
	return &JuryHandler{juryService: juryService}
}

// JuryLogin redeems a single-use jury token and returns a session for
// the jury account. An already authenticated caller is upgraded in
// place; an anonymous caller gets a placeholder jury account.
// GET /jury-login/:token
func (h *JuryHandler) JuryLogin(c *gin.Context) {
	tokenID, err := uuid.Parse(c.Param("token"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Jury token not found"})
		return
	}

	var currentUserID *uint
	if userID, ok := auth.GetUserID(c); ok {
		currentUserID = &userID
	}

	user, err := h.juryService.Redeem(c.Request.Context(), tokenID, currentUserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    user,
	})
}
