package handlers

import (
	"net/http"

	"farm_webapp/internal/logger"

	"github.com/gin-gonic/gin"
)

// ListAchievements returns the static catalog.
func (h *Handler) ListAchievements(c *gin.Context) {
	achievements, err := h.AchievementService.ListCatalog(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar conquistas."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"achievements": achievements})
}

// MyAchievements returns the catalog with the caller's progress.
func (h *Handler) MyAchievements(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	achievements, err := h.AchievementService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar conquistas."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"achievements": achievements})
}

// CheckAchievements re-evaluates everything for the caller and returns what
// newly completed.
func (h *Handler) CheckAchievements(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	completed, err := h.AchievementService.EvaluateAll(c.Request.Context(), userID)
	if err != nil {
		logger.Error("achievement evaluation failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao verificar conquistas."})
		return
	}
	h.pushAchievements(userID, completed)

	c.JSON(http.StatusOK, gin.H{"completed_achievements": completed})
}
