package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Me returns the caller's profile with resource balances.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.UserRepo.GetByID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilizador não encontrado"})
		return
	}

	resources, err := h.EconomyService.ListResources(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao obter recursos."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             user.ID,
		"username":       user.Username,
		"coins":          user.Coins,
		"ranking_points": user.RankingPoints,
		"level":          user.Level,
		"exp":            user.Exp,
		"exp_next_level": user.ExpNextLevel,
		"created_at":     user.CreatedAt,
		"resources":      resources,
	})
}
