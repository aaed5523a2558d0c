package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetLeaderboard returns the global ranking ordered by ranking points, level
// breaking ties. Default 10 entries, capped at 100.
func (h *Handler) GetLeaderboard(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 100 {
		limit = 100
	}

	top, err := h.UserRepo.GetRanking(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar classificação."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": top})
}

// GetMyRank returns the caller's position in the global ranking.
func (h *Handler) GetMyRank(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	rank, points, err := h.UserRepo.GetUserRank(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"rank":           0,
			"ranking_points": 0,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rank":           rank,
		"ranking_points": points,
	})
}
