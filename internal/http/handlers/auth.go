package handlers

import (
	"errors"
	"net/http"

	"farm_webapp/internal/logger"
	"farm_webapp/internal/repository"
	"farm_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates an account. Duplicate usernames get 409.
func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	user, err := h.AuthService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nome de utilizador e palavra-passe são obrigatórios."})
		case errors.Is(err, repository.ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "O nome de utilizador já está registado."})
		default:
			logger.Error("register failed", "username", req.Username, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao registar utilizador."})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Utilizador registado com sucesso!",
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"coins":    user.Coins,
			"level":    user.Level,
		},
	})
}

// Login verifies credentials and issues a JWT.
func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	user, token, err := h.AuthService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nome de utilizador e palavra-passe são obrigatórios."})
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Nome de utilizador ou palavra-passe inválidos."})
		default:
			logger.Error("login failed", "username", req.Username, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao fazer login."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":             user.ID,
			"username":       user.Username,
			"coins":          user.Coins,
			"ranking_points": user.RankingPoints,
			"level":          user.Level,
			"exp":            user.Exp,
			"exp_next_level": user.ExpNextLevel,
		},
	})
}
