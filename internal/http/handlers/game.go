package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"farm_webapp/internal/domain"
	"farm_webapp/internal/game"
	"farm_webapp/internal/logger"
	"farm_webapp/internal/service"
	"farm_webapp/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

type collectRequest struct {
	Product string `json:"product"`
}

type sellRequest struct {
	Product  string `json:"product"`
	Quantity int64  `json:"quantity"`
}

// resolveProduct maps the product name from the request body to its catalog
// row. Products are addressed by name on the wire, by id internally.
func (h *Handler) resolveProduct(c *gin.Context, name string) (*domain.Product, bool) {
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nome do produto é obrigatório."})
		return nil, false
	}

	p, err := h.ProductRepo.GetByName(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produto não encontrado"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar produto."})
		}
		return nil, false
	}
	return p, true
}

// grantExperience applies the XP award for an action and, on level-up, runs
// the level achievement checks and pushes a toast. Errors here are logged,
// not surfaced: the economy side of the action already committed.
func (h *Handler) grantExperience(ctx context.Context, userID int64, amount int) (game.LevelResult, []domain.CompletedAchievement) {
	expRes, err := h.ProgressionService.AddExperience(ctx, userID, amount)
	if err != nil {
		logger.Warn("experience award failed", "user_id", userID, "amount", amount, "error", err)
		return expRes, nil
	}

	var completed []domain.CompletedAchievement
	if expRes.LeveledUp {
		done, err := h.AchievementService.CheckLevel(ctx, userID, expRes.Level)
		if err != nil {
			logger.Warn("level achievement check failed", "user_id", userID, "error", err)
		} else {
			completed = done
		}
		h.Hub.NotifyUser(userID, ws.Event{Type: "level_up", Payload: expRes})
	}
	return expRes, completed
}

func (h *Handler) pushAchievements(userID int64, completed []domain.CompletedAchievement) {
	for _, a := range completed {
		achievementsUnlocked.Inc()
		h.Hub.NotifyUser(userID, ws.Event{Type: "achievement", Payload: a})
	}
}

// Collect handles one collect click: gain resources, sync collect
// achievements, award XP.
func (h *Handler) Collect(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req collectRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	product, ok := h.resolveProduct(c, req.Product)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	res, err := h.EconomyService.Collect(ctx, userID, product.ID)
	if err != nil {
		logger.Error("collect failed", "user_id", userID, "product", product.Name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao coletar recurso."})
		return
	}
	collectsTotal.WithLabelValues(product.Name).Inc()

	completed, err := h.AchievementService.CheckCollect(ctx, userID, product.ID)
	if err != nil {
		logger.Warn("collect achievement check failed", "user_id", userID, "product", product.Name, "error", err)
	}

	expRes, levelDone := h.grantExperience(ctx, userID, game.CollectExp)
	completed = append(completed, levelDone...)
	h.pushAchievements(userID, completed)

	c.JSON(http.StatusOK, gin.H{
		"message":                fmt.Sprintf("Você obteve %d %s!", res.Gained, product.Name),
		"gained":                 res.Gained,
		"new_quantity":           res.NewQuantity,
		"experience":             expRes,
		"completed_achievements": completed,
	})
}

// Sell trades held resources for coins.
func (h *Handler) Sell(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req sellRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.Product == "" || req.Quantity == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Produto e quantidade são obrigatórios."})
		return
	}
	if req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantidade deve ser um número positivo."})
		return
	}

	product, ok := h.resolveProduct(c, req.Product)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	sale, err := h.EconomyService.Sell(ctx, userID, product.ID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInsufficientResource):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantidade insuficiente deste recurso"})
		case errors.Is(err, service.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantidade deve ser um número positivo."})
		default:
			logger.Error("sell failed", "user_id", userID, "product", product.Name, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao vender recurso."})
		}
		return
	}
	salesTotal.WithLabelValues(product.Name).Inc()

	completed, err := h.AchievementService.CheckSales(ctx, userID)
	if err != nil {
		logger.Warn("sales achievement check failed", "user_id", userID, "error", err)
	}

	expRes, levelDone := h.grantExperience(ctx, userID, game.SellExp(req.Quantity))
	completed = append(completed, levelDone...)
	h.pushAchievements(userID, completed)

	c.JSON(http.StatusOK, gin.H{
		"message":                fmt.Sprintf("Você vendeu %d %s por %d moedas!", sale.Quantity, product.Name, sale.TotalValue),
		"sale":                   sale,
		"experience":             expRes,
		"completed_achievements": completed,
	})
}

// SellAll liquidates every held resource. Per-item: a failure skips the item
// and keeps going.
func (h *Handler) SellAll(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	res, err := h.EconomyService.SellAll(c.Request.Context(), userID)
	if err != nil {
		logger.Error("sell-all failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao vender recurso."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_value": res.TotalValue,
		"items_sold":  res.ItemsSold,
		"skipped":     res.Skipped,
	})
}

// Upgrade raises a resource's production level for coins.
func (h *Handler) Upgrade(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req collectRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	product, ok := h.resolveProduct(c, req.Product)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	upgrade, err := h.EconomyService.UpgradeProduction(ctx, userID, product.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResourceNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Recurso não encontrado"})
		case errors.Is(err, service.ErrInsufficientFunds):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Moedas insuficientes para melhorar este recurso"})
		default:
			logger.Error("upgrade failed", "user_id", userID, "product", product.Name, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao melhorar produção."})
		}
		return
	}
	upgradesTotal.WithLabelValues(product.Name).Inc()

	expRes, completed := h.grantExperience(ctx, userID, game.UpgradeExp)
	h.pushAchievements(userID, completed)

	c.JSON(http.StatusOK, gin.H{
		"message":                fmt.Sprintf("Produção de %s melhorada para nível %d!", product.Name, upgrade.NewLevel),
		"upgrade":                upgrade,
		"experience":             expRes,
		"completed_achievements": completed,
	})
}

// Resources lists the caller's balances with product details.
func (h *Handler) Resources(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	resources, err := h.EconomyService.ListResources(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao obter recursos."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"resources": resources})
}
