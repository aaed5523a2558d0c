package handlers

import (
	"farm_webapp/internal/repository"
	"farm_webapp/internal/service"
	"farm_webapp/internal/ws"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB *pgxpool.Pool

	UserRepo    *repository.UserRepository
	ProductRepo *repository.ProductRepository

	AuthService        *service.AuthService
	EconomyService     *service.EconomyService
	ProgressionService *service.ProgressionService
	AchievementService *service.AchievementService

	Hub *ws.Hub
}

func NewHandler(db *pgxpool.Pool, hub *ws.Hub) *Handler {
	userRepo := repository.NewUserRepository(db)
	return &Handler{
		DB:                 db,
		UserRepo:           userRepo,
		ProductRepo:        repository.NewProductRepository(db),
		AuthService:        service.NewAuthService(userRepo),
		EconomyService:     service.NewEconomyService(db),
		ProgressionService: service.NewProgressionService(db),
		AchievementService: service.NewAchievementService(db),
		Hub:                hub,
	}
}

// getUserID extracts the authenticated user id set by the JWT middleware.
func getUserID(c interface{ Get(any) (any, bool) }) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
