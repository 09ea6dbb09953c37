package handlers

import (
	"net/http"

	"points_platform/internal/chat"
	"points_platform/internal/config"
	"points_platform/internal/domain"
	"points_platform/internal/repository"
	"points_platform/internal/service"
	"points_platform/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB  *pgxpool.Pool
	Cfg *config.Config
	Hub *ws.Hub

	UserRepo     *repository.UserRepository
	ChatService  *service.ChatService
	RainService  *service.RainService
	BonusService *service.SocialBonusService
	Moderation   *service.ModerationService
}

func NewHandler(db *pgxpool.Pool, cfg *config.Config, hub *ws.Hub) *Handler {
	filter := chat.NewFilter(cfg.ChatMaxLength, chat.DefaultBannedWords)

	return &Handler{
		DB:           db,
		Cfg:          cfg,
		Hub:          hub,
		UserRepo:     repository.NewUserRepository(db),
		ChatService:  service.NewChatService(db, filter, cfg.ChatHistoryLimit, hub),
		RainService:  service.NewRainService(db, cfg.RainMaxAmount, cfg.ChatHistoryLimit, hub),
		BonusService: service.NewSocialBonusService(db),
		Moderation:   service.NewModerationService(db, cfg.TimeoutDefaultMinutes, cfg.TimeoutMaxMinutes, hub),
	}
}

// getUserID pulls the authenticated user id out of the gin context.
func getUserID(c *gin.Context) (int64, bool) {
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

// requireAdmin loads the caller and enforces the admin flag. Forbidden is
// distinct from unauthorized: the credential is valid, the privilege is not.
func (h *Handler) requireAdmin(c *gin.Context) (*domain.User, bool) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}

	user, err := h.UserRepo.GetByID(c.Request.Context(), userID)
	if err != nil || !user.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return nil, false
	}

	return user, true
}
