package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"points_platform/internal/domain"
	"points_platform/internal/logger"
	"points_platform/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RainService owns the group-bonus lifecycle: admin-started events, the
// single-active-event invariant and per-user at-most-once claims.
type RainService struct {
	db        *pgxpool.Pool
	users     *repository.UserRepository
	rains     *repository.RainRepository
	messages  *repository.ChatRepository
	retention repository.RetentionPolicy

	maxAmount    float64
	historyLimit int
	broadcast    Broadcaster
}

func NewRainService(db *pgxpool.Pool, maxAmount float64, historyLimit int, broadcast Broadcaster) *RainService {
	return &RainService{
		db:           db,
		users:        repository.NewUserRepository(db),
		rains:        repository.NewRainRepository(db),
		messages:     repository.NewChatRepository(db),
		retention:    repository.NewRecomputeRetention(db),
		maxAmount:    maxAmount,
		historyLimit: historyLimit,
		broadcast:    broadcast,
	}
}

// Start creates a new rain on behalf of admin. Deactivating the previous
// rain, inserting the new one and posting the announcement message are one
// transaction; any failure aborts all three.
func (s *RainService) Start(ctx context.Context, admin *domain.User, amount float64) (*domain.RainEvent, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, ErrRainAmountInvalid
	}
	if amount > s.maxAmount {
		return nil, ErrRainAmountTooHigh
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.rains.DeactivateAllTx(ctx, tx); err != nil {
		return nil, err
	}

	rain, err := s.rains.CreateTx(ctx, tx, amount, admin.ID)
	if err != nil {
		return nil, err
	}

	content := fmt.Sprintf("🌧️ Rain started by %s. Claim %s points now!",
		admin.Username, strconv.FormatFloat(amount, 'f', -1, 64))
	level := domain.Level(admin.Balance, admin.Pending)

	announcement, err := s.messages.InsertTx(ctx, tx, content, admin.ID, level)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	// Announcement counts against the chat window like any other message.
	if _, err := s.retention.TrimOverflow(ctx, s.historyLimit); err != nil {
		logger.Warn("chat retention trim failed", "error", err)
	}

	if s.broadcast != nil {
		s.broadcast.BroadcastEvent("chat_message", &domain.ChatMessageView{
			ID:        announcement.ID,
			Content:   announcement.Content,
			Level:     announcement.Level,
			CreatedAt: announcement.CreatedAt,
			Username:  admin.Username,
			UserID:    admin.ID,
			IsAdmin:   admin.IsAdmin,
		})
		s.broadcast.BroadcastEvent("rain_started", rain)
	}

	return rain, nil
}

// Status returns the active rain for a viewer, or nil when none is active.
// viewerID <= 0 means an unauthenticated viewer.
func (s *RainService) Status(ctx context.Context, viewerID int64) (*domain.RainStatus, error) {
	status, err := s.rains.GetActiveStatus(ctx)
	if err != nil || status == nil {
		return status, err
	}

	if viewerID > 0 {
		claimed, err := s.rains.HasClaim(ctx, status.ID, viewerID)
		if err != nil {
			return nil, err
		}
		status.ClaimedByViewer = claimed
	}

	return status, nil
}

// Claim credits the active rain's amount to the user exactly once. The
// claim insert and the balance credit share one transaction, and the
// unique index on (rain_id, user_id) decides the loser of a concurrent
// double-claim.
func (s *RainService) Claim(ctx context.Context, userID int64) (amount, balance float64, err error) {
	rain, err := s.rains.GetActive(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, ErrNoActiveRain
		}
		return 0, 0, err
	}

	// Fast path; the insert below is the real gate.
	claimed, err := s.rains.HasClaim(ctx, rain.ID, userID)
	if err != nil {
		return 0, 0, err
	}
	if claimed {
		return 0, 0, ErrAlreadyClaimed
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := s.rains.InsertClaimTx(ctx, tx, rain.ID, userID); err != nil {
		if isUniqueViolation(err) {
			return 0, 0, ErrAlreadyClaimed
		}
		return 0, 0, err
	}

	balance, _, err = s.users.CreditTx(ctx, tx, userID, rain.Amount)
	if err != nil {
		return 0, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, err
	}

	return rain.Amount, balance, nil
}
