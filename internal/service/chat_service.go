package service

import (
	"context"
	"time"

	"points_platform/internal/chat"
	"points_platform/internal/domain"
	"points_platform/internal/logger"
	"points_platform/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Broadcaster pushes events to connected stream clients. A nil broadcaster
// is valid; events are then dropped.
type Broadcaster interface {
	BroadcastEvent(eventType string, payload any)
}

// ChatService runs the message ingestion pipeline: moderation filter,
// mute gate, level snapshot, persistence and retention trimming.
type ChatService struct {
	users     *repository.UserRepository
	messages  *repository.ChatRepository
	retention repository.RetentionPolicy
	filter    *chat.Filter

	historyLimit int
	broadcast    Broadcaster
}

func NewChatService(db *pgxpool.Pool, filter *chat.Filter, historyLimit int, broadcast Broadcaster) *ChatService {
	return &ChatService{
		users:        repository.NewUserRepository(db),
		messages:     repository.NewChatRepository(db),
		retention:    repository.NewRecomputeRetention(db),
		filter:       filter,
		historyLimit: historyLimit,
		broadcast:    broadcast,
	}
}

// Post validates and stores a message for the authenticated user. The
// first failing rule short-circuits with no partial effects.
func (s *ChatService) Post(ctx context.Context, userID int64, raw string) (*domain.ChatMessageView, error) {
	content, err := s.filter.Validate(raw)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Muted(time.Now()) {
		return nil, &MutedError{Until: *user.ChatMutedUntil}
	}

	level := domain.Level(user.Balance, user.Pending)

	msg, err := s.messages.Insert(ctx, content, user.ID, level)
	if err != nil {
		return nil, err
	}

	// Advisory cleanup: the message is already durable, a trim failure
	// must not fail the post.
	if _, err := s.retention.TrimOverflow(ctx, s.historyLimit); err != nil {
		logger.Warn("chat retention trim failed", "error", err)
	}

	view := &domain.ChatMessageView{
		ID:        msg.ID,
		Content:   msg.Content,
		Level:     msg.Level,
		CreatedAt: msg.CreatedAt,
		Username:  user.Username,
		UserID:    user.ID,
		IsAdmin:   user.IsAdmin,
	}

	if s.broadcast != nil {
		s.broadcast.BroadcastEvent("chat_message", view)
	}

	return view, nil
}

// List returns the retained window of messages, oldest first.
func (s *ChatService) List(ctx context.Context) ([]domain.ChatMessageView, error) {
	return s.messages.ListRecent(ctx, s.historyLimit)
}
