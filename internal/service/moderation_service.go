package service

import (
	"context"
	"time"

	"points_platform/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ModerationService covers the admin actions that gate the chat pipeline:
// message deletion and timed mutes.
type ModerationService struct {
	users    *repository.UserRepository
	messages *repository.ChatRepository

	defaultMinutes int
	maxMinutes     int
	broadcast      Broadcaster
}

func NewModerationService(db *pgxpool.Pool, defaultMinutes, maxMinutes int, broadcast Broadcaster) *ModerationService {
	return &ModerationService{
		users:          repository.NewUserRepository(db),
		messages:       repository.NewChatRepository(db),
		defaultMinutes: defaultMinutes,
		maxMinutes:     maxMinutes,
		broadcast:      broadcast,
	}
}

// DeleteMessage removes a message unconditionally.
func (s *ModerationService) DeleteMessage(ctx context.Context, messageID int64) error {
	if err := s.messages.Delete(ctx, messageID); err != nil {
		return err
	}
	if s.broadcast != nil {
		s.broadcast.BroadcastEvent("chat_delete", map[string]int64{"id": messageID})
	}
	return nil
}

// TimeoutUser mutes a user for the requested minutes. A nil request means
// the default; anything given is clamped, not rejected.
func (s *ModerationService) TimeoutUser(ctx context.Context, userID int64, minutes *int) (time.Time, error) {
	until := time.Now().Add(time.Duration(s.resolveMinutes(minutes)) * time.Minute)
	if err := s.users.SetMutedUntil(ctx, userID, until); err != nil {
		return time.Time{}, err
	}
	return until, nil
}

func (s *ModerationService) resolveMinutes(minutes *int) int {
	if minutes == nil {
		return s.defaultMinutes
	}
	return clampMinutes(*minutes, s.maxMinutes)
}

func clampMinutes(minutes, max int) int {
	if minutes < 1 {
		return 1
	}
	if minutes > max {
		return max
	}
	return minutes
}
