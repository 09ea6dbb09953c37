package repository

import (
	"context"
	"errors"

	"points_platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrMessageNotFound = errors.New("message not found")

type ChatRepository struct {
	db *pgxpool.Pool
}

func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{db: db}
}

// Insert stores a new chat message with the author's level snapshot.
func (r *ChatRepository) Insert(ctx context.Context, content string, userID int64, level int) (*domain.ChatMessage, error) {
	m := &domain.ChatMessage{Content: content, UserID: userID, Level: level}
	err := r.db.QueryRow(ctx,
		`INSERT INTO chat_messages (content, user_id, level)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		content, userID, level,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// InsertTx stores a message inside an existing transaction. The rain
// announcement rides the rain-start transaction through this path.
func (r *ChatRepository) InsertTx(ctx context.Context, tx pgx.Tx, content string, userID int64, level int) (*domain.ChatMessage, error) {
	m := &domain.ChatMessage{Content: content, UserID: userID, Level: level}
	err := tx.QueryRow(ctx,
		`INSERT INTO chat_messages (content, user_id, level)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		content, userID, level,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListRecent returns the latest limit messages joined with their authors,
// oldest first.
func (r *ChatRepository) ListRecent(ctx context.Context, limit int) ([]domain.ChatMessageView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT m.id, m.content, m.level, m.created_at,
		        COALESCE(u.username, ''), m.user_id, COALESCE(u.is_admin, false)
		 FROM chat_messages m
		 LEFT JOIN users u ON u.id = m.user_id
		 ORDER BY m.created_at DESC, m.id DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []domain.ChatMessageView
	for rows.Next() {
		var v domain.ChatMessageView
		if err := rows.Scan(&v.ID, &v.Content, &v.Level, &v.CreatedAt,
			&v.Username, &v.UserID, &v.IsAdmin); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// newest-first from the store, oldest-first to the caller
	for i, j := 0, len(views)-1; i < j; i, j = i+1, j-1 {
		views[i], views[j] = views[j], views[i]
	}
	return views, nil
}

// Delete removes a message. A missing id surfaces as ErrMessageNotFound,
// the store's zero-rows signal passed through.
func (r *ChatRepository) Delete(ctx context.Context, messageID int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM chat_messages WHERE id = $1`, messageID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// RetentionPolicy trims stored chat history down to a cap after inserts.
// The recompute implementation below is O(n) per write; a counted or
// ring-buffer strategy can replace it without touching the chat service.
type RetentionPolicy interface {
	TrimOverflow(ctx context.Context, keep int) (deleted int64, err error)
}

// RecomputeRetention re-queries the most-recent-by-time keep rows after
// each insert and deletes everything older.
type RecomputeRetention struct {
	db *pgxpool.Pool
}

func NewRecomputeRetention(db *pgxpool.Pool) *RecomputeRetention {
	return &RecomputeRetention{db: db}
}

func (p *RecomputeRetention) TrimOverflow(ctx context.Context, keep int) (int64, error) {
	result, err := p.db.Exec(ctx,
		`DELETE FROM chat_messages
		 WHERE id NOT IN (
		 	SELECT id FROM chat_messages
		 	ORDER BY created_at DESC, id DESC
		 	LIMIT $1
		 )`,
		keep,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
