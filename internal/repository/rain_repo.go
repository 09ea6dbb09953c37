package repository

import (
	"context"
	"errors"

	"points_platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RainRepository struct {
	db *pgxpool.Pool
}

func NewRainRepository(db *pgxpool.Pool) *RainRepository {
	return &RainRepository{db: db}
}

// DeactivateAllTx flips every active rain off. Runs in the same
// transaction that activates the next one, which is what keeps the
// single-active-rain invariant.
func (r *RainRepository) DeactivateAllTx(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `UPDATE rain_events SET is_active = false WHERE is_active = true`)
	return err
}

// CreateTx inserts a new active rain event.
func (r *RainRepository) CreateTx(ctx context.Context, tx pgx.Tx, amount float64, createdByID int64) (*domain.RainEvent, error) {
	e := &domain.RainEvent{Amount: amount, CreatedByID: createdByID, IsActive: true}
	err := tx.QueryRow(ctx,
		`INSERT INTO rain_events (amount, created_by_id, is_active)
		 VALUES ($1, $2, true)
		 RETURNING id, created_at`,
		amount, createdByID,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetActive returns the current active rain, most recent first if the
// invariant was ever violated. pgx.ErrNoRows when no rain is active.
func (r *RainRepository) GetActive(ctx context.Context) (*domain.RainEvent, error) {
	var e domain.RainEvent
	err := r.db.QueryRow(ctx,
		`SELECT id, amount::float8, created_by_id, is_active, created_at
		 FROM rain_events
		 WHERE is_active = true
		 ORDER BY created_at DESC
		 LIMIT 1`,
	).Scan(&e.ID, &e.Amount, &e.CreatedByID, &e.IsActive, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetActiveStatus returns the active rain joined with creator username and
// claim count, or (nil, nil) when no rain is active.
func (r *RainRepository) GetActiveStatus(ctx context.Context) (*domain.RainStatus, error) {
	var s domain.RainStatus
	err := r.db.QueryRow(ctx,
		`SELECT e.id, e.amount::float8, e.created_at,
		        COALESCE(u.username, 'Admin'),
		        (SELECT COUNT(*) FROM rain_claims c WHERE c.rain_id = e.id)
		 FROM rain_events e
		 LEFT JOIN users u ON u.id = e.created_by_id
		 WHERE e.is_active = true
		 ORDER BY e.created_at DESC
		 LIMIT 1`,
	).Scan(&s.ID, &s.Amount, &s.CreatedAt, &s.CreatedBy, &s.Claims)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// HasClaim reports whether the user already claimed the given rain.
func (r *RainRepository) HasClaim(ctx context.Context, rainID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM rain_claims WHERE rain_id = $1 AND user_id = $2)`,
		rainID, userID,
	).Scan(&exists)
	return exists, err
}

// InsertClaimTx records a claim. The unique index on (rain_id, user_id) is
// the authoritative gate against concurrent double-claims; callers must
// treat a unique violation as "already claimed".
func (r *RainRepository) InsertClaimTx(ctx context.Context, tx pgx.Tx, rainID, userID int64) (*domain.RainClaim, error) {
	c := &domain.RainClaim{RainID: rainID, UserID: userID}
	err := tx.QueryRow(ctx,
		`INSERT INTO rain_claims (rain_id, user_id)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		rainID, userID,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}
