package repository

import (
	"context"
	"errors"
	"time"

	"points_platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, balance::float8, pending::float8, is_admin, chat_muted_until, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Balance,
		&u.Pending,
		&u.IsAdmin,
		&u.ChatMutedUntil,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO users (username, is_admin)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		u.Username, u.IsAdmin,
	).Scan(&u.ID, &u.CreatedAt)
}

// Credit atomically adds amount to the user's balance and returns the new
// balance and pending totals. Ledger rows are never read-modify-written in
// handler code; this single statement is the only mutation path.
func (r *UserRepository) Credit(ctx context.Context, userID int64, amount float64) (balance, pending float64, err error) {
	err = r.db.QueryRow(ctx,
		`UPDATE users SET balance = balance + $1
		 WHERE id = $2
		 RETURNING balance::float8, pending::float8`,
		amount, userID,
	).Scan(&balance, &pending)
	if errors.Is(err, pgx.ErrNoRows) {
		err = ErrUserNotFound
	}
	return balance, pending, err
}

// CreditTx is Credit inside an existing transaction.
func (r *UserRepository) CreditTx(ctx context.Context, tx pgx.Tx, userID int64, amount float64) (balance, pending float64, err error) {
	err = tx.QueryRow(ctx,
		`UPDATE users SET balance = balance + $1
		 WHERE id = $2
		 RETURNING balance::float8, pending::float8`,
		amount, userID,
	).Scan(&balance, &pending)
	if errors.Is(err, pgx.ErrNoRows) {
		err = ErrUserNotFound
	}
	return balance, pending, err
}

// SetMutedUntil sets the chat mute deadline for a user.
func (r *UserRepository) SetMutedUntil(ctx context.Context, userID int64, until time.Time) error {
	result, err := r.db.Exec(ctx,
		`UPDATE users SET chat_muted_until = $1 WHERE id = $2`,
		until, userID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
