package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrRainAmountInvalid   = errors.New("positive rain amount required")
	ErrRainAmountTooHigh   = errors.New("rain amount too high")
	ErrNoActiveRain        = errors.New("no active rain")
	ErrAlreadyClaimed      = errors.New("rain already claimed")
	ErrBonusAlreadyClaimed = errors.New("bonus already claimed")
)

// MutedError rejects a chat post from a muted user; Until is surfaced to
// the caller in the reason string.
type MutedError struct {
	Until time.Time
}

func (e *MutedError) Error() string {
	return fmt.Sprintf("muted until %s", e.Until.Format(time.RFC3339))
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation. Claim inserts rely on this as the authoritative
// already-claimed signal; the pre-checks are only a fast path.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
