package domain

import (
	"math"
	"time"
)

type User struct {
	ID             int64      `db:"id" json:"id"`
	Username       string     `db:"username" json:"username"`
	Balance        float64    `db:"balance" json:"balance"`
	Pending        float64    `db:"pending" json:"pending"`
	IsAdmin        bool       `db:"is_admin" json:"is_admin"`
	ChatMutedUntil *time.Time `db:"chat_muted_until" json:"chat_muted_until,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

// Muted reports whether the user is muted at the given instant.
func (u *User) Muted(now time.Time) bool {
	return u.ChatMutedUntil != nil && u.ChatMutedUntil.After(now)
}

// Level derives the display level from confirmed plus in-flight points:
// max(1, floor((balance+pending)/100)+1).
func Level(balance, pending float64) int {
	level := int(math.Floor((balance+pending)/100)) + 1
	if level < 1 {
		level = 1
	}
	return level
}

// FormatPoints rounds a point value to two decimal places for API output.
func FormatPoints(v float64) float64 {
	return math.Round(v*100) / 100
}
