package domain

import "time"

type RainEvent struct {
	ID          int64     `db:"id" json:"id"`
	Amount      float64   `db:"amount" json:"amount"`
	CreatedByID int64     `db:"created_by_id" json:"created_by_id"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type RainClaim struct {
	ID        int64     `db:"id" json:"id"`
	RainID    int64     `db:"rain_id" json:"rain_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// RainStatus describes the active rain for a given viewer. CreatedBy falls
// back to "Admin" when the creator row is gone.
type RainStatus struct {
	ID              int64     `json:"id"`
	Amount          float64   `json:"amount"`
	CreatedAt       time.Time `json:"createdAt"`
	CreatedBy       string    `json:"createdBy"`
	Claims          int64     `json:"claims"`
	ClaimedByViewer bool      `json:"claimedByViewer"`
}
