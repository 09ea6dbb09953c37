package domain

import "time"

// SocialOfferID is the sentinel offer id for the one-time social bonus.
const SocialOfferID = "SOCIALS"

// Lead statuses. Only StatusAvailable is written by this core; the column
// stays free-form text so the offer-network states can land later.
const (
	StatusAvailable = "AVAILABLE"
)

type OfferLead struct {
	ID          int64     `db:"id" json:"id"`
	ExternalID  string    `db:"external_id" json:"external_id"`
	OfferID     string    `db:"offer_id" json:"offer_id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Points      float64   `db:"points" json:"points"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	AvailableAt time.Time `db:"available_at" json:"available_at"`
	AwardedAt   time.Time `db:"awarded_at" json:"awarded_at"`
	Raw         string    `db:"raw" json:"raw"`
}
