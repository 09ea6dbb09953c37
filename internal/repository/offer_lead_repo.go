package repository

import (
	"context"
	"errors"

	"points_platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OfferLeadRepository struct {
	db *pgxpool.Pool
}

func NewOfferLeadRepository(db *pgxpool.Pool) *OfferLeadRepository {
	return &OfferLeadRepository{db: db}
}

// HasLead reports whether the user already holds a lead for the offer.
// Fast-path only; the unique index on (user_id, offer_id) is what actually
// prevents duplicates under concurrency.
func (r *OfferLeadRepository) HasLead(ctx context.Context, userID int64, offerID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM offer_leads WHERE user_id = $1 AND offer_id = $2)`,
		userID, offerID,
	).Scan(&exists)
	return exists, err
}

// InsertTx stores a new lead inside an existing transaction.
func (r *OfferLeadRepository) InsertTx(ctx context.Context, tx pgx.Tx, lead *domain.OfferLead) error {
	return tx.QueryRow(ctx,
		`INSERT INTO offer_leads (external_id, offer_id, user_id, points, status, available_at, awarded_at, raw)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		lead.ExternalID, lead.OfferID, lead.UserID, lead.Points,
		lead.Status, lead.AvailableAt, lead.AwardedAt, lead.Raw,
	).Scan(&lead.ID, &lead.CreatedAt)
}

// GetSocialLead returns the user's social-bonus lead if one exists.
func (r *OfferLeadRepository) GetSocialLead(ctx context.Context, userID int64) (*domain.OfferLead, error) {
	var l domain.OfferLead
	err := r.db.QueryRow(ctx,
		`SELECT id, external_id, offer_id, user_id, points::float8, status,
		        created_at, available_at, awarded_at, raw
		 FROM offer_leads
		 WHERE user_id = $1 AND offer_id = $2`,
		userID, domain.SocialOfferID,
	).Scan(&l.ID, &l.ExternalID, &l.OfferID, &l.UserID, &l.Points, &l.Status,
		&l.CreatedAt, &l.AvailableAt, &l.AwardedAt, &l.Raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}
