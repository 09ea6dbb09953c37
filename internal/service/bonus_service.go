package service

import (
	"context"
	"time"

	"points_platform/internal/domain"
	"points_platform/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const socialBonusPoints = 1

// SocialBonusService grants the one-time social bonus, modeled as a
// special-case offer lead.
type SocialBonusService struct {
	db    *pgxpool.Pool
	users *repository.UserRepository
	leads *repository.OfferLeadRepository
}

func NewSocialBonusService(db *pgxpool.Pool) *SocialBonusService {
	return &SocialBonusService{
		db:    db,
		users: repository.NewUserRepository(db),
		leads: repository.NewOfferLeadRepository(db),
	}
}

// Status returns the user's social-bonus lead, or nil when the bonus has
// not been claimed yet.
func (s *SocialBonusService) Status(ctx context.Context, userID int64) (*domain.OfferLead, error) {
	return s.leads.GetSocialLead(ctx, userID)
}

// Claim grants the bonus once per user: one lead row plus a balance credit
// in a single transaction. The unique index on (user_id, offer_id) rejects
// the loser of a concurrent double-claim.
func (s *SocialBonusService) Claim(ctx context.Context, userID int64) (lead *domain.OfferLead, balance, pending float64, err error) {
	existing, err := s.leads.HasLead(ctx, userID, domain.SocialOfferID)
	if err != nil {
		return nil, 0, 0, err
	}
	if existing {
		return nil, 0, 0, ErrBonusAlreadyClaimed
	}

	now := time.Now().UTC()
	lead = &domain.OfferLead{
		ExternalID:  "social-" + uuid.NewString(),
		OfferID:     domain.SocialOfferID,
		UserID:      userID,
		Points:      socialBonusPoints,
		Status:      domain.StatusAvailable,
		AvailableAt: now,
		AwardedAt:   now,
		Raw:         `{"source":"socials-bonus"}`,
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, 0, 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.leads.InsertTx(ctx, tx, lead); err != nil {
		if isUniqueViolation(err) {
			return nil, 0, 0, ErrBonusAlreadyClaimed
		}
		return nil, 0, 0, err
	}

	balance, pending, err = s.users.CreditTx(ctx, tx, userID, socialBonusPoints)
	if err != nil {
		return nil, 0, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, 0, err
	}

	return lead, balance, pending, nil
}
