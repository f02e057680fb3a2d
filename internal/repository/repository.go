package repository

import (
	"context"
	"time"

	"github.com/tradepost/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	VerificationCodes    VerificationCodes
	UserVerifications    UserVerifications
	ListingVerifications ListingVerifications
	Listings             Listings
	Signals              Signals
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		VerificationCodes:    newVerificationCodeRepository(db),
		UserVerifications:    newUserVerificationRepository(db),
		ListingVerifications: newListingVerificationRepository(db),
		Listings:             newListingRepository(db),
		Signals:              newSignalRepository(db),
	}
}

type VerificationCodes interface {
	Create(ctx context.Context, code *domain.VerificationCode) error
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.VerificationCode, error)
	// IncrementAttempts bumps the attempt counter only while it is below
	// domain.CodeMaxAttempts; domain.ErrNoRowsAffected means the code is
	// already exhausted.
	IncrementAttempts(ctx context.Context, id uuid.UUID) error
	Consume(ctx context.Context, id uuid.UUID, at time.Time) error
	// ExpireUnconsumed invalidates every live code for the (user, channel)
	// pair, so a freshly issued code supersedes its predecessors.
	ExpireUnconsumed(ctx context.Context, userID uuid.UUID, channel domain.VerificationChannel, at time.Time) error
}

type UserVerifications interface {
	Ensure(ctx context.Context, userID uuid.UUID) error
	GetOneByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserVerification, error)
	MarkEmailVerified(ctx context.Context, userID uuid.UUID, email string, at time.Time) error
	MarkPhoneVerified(ctx context.Context, userID uuid.UUID, phone string, at time.Time) error
	SubmitIDDocument(ctx context.Context, userID uuid.UUID, idType, idNumber, imageRef string, at time.Time) error
	SetIDStatus(ctx context.Context, userID uuid.UUID, status domain.IDVerificationStatus, at time.Time) error
	SetTrusted(ctx context.Context, userID uuid.UUID, trusted bool) error
	SaveLevel(ctx context.Context, userID uuid.UUID, level domain.VerificationLevel) error
	// TouchLastChecked is a compare-and-swap on last_checked_at;
	// domain.ErrNoRowsAffected means another sweep already refreshed the user.
	TouchLastChecked(ctx context.Context, userID uuid.UUID, now, staleBefore time.Time) error
	ListStale(ctx context.Context, staleBefore time.Time, limit int) ([]domain.UserVerification, error)
}

type ListingVerifications interface {
	Create(ctx context.Context, rec *domain.ListingVerification) error
	GetLatestByListingID(ctx context.Context, listingID uuid.UUID) (*domain.ListingVerification, error)
	// Finalize moves a pending record to a terminal status;
	// domain.ErrNoRowsAffected means the record was not pending anymore.
	Finalize(ctx context.Context, id uuid.UUID, status domain.ListingStatus, reviewerID uuid.UUID, notes string, at time.Time) error
}

type Listings interface {
	GetSummary(ctx context.Context, listingID uuid.UUID) (*domain.ListingSummary, error)
	SetState(ctx context.Context, listingID uuid.UUID, state domain.ListingState) error
}

type Signals interface {
	GetTrustSignals(ctx context.Context, userID uuid.UUID) (*domain.TrustSignals, error)
}
