package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/tradepost/backend/internal/domain"
)

type listingVerificationRepository struct {
	db *sqlx.DB
}

func newListingVerificationRepository(db *sqlx.DB) *listingVerificationRepository {
	return &listingVerificationRepository{
		db: db,
	}
}

func (r *listingVerificationRepository) Create(ctx context.Context, rec *domain.ListingVerification) error {
	const op = "repository.listingVerification.Create"

	const query = `
    INSERT INTO listing_verification
    (id, listing_id, status, reviewer_id, reviewer_notes, automated_review, reviewed_at)
    VALUES (uuid_to_bin(:id), uuid_to_bin(:listing_id), :status, uuid_to_bin(:reviewer_id), :reviewer_notes, :automated_review, :reviewed_at)
    `

	res, err := r.db.NamedExecContext(ctx, query, rec)
	if err != nil {
		return fmt.Errorf("%s: insert listing verification failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows != 1 {
		return fmt.Errorf("%s: expected 1 row affected, got %d", op, rows)
	}

	return nil
}

// GetLatestByListingID returns the authoritative record for a listing: the
// newest one by created_at, because resubmissions supersede earlier records.
func (r *listingVerificationRepository) GetLatestByListingID(ctx context.Context, listingID uuid.UUID) (*domain.ListingVerification, error) {
	const op = "repository.listingVerification.GetLatestByListingID"

	const query = `
    SELECT id, listing_id, status, reviewer_id, reviewer_notes, automated_review, reviewed_at, created_at
    FROM listing_verification
    WHERE listing_id = uuid_to_bin(?)
    ORDER BY created_at DESC, id DESC
    LIMIT 1
    `

	var rec domain.ListingVerification
	if err := r.db.GetContext(ctx, &rec, query, listingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select listing verification failed: %w", op, err)
	}

	return &rec, nil
}

// Finalize transitions a pending record to a terminal status. The status
// guard in the WHERE clause makes the transition happen at most once, even
// with two reviewers acting concurrently.
func (r *listingVerificationRepository) Finalize(ctx context.Context, id uuid.UUID, status domain.ListingStatus, reviewerID uuid.UUID, notes string, at time.Time) error {
	const op = "repository.listingVerification.Finalize"

	const query = `
    UPDATE listing_verification
    SET status = ?, reviewer_id = uuid_to_bin(?), reviewer_notes = ?, reviewed_at = ?
    WHERE id = uuid_to_bin(?) AND status = ?
    `

	res, err := r.db.ExecContext(ctx, query, status, reviewerID, notes, at, id, domain.ListingStatusPending)
	if err != nil {
		return fmt.Errorf("%s: update listing verification failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}
