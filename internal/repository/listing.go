package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/tradepost/backend/internal/domain"
)

// listingRepository touches the listing table owned by the wider
// application: moderation only reads a summary and flips the publication
// state.
type listingRepository struct {
	db *sqlx.DB
}

func newListingRepository(db *sqlx.DB) *listingRepository {
	return &listingRepository{
		db: db,
	}
}

func (r *listingRepository) GetSummary(ctx context.Context, listingID uuid.UUID) (*domain.ListingSummary, error) {
	const op = "repository.listing.GetSummary"

	const query = `
    SELECT id, user_id, title
    FROM listing
    WHERE id = uuid_to_bin(?)
    `

	var summary domain.ListingSummary
	if err := r.db.GetContext(ctx, &summary, query, listingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select listing failed: %w", op, err)
	}

	return &summary, nil
}

func (r *listingRepository) SetState(ctx context.Context, listingID uuid.UUID, state domain.ListingState) error {
	const op = "repository.listing.SetState"

	const query = `
    UPDATE listing
    SET status = ?
    WHERE id = uuid_to_bin(?)
    `

	if _, err := r.db.ExecContext(ctx, query, state, listingID); err != nil {
		return fmt.Errorf("%s: update listing status failed: %w", op, err)
	}

	return nil
}
