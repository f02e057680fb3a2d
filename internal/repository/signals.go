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

// signalRepository reads the behavioral inputs for trust scoring from
// application tables this core does not own.
type signalRepository struct {
	db *sqlx.DB
}

func newSignalRepository(db *sqlx.DB) *signalRepository {
	return &signalRepository{
		db: db,
	}
}

func (r *signalRepository) GetTrustSignals(ctx context.Context, userID uuid.UUID) (*domain.TrustSignals, error) {
	const op = "repository.signal.GetTrustSignals"

	var sig domain.TrustSignals

	const ageQuery = `SELECT created_at FROM user WHERE id = uuid_to_bin(?)`
	var createdAt time.Time
	if err := r.db.GetContext(ctx, &createdAt, ageQuery, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select user created_at failed: %w", op, err)
	}
	sig.AccountAgeDays = int(time.Since(createdAt).Hours() / 24)

	const listingsQuery = `SELECT COUNT(*) FROM listing WHERE user_id = uuid_to_bin(?)`
	if err := r.db.GetContext(ctx, &sig.ListingsCount, listingsQuery, userID); err != nil {
		return nil, fmt.Errorf("%s: count listings failed: %w", op, err)
	}

	const ratingsQuery = `
    SELECT COALESCE(SUM(positive), 0) AS positive, COALESCE(SUM(1 - positive), 0) AS negative
    FROM rating
    WHERE rated_user_id = uuid_to_bin(?)
    `
	var ratings struct {
		Positive int `db:"positive"`
		Negative int `db:"negative"`
	}
	if err := r.db.GetContext(ctx, &ratings, ratingsQuery, userID); err != nil {
		return nil, fmt.Errorf("%s: count ratings failed: %w", op, err)
	}
	sig.PositiveRatings = ratings.Positive
	sig.NegativeRatings = ratings.Negative

	const reportsQuery = `SELECT COUNT(*) FROM report WHERE reported_user_id = uuid_to_bin(?)`
	if err := r.db.GetContext(ctx, &sig.ReportCount, reportsQuery, userID); err != nil {
		return nil, fmt.Errorf("%s: count reports failed: %w", op, err)
	}

	return &sig, nil
}
