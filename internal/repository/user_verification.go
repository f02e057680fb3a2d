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

type userVerificationRepository struct {
	db *sqlx.DB
}

func newUserVerificationRepository(db *sqlx.DB) *userVerificationRepository {
	return &userVerificationRepository{
		db: db,
	}
}

func (r *userVerificationRepository) Ensure(ctx context.Context, userID uuid.UUID) error {
	const op = "repository.userVerification.Ensure"

	const query = `
    INSERT IGNORE INTO user_verification (user_id) VALUES (uuid_to_bin(?))
    `

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("%s: insert user verification failed: %w", op, err)
	}

	return nil
}

func (r *userVerificationRepository) GetOneByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserVerification, error) {
	const op = "repository.userVerification.GetOneByUserID"

	const query = `
    SELECT user_id, email, email_verified, email_verified_at,
           phone, phone_verified, phone_verified_at,
           id_status, id_type, id_number, id_image_ref, id_submitted_at, id_updated_at,
           trusted, level, last_checked_at, created_at, updated_at
    FROM user_verification
    WHERE user_id = uuid_to_bin(?)
    `

	var rec domain.UserVerification
	if err := r.db.GetContext(ctx, &rec, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select user verification failed: %w", op, err)
	}

	return &rec, nil
}

// MarkEmailVerified flips the email flag to true. The update never resets a
// verified channel; re-verification only refreshes the target and timestamp.
func (r *userVerificationRepository) MarkEmailVerified(ctx context.Context, userID uuid.UUID, email string, at time.Time) error {
	const op = "repository.userVerification.MarkEmailVerified"

	const query = `
    UPDATE user_verification
    SET email = ?, email_verified = TRUE, email_verified_at = ?
    WHERE user_id = uuid_to_bin(?)
    `

	if _, err := r.db.ExecContext(ctx, query, email, at, userID); err != nil {
		return fmt.Errorf("%s: update user verification failed: %w", op, err)
	}

	return nil
}

func (r *userVerificationRepository) MarkPhoneVerified(ctx context.Context, userID uuid.UUID, phone string, at time.Time) error {
	const op = "repository.userVerification.MarkPhoneVerified"

	const query = `
    UPDATE user_verification
    SET phone = ?, phone_verified = TRUE, phone_verified_at = ?
    WHERE user_id = uuid_to_bin(?)
    `

	if _, err := r.db.ExecContext(ctx, query, phone, at, userID); err != nil {
		return fmt.Errorf("%s: update user verification failed: %w", op, err)
	}

	return nil
}

func (r *userVerificationRepository) SubmitIDDocument(ctx context.Context, userID uuid.UUID, idType, idNumber, imageRef string, at time.Time) error {
	const op = "repository.userVerification.SubmitIDDocument"

	const query = `
    UPDATE user_verification
    SET id_status = ?, id_type = ?, id_number = ?, id_image_ref = ?, id_submitted_at = ?, id_updated_at = ?
    WHERE user_id = uuid_to_bin(?)
    `

	if _, err := r.db.ExecContext(ctx, query, domain.IDStatusPending, idType, idNumber, imageRef, at, at, userID); err != nil {
		return fmt.Errorf("%s: update user verification failed: %w", op, err)
	}

	return nil
}

func (r *userVerificationRepository) SetIDStatus(ctx context.Context, userID uuid.UUID, status domain.IDVerificationStatus, at time.Time) error {
	const op = "repository.userVerification.SetIDStatus"

	const query = `
    UPDATE user_verification
    SET id_status = ?, id_updated_at = ?
    WHERE user_id = uuid_to_bin(?) AND id_status IS NOT NULL
    `

	res, err := r.db.ExecContext(ctx, query, status, at, userID)
	if err != nil {
		return fmt.Errorf("%s: update id status failed: %w", op, err)
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

func (r *userVerificationRepository) SetTrusted(ctx context.Context, userID uuid.UUID, trusted bool) error {
	const op = "repository.userVerification.SetTrusted"

	const query = `
    UPDATE user_verification
    SET trusted = ?
    WHERE user_id = uuid_to_bin(?)
    `

	if _, err := r.db.ExecContext(ctx, query, trusted, userID); err != nil {
		return fmt.Errorf("%s: update trusted failed: %w", op, err)
	}

	return nil
}

func (r *userVerificationRepository) SaveLevel(ctx context.Context, userID uuid.UUID, level domain.VerificationLevel) error {
	const op = "repository.userVerification.SaveLevel"

	const query = `
    UPDATE user_verification
    SET level = ?
    WHERE user_id = uuid_to_bin(?)
    `

	if _, err := r.db.ExecContext(ctx, query, level, userID); err != nil {
		return fmt.Errorf("%s: update level failed: %w", op, err)
	}

	return nil
}

// TouchLastChecked claims a user for the re-verification sweep. The WHERE
// clause is the compare-and-swap: only one of two concurrent sweeps can move
// last_checked_at forward.
func (r *userVerificationRepository) TouchLastChecked(ctx context.Context, userID uuid.UUID, now, staleBefore time.Time) error {
	const op = "repository.userVerification.TouchLastChecked"

	const query = `
    UPDATE user_verification
    SET last_checked_at = ?
    WHERE user_id = uuid_to_bin(?) AND (last_checked_at IS NULL OR last_checked_at < ?)
    `

	res, err := r.db.ExecContext(ctx, query, now, userID, staleBefore)
	if err != nil {
		return fmt.Errorf("%s: update last_checked_at failed: %w", op, err)
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

func (r *userVerificationRepository) ListStale(ctx context.Context, staleBefore time.Time, limit int) ([]domain.UserVerification, error) {
	const op = "repository.userVerification.ListStale"

	const query = `
    SELECT user_id, email, email_verified, email_verified_at,
           phone, phone_verified, phone_verified_at,
           id_status, id_type, id_number, id_image_ref, id_submitted_at, id_updated_at,
           trusted, level, last_checked_at, created_at, updated_at
    FROM user_verification
    WHERE last_checked_at IS NULL OR last_checked_at < ?
    ORDER BY last_checked_at ASC
    LIMIT ?
    `

	var recs []domain.UserVerification
	if err := r.db.SelectContext(ctx, &recs, query, staleBefore, limit); err != nil {
		return nil, fmt.Errorf("%s: select stale user verifications failed: %w", op, err)
	}

	return recs, nil
}
