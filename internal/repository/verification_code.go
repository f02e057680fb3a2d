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

type verificationCodeRepository struct {
	db *sqlx.DB
}

func newVerificationCodeRepository(db *sqlx.DB) *verificationCodeRepository {
	return &verificationCodeRepository{
		db: db,
	}
}

func (r *verificationCodeRepository) Create(ctx context.Context, code *domain.VerificationCode) error {
	const op = "repository.verificationCode.Create"

	const query = `
    INSERT INTO verification_code (id, user_id, channel, target, code, expires_at)
    VALUES (uuid_to_bin(:id), uuid_to_bin(:user_id), :channel, :target, :code, :expires_at)
    `

	res, err := r.db.NamedExecContext(ctx, query, code)
	if err != nil {
		return fmt.Errorf("%s: insert verification code failed: %w", op, err)
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

func (r *verificationCodeRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.VerificationCode, error) {
	const op = "repository.verificationCode.GetOneByID"

	const query = `
    SELECT id, user_id, channel, target, code, attempts, expires_at, consumed_at, created_at, updated_at
    FROM verification_code
    WHERE id = uuid_to_bin(?)
    `

	var code domain.VerificationCode
	if err := r.db.GetContext(ctx, &code, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select verification code failed: %w", op, err)
	}

	return &code, nil
}

// IncrementAttempts relies on a single conditional UPDATE: two concurrent
// validations cannot both pass the attempts guard, which keeps the per-code
// attempt limit exact under load.
func (r *verificationCodeRepository) IncrementAttempts(ctx context.Context, id uuid.UUID) error {
	const op = "repository.verificationCode.IncrementAttempts"

	const query = `
    UPDATE verification_code
    SET attempts = attempts + 1
    WHERE id = uuid_to_bin(?) AND attempts < ?
    `

	res, err := r.db.ExecContext(ctx, query, id, domain.CodeMaxAttempts)
	if err != nil {
		return fmt.Errorf("%s: update attempts failed: %w", op, err)
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

func (r *verificationCodeRepository) Consume(ctx context.Context, id uuid.UUID, at time.Time) error {
	const op = "repository.verificationCode.Consume"

	const query = `
    UPDATE verification_code
    SET consumed_at = ?
    WHERE id = uuid_to_bin(?) AND consumed_at IS NULL
    `

	res, err := r.db.ExecContext(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("%s: update consumed_at failed: %w", op, err)
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

func (r *verificationCodeRepository) ExpireUnconsumed(ctx context.Context, userID uuid.UUID, channel domain.VerificationChannel, at time.Time) error {
	const op = "repository.verificationCode.ExpireUnconsumed"

	const query = `
    UPDATE verification_code
    SET expires_at = ?
    WHERE user_id = uuid_to_bin(?) AND channel = ? AND consumed_at IS NULL AND expires_at > ?
    `

	if _, err := r.db.ExecContext(ctx, query, at, userID, channel, at); err != nil {
		return fmt.Errorf("%s: expire unconsumed codes failed: %w", op, err)
	}

	return nil
}
