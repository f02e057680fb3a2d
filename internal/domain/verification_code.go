package domain

import (
	"time"

	"github.com/google/uuid"
)

// CodeMaxAttempts is the hard cap on validation attempts per code. The
// counter is enforced with a conditional update in the repository, so two
// concurrent validations cannot both slip under the limit.
const CodeMaxAttempts = 3

type VerificationCode struct {
	ID         uuid.UUID           `db:"id"`
	UserID     uuid.UUID           `db:"user_id"`
	Channel    VerificationChannel `db:"channel"`
	Target     string              `db:"target"`
	Code       string              `db:"code"`
	Attempts   int                 `db:"attempts"`
	ExpiresAt  time.Time           `db:"expires_at"`
	ConsumedAt *time.Time          `db:"consumed_at"`
	CreatedAt  time.Time           `db:"created_at"`
	UpdatedAt  time.Time           `db:"updated_at"`
}

func (c *VerificationCode) Consumed() bool {
	return c.ConsumedAt != nil
}

// Expired reports whether the code is no longer usable at the given instant.
// A code validated exactly at ExpiresAt is already expired.
func (c *VerificationCode) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

func (c *VerificationCode) Exhausted() bool {
	return c.Attempts >= CodeMaxAttempts
}
