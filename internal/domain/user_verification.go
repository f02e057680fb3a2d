package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type IDVerificationStatus string

const (
	IDStatusNone     IDVerificationStatus = ""
	IDStatusPending  IDVerificationStatus = "pending"
	IDStatusVerified IDVerificationStatus = "verified"
	IDStatusRejected IDVerificationStatus = "rejected"
)

// UserVerification tracks which proof-of-control channels a user has
// completed. Channel flags only ever flip from false to true; nothing in
// this record un-verifies a channel.
type UserVerification struct {
	UserID          uuid.UUID             `db:"user_id"`
	Email           string                `db:"email"`
	EmailVerified   bool                  `db:"email_verified"`
	EmailVerifiedAt *time.Time            `db:"email_verified_at"`
	Phone           string                `db:"phone"`
	PhoneVerified   bool                  `db:"phone_verified"`
	PhoneVerifiedAt *time.Time            `db:"phone_verified_at"`
	IDStatus        *IDVerificationStatus `db:"id_status"`
	IDType          sql.NullString        `db:"id_type"`
	IDNumber        sql.NullString        `db:"id_number"`
	IDImageRef      sql.NullString        `db:"id_image_ref"`
	IDSubmittedAt   *time.Time            `db:"id_submitted_at"`
	IDUpdatedAt     *time.Time            `db:"id_updated_at"`

	// Trusted is an explicit external promotion; it is applied on top of the
	// channel-derived level and never produced by ResolveLevel.
	Trusted bool `db:"trusted"`

	// Level is a cached projection of EffectiveLevel, refreshed whenever a
	// channel flag or the trusted flag changes.
	Level VerificationLevel `db:"level"`

	LastCheckedAt *time.Time `db:"last_checked_at"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

func (v *UserVerification) IDVerificationStatus() IDVerificationStatus {
	if v.IDStatus == nil {
		return IDStatusNone
	}
	return *v.IDStatus
}

func (v *UserVerification) EffectiveLevel() VerificationLevel {
	if v.Trusted {
		return LevelTrusted
	}
	return ResolveLevel(v.EmailVerified, v.PhoneVerified, v.IDVerificationStatus())
}
