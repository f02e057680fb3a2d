package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type ListingStatus string

const (
	ListingStatusPending  ListingStatus = "pending"
	ListingStatusApproved ListingStatus = "approved"
	ListingStatusRejected ListingStatus = "rejected"
)

// ListingState is the publication state on the listing table, owned by the
// wider application. Moderation only flips it between these two values.
type ListingState string

const (
	ListingStateActive   ListingState = "active"
	ListingStateRejected ListingState = "rejected"
)

// ListingSubmission is the transient moderation input; the listing itself is
// not owned by this core.
type ListingSubmission struct {
	ListingID   uuid.UUID `json:"listing_id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       int64     `json:"price"`
}

type ListingSummary struct {
	ID      uuid.UUID `db:"id"`
	OwnerID uuid.UUID `db:"user_id"`
	Title   string    `db:"title"`
}

// ListingVerification is the moderation outcome for one submission. A
// resubmission creates a fresh record; the newest record by CreatedAt is
// authoritative. A pending record transitions at most once.
type ListingVerification struct {
	ID              uuid.UUID      `db:"id"`
	ListingID       uuid.UUID      `db:"listing_id"`
	Status          ListingStatus  `db:"status"`
	ReviewerID      *uuid.UUID     `db:"reviewer_id"`
	ReviewerNotes   sql.NullString `db:"reviewer_notes"`
	AutomatedReview bool           `db:"automated_review"`
	ReviewedAt      *time.Time     `db:"reviewed_at"`
	CreatedAt       time.Time      `db:"created_at"`
}

func (lv *ListingVerification) Terminal() bool {
	return lv.Status != ListingStatusPending
}
