package service

import (
	"context"
	"testing"

	"github.com/tradepost/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModerationService() (*moderationService, *memReviewRepo, *memListingRepo, *memUserRepo) {
	reviews := newMemReviewRepo()
	listings := newMemListingRepo()
	users := newMemUserRepo()

	return newModerationService(reviews, listings, users), reviews, listings, users
}

func cleanSubmission(userID uuid.UUID) domain.ListingSubmission {
	return domain.ListingSubmission{
		ListingID:   uuid.New(),
		UserID:      userID,
		Title:       "Mountain bike",
		Description: "Lightly used mountain bike in great condition.",
		Category:    "sports",
		Price:       25000,
	}
}

func TestSubmit_RejectsProhibitedContent(t *testing.T) {
	svc, reviews, listings, _ := newTestModerationService()
	ctx := context.Background()

	sub := cleanSubmission(uuid.New())
	sub.Description = "Totally not a scam, brand new in the box."

	decision, err := svc.Submit(ctx, sub)
	require.NoError(t, err)

	assert.Equal(t, domain.ListingStatusRejected, decision.Status)
	assert.True(t, decision.Automated)
	assert.Contains(t, decision.Reason, `"scam"`)

	rec, err := reviews.GetLatestByListingID(ctx, sub.ListingID)
	require.NoError(t, err)
	assert.Equal(t, domain.ListingStatusRejected, rec.Status)
	assert.True(t, rec.AutomatedReview)
	assert.Equal(t, decision.Reason, rec.ReviewerNotes.String)
	assert.NotNil(t, rec.ReviewedAt)

	state, ok := listings.state(sub.ListingID)
	require.True(t, ok)
	assert.Equal(t, domain.ListingStateRejected, state)
}

func TestSubmit_RejectsShortDescription(t *testing.T) {
	svc, _, _, _ := newTestModerationService()

	sub := cleanSubmission(uuid.New())
	sub.Description = "like new"

	decision, err := svc.Submit(context.Background(), sub)
	require.NoError(t, err)

	assert.Equal(t, domain.ListingStatusRejected, decision.Status)
	assert.Equal(t, "Description is too short.", decision.Reason)
}

func TestSubmit_AutoApprovesTrustedUser(t *testing.T) {
	svc, reviews, listings, users := newTestModerationService()
	ctx := context.Background()

	userID := uuid.New()
	users.put(&domain.UserVerification{
		UserID:        userID,
		Email:         "trusted@example.com",
		EmailVerified: true,
		Trusted:       true,
		Level:         domain.LevelTrusted,
	})

	sub := cleanSubmission(userID)

	decision, err := svc.Submit(ctx, sub)
	require.NoError(t, err)

	assert.Equal(t, domain.ListingStatusApproved, decision.Status)
	assert.True(t, decision.Automated)
	assert.Empty(t, decision.Reason)

	rec, err := reviews.GetLatestByListingID(ctx, sub.ListingID)
	require.NoError(t, err)
	assert.Equal(t, domain.ListingStatusApproved, rec.Status)
	assert.True(t, rec.AutomatedReview)
	assert.Equal(t, "Auto-approved for trusted user", rec.ReviewerNotes.String)

	state, ok := listings.state(sub.ListingID)
	require.True(t, ok)
	assert.Equal(t, domain.ListingStateActive, state)
}

func TestSubmit_PendingForRegularUser(t *testing.T) {
	svc, reviews, listings, users := newTestModerationService()
	ctx := context.Background()

	userID := uuid.New()
	users.put(&domain.UserVerification{
		UserID:        userID,
		Email:         "seller@example.com",
		EmailVerified: true,
		PhoneVerified: true,
		Level:         domain.LevelPhone,
	})

	sub := cleanSubmission(userID)

	decision, err := svc.Submit(ctx, sub)
	require.NoError(t, err)

	assert.Equal(t, domain.ListingStatusPending, decision.Status)
	assert.False(t, decision.Automated)

	rec, err := reviews.GetLatestByListingID(ctx, sub.ListingID)
	require.NoError(t, err)
	assert.Equal(t, domain.ListingStatusPending, rec.Status)
	assert.False(t, rec.AutomatedReview)
	assert.Nil(t, rec.ReviewedAt)

	// publication waits for the manual decision
	_, ok := listings.state(sub.ListingID)
	assert.False(t, ok)
}

func TestSubmit_UnknownSubmitterGoesToReview(t *testing.T) {
	svc, _, _, _ := newTestModerationService()

	decision, err := svc.Submit(context.Background(), cleanSubmission(uuid.New()))
	require.NoError(t, err)

	assert.Equal(t, domain.ListingStatusPending, decision.Status)
}

func TestManualApprove(t *testing.T) {
	svc, reviews, listings, _ := newTestModerationService()
	ctx := context.Background()

	sub := cleanSubmission(uuid.New())
	_, err := svc.Submit(ctx, sub)
	require.NoError(t, err)

	reviewerID := uuid.New()
	require.NoError(t, svc.ManualApprove(ctx, sub.ListingID, reviewerID, "ok to publish"))

	rec, err := reviews.GetLatestByListingID(ctx, sub.ListingID)
	require.NoError(t, err)
	assert.Equal(t, domain.ListingStatusApproved, rec.Status)
	require.NotNil(t, rec.ReviewerID)
	assert.Equal(t, reviewerID, *rec.ReviewerID)
	assert.Equal(t, "ok to publish", rec.ReviewerNotes.String)
	assert.NotNil(t, rec.ReviewedAt)

	state, ok := listings.state(sub.ListingID)
	require.True(t, ok)
	assert.Equal(t, domain.ListingStateActive, state)

	// the record is terminal now, no second decision is allowed
	err = svc.ManualApprove(ctx, sub.ListingID, reviewerID, "again")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	err = svc.ManualReject(ctx, sub.ListingID, reviewerID, "changed my mind")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestManualReject(t *testing.T) {
	svc, reviews, listings, _ := newTestModerationService()
	ctx := context.Background()

	sub := cleanSubmission(uuid.New())
	_, err := svc.Submit(ctx, sub)
	require.NoError(t, err)

	reviewerID := uuid.New()
	require.NoError(t, svc.ManualReject(ctx, sub.ListingID, reviewerID, "stock photo, not the real item"))

	rec, err := reviews.GetLatestByListingID(ctx, sub.ListingID)
	require.NoError(t, err)
	assert.Equal(t, domain.ListingStatusRejected, rec.Status)
	assert.Equal(t, "stock photo, not the real item", rec.ReviewerNotes.String)

	state, ok := listings.state(sub.ListingID)
	require.True(t, ok)
	assert.Equal(t, domain.ListingStateRejected, state)
}

func TestManualApprove_NoRecord(t *testing.T) {
	svc, _, _, _ := newTestModerationService()

	err := svc.ManualApprove(context.Background(), uuid.New(), uuid.New(), "")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestGetStatus_LatestRecordWins(t *testing.T) {
	svc, _, _, _ := newTestModerationService()
	ctx := context.Background()

	sub := cleanSubmission(uuid.New())
	sub.Description = "some scam description text"

	decision, err := svc.Submit(ctx, sub)
	require.NoError(t, err)
	require.Equal(t, domain.ListingStatusRejected, decision.Status)

	// resubmission after cleanup opens a fresh pending record
	sub.Description = "Lightly used mountain bike in great condition."
	decision, err = svc.Submit(ctx, sub)
	require.NoError(t, err)
	require.Equal(t, domain.ListingStatusPending, decision.Status)

	rec, err := svc.GetStatus(ctx, sub.ListingID)
	require.NoError(t, err)
	assert.Equal(t, domain.ListingStatusPending, rec.Status)
}

func TestGetStatus_NoRecord(t *testing.T) {
	svc, _, _, _ := newTestModerationService()

	_, err := svc.GetStatus(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
