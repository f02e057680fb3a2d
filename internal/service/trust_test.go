package service

import (
	"context"
	"testing"

	"github.com/tradepost/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTrustScore_VerifiedUser(t *testing.T) {
	users := newMemUserRepo()
	userID := uuid.New()
	users.put(&domain.UserVerification{
		UserID:        userID,
		EmailVerified: true,
		PhoneVerified: true,
		Level:         domain.LevelPhone,
	})

	signals := &memSignalRepo{signals: map[uuid.UUID]domain.TrustSignals{
		userID: {
			AccountAgeDays:  60,
			ListingsCount:   3,
			PositiveRatings: 8,
			NegativeRatings: 2,
			ReportCount:     1,
		},
	}}

	svc := newTrustService(users, signals)

	res, err := svc.ComputeTrustScore(context.Background(), userID)
	require.NoError(t, err)

	// 50 + 2 + 3 + 6 - 5
	assert.Equal(t, 56, res.Score)
	assert.Equal(t, domain.BadgeSilver, res.Badge)
	assert.Equal(t, domain.LevelPhone, res.Level)
}

func TestComputeTrustScore_UnknownUserScoresFromBottom(t *testing.T) {
	users := newMemUserRepo()
	userID := uuid.New()

	signals := &memSignalRepo{signals: map[uuid.UUID]domain.TrustSignals{
		userID: {AccountAgeDays: 300, ListingsCount: 2},
	}}

	svc := newTrustService(users, signals)

	res, err := svc.ComputeTrustScore(context.Background(), userID)
	require.NoError(t, err)

	// 10 + 10 + 2, missing verification record means LevelNone
	assert.Equal(t, 22, res.Score)
	assert.Equal(t, domain.BadgeNone, res.Badge)
	assert.Equal(t, domain.LevelNone, res.Level)
}

func TestComputeTrustScore_NoSignals(t *testing.T) {
	svc := newTrustService(newMemUserRepo(), &memSignalRepo{signals: map[uuid.UUID]domain.TrustSignals{}})

	_, err := svc.ComputeTrustScore(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
