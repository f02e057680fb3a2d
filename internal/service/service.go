package service

import (
	"context"
	"time"

	"github.com/tradepost/backend/internal/config"
	"github.com/tradepost/backend/internal/domain"
	"github.com/tradepost/backend/internal/repository"
	"github.com/tradepost/backend/pkg/notify"
	"github.com/tradepost/backend/pkg/otp"

	"github.com/google/uuid"
)

type Services struct {
	Verification Verification
	Trust        Trust
	Moderation   Moderation
}

type Deps struct {
	Config       *config.Config
	Repos        *repository.Repositories
	Sender       notify.Sender
	OtpGenerator otp.Generator
}

func NewServices(deps Deps) *Services {
	verification := newVerificationService(
		deps.Repos.VerificationCodes,
		deps.Repos.UserVerifications,
		deps.Sender,
		deps.OtpGenerator,
		deps.Config.Verification,
	)

	return &Services{
		Verification: verification,
		Trust:        newTrustService(deps.Repos.UserVerifications, deps.Repos.Signals),
		Moderation:   newModerationService(deps.Repos.ListingVerifications, deps.Repos.Listings, deps.Repos.UserVerifications),
	}
}

type VerificationStatus struct {
	Level         domain.VerificationLevel
	EmailVerified bool
	PhoneVerified bool
	IDStatus      domain.IDVerificationStatus
}

type Verification interface {
	RequestEmailVerification(ctx context.Context, userID uuid.UUID, email string) (uuid.UUID, error)
	ConfirmEmail(ctx context.Context, userID, codeID uuid.UUID, code string) error
	RequestPhoneVerification(ctx context.Context, userID uuid.UUID, phone string) (uuid.UUID, error)
	ConfirmPhone(ctx context.Context, userID, codeID uuid.UUID, code string) error
	SubmitIDDocument(ctx context.Context, userID uuid.UUID, idType, idNumber, imageRef string) error
	MarkIDReviewed(ctx context.Context, userID uuid.UUID, verified bool) error
	PromoteTrusted(ctx context.Context, userID uuid.UUID) error
	GetStatus(ctx context.Context, userID uuid.UUID) (*VerificationStatus, error)
	ReverifyStale(ctx context.Context, staleAfter time.Duration, limit int) (int, error)
}

type TrustScoreResult struct {
	Score int
	Badge domain.BadgeTier
	Level domain.VerificationLevel
}

type Trust interface {
	ComputeTrustScore(ctx context.Context, userID uuid.UUID) (*TrustScoreResult, error)
}

type ModerationDecision struct {
	Status    domain.ListingStatus
	Reason    string
	Automated bool
}

type Moderation interface {
	Submit(ctx context.Context, sub domain.ListingSubmission) (*ModerationDecision, error)
	ManualApprove(ctx context.Context, listingID, reviewerID uuid.UUID, notes string) error
	ManualReject(ctx context.Context, listingID, reviewerID uuid.UUID, reason string) error
	GetStatus(ctx context.Context, listingID uuid.UUID) (*domain.ListingVerification, error)
}
