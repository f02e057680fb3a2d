package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tradepost/backend/internal/domain"
	"github.com/tradepost/backend/internal/queue/client"
	"github.com/tradepost/backend/internal/queue/task"
	"github.com/tradepost/backend/internal/repository"
	"github.com/tradepost/backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const autoApproveNotes = "Auto-approved for trusted user"

type moderationService struct {
	reviewRepository  repository.ListingVerifications
	listingRepository repository.Listings
	userRepository    repository.UserVerifications
}

func newModerationService(
	reviewRepository repository.ListingVerifications,
	listingRepository repository.Listings,
	userRepository repository.UserVerifications,
) *moderationService {
	return &moderationService{
		reviewRepository:  reviewRepository,
		listingRepository: listingRepository,
		userRepository:    userRepository,
	}
}

// Submit screens a fresh listing and decides its initial moderation state.
// A screening failure rejects immediately; a trusted submitter is approved
// and published without review; everyone else lands in the review queue.
func (s *moderationService) Submit(ctx context.Context, sub domain.ListingSubmission) (*ModerationDecision, error) {
	level := domain.LevelNone
	contact := ""
	rec, err := s.userRepository.GetOneByUserID(ctx, sub.UserID)
	switch {
	case err == nil:
		level = rec.EffectiveLevel()
		if rec.EmailVerified {
			contact = rec.Email
		}
	case errors.Is(err, domain.ErrNotFound):
		// unverified submitter, lowest level
	default:
		return nil, fmt.Errorf("get submitter verification failed: %w", err)
	}

	now := time.Now()
	recordID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate record id failed: %w", err)
	}

	screening := domain.Screen(sub.Title, sub.Description)
	if !screening.Passed {
		record := &domain.ListingVerification{
			ID:              recordID,
			ListingID:       sub.ListingID,
			Status:          domain.ListingStatusRejected,
			ReviewerNotes:   sql.NullString{String: screening.Reason, Valid: true},
			AutomatedReview: true,
			ReviewedAt:      &now,
		}
		if err := s.reviewRepository.Create(ctx, record); err != nil {
			return nil, fmt.Errorf("create rejection record failed: %w", err)
		}

		if err := s.listingRepository.SetState(ctx, sub.ListingID, domain.ListingStateRejected); err != nil {
			return nil, fmt.Errorf("set listing state failed: %w", err)
		}

		s.enqueueDecision(ctx, contact, sub.Title, false, screening.Reason)

		return &ModerationDecision{Status: domain.ListingStatusRejected, Reason: screening.Reason, Automated: true}, nil
	}

	if level == domain.LevelTrusted {
		record := &domain.ListingVerification{
			ID:              recordID,
			ListingID:       sub.ListingID,
			Status:          domain.ListingStatusApproved,
			ReviewerNotes:   sql.NullString{String: autoApproveNotes, Valid: true},
			AutomatedReview: true,
			ReviewedAt:      &now,
		}
		if err := s.reviewRepository.Create(ctx, record); err != nil {
			return nil, fmt.Errorf("create approval record failed: %w", err)
		}

		// auto-approval publishes the listing, same as a manual approval
		if err := s.listingRepository.SetState(ctx, sub.ListingID, domain.ListingStateActive); err != nil {
			return nil, fmt.Errorf("set listing state failed: %w", err)
		}

		s.enqueueDecision(ctx, contact, sub.Title, true, "")

		return &ModerationDecision{Status: domain.ListingStatusApproved, Automated: true}, nil
	}

	record := &domain.ListingVerification{
		ID:        recordID,
		ListingID: sub.ListingID,
		Status:    domain.ListingStatusPending,
	}
	if err := s.reviewRepository.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create pending record failed: %w", err)
	}

	return &ModerationDecision{Status: domain.ListingStatusPending}, nil
}

func (s *moderationService) ManualApprove(ctx context.Context, listingID, reviewerID uuid.UUID, notes string) error {
	if err := s.finalize(ctx, listingID, domain.ListingStatusApproved, reviewerID, notes); err != nil {
		return err
	}

	if err := s.listingRepository.SetState(ctx, listingID, domain.ListingStateActive); err != nil {
		return fmt.Errorf("set listing state failed: %w", err)
	}

	s.notifyOwner(ctx, listingID, true, "")

	return nil
}

func (s *moderationService) ManualReject(ctx context.Context, listingID, reviewerID uuid.UUID, reason string) error {
	if err := s.finalize(ctx, listingID, domain.ListingStatusRejected, reviewerID, reason); err != nil {
		return err
	}

	if err := s.listingRepository.SetState(ctx, listingID, domain.ListingStateRejected); err != nil {
		return fmt.Errorf("set listing state failed: %w", err)
	}

	s.notifyOwner(ctx, listingID, false, reason)

	return nil
}

// finalize performs the single allowed Pending -> terminal transition. The
// repository re-checks the pending status inside the update, so a lost race
// surfaces as ErrInvalidTransition rather than a silent overwrite.
func (s *moderationService) finalize(ctx context.Context, listingID uuid.UUID, status domain.ListingStatus, reviewerID uuid.UUID, notes string) error {
	latest, err := s.reviewRepository.GetLatestByListingID(ctx, listingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrRecordNotFound
		}
		return fmt.Errorf("get listing verification failed: %w", err)
	}

	if latest.Terminal() {
		return ErrInvalidTransition
	}

	if err := s.reviewRepository.Finalize(ctx, latest.ID, status, reviewerID, notes, time.Now()); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return ErrInvalidTransition
		}
		return fmt.Errorf("finalize listing verification failed: %w", err)
	}

	return nil
}

func (s *moderationService) GetStatus(ctx context.Context, listingID uuid.UUID) (*domain.ListingVerification, error) {
	latest, err := s.reviewRepository.GetLatestByListingID(ctx, listingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("get listing verification failed: %w", err)
	}

	return latest, nil
}

func (s *moderationService) notifyOwner(ctx context.Context, listingID uuid.UUID, approved bool, reason string) {
	summary, err := s.listingRepository.GetSummary(ctx, listingID)
	if err != nil {
		logger.Error("get listing summary failed", zap.String("listing_id", listingID.String()), zap.Error(err))
		return
	}

	contact := ""
	rec, err := s.userRepository.GetOneByUserID(ctx, summary.OwnerID)
	if err == nil && rec.EmailVerified {
		contact = rec.Email
	}

	s.enqueueDecision(ctx, contact, summary.Title, approved, reason)
}

// enqueueDecision hands the notification to the queue after the domain state
// change committed; delivery retries must not gate or roll back moderation
// decisions.
func (s *moderationService) enqueueDecision(ctx context.Context, contact, title string, approved bool, reason string) {
	if contact == "" {
		return
	}

	t, err := task.NewListingDecisionTask(contact, title, approved, reason)
	if err != nil {
		logger.Error("build listing decision task failed", zap.Error(err))
		return
	}

	cli := client.GetClient(ctx)
	if cli == nil {
		logger.Warn("queue client not configured, listing decision notification dropped")
		return
	}

	if _, err := cli.Enqueue(t); err != nil {
		logger.Error("enqueue listing decision failed", zap.Error(err))
	}
}
