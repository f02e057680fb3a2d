package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/tradepost/backend/internal/config"
	"github.com/tradepost/backend/internal/domain"
	"github.com/tradepost/backend/internal/repository"
	"github.com/tradepost/backend/pkg/logger"
	"github.com/tradepost/backend/pkg/notify"
	"github.com/tradepost/backend/pkg/otp"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{7,14}$`)
)

type verificationService struct {
	codeRepository repository.VerificationCodes
	userRepository repository.UserVerifications
	sender         notify.Sender
	otpGenerator   otp.Generator
	cfg            config.VerificationConfig
}

func newVerificationService(
	codeRepository repository.VerificationCodes,
	userRepository repository.UserVerifications,
	sender notify.Sender,
	otpGenerator otp.Generator,
	cfg config.VerificationConfig,
) *verificationService {
	return &verificationService{
		codeRepository: codeRepository,
		userRepository: userRepository,
		sender:         sender,
		otpGenerator:   otpGenerator,
		cfg:            cfg,
	}
}

func (s *verificationService) RequestEmailVerification(ctx context.Context, userID uuid.UUID, email string) (uuid.UUID, error) {
	if !emailPattern.MatchString(email) {
		return uuid.Nil, ErrInvalidEmail
	}

	return s.issue(ctx, userID, domain.ChannelEmail, email, s.cfg.EmailCodeTTL)
}

func (s *verificationService) RequestPhoneVerification(ctx context.Context, userID uuid.UUID, phone string) (uuid.UUID, error) {
	if !phonePattern.MatchString(phone) {
		return uuid.Nil, ErrInvalidPhone
	}

	return s.issue(ctx, userID, domain.ChannelPhone, phone, s.cfg.PhoneCodeTTL)
}

// issue mints a fresh code and dispatches it. Earlier unconsumed codes for
// the same channel are expired first, so at most one code per (user,
// channel) is live at a time. A dispatch failure fails the whole request.
func (s *verificationService) issue(ctx context.Context, userID uuid.UUID, channel domain.VerificationChannel, target string, ttl time.Duration) (uuid.UUID, error) {
	if err := s.userRepository.Ensure(ctx, userID); err != nil {
		return uuid.Nil, fmt.Errorf("ensure user verification record failed: %w", err)
	}

	now := time.Now()
	if err := s.codeRepository.ExpireUnconsumed(ctx, userID, channel, now); err != nil {
		return uuid.Nil, fmt.Errorf("expire previous codes failed: %w", err)
	}

	codeID, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, fmt.Errorf("generate code id failed: %w", err)
	}

	code := &domain.VerificationCode{
		ID:        codeID,
		UserID:    userID,
		Channel:   channel,
		Target:    target,
		Code:      s.otpGenerator.RandomCode(s.cfg.CodeLength),
		ExpiresAt: now.Add(ttl),
	}

	if err := s.codeRepository.Create(ctx, code); err != nil {
		return uuid.Nil, fmt.Errorf("create verification code failed: %w", err)
	}

	if err := s.sender.SendCode(ctx, string(channel), target, code.Code); err != nil {
		logger.Error("send verification code failed",
			zap.String("channel", string(channel)),
			zap.Error(err),
		)
		return uuid.Nil, ErrDispatchFailed
	}

	return codeID, nil
}

func (s *verificationService) ConfirmEmail(ctx context.Context, userID, codeID uuid.UUID, code string) error {
	rec, err := s.validate(ctx, userID, domain.ChannelEmail, codeID, code)
	if err != nil {
		return err
	}

	if err := s.userRepository.MarkEmailVerified(ctx, userID, rec.Target, time.Now()); err != nil {
		return fmt.Errorf("mark email verified failed: %w", err)
	}

	return s.refreshLevel(ctx, userID)
}

func (s *verificationService) ConfirmPhone(ctx context.Context, userID, codeID uuid.UUID, code string) error {
	rec, err := s.validate(ctx, userID, domain.ChannelPhone, codeID, code)
	if err != nil {
		return err
	}

	if err := s.userRepository.MarkPhoneVerified(ctx, userID, rec.Target, time.Now()); err != nil {
		return fmt.Errorf("mark phone verified failed: %w", err)
	}

	return s.refreshLevel(ctx, userID)
}

// validate walks the rejection ladder in a fixed order: not found, already
// consumed, expired, attempts exhausted. The attempt counter is bumped on
// every surviving call before the value comparison, so three wrong guesses
// burn the code even when a later guess would have matched.
func (s *verificationService) validate(ctx context.Context, userID uuid.UUID, channel domain.VerificationChannel, codeID uuid.UUID, submitted string) (*domain.VerificationCode, error) {
	rec, err := s.codeRepository.GetOneByID(ctx, codeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, fmt.Errorf("get verification code failed: %w", err)
	}

	if rec.UserID != userID || rec.Channel != channel {
		return nil, ErrCodeNotFound
	}

	if rec.Consumed() {
		return nil, ErrCodeConsumed
	}

	now := time.Now()
	if rec.Expired(now) {
		return nil, ErrCodeExpired
	}

	if rec.Exhausted() {
		return nil, ErrTooManyAttempts
	}

	if err := s.codeRepository.IncrementAttempts(ctx, rec.ID); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			// lost the race against a concurrent validation
			return nil, ErrTooManyAttempts
		}
		return nil, fmt.Errorf("increment attempts failed: %w", err)
	}

	if submitted != rec.Code {
		return nil, ErrCodeMismatch
	}

	if err := s.codeRepository.Consume(ctx, rec.ID, now); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return nil, ErrCodeConsumed
		}
		return nil, fmt.Errorf("consume verification code failed: %w", err)
	}

	return rec, nil
}

func (s *verificationService) SubmitIDDocument(ctx context.Context, userID uuid.UUID, idType, idNumber, imageRef string) error {
	if err := s.userRepository.Ensure(ctx, userID); err != nil {
		return fmt.Errorf("ensure user verification record failed: %w", err)
	}

	if err := s.userRepository.SubmitIDDocument(ctx, userID, idType, idNumber, imageRef, time.Now()); err != nil {
		return fmt.Errorf("submit id document failed: %w", err)
	}

	return nil
}

// MarkIDReviewed records the outcome of the external document review and
// refreshes the cached level.
func (s *verificationService) MarkIDReviewed(ctx context.Context, userID uuid.UUID, verified bool) error {
	status := domain.IDStatusRejected
	if verified {
		status = domain.IDStatusVerified
	}

	if err := s.userRepository.SetIDStatus(ctx, userID, status, time.Now()); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return ErrRecordNotFound
		}
		return fmt.Errorf("set id status failed: %w", err)
	}

	return s.refreshLevel(ctx, userID)
}

func (s *verificationService) PromoteTrusted(ctx context.Context, userID uuid.UUID) error {
	if err := s.userRepository.Ensure(ctx, userID); err != nil {
		return fmt.Errorf("ensure user verification record failed: %w", err)
	}

	if err := s.userRepository.SetTrusted(ctx, userID, true); err != nil {
		return fmt.Errorf("set trusted failed: %w", err)
	}

	return s.refreshLevel(ctx, userID)
}

func (s *verificationService) GetStatus(ctx context.Context, userID uuid.UUID) (*VerificationStatus, error) {
	rec, err := s.userRepository.GetOneByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("get user verification failed: %w", err)
	}

	return &VerificationStatus{
		Level:         rec.EffectiveLevel(),
		EmailVerified: rec.EmailVerified,
		PhoneVerified: rec.PhoneVerified,
		IDStatus:      rec.IDVerificationStatus(),
	}, nil
}

// ReverifyStale re-derives the cached level for records not checked within
// staleAfter. The per-user compare-and-swap on last_checked_at keeps two
// concurrent sweeps from refreshing the same user twice.
func (s *verificationService) ReverifyStale(ctx context.Context, staleAfter time.Duration, limit int) (int, error) {
	now := time.Now()
	staleBefore := now.Add(-staleAfter)

	recs, err := s.userRepository.ListStale(ctx, staleBefore, limit)
	if err != nil {
		return 0, fmt.Errorf("list stale user verifications failed: %w", err)
	}

	refreshed := 0
	for i := range recs {
		userID := recs[i].UserID

		if err := s.userRepository.TouchLastChecked(ctx, userID, now, staleBefore); err != nil {
			if errors.Is(err, domain.ErrNoRowsAffected) {
				continue
			}
			return refreshed, fmt.Errorf("touch last checked failed: %w", err)
		}

		if err := s.refreshLevel(ctx, userID); err != nil {
			logger.Error("reverify level refresh failed", zap.String("user_id", userID.String()), zap.Error(err))
			continue
		}
		refreshed++
	}

	return refreshed, nil
}

func (s *verificationService) refreshLevel(ctx context.Context, userID uuid.UUID) error {
	rec, err := s.userRepository.GetOneByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user verification failed: %w", err)
	}

	if err := s.userRepository.SaveLevel(ctx, userID, rec.EffectiveLevel()); err != nil {
		return fmt.Errorf("save level failed: %w", err)
	}

	return nil
}
