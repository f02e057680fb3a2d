package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tradepost/backend/internal/domain"
	"github.com/tradepost/backend/internal/repository"

	"github.com/google/uuid"
)

type trustService struct {
	userRepository   repository.UserVerifications
	signalRepository repository.Signals
}

func newTrustService(userRepository repository.UserVerifications, signalRepository repository.Signals) *trustService {
	return &trustService{
		userRepository:   userRepository,
		signalRepository: signalRepository,
	}
}

// ComputeTrustScore recomputes the score from current inputs on every call;
// nothing here is read from or written to a stored score.
func (s *trustService) ComputeTrustScore(ctx context.Context, userID uuid.UUID) (*TrustScoreResult, error) {
	level := domain.LevelNone
	rec, err := s.userRepository.GetOneByUserID(ctx, userID)
	switch {
	case err == nil:
		level = rec.EffectiveLevel()
	case errors.Is(err, domain.ErrNotFound):
		// user never started verification, score from LevelNone
	default:
		return nil, fmt.Errorf("get user verification failed: %w", err)
	}

	sig, err := s.signalRepository.GetTrustSignals(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("get trust signals failed: %w", err)
	}

	score := domain.ComputeTrustScore(level, *sig)

	return &TrustScoreResult{
		Score: score,
		Badge: domain.BadgeForScore(score),
		Level: level,
	}, nil
}
