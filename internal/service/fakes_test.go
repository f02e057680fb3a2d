package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tradepost/backend/internal/domain"
)

// ---------- In-memory repository fakes ----------

type memCodeRepo struct {
	mu    sync.Mutex
	codes map[uuid.UUID]*domain.VerificationCode
}

func newMemCodeRepo() *memCodeRepo {
	return &memCodeRepo{codes: make(map[uuid.UUID]*domain.VerificationCode)}
}

func (m *memCodeRepo) Create(_ context.Context, code *domain.VerificationCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *code
	m.codes[code.ID] = &cp
	return nil
}

func (m *memCodeRepo) GetOneByID(_ context.Context, id uuid.UUID) (*domain.VerificationCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	code, ok := m.codes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *code
	return &cp, nil
}

func (m *memCodeRepo) IncrementAttempts(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	code, ok := m.codes[id]
	if !ok || code.Attempts >= domain.CodeMaxAttempts {
		return domain.ErrNoRowsAffected
	}
	code.Attempts++
	return nil
}

func (m *memCodeRepo) Consume(_ context.Context, id uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	code, ok := m.codes[id]
	if !ok || code.ConsumedAt != nil {
		return domain.ErrNoRowsAffected
	}
	code.ConsumedAt = &at
	return nil
}

func (m *memCodeRepo) ExpireUnconsumed(_ context.Context, userID uuid.UUID, channel domain.VerificationChannel, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, code := range m.codes {
		if code.UserID == userID && code.Channel == channel && code.ConsumedAt == nil && code.ExpiresAt.After(at) {
			code.ExpiresAt = at
		}
	}
	return nil
}

func (m *memCodeRepo) get(id uuid.UUID) *domain.VerificationCode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[id]
}

type memUserRepo struct {
	mu   sync.Mutex
	recs map[uuid.UUID]*domain.UserVerification
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{recs: make(map[uuid.UUID]*domain.UserVerification)}
}

func (m *memUserRepo) Ensure(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recs[userID]; !ok {
		m.recs[userID] = &domain.UserVerification{UserID: userID, CreatedAt: time.Now()}
	}
	return nil
}

func (m *memUserRepo) GetOneByUserID(_ context.Context, userID uuid.UUID) (*domain.UserVerification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *memUserRepo) MarkEmailVerified(_ context.Context, userID uuid.UUID, email string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.recs[userID]; ok {
		rec.Email = email
		rec.EmailVerified = true
		rec.EmailVerifiedAt = &at
	}
	return nil
}

func (m *memUserRepo) MarkPhoneVerified(_ context.Context, userID uuid.UUID, phone string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.recs[userID]; ok {
		rec.Phone = phone
		rec.PhoneVerified = true
		rec.PhoneVerifiedAt = &at
	}
	return nil
}

func (m *memUserRepo) SubmitIDDocument(_ context.Context, userID uuid.UUID, idType, idNumber, imageRef string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.recs[userID]; ok {
		status := domain.IDStatusPending
		rec.IDStatus = &status
		rec.IDSubmittedAt = &at
		rec.IDUpdatedAt = &at
	}
	return nil
}

func (m *memUserRepo) SetIDStatus(_ context.Context, userID uuid.UUID, status domain.IDVerificationStatus, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[userID]
	if !ok || rec.IDStatus == nil {
		return domain.ErrNoRowsAffected
	}
	rec.IDStatus = &status
	rec.IDUpdatedAt = &at
	return nil
}

func (m *memUserRepo) SetTrusted(_ context.Context, userID uuid.UUID, trusted bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.recs[userID]; ok {
		rec.Trusted = trusted
	}
	return nil
}

func (m *memUserRepo) SaveLevel(_ context.Context, userID uuid.UUID, level domain.VerificationLevel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.recs[userID]; ok {
		rec.Level = level
	}
	return nil
}

func (m *memUserRepo) TouchLastChecked(_ context.Context, userID uuid.UUID, now, staleBefore time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[userID]
	if !ok {
		return domain.ErrNoRowsAffected
	}
	if rec.LastCheckedAt != nil && !rec.LastCheckedAt.Before(staleBefore) {
		return domain.ErrNoRowsAffected
	}
	rec.LastCheckedAt = &now
	return nil
}

func (m *memUserRepo) ListStale(_ context.Context, staleBefore time.Time, limit int) ([]domain.UserVerification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.UserVerification
	for _, rec := range m.recs {
		if len(out) >= limit {
			break
		}
		if rec.LastCheckedAt == nil || rec.LastCheckedAt.Before(staleBefore) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (m *memUserRepo) put(rec *domain.UserVerification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[rec.UserID] = rec
}

type memReviewRepo struct {
	mu   sync.Mutex
	seq  int
	recs []*domain.ListingVerification
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{}
}

func (m *memReviewRepo) Create(_ context.Context, rec *domain.ListingVerification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rec
	if cp.CreatedAt.IsZero() {
		m.seq++
		cp.CreatedAt = time.Now().Add(time.Duration(m.seq) * time.Millisecond)
	}
	m.recs = append(m.recs, &cp)
	return nil
}

func (m *memReviewRepo) GetLatestByListingID(_ context.Context, listingID uuid.UUID) (*domain.ListingVerification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *domain.ListingVerification
	for _, rec := range m.recs {
		if rec.ListingID != listingID {
			continue
		}
		if latest == nil || rec.CreatedAt.After(latest.CreatedAt) {
			latest = rec
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (m *memReviewRepo) Finalize(_ context.Context, id uuid.UUID, status domain.ListingStatus, reviewerID uuid.UUID, notes string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.recs {
		if rec.ID != id {
			continue
		}
		if rec.Status != domain.ListingStatusPending {
			return domain.ErrNoRowsAffected
		}
		rec.Status = status
		rec.ReviewerID = &reviewerID
		rec.ReviewerNotes.String = notes
		rec.ReviewerNotes.Valid = true
		rec.ReviewedAt = &at
		return nil
	}
	return domain.ErrNoRowsAffected
}

type memListingRepo struct {
	mu        sync.Mutex
	summaries map[uuid.UUID]*domain.ListingSummary
	states    map[uuid.UUID]domain.ListingState
}

func newMemListingRepo() *memListingRepo {
	return &memListingRepo{
		summaries: make(map[uuid.UUID]*domain.ListingSummary),
		states:    make(map[uuid.UUID]domain.ListingState),
	}
}

func (m *memListingRepo) GetSummary(_ context.Context, listingID uuid.UUID) (*domain.ListingSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	summary, ok := m.summaries[listingID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *summary
	return &cp, nil
}

func (m *memListingRepo) SetState(_ context.Context, listingID uuid.UUID, state domain.ListingState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[listingID] = state
	return nil
}

func (m *memListingRepo) state(listingID uuid.UUID) (domain.ListingState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.states[listingID]
	return state, ok
}

type memSignalRepo struct {
	signals map[uuid.UUID]domain.TrustSignals
}

func (m *memSignalRepo) GetTrustSignals(_ context.Context, userID uuid.UUID) (*domain.TrustSignals, error) {
	sig, ok := m.signals[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sig, nil
}
