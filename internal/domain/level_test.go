package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLevel(t *testing.T) {
	tests := []struct {
		name     string
		email    bool
		phone    bool
		idStatus IDVerificationStatus
		want     VerificationLevel
	}{
		{"nothing verified", false, false, IDStatusNone, LevelNone},
		{"email only", true, false, IDStatusNone, LevelEmail},
		{"email and phone", true, true, IDStatusNone, LevelPhone},
		{"all channels", true, true, IDStatusVerified, LevelIDVerified},
		{"id verified without phone", true, false, IDStatusVerified, LevelEmail},
		{"id verified without email", false, true, IDStatusVerified, LevelNone},
		{"id pending does not count", true, true, IDStatusPending, LevelPhone},
		{"id rejected does not count", true, true, IDStatusRejected, LevelPhone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveLevel(tt.email, tt.phone, tt.idStatus))
		})
	}
}

// Phone without email must resolve exactly as if phone were false.
func TestResolveLevelPhoneRequiresEmail(t *testing.T) {
	for _, idStatus := range []IDVerificationStatus{IDStatusNone, IDStatusPending, IDStatusVerified, IDStatusRejected} {
		withPhone := ResolveLevel(false, true, idStatus)
		withoutPhone := ResolveLevel(false, false, idStatus)
		assert.Equal(t, withoutPhone, withPhone, "idStatus=%q", idStatus)
	}
}

func TestResolveLevelNeverTrusted(t *testing.T) {
	for _, email := range []bool{false, true} {
		for _, phone := range []bool{false, true} {
			for _, idStatus := range []IDVerificationStatus{IDStatusNone, IDStatusPending, IDStatusVerified, IDStatusRejected} {
				assert.Less(t, ResolveLevel(email, phone, idStatus), LevelTrusted)
			}
		}
	}
}

func TestEffectiveLevelTrustedPromotion(t *testing.T) {
	rec := UserVerification{Trusted: true}
	assert.Equal(t, LevelTrusted, rec.EffectiveLevel())

	rec = UserVerification{EmailVerified: true, PhoneVerified: true, Trusted: true}
	assert.Equal(t, LevelTrusted, rec.EffectiveLevel())

	rec.Trusted = false
	assert.Equal(t, LevelPhone, rec.EffectiveLevel())
}

func TestLevelScanRoundTrip(t *testing.T) {
	for _, level := range []VerificationLevel{LevelNone, LevelEmail, LevelPhone, LevelIDVerified, LevelTrusted} {
		value, err := level.Value()
		assert.NoError(t, err)

		var scanned VerificationLevel
		assert.NoError(t, scanned.Scan(value))
		assert.Equal(t, level, scanned)
	}

	var fromBytes VerificationLevel
	assert.NoError(t, fromBytes.Scan([]byte("phone")))
	assert.Equal(t, LevelPhone, fromBytes)

	var invalid VerificationLevel
	assert.Error(t, invalid.Scan("superuser"))
}
