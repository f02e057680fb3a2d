package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTrustScore(t *testing.T) {
	tests := []struct {
		name  string
		level VerificationLevel
		sig   TrustSignals
		want  int
	}{
		{
			name:  "fresh unverified account",
			level: LevelNone,
			sig:   TrustSignals{},
			want:  10,
		},
		{
			// 50 + 2 + 3 + (8/10*20-10) - 5
			name:  "phone verified seller with mixed ratings",
			level: LevelPhone,
			sig: TrustSignals{
				AccountAgeDays:  60,
				ListingsCount:   3,
				PositiveRatings: 8,
				NegativeRatings: 2,
				ReportCount:     1,
			},
			want: 56,
		},
		{
			name:  "age and listings bonuses are capped",
			level: LevelEmail,
			sig:   TrustSignals{AccountAgeDays: 3650, ListingsCount: 500},
			want:  50,
		},
		{
			name:  "report penalty is capped at 30",
			level: LevelTrusted,
			sig:   TrustSignals{ReportCount: 100},
			want:  60,
		},
		{
			name:  "heavily reported new account clamps to zero",
			level: LevelNone,
			sig:   TrustSignals{NegativeRatings: 10, ReportCount: 6},
			want:  0,
		},
		{
			name:  "perfect trusted seller clamps to 100",
			level: LevelTrusted,
			sig:   TrustSignals{AccountAgeDays: 300, ListingsCount: 10, PositiveRatings: 50},
			want:  100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeTrustScore(tt.level, tt.sig))
		})
	}
}

func TestComputeTrustScoreBounds(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	levels := []VerificationLevel{LevelNone, LevelEmail, LevelPhone, LevelIDVerified, LevelTrusted}

	for i := 0; i < 10000; i++ {
		level := levels[rnd.Intn(len(levels))]
		sig := TrustSignals{
			AccountAgeDays:  rnd.Intn(5000),
			ListingsCount:   rnd.Intn(1000),
			PositiveRatings: rnd.Intn(1000),
			NegativeRatings: rnd.Intn(1000),
			ReportCount:     rnd.Intn(100),
		}

		score := ComputeTrustScore(level, sig)
		assert.GreaterOrEqual(t, score, 0, "level=%v sig=%+v", level, sig)
		assert.LessOrEqual(t, score, 100, "level=%v sig=%+v", level, sig)
	}
}

func TestBadgeForScore(t *testing.T) {
	tests := []struct {
		score int
		want  BadgeTier
	}{
		{100, BadgePlatinum},
		{90, BadgePlatinum},
		{89, BadgeGold},
		{75, BadgeGold},
		{74, BadgeSilver},
		{50, BadgeSilver},
		{49, BadgeBronze},
		{30, BadgeBronze},
		{29, BadgeNone},
		{0, BadgeNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BadgeForScore(tt.score), "score=%d", tt.score)
	}
}
