package domain

import "math"

type BadgeTier string

const (
	BadgeNone     BadgeTier = "none"
	BadgeBronze   BadgeTier = "bronze"
	BadgeSilver   BadgeTier = "silver"
	BadgeGold     BadgeTier = "gold"
	BadgePlatinum BadgeTier = "platinum"
)

// TrustSignals are the behavioral inputs to the score, read from the wider
// application's data (account age, listings, ratings, reports).
type TrustSignals struct {
	AccountAgeDays  int
	ListingsCount   int
	PositiveRatings int
	NegativeRatings int
	ReportCount     int
}

func baseScore(level VerificationLevel) float64 {
	switch level {
	case LevelEmail:
		return 30
	case LevelPhone:
		return 50
	case LevelIDVerified:
		return 70
	case LevelTrusted:
		return 90
	default:
		return 10
	}
}

// ComputeTrustScore derives the 0-100 trust score from the verification
// level and behavioral signals. It is recomputed on demand and never stored
// as a source of truth.
func ComputeTrustScore(level VerificationLevel, sig TrustSignals) int {
	ageBonus := math.Min(float64(sig.AccountAgeDays)/30, 10)
	listingsBonus := math.Min(float64(sig.ListingsCount), 10)

	ratingsImpact := 0.0
	if total := sig.PositiveRatings + sig.NegativeRatings; total > 0 {
		ratingsImpact = float64(sig.PositiveRatings)/float64(total)*20 - 10
	}

	reportPenalty := math.Min(float64(sig.ReportCount)*5, 30)

	score := math.Round(baseScore(level) + ageBonus + listingsBonus + ratingsImpact - reportPenalty)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return int(score)
}

// BadgeForScore maps a score to its badge tier; every lower bound is
// inclusive.
func BadgeForScore(score int) BadgeTier {
	switch {
	case score >= 90:
		return BadgePlatinum
	case score >= 75:
		return BadgeGold
	case score >= 50:
		return BadgeSilver
	case score >= 30:
		return BadgeBronze
	default:
		return BadgeNone
	}
}
