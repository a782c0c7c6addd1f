package engine

import "fmt"

// Tier is the coarse qualitative bucket a numeric score maps to for
// display. The thresholds are the same everywhere a score is shown.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// ScoreTier buckets a [0,100] score: >=80 high, >=60 medium, else low.
func ScoreTier(score int) Tier {
	switch {
	case score >= 80:
		return TierHigh
	case score >= 60:
		return TierMedium
	default:
		return TierLow
	}
}

// FormatElapsed renders an elapsed-seconds count as mm:ss.
func FormatElapsed(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
