package stats

// TrendDirection classifies how a composite score moved between two windows.
type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
	TrendFlat TrendDirection = "flat"
)

// trendThreshold is the raw score difference below which movement reads as
// flat. Applied before any display rounding.
const trendThreshold = 0.1

// Trend compares the current window's composite score to the previous
// window's. ok is false when either side is absent; absence is not zero.
func Trend(current float64, currentOK bool, previous float64, previousOK bool) (TrendDirection, bool) {
	if !currentOK || !previousOK {
		return "", false
	}
	diff := current - previous
	switch {
	case diff > trendThreshold:
		return TrendUp, true
	case diff < -trendThreshold:
		return TrendDown, true
	default:
		return TrendFlat, true
	}
}
