package report

import "math"

const (
	trendFloor = -999
	trendCeil  = 999
)

// Trend computes the percent change of current vs previous, rounded to the
// nearest integer and clamped to [-999, 999]. A zero baseline yields 100
// when current is positive and 0 otherwise. The value is direction-agnostic;
// callers decide whether a negative trend is good or bad.
func Trend(current, previous float64) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	pct := (current - previous) / previous * 100
	if pct > trendCeil {
		return trendCeil
	}
	if pct < trendFloor {
		return trendFloor
	}
	return int(math.Round(pct))
}
