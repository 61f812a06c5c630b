package usecase

import (
	"math"

	"swing-screener-backend/internal/config"
	"swing-screener-backend/internal/domain"
)

// ClassifyPattern labels the shape of the trailing window. Rules are
// checked in priority order and the first match wins:
//
//  1. PENNANT  — highs compressing down while lows compress up
//     (endpoint comparison over the window, not a full monotonic scan)
//  2. FLAG     — total window range below a fixed fraction of the low
//  3. BREAKOUT — everything else, including insufficient data
//
// Never fails: missing or NaN data yields the fallback label.
func ClassifyPattern(highs, lows []float64, strat config.Strategy) domain.Pattern {
	w := strat.PatternWindow
	if w <= 1 || len(highs) < w || len(lows) < w {
		return domain.PatternBreakout
	}

	hs := highs[len(highs)-w:]
	ls := lows[len(lows)-w:]

	hi, lo := hs[0], ls[0]
	for i := 0; i < w; i++ {
		if math.IsNaN(hs[i]) || math.IsNaN(ls[i]) {
			return domain.PatternBreakout
		}
		hi = math.Max(hi, hs[i])
		lo = math.Min(lo, ls[i])
	}

	if hs[w-1] <= hs[0] && ls[w-1] >= ls[0] {
		return domain.PatternPennant
	}
	if lo > 0 && (hi-lo)/lo < strat.FlagRangeFrac {
		return domain.PatternFlag
	}
	return domain.PatternBreakout
}
