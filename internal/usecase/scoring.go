package usecase

import (
	"math"

	"github.com/rs/zerolog/log"

	"swing-screener-backend/internal/config"
	"swing-screener-backend/internal/domain"
)

// ConfluenceScore rates the setup quality of one instrument in [1,100].
// Additive: a preset base plus independently-gated bonuses for trend
// alignment, moving-average slope, volatility contraction, relative
// strength against the benchmark, volume intensity and the RSI zone.
// Pure function of its inputs; undefined or NaN data yields the
// preset's fallback score instead of an error.
func ConfluenceScore(ind *domain.IndicatorSet, benchCloses []float64, strat config.Strategy) int {
	score, err := confluence(ind, benchCloses, strat)
	if err != nil {
		log.Debug().Err(err).Msg("scoring fell back")
		return clampScore(strat.FallbackScore)
	}
	return score
}

func confluence(ind *domain.IndicatorSet, benchCloses []float64, strat config.Strategy) (int, error) {
	if ind == nil || len(ind.Close) == 0 {
		return 0, domain.ErrUndefinedIndicator
	}
	last := len(ind.Close) - 1
	if last >= len(ind.SMA20) || last >= len(ind.SMA50) || last >= len(ind.SMA200) || last >= len(ind.RSI) {
		return 0, domain.ErrUndefinedIndicator
	}

	price := ind.Close[last]
	sma20 := ind.SMA20[last]
	sma50 := ind.SMA50[last]
	sma200 := ind.SMA200[last]
	rsi := ind.RSI[last]

	for _, v := range []float64{price, sma20, sma50, sma200, rsi} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v == 0 {
			return 0, domain.ErrUndefinedIndicator
		}
	}

	score := strat.BaseScore

	// Trend template: price on top of the full ascending stack.
	// Dominant signal, largest single bonus.
	if price > sma20 && sma20 > sma50 && sma50 > sma200 {
		score += strat.TrendBonus
	}

	// Mid-length average itself rising, not just price above it.
	if idx := last - strat.SlopeLookback; idx >= 0 && ind.SMA50[idx] > 0 && sma50 > ind.SMA50[idx] {
		score += strat.SlopeBonus
	}

	if rangesContract(ind.High, ind.Low, strat.ContractionWindows) {
		score += strat.ContractionBonus
	}

	if outperforming(ind.Close, benchCloses, strat.RelStrengthLookback) {
		score += strat.RelStrengthBonus
	}

	score += volumeBonus(ind.Volume, strat)

	if rsi >= strat.RSIZoneLow && rsi <= strat.RSIZoneHigh {
		score += strat.RSIZoneBonus
	}

	return clampScore(score), nil
}

// rangesContract checks a volatility contraction: the high-low range
// must strictly shrink across each successively shorter trailing
// window (windows given longest-first).
func rangesContract(highs, lows []float64, windows []int) bool {
	if len(windows) < 2 {
		return false
	}
	prev := math.Inf(1)
	for _, w := range windows {
		if w <= 0 || len(highs) < w || len(lows) < w {
			return false
		}
		r := windowRange(highs[len(highs)-w:], lows[len(lows)-w:])
		if math.IsNaN(r) || r >= prev {
			return false
		}
		prev = r
	}
	return true
}

func windowRange(highs, lows []float64) float64 {
	hi, lo := highs[0], lows[0]
	for i := range highs {
		hi = math.Max(hi, highs[i])
		lo = math.Min(lo, lows[i])
	}
	return hi - lo
}

// outperforming compares the instrument/benchmark price ratio now
// against the ratio lookback bars ago.
func outperforming(closes, benchCloses []float64, lookback int) bool {
	if lookback <= 0 || len(closes) <= lookback || len(benchCloses) <= lookback {
		return false
	}
	cLast, bLast := closes[len(closes)-1], benchCloses[len(benchCloses)-1]
	cThen, bThen := closes[len(closes)-1-lookback], benchCloses[len(benchCloses)-1-lookback]
	if bLast <= 0 || bThen <= 0 || cThen <= 0 {
		return false
	}
	return cLast/bLast > cThen/bThen
}

// volumeBonus rewards a current-bar volume spike over the trailing
// 20-bar average, with a bigger bonus for the bigger multiple.
func volumeBonus(volumes []float64, strat config.Strategy) int {
	const window = 20
	if len(volumes) < window+1 {
		return 0
	}
	last := len(volumes) - 1
	sum := 0.0
	for i := last - window; i < last; i++ {
		sum += volumes[i]
	}
	avg := sum / window
	if avg <= 0 || math.IsNaN(avg) {
		return 0
	}
	ratio := volumes[last] / avg
	switch {
	case ratio >= strat.VolumeMultHigh:
		return strat.VolumeBonusHigh
	case ratio >= strat.VolumeMultLow:
		return strat.VolumeBonusLow
	default:
		return 0
	}
}

func clampScore(score int) int {
	if score < 1 {
		return 1
	}
	if score > 100 {
		return 100
	}
	return score
}
