package usecase

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"swing-screener-backend/internal/config"
	"swing-screener-backend/internal/domain"
)

func repeat(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// baseIndicators builds a set where only the trend stack, the slope
// and the RSI zone qualify: flat ranges kill contraction, flat volume
// kills the spike bonus, and no benchmark means no relative strength.
func baseIndicators(n int) *domain.IndicatorSet {
	ind := &domain.IndicatorSet{
		Close:  repeat(n, 110),
		High:   repeat(n, 111),
		Low:    repeat(n, 109),
		Volume: repeat(n, 1000),
		SMA20:  repeat(n, 105),
		SMA50:  repeat(n, 100),
		SMA200: repeat(n, 90),
		RSI:    repeat(n, 60),
	}
	ind.SMA50[n-1-10] = 99 // rising over the slope lookback
	return ind
}

func TestConfluenceScoreTrendSlopeAndZone(t *testing.T) {
	strat := config.Presets()["v4"]
	ind := baseIndicators(60)

	// 50 base + 15 trend + 10 slope + 10 rsi zone
	assert.Equal(t, 85, ConfluenceScore(ind, nil, strat))
}

func TestConfluenceScoreVolumeTiers(t *testing.T) {
	strat := config.Presets()["v4"]

	ind := baseIndicators(60)
	ind.Volume[59] = 1600 // 1.6x trailing average
	assert.Equal(t, 90, ConfluenceScore(ind, nil, strat))

	ind = baseIndicators(60)
	ind.Volume[59] = 3500 // 3.5x trailing average
	assert.Equal(t, 95, ConfluenceScore(ind, nil, strat))
}

func TestConfluenceScoreRelativeStrength(t *testing.T) {
	strat := config.Presets()["v4"]
	ind := baseIndicators(60)
	ind.Close[59-strat.RelStrengthLookback] = 100 // instrument gained, benchmark flat

	bench := repeat(60, 50)
	assert.Equal(t, 100, ConfluenceScore(ind, bench, strat))
}

func TestConfluenceScoreContraction(t *testing.T) {
	strat := config.Presets()["v4"]
	ind := baseIndicators(60)

	// Window ranges 10 > 4 > 2, strictly shrinking.
	ind.High[59-45] = 114
	ind.Low[59-45] = 104
	ind.High[59-15] = 112
	ind.Low[59-15] = 108

	assert.Equal(t, 95, ConfluenceScore(ind, nil, strat))
}

func TestConfluenceScoreNoTrendStack(t *testing.T) {
	strat := config.Presets()["v4"]
	ind := baseIndicators(60)
	ind.SMA200 = repeat(60, 120) // long average above everything

	// 50 base + 10 slope + 10 rsi zone
	assert.Equal(t, 70, ConfluenceScore(ind, nil, strat))
}

func TestConfluenceScoreFallbackOnNaN(t *testing.T) {
	ind := baseIndicators(60)
	ind.RSI[59] = math.NaN()

	assert.Equal(t, 50, ConfluenceScore(ind, nil, config.Presets()["v4"]))

	// v1 has a zero fallback, clamped up to the scale floor.
	assert.Equal(t, 1, ConfluenceScore(ind, nil, config.Presets()["v1"]))
}

func TestConfluenceScoreFallbackOnMissingData(t *testing.T) {
	strat := config.Presets()["v4"]

	assert.Equal(t, 50, ConfluenceScore(nil, nil, strat))
	assert.Equal(t, 50, ConfluenceScore(&domain.IndicatorSet{}, nil, strat))
}

func TestConfluenceScoreClampedToScale(t *testing.T) {
	for name, strat := range config.Presets() {
		ind := baseIndicators(60)
		ind.Volume[59] = 5000
		ind.Close[59-strat.RelStrengthLookback] = 100
		ind.RSI = repeat(60, (strat.RSIZoneLow+strat.RSIZoneHigh)/2)

		score := ConfluenceScore(ind, repeat(60, 50), strat)
		assert.GreaterOrEqual(t, score, 1, name)
		assert.LessOrEqual(t, score, 100, name)
	}
}

func TestRangesContract(t *testing.T) {
	highs := repeat(60, 111)
	lows := repeat(60, 109)
	assert.False(t, rangesContract(highs, lows, []int{50, 20, 10}), "equal ranges never contract")

	highs[59-45], lows[59-45] = 114, 104
	highs[59-15], lows[59-15] = 112, 108
	assert.True(t, rangesContract(highs, lows, []int{50, 20, 10}))

	assert.False(t, rangesContract(highs, lows, []int{50}), "one window is not a contraction")
	assert.False(t, rangesContract(highs[:30], lows[:30], []int{50, 20, 10}), "short data")
}

func TestOutperforming(t *testing.T) {
	closes := repeat(60, 110)
	closes[59-20] = 100
	bench := repeat(60, 50)

	assert.True(t, outperforming(closes, bench, 20))
	assert.False(t, outperforming(repeat(60, 110), bench, 20), "flat ratio does not outperform")
	assert.False(t, outperforming(closes, nil, 20), "no benchmark data")
	assert.False(t, outperforming(closes[:10], bench[:10], 20), "short data")
}
