package usecase

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"swing-screener-backend/internal/config"
	"swing-screener-backend/internal/domain"
)

func flatSeries(n int, high, low float64) ([]float64, []float64) {
	hs := make([]float64, n)
	ls := make([]float64, n)
	for i := range hs {
		hs[i] = high
		ls[i] = low
	}
	return hs, ls
}

func TestClassifyPatternPennant(t *testing.T) {
	strat := config.Presets()["v4"]
	n := 40

	// Highs compress down, lows compress up.
	hs := make([]float64, n)
	ls := make([]float64, n)
	for i := range hs {
		hs[i] = 110 - float64(i)*0.2
		ls[i] = 100 + float64(i)*0.1
	}

	assert.Equal(t, domain.PatternPennant, ClassifyPattern(hs, ls, strat))
}

func TestClassifyPatternFlag(t *testing.T) {
	strat := config.Presets()["v4"]

	// Tight sideways range, but the last high ticks above the first so
	// the pennant rule does not fire.
	hs, ls := flatSeries(40, 100.5, 100)
	hs[len(hs)-1] = 100.6

	assert.Equal(t, domain.PatternFlag, ClassifyPattern(hs, ls, strat))
}

func TestClassifyPatternBreakoutFallback(t *testing.T) {
	strat := config.Presets()["v4"]
	n := 40

	// Wide rising range matches neither compression rule.
	hs := make([]float64, n)
	ls := make([]float64, n)
	for i := range hs {
		hs[i] = 100 + float64(i)
		ls[i] = 95 + float64(i)
	}

	assert.Equal(t, domain.PatternBreakout, ClassifyPattern(hs, ls, strat))
}

func TestClassifyPatternPriorityPennantBeatsFlag(t *testing.T) {
	strat := config.Presets()["v4"]

	// A range tight enough for a flag whose endpoints also satisfy the
	// pennant rule must be labeled pennant.
	hs, ls := flatSeries(40, 100.5, 100)

	assert.Equal(t, domain.PatternPennant, ClassifyPattern(hs, ls, strat))
}

func TestClassifyPatternShortData(t *testing.T) {
	strat := config.Presets()["v4"]
	hs, ls := flatSeries(strat.PatternWindow-1, 101, 100)

	assert.Equal(t, domain.PatternBreakout, ClassifyPattern(hs, ls, strat))
	assert.Equal(t, domain.PatternBreakout, ClassifyPattern(nil, nil, strat))
}

func TestClassifyPatternNaNData(t *testing.T) {
	strat := config.Presets()["v4"]
	hs, ls := flatSeries(40, 100.5, 100)
	hs[len(hs)-3] = math.NaN()

	assert.Equal(t, domain.PatternBreakout, ClassifyPattern(hs, ls, strat))
}
