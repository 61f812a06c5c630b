package indicators

import (
	"github.com/markcheno/go-talib"

	"swing-screener-backend/internal/domain"
)

// Fixed indicator windows. Any value inside a warm-up region is zero
// and callers must not gate on it; Compute enforces the overall
// minimum so the latest values are always defined.
const (
	SMAShort  = 20
	SMAMid    = 50
	SMALong   = 150
	SMATrend  = 200
	RSIPeriod = 14
	ATRPeriod = 14
)

// longestWindow is the minimum history Compute accepts.
const longestWindow = SMATrend

// Compute derives the full indicator set for a series. Returns
// domain.ErrInsufficientHistory when the series is shorter than the
// longest window so callers skip the instrument instead of reading
// undefined values.
func Compute(series *domain.PriceSeries) (*domain.IndicatorSet, error) {
	if series == nil || series.Len() == 0 {
		return nil, domain.ErrEmptySeries
	}
	if series.Len() < longestWindow {
		return nil, domain.ErrInsufficientHistory
	}

	closes := series.Closes()
	highs := series.Highs()
	lows := series.Lows()
	volumes := series.Volumes()

	return &domain.IndicatorSet{
		Close:  closes,
		High:   highs,
		Low:    lows,
		Volume: volumes,
		SMA20:  talib.Sma(closes, SMAShort),
		SMA50:  talib.Sma(closes, SMAMid),
		SMA150: talib.Sma(closes, SMALong),
		SMA200: talib.Sma(closes, SMATrend),
		RSI:    talib.Rsi(closes, RSIPeriod),
		ATR:    talib.Atr(highs, lows, closes, ATRPeriod),
	}, nil
}

// SMA is a convenience wrapper for callers that only need one average,
// such as the market-health check on the benchmark.
func SMA(values []float64, period int) []float64 {
	return talib.Sma(values, period)
}
