package indicators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swing-screener-backend/internal/domain"
)

func constantSeries(n int, price float64) *domain.PriceSeries {
	s := &domain.PriceSeries{Ticker: "TEST"}
	day := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		s.Bars = append(s.Bars, domain.Bar{
			Date: day.AddDate(0, 0, i), Open: price, High: price, Low: price, Close: price, Volume: 1000,
		})
	}
	return s
}

func TestComputeRejectsShortHistory(t *testing.T) {
	_, err := Compute(nil)
	assert.ErrorIs(t, err, domain.ErrEmptySeries)

	_, err = Compute(&domain.PriceSeries{})
	assert.ErrorIs(t, err, domain.ErrEmptySeries)

	_, err = Compute(constantSeries(SMATrend-1, 100))
	assert.ErrorIs(t, err, domain.ErrInsufficientHistory)
}

func TestComputeAlignedSeries(t *testing.T) {
	series := constantSeries(250, 100)

	ind, err := Compute(series)
	require.NoError(t, err)

	n := series.Len()
	assert.Len(t, ind.Close, n)
	assert.Len(t, ind.SMA20, n)
	assert.Len(t, ind.SMA50, n)
	assert.Len(t, ind.SMA150, n)
	assert.Len(t, ind.SMA200, n)
	assert.Len(t, ind.RSI, n)
	assert.Len(t, ind.ATR, n)

	// A constant series has every average equal to the price and no
	// true range at all.
	last := n - 1
	assert.InDelta(t, 100, ind.SMA20[last], 1e-9)
	assert.InDelta(t, 100, ind.SMA200[last], 1e-9)
	assert.InDelta(t, 0, ind.ATR[last], 1e-9)
}

func TestSMA(t *testing.T) {
	out := SMA([]float64{1, 2, 3, 4, 5, 6}, 3)
	require.Len(t, out, 6)
	assert.InDelta(t, 2, out[2], 1e-9)
	assert.InDelta(t, 5, out[5], 1e-9)
}
