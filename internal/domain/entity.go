package domain

import "time"

// Pattern is the chart-shape label attached to a candidate.
// The set is closed; ClassifyPattern always returns one of these.
type Pattern string

const (
	PatternPennant  Pattern = "PENNANT"
	PatternFlag     Pattern = "FLAG"
	PatternBreakout Pattern = "BREAKOUT"
)

// Trade statuses stored in the ledger. Entries start "open" and are
// moved to "win" or "loss" by the resolution step once price reaches
// the goal or the stop.
const (
	TradeOpen = "open"
	TradeWin  = "win"
	TradeLoss = "loss"
)

// Bar is one daily OHLCV candle.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries is the chronological daily history for one instrument.
// Built once at ingestion (null points already dropped) and discarded
// after the instrument is evaluated.
type PriceSeries struct {
	Ticker string
	Bars   []Bar
}

func (s *PriceSeries) Len() int { return len(s.Bars) }

func (s *PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Close
	}
	return out
}

func (s *PriceSeries) Highs() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.High
	}
	return out
}

func (s *PriceSeries) Lows() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Low
	}
	return out
}

func (s *PriceSeries) Volumes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Volume
	}
	return out
}

// LastClose returns the most recent closing price, or 0 for an empty series.
func (s *PriceSeries) LastClose() float64 {
	if len(s.Bars) == 0 {
		return 0
	}
	return s.Bars[len(s.Bars)-1].Close
}

// IndicatorSet carries the derived series for one instrument, each
// aligned index-for-index with the source bars. Values inside an
// indicator's warm-up window are zero and must not be read; the
// calculator refuses to build a set shorter than the longest window.
type IndicatorSet struct {
	Close  []float64
	High   []float64
	Low    []float64
	Volume []float64

	SMA20  []float64
	SMA50  []float64
	SMA150 []float64
	SMA200 []float64
	RSI    []float64
	ATR    []float64
}

// Candidate is one instrument's evaluation result for a cycle.
// Immutable once appended to the ranked output.
type Candidate struct {
	Ticker       string  `json:"ticker"`
	Score        int     `json:"score"`
	Pattern      Pattern `json:"pattern"`
	CurrentPrice float64 `json:"currentPrice"`
	BuyAt        float64 `json:"buyAt"`
	Goal         float64 `json:"goal"`
	StopLoss     float64 `json:"stopLoss"`
	RSI          float64 `json:"rsi"`
}

// LedgerEntry is one historical top-pick trade. Field names match the
// on-disk ledger format.
type LedgerEntry struct {
	Ticker     string  `json:"ticker"`
	EntryPrice float64 `json:"entry_price"`
	Goal       float64 `json:"goal"`
	Stop       float64 `json:"stop"`
	Date       string  `json:"date"`
	Status     string  `json:"status"`
}

// Snapshot is the published result of one scan cycle, highest score first.
type Snapshot struct {
	MarketHealthy bool        `json:"marketHealthy"`
	Signals       []Candidate `json:"signals"`
	LastUpdated   string      `json:"lastUpdated"`
}
