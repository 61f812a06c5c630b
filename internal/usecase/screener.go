package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"swing-screener-backend/internal/config"
	"swing-screener-backend/internal/domain"
	"swing-screener-backend/internal/infrastructure/indicators"
	"swing-screener-backend/internal/repository"
)

// Mailer delivers the plaintext cycle summary. Best-effort.
type Mailer interface {
	IsEnabled() bool
	Send(subject, body string) error
}

// Pusher delivers push alerts to registered devices. Best-effort.
type Pusher interface {
	IsEnabled() bool
	SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) error
}

// Deps wires the screener's collaborators. Archive, Mailer, Pusher and
// Tokens may be nil; those features simply stay off.
type Deps struct {
	Universe domain.UniverseProvider
	Bars     domain.BarProvider
	Ledger   domain.LedgerStore
	Writer   domain.SnapshotWriter
	Repo     domain.SnapshotRepository
	Archive  domain.SignalArchive
	Mailer   Mailer
	Pusher   Pusher
	Tokens   *repository.TokenRepository
}

// ScreenerUsecase runs the scan cycle: universe -> market health ->
// per-ticker gating/scoring -> adaptive threshold -> ranked snapshot
// -> ledger record step -> delivery.
type ScreenerUsecase struct {
	cfg   *config.Config
	strat config.Strategy
	deps  Deps

	notified map[string]time.Time // push cooldown per ticker
	mu       sync.Mutex

	now func() time.Time
}

func NewScreenerUsecase(cfg *config.Config, deps Deps) *ScreenerUsecase {
	return &ScreenerUsecase{
		cfg:      cfg,
		strat:    cfg.ActiveStrategy(),
		deps:     deps,
		notified: make(map[string]time.Time),
		now:      time.Now,
	}
}

// RunCycle executes one full scan. Per-ticker failures are skipped,
// ledger problems degrade to zero bias, notification problems are
// swallowed. Only a failed snapshot write is returned as an error,
// since downstream consumers depend on that file's freshness.
func (uc *ScreenerUsecase) RunCycle(ctx context.Context) error {
	start := uc.now()

	tickers := uc.deps.Universe.Tickers(ctx)
	log.Info().Int("tickers", len(tickers)).Str("strategy", uc.strat.Name).Msg("starting scan cycle")

	benchmark, healthy := uc.marketHealth(ctx)

	entries, err := uc.deps.Ledger.Load()
	if err != nil {
		log.Warn().Err(err).Msg("ledger unreadable, treating as empty")
		entries = []domain.LedgerEntry{}
	}
	bias := ThresholdBias(entries, uc.strat)
	threshold := uc.strat.BaseStrictness + bias
	log.Info().Bool("marketHealthy", healthy).Int("bias", bias).Int("threshold", threshold).Msg("cycle parameters")

	var benchCloses []float64
	if benchmark != nil {
		benchCloses = benchmark.Closes()
	}

	// Fan out per-ticker evaluation, bounded, collecting by original
	// index so the final ranking never depends on completion order.
	cands := make([]*domain.Candidate, len(tickers))
	lastCloses := make([]float64, len(tickers))

	var wg sync.WaitGroup
	sem := make(chan struct{}, uc.cfg.Scan.Concurrency)
	for i, ticker := range tickers {
		wg.Add(1)
		go func(i int, ticker string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			cand, lastClose, err := uc.evaluate(ctx, ticker, healthy, benchCloses)
			if err != nil {
				log.Debug().Err(err).Str("ticker", ticker).Msg("ticker skipped")
				return
			}
			cands[i] = cand
			lastCloses[i] = lastClose
		}(i, ticker)
	}
	wg.Wait()

	closeByTicker := make(map[string]float64, len(tickers))
	var signals []domain.Candidate
	for i, c := range cands {
		if lastCloses[i] > 0 {
			closeByTicker[tickers[i]] = lastCloses[i]
		}
		if c != nil && c.Score >= threshold {
			signals = append(signals, *c)
		}
	}
	sortByScoreDesc(signals)

	snap := domain.Snapshot{
		MarketHealthy: healthy,
		Signals:       signals,
		LastUpdated:   uc.now().Format("2006-01-02 15:04:05"),
	}

	// Single ledger write per cycle: resolve open trades against the
	// closes we just fetched, then record the new top pick.
	entries = resolveOpenTrades(entries, closeByTicker)
	if len(signals) > 0 {
		entries = recordTopPick(entries, signals[0], uc.now().Format("2006-01-02"))
	}
	if err := uc.deps.Ledger.Save(entries); err != nil {
		log.Error().Err(err).Msg("ledger save failed")
	}

	if err := uc.deps.Writer.Write(snap); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	uc.deps.Repo.SaveSnapshot(snap)

	uc.notify(ctx, snap)
	uc.archive(ctx, snap, threshold, bias)

	log.Info().
		Int("signals", len(signals)).
		Dur("elapsed", uc.now().Sub(start)).
		Msg("scan cycle complete")
	return nil
}

// marketHealth fetches the benchmark and checks whether it trades
// above its long moving average. On any failure the market is assumed
// healthy so a benchmark outage cannot blank the whole scan.
func (uc *ScreenerUsecase) marketHealth(ctx context.Context) (*domain.PriceSeries, bool) {
	series, err := uc.deps.Bars.DailyBars(ctx, uc.cfg.Scan.Benchmark, uc.cfg.Scan.Lookback)
	if err != nil || series == nil || series.Len() < uc.strat.MarketSMAWindow {
		log.Warn().Err(err).Str("benchmark", uc.cfg.Scan.Benchmark).Msg("benchmark unavailable, assuming healthy market")
		return nil, true
	}
	closes := series.Closes()
	sma := indicators.SMA(closes, uc.strat.MarketSMAWindow)
	last := len(closes) - 1
	return series, closes[last] > sma[last]
}

// evaluate runs the full gate/score/classify path for one ticker.
// The last close is reported even when gates fail so the ledger
// resolution step can settle open trades.
func (uc *ScreenerUsecase) evaluate(ctx context.Context, ticker string, healthy bool, benchCloses []float64) (*domain.Candidate, float64, error) {
	series, err := uc.deps.Bars.DailyBars(ctx, ticker, uc.cfg.Scan.Lookback)
	if err != nil {
		return nil, 0, err
	}
	if series.Len() == 0 {
		return nil, 0, domain.ErrEmptySeries
	}
	lastClose := series.LastClose()

	if series.Len() < uc.strat.MinBars {
		return nil, lastClose, domain.ErrInsufficientHistory
	}

	ind, err := indicators.Compute(series)
	if err != nil {
		return nil, lastClose, err
	}

	if !passesGates(ind, uc.strat, healthy) {
		return nil, lastClose, nil
	}

	pivot, near := nearPivotHigh(ind.High, lastClose, uc.strat)
	if !near {
		return nil, lastClose, nil
	}

	score := ConfluenceScore(ind, benchCloses, uc.strat)
	pattern := ClassifyPattern(ind.High, ind.Low, uc.strat)

	last := len(ind.Close) - 1
	atr := ind.ATR[last]
	if uc.strat.TargetMode == config.TargetATR && (atr <= 0 || math.IsNaN(atr)) {
		return nil, lastClose, domain.ErrUndefinedIndicator
	}
	goal, stop := tradeLevels(lastClose, atr, uc.strat)

	return &domain.Candidate{
		Ticker:       ticker,
		Score:        score,
		Pattern:      pattern,
		CurrentPrice: round2(lastClose),
		BuyAt:        round2(pivot),
		Goal:         round2(goal),
		StopLoss:     round2(stop),
		RSI:          round2(ind.RSI[last]),
	}, lastClose, nil
}

// passesGates applies the hard per-ticker filter: trend, RSI band and
// market health must all hold at once.
func passesGates(ind *domain.IndicatorSet, strat config.Strategy, marketHealthy bool) bool {
	if !marketHealthy {
		return false
	}
	last := len(ind.Close) - 1
	if last < 0 || last >= len(ind.SMA50) || last >= len(ind.RSI) {
		return false
	}
	price, sma50, rsi := ind.Close[last], ind.SMA50[last], ind.RSI[last]
	if math.IsNaN(price) || math.IsNaN(sma50) || math.IsNaN(rsi) || sma50 <= 0 {
		return false
	}
	return price > sma50 && rsi > strat.GateRSILow && rsi < strat.GateRSIHigh
}

// nearPivotHigh checks the proximity gate: price must sit within the
// strategy's percentage of the trailing pivot high. Near a breakout,
// not merely trending.
func nearPivotHigh(highs []float64, price float64, strat config.Strategy) (float64, bool) {
	w := strat.PivotWindow
	if w <= 0 || len(highs) < w {
		return 0, false
	}
	hi := highs[len(highs)-w]
	for _, h := range highs[len(highs)-w:] {
		hi = math.Max(hi, h)
	}
	if math.IsNaN(hi) || hi <= 0 {
		return 0, false
	}
	return hi, price >= hi*(1-strat.ProximityPct)
}

// tradeLevels sizes the goal and stop, either as fixed percentages of
// price or as ATR multiples, per the strategy's mode.
func tradeLevels(price, atr float64, strat config.Strategy) (goal, stop float64) {
	if strat.TargetMode == config.TargetATR {
		return price + strat.GoalATRMult*atr, price - strat.StopATRMult*atr
	}
	return price * (1 + strat.GoalPct), price * (1 - strat.StopPct)
}

// resolveOpenTrades settles open ledger entries whose goal or stop was
// touched by the latest close.
func resolveOpenTrades(entries []domain.LedgerEntry, lastClose map[string]float64) []domain.LedgerEntry {
	for i, e := range entries {
		if e.Status != domain.TradeOpen {
			continue
		}
		price, ok := lastClose[e.Ticker]
		if !ok || price <= 0 {
			continue
		}
		switch {
		case price >= e.Goal:
			entries[i].Status = domain.TradeWin
		case price <= e.Stop:
			entries[i].Status = domain.TradeLoss
		}
	}
	return entries
}

// recordTopPick appends the cycle's best candidate unless an open
// trade for that ticker already exists.
func recordTopPick(entries []domain.LedgerEntry, top domain.Candidate, date string) []domain.LedgerEntry {
	for _, e := range entries {
		if e.Ticker == top.Ticker && e.Status == domain.TradeOpen {
			return entries
		}
	}
	return append(entries, domain.LedgerEntry{
		Ticker:     top.Ticker,
		EntryPrice: top.CurrentPrice,
		Goal:       top.Goal,
		Stop:       top.StopLoss,
		Date:       date,
		Status:     domain.TradeOpen,
	})
}

// sortByScoreDesc ranks highest score first. Stable, so ties keep
// their universe order and identical inputs always rank identically.
func sortByScoreDesc(signals []domain.Candidate) {
	sort.SliceStable(signals, func(i, j int) bool {
		return signals[i].Score > signals[j].Score
	})
}

func (uc *ScreenerUsecase) archive(ctx context.Context, snap domain.Snapshot, threshold, bias int) {
	if uc.deps.Archive == nil {
		return
	}
	if err := uc.deps.Archive.SaveCycle(ctx, snap, threshold, bias); err != nil {
		log.Warn().Err(err).Msg("signal archive insert failed")
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
