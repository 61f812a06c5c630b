package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"swing-screener-backend/internal/domain"
)

// How long a ticker stays muted after a push alert went out for it.
const pushCooldown = 12 * time.Hour

// notify fans the cycle result out to email and push. Both paths are
// best-effort and only fire when at least one signal was produced.
func (uc *ScreenerUsecase) notify(ctx context.Context, snap domain.Snapshot) {
	if len(snap.Signals) == 0 {
		return
	}

	if uc.deps.Mailer != nil && uc.deps.Mailer.IsEnabled() {
		subject := fmt.Sprintf("Swing Scan: %d opportunities found", len(snap.Signals))
		if err := uc.deps.Mailer.Send(subject, composeSummary(snap)); err != nil {
			log.Warn().Err(err).Msg("summary email failed")
		} else {
			log.Info().Int("signals", len(snap.Signals)).Msg("summary email sent")
		}
	}

	uc.sendPushAlerts(ctx, snap)
}

// composeSummary renders the plaintext digest for the email body.
func composeSummary(snap domain.Snapshot) string {
	var b strings.Builder

	health := "Healthy"
	if !snap.MarketHealthy {
		health = "Cautious"
	}
	fmt.Fprintf(&b, "Market: %s\n", health)
	fmt.Fprintf(&b, "Updated: %s\n\n", snap.LastUpdated)

	for _, sig := range snap.Signals {
		fmt.Fprintf(&b, "%s [%s] score %d\n", sig.Ticker, sig.Pattern, sig.Score)
		fmt.Fprintf(&b, "  price %.2f | buy at %.2f | goal %.2f | stop %.2f | rsi %.1f\n",
			sig.CurrentPrice, sig.BuyAt, sig.Goal, sig.StopLoss, sig.RSI)
	}

	return b.String()
}

// sendPushAlerts pushes the top signals to registered devices, muting
// tickers that were alerted recently so repeat cycles don't spam.
func (uc *ScreenerUsecase) sendPushAlerts(ctx context.Context, snap domain.Snapshot) {
	if uc.deps.Pusher == nil || !uc.deps.Pusher.IsEnabled() || uc.deps.Tokens == nil {
		return
	}
	tokens := uc.deps.Tokens.GetAllTokens()
	if len(tokens) == 0 {
		return
	}

	now := uc.now()
	for _, sig := range snap.Signals {
		uc.mu.Lock()
		lastSent, seen := uc.notified[sig.Ticker]
		if seen && now.Sub(lastSent) < pushCooldown {
			uc.mu.Unlock()
			continue
		}
		uc.notified[sig.Ticker] = now
		uc.mu.Unlock()

		title := fmt.Sprintf("%s setup: %s", sig.Pattern, sig.Ticker)
		body := fmt.Sprintf("Score %d, buy near %.2f, goal %.2f, stop %.2f",
			sig.Score, sig.BuyAt, sig.Goal, sig.StopLoss)
		data := map[string]string{
			"ticker":  sig.Ticker,
			"pattern": string(sig.Pattern),
			"score":   fmt.Sprintf("%d", sig.Score),
		}

		if err := uc.deps.Pusher.SendMulticast(ctx, tokens, title, body, data); err != nil {
			log.Warn().Err(err).Str("ticker", sig.Ticker).Msg("push alert failed")
		}
	}
}
