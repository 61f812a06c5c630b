package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"swing-screener-backend/internal/config"
	deliveryhttp "swing-screener-backend/internal/delivery/http"
	"swing-screener-backend/internal/delivery/websocket"
	"swing-screener-backend/internal/infrastructure/db"
	"swing-screener-backend/internal/infrastructure/fcm"
	"swing-screener-backend/internal/infrastructure/ledger"
	"swing-screener-backend/internal/infrastructure/mailer"
	"swing-screener-backend/internal/infrastructure/snapshot"
	"swing-screener-backend/internal/infrastructure/universe"
	"swing-screener-backend/internal/infrastructure/yahoo"
	"swing-screener-backend/internal/repository"
	"swing-screener-backend/internal/usecase"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	setupLogger(cfg.Log.Level)
	ctx := context.Background()

	// Repositories and infrastructure.
	repo := repository.NewInMemorySnapshotRepository()
	tokens := repository.NewTokenRepository()

	bars := yahoo.NewClient(yahoo.DefaultBaseURL)
	tickers := universe.NewWikipediaProvider()
	ledgerStore := ledger.NewFileStore(cfg.Scan.LedgerPath)
	writer := snapshot.NewFileWriter(cfg.Scan.OutputPath)
	mail := mailer.NewClient(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.To)

	pusher, err := fcm.NewClient(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("FCM setup failed, push alerts disabled")
		pusher = nil
	}

	deps := usecase.Deps{
		Universe: tickers,
		Bars:     bars,
		Ledger:   ledgerStore,
		Writer:   writer,
		Repo:     repo,
		Mailer:   mail,
		Tokens:   tokens,
	}
	if pusher != nil {
		deps.Pusher = pusher
	}

	// Optional Postgres archive.
	if cfg.Database.URL != "" {
		pool, err := db.NewPool(ctx, cfg.Database.URL, db.DefaultPoolConfig())
		if err != nil {
			log.Warn().Err(err).Msg("database unavailable, signal archive disabled")
		} else if err := db.Migrate(ctx, pool); err != nil {
			log.Warn().Err(err).Msg("migration failed, signal archive disabled")
			pool.Close()
		} else {
			defer pool.Close()
			deps.Archive = repository.NewPostgresSignalArchive(pool)
			log.Info().Msg("signal archive enabled")
		}
	}

	uc := usecase.NewScreenerUsecase(cfg, deps)

	// Run once on boot, then on the schedule. Overlapping runs are
	// skipped rather than queued.
	go func() {
		if err := uc.RunCycle(ctx); err != nil {
			log.Error().Err(err).Msg("initial scan failed")
		}
	}()

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(cfg.Scan.Cron, func() {
		if err := uc.RunCycle(ctx); err != nil {
			log.Error().Err(err).Msg("scheduled scan failed")
		}
	}); err != nil {
		log.Fatal().Err(err).Str("cron", cfg.Scan.Cron).Msg("invalid schedule")
	}
	c.Start()
	defer c.Stop()

	// Delivery.
	wsHandler := websocket.NewHandler(repo)
	signalsHandler := deliveryhttp.NewSignalsHandler(repo)
	tokenHandler := deliveryhttp.NewTokenHandler(tokens)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.Handle)
	mux.HandleFunc("/api/signals", signalsHandler.HandleGetSignals)
	mux.HandleFunc("/api/tokens/register", tokenHandler.HandleRegisterToken)
	mux.HandleFunc("/api/tokens/unregister", tokenHandler.HandleUnregisterToken)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info().Str("addr", addr).Str("strategy", cfg.Scan.Strategy).Msg("server listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func setupLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
