package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"scopone-game/internal/agent"
	"scopone-game/internal/config"
	"scopone-game/internal/game"
	"scopone-game/internal/logging"
	"scopone-game/internal/presenter"
	"scopone-game/internal/results"
	"scopone-game/internal/server"
	"scopone-game/internal/stats"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(2)
	}
	log := logging.New(cfg.LogLevel)
	if !cfg.IsDevelopment() {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("Simulation failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	log.WithFields(logrus.Fields{
		"team1":       cfg.Team1,
		"team2":       cfg.Team2,
		"matches":     cfg.Matches,
		"tournaments": cfg.Tournaments,
		"environment": cfg.Environment,
	}).Info("Starting Scopone simulator")

	store := results.New()
	sinks := game.Multi{store.Sink(log)}

	switch cfg.Output {
	case config.OutputText:
		sinks = append(sinks, presenter.NewText(os.Stdout))
	case config.OutputJSON:
		sinks = append(sinks, presenter.NewJSON(os.Stdout, log))
	case config.OutputNone:
		sinks = append(sinks, presenter.NewSummary(os.Stdout))
	}

	if cfg.SpectatorAddr != "" {
		hub := server.NewHub(log)
		go hub.Run(ctx)
		sinks = append(sinks, hub)

		srv := &http.Server{Addr: cfg.SpectatorAddr, Handler: server.NewMux(hub, store, log)}
		go func() {
			log.Infof("Spectator server listening on %s", cfg.SpectatorAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("Spectator server stopped")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	if cfg.BatchDropsEvents() {
		log.Warn("Batch mode streams no events: JSON output and spectators only get aggregate results")
	}

	if cfg.Batch() {
		if err := runBatch(ctx, cfg, store, log); err != nil {
			return err
		}
	} else if err := runSingle(ctx, cfg, sinks, log); err != nil {
		return err
	}

	if cfg.SpectatorAddr != "" {
		log.Infof("Results served on %s/api/results, press Ctrl+C to exit", cfg.SpectatorAddr)
		<-ctx.Done()
	}
	return nil
}

// runSingle plays one tournament with every sink attached, seating the human if any.
func runSingle(ctx context.Context, cfg *config.Config, sink game.Sink, log *logrus.Logger) error {
	rng := game.NewRand(cfg.Seed)
	seats := agent.NewSeats(agent.NewRandom(rng))

	tour, err := game.NewTournament(cfg.Team1, cfg.Team2, cfg.Matches, game.Env{
		Rng:     rng,
		Decider: seats,
		Sink:    sink,
		Logger:  log,
	})
	if err != nil {
		return err
	}

	if cfg.Interactive() {
		for _, p := range tour.Players() {
			if p.Name == cfg.Human {
				seats.Assign(p, agent.NewInteractive(os.Stdin, os.Stdout))
			}
		}
	}

	_, err = tour.Run(ctx)
	return err
}

// runBatch plays independent tournaments on the worker pool and prints aggregate stats.
func runBatch(ctx context.Context, cfg *config.Config, store *results.Store, log *logrus.Logger) error {
	all, err := game.RunBatch(ctx, game.BatchConfig{
		Team1:       cfg.Team1,
		Team2:       cfg.Team2,
		Matches:     cfg.Matches,
		Tournaments: cfg.Tournaments,
		Workers:     cfg.Workers,
		Seed:        cfg.Seed,
	}, log)
	if err != nil {
		return err
	}
	for _, r := range all {
		if err := store.Insert(r); err != nil {
			return err
		}
	}
	return stats.Aggregate(all).Write(os.Stdout)
}
