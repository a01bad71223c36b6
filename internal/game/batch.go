package game

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"scopone-game/internal/types"
)

// BatchConfig describes a set of independent tournaments run on a worker pool.
type BatchConfig struct {
	Team1       [2]string
	Team2       [2]string
	Matches     int // per tournament
	Tournaments int
	Workers     int
	Seed        uint64 // 0 picks a time-based seed
}

// RunBatch plays cfg.Tournaments tournaments concurrently, each on its own generator,
// decider and sink, and returns their results in submission order. The first failing
// tournament cancels the rest.
func RunBatch(ctx context.Context, cfg BatchConfig, logger logrus.FieldLogger) ([]*TournamentResult, error) {
	if cfg.Tournaments < 1 {
		return nil, types.Errorf(types.ErrInvalidConfig, "batch needs at least one tournament, got %d", cfg.Tournaments)
	}
	if cfg.Workers < 1 {
		return nil, types.Errorf(types.ErrInvalidConfig, "batch needs at least one worker, got %d", cfg.Workers)
	}
	if err := validateRosters(cfg.Team1, cfg.Team2); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = NewRand(0).Uint64()
	}

	results := make([]*TournamentResult, cfg.Tournaments)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i := range cfg.Tournaments {
		// Generators are seeded from the batch seed and the tournament index so a
		// batch is reproducible regardless of scheduling.
		rng := rand.New(rand.NewPCG(seed, uint64(i)))
		g.Go(func() error {
			t, err := NewTournament(cfg.Team1, cfg.Team2, cfg.Matches, Env{
				Rng:    rng,
				Logger: logger.WithField("worker_tournament", i+1),
			})
			if err != nil {
				return err
			}
			result, err := t.Run(ctx)
			if err != nil {
				return fmt.Errorf("batch tournament %d: %w", i+1, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Infof("Batch finished: %d tournaments of %d matches", cfg.Tournaments, cfg.Matches)
	return results, nil
}
