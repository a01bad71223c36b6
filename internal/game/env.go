package game

import (
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"scopone-game/internal/agent"
	"scopone-game/internal/logging"
	"scopone-game/internal/shared"
)

// Env carries the collaborators shared by every controller of one tournament.
// It must not be shared between tournaments running concurrently.
type Env struct {
	Rng     *rand.Rand
	Decider agent.Decider // defaults to agent.Random on Rng
	Sink    Sink          // defaults to Discard
	Logger  logrus.FieldLogger
}

// NewRand returns a PCG-backed generator. A zero seed picks a time-based one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (e Env) withDefaults() Env {
	if e.Rng == nil {
		e.Rng = NewRand(0)
	}
	if e.Decider == nil {
		e.Decider = agent.NewRandom(e.Rng)
	}
	if e.Sink == nil {
		e.Sink = Discard
	}
	if e.Logger == nil {
		e.Logger = logging.Discard()
	}
	return e
}

// Roster lists the four players in fixed order: team 0 then team 1, each in seat order.
// Hands and matches refer to players by index into it.
func Roster(teams [2]*shared.Team) [shared.NumSeats]*shared.Player {
	return [shared.NumSeats]*shared.Player{
		teams[0].Players[0], teams[0].Players[1],
		teams[1].Players[0], teams[1].Players[1],
	}
}
