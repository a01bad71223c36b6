package results

import (
	"slices"
	"sync"

	"github.com/sirupsen/logrus"

	"scopone-game/internal/game"
	"scopone-game/internal/types"
)

// Store keeps finished tournament results in memory, in insertion order.
type Store struct {
	m       sync.RWMutex
	results []*game.TournamentResult
	byID    map[string]*game.TournamentResult
}

func New() *Store {
	return &Store{
		byID: make(map[string]*game.TournamentResult),
	}
}

// Insert adds a result. Re-inserting an ID replaces the stored result in place.
func (s *Store) Insert(result *game.TournamentResult) error {
	if result == nil || result.ID == "" {
		return types.NewGameError(types.ErrInvalidConfig, "result must have an ID")
	}
	s.m.Lock()
	defer s.m.Unlock()

	if _, ok := s.byID[result.ID]; ok {
		i := slices.IndexFunc(s.results, func(r *game.TournamentResult) bool { return r.ID == result.ID })
		s.results[i] = result
	} else {
		s.results = append(s.results, result)
	}
	s.byID[result.ID] = result
	return nil
}

// Sink returns a sink that stores every tournament_end result it sees. Rejected
// results are logged on log.
func (s *Store) Sink(log logrus.FieldLogger) game.Sink {
	return game.SinkFunc(func(ev game.Event) {
		if ev.Kind != game.EventTournamentEnd || ev.Tournament == nil {
			return
		}
		if err := s.Insert(ev.Tournament); err != nil {
			log.WithError(err).Errorf("Cannot store result of tournament %s", ev.Scope.Tournament)
		}
	})
}

func (s *Store) Len() int {
	s.m.RLock()
	defer s.m.RUnlock()
	return len(s.results)
}

func (s *Store) GetAll() []*game.TournamentResult {
	s.m.RLock()
	defer s.m.RUnlock()
	return slices.Clone(s.results)
}

func (s *Store) GetByID(id string) (*game.TournamentResult, error) {
	s.m.RLock()
	defer s.m.RUnlock()
	result, ok := s.byID[id]
	if !ok {
		return nil, types.Errorf(types.ErrNotFound, "no tournament %q", id)
	}
	return result, nil
}

// GetByPlayer returns every tournament the player took part in.
func (s *Store) GetByPlayer(name string) ([]*game.TournamentResult, error) {
	s.m.RLock()
	defer s.m.RUnlock()

	var found []*game.TournamentResult
	for _, r := range s.results {
		if slices.Contains(r.Players(), name) {
			found = append(found, r)
		}
	}
	if len(found) == 0 {
		return nil, types.Errorf(types.ErrNotFound, "no results for player %q", name)
	}
	return found, nil
}
