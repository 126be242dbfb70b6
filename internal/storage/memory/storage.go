package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/padelmixer/padelmixer-admin/internal/dependencies/clock"
	"github.com/padelmixer/padelmixer-admin/internal/dependencies/random"
	"github.com/padelmixer/padelmixer-admin/internal/model"
	"github.com/padelmixer/padelmixer-admin/internal/storage"
)

// DefaultLatency is the simulated round trip of every operation
const DefaultLatency = 300 * time.Millisecond

// Config holds the simulation settings of the in-memory backing
type Config struct {
	// Latency is applied before every operation, plus up to Jitter of random extra delay
	Latency time.Duration
	Jitter  time.Duration

	// Players is the initial directory content
	Players []model.Player

	// Dependencies is the dependent count table consulted on delete
	Dependencies map[model.PlayerID]model.Dependencies

	// Lookup, if set, replaces the Dependencies table
	Lookup storage.DependencyLookup
}

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players      []model.Player
	dependencies map[model.PlayerID]model.Dependencies
	lookup       storage.DependencyLookup

	clock   clock.Clock
	random  random.Random
	latency time.Duration
	jitter  time.Duration
}

// New creates a new in-memory storage instance
func New(clk clock.Clock, rnd random.Random, cfg Config) *Storage {
	deps := make(map[model.PlayerID]model.Dependencies, len(cfg.Dependencies))
	for id, d := range cfg.Dependencies {
		deps[id] = d
	}
	players := slices.Clone(cfg.Players)
	slices.SortFunc(players, func(a, b model.Player) int { return cmp.Compare(a.ID, b.ID) })

	return &Storage{
		players:      players,
		dependencies: deps,
		lookup:       cfg.Lookup,
		clock:        clk,
		random:       rnd,
		latency:      cfg.Latency,
		jitter:       cfg.Jitter,
	}
}

// NewSeeded creates a storage holding the sample directory
func NewSeeded(clk clock.Clock, rnd random.Random, latency, jitter time.Duration) *Storage {
	return New(clk, rnd, Config{
		Latency:      latency,
		Jitter:       jitter,
		Players:      storage.SeedPlayers(),
		Dependencies: storage.SeedDependencies(),
	})
}

// Ensure Storage implements the interfaces
var (
	_ storage.Storage          = (*Storage)(nil)
	_ storage.DependencyLookup = (*Storage)(nil)
)

func (s *Storage) delay(ctx context.Context) error {
	return s.clock.Sleep(ctx, s.latency+random.Jitter(s.random, s.jitter))
}

// indexOf must be called with the lock held
func (s *Storage) indexOf(id model.PlayerID) int {
	return slices.IndexFunc(s.players, func(p model.Player) bool { return p.ID == id })
}

func (s *Storage) FetchAll(ctx context.Context) ([]model.Player, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.players), nil
}

func (s *Storage) FetchOne(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, model.ErrPlayerNotFound
	}
	player := s.players[idx]
	return &player, nil
}

func (s *Storage) Create(ctx context.Context, form model.PlayerForm) (*model.Player, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var next model.PlayerID = 1
	for _, p := range s.players {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	player := model.NewPlayer(next, form, s.clock.Now().UTC())
	s.players = append(s.players, player)
	return &player, nil
}

func (s *Storage) Update(ctx context.Context, id model.PlayerID, patch model.PlayerPatch) (*model.Player, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, model.ErrPlayerNotFound
	}
	updated := patch.Apply(s.players[idx])
	s.players[idx] = updated
	return &updated, nil
}

func (s *Storage) Delete(ctx context.Context, id model.PlayerID) error {
	if err := s.delay(ctx); err != nil {
		return err
	}

	var deps model.Dependencies
	if s.lookup != nil {
		if !s.exists(id) {
			return model.ErrPlayerNotFound
		}
		var err error
		if deps, err = s.lookup.Dependencies(ctx, id); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return model.ErrPlayerNotFound
	}
	if s.lookup == nil {
		deps = s.dependencies[id]
	}
	if restriction := deps.Restriction(); restriction != nil {
		return restriction
	}
	s.players = slices.Delete(s.players, idx, idx+1)
	delete(s.dependencies, id)
	return nil
}

func (s *Storage) exists(id model.PlayerID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id) >= 0
}

// Dependencies returns the dependent counts recorded for a player
func (s *Storage) Dependencies(ctx context.Context, id model.PlayerID) (model.Dependencies, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dependencies[id], nil
}

// SetDependencies records the dependent counts of a player
func (s *Storage) SetDependencies(id model.PlayerID, deps model.Dependencies) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dependencies[id] = deps
}
