// Package directory keeps the in-process view of the player directory in sync
// with its backing store and publishes every change.
package directory

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/padelmixer/padelmixer-admin/internal/model"
	"github.com/padelmixer/padelmixer-admin/internal/observe"
	"github.com/padelmixer/padelmixer-admin/internal/storage"
	"github.com/padelmixer/padelmixer-admin/internal/textutil"
)

// State is a snapshot of the directory
type State struct {
	Records   []model.Player
	Loading   bool
	LastError string
}

func (s State) clone() State {
	s.Records = slices.Clone(s.Records)
	return s
}

// Service manages the player collection. Mutations are serialized; each one
// publishes its resulting state before the next may start.
type Service struct {
	store  storage.Storage
	logger *slog.Logger

	mu    sync.Mutex
	state State

	subject *observe.Subject[State]
}

// New creates a directory over store. The collection starts empty until LoadAll.
func New(store storage.Storage, logger *slog.Logger) *Service {
	initial := State{Records: []model.Player{}}
	return &Service{
		store:   store,
		logger:  logger.With(slog.String("component", "directory")),
		state:   initial,
		subject: observe.NewSubject(initial, State.clone),
	}
}

// State returns the latest published snapshot
func (s *Service) State() State {
	return s.subject.Current()
}

// Records returns a copy of the current collection
func (s *Service) Records() []model.Player {
	return s.subject.Current().Records
}

// Loading reports whether a load is in flight
func (s *Service) Loading() bool {
	return s.subject.Current().Loading
}

// LastError returns the message of the most recent failure, or ""
func (s *Service) LastError() string {
	return s.subject.Current().LastError
}

// Subscribe returns a subscription delivering every state change
func (s *Service) Subscribe() *observe.Subscription[State] {
	return s.subject.Subscribe()
}

// publish must be called with mu held
func (s *Service) publish() {
	s.subject.Publish(s.state.clone())
}

// fail records err as the last error and returns it. Must be called with mu held.
func (s *Service) fail(op string, err error) error {
	s.state.Loading = false
	s.state.LastError = fmt.Sprintf("%s: %s", op, err.Error())
	s.publish()
	s.logger.Warn("directory operation failed",
		slog.String("op", op),
		slog.String("error", err.Error()))
	return fmt.Errorf("%s: %w", op, err)
}

// LoadAll replaces the collection with the backing store's content.
// On failure the previous collection is kept.
func (s *Service) LoadAll(ctx context.Context) ([]model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Loading = true
	s.state.LastError = ""
	s.publish()

	records, err := s.store.FetchAll(ctx)
	if err != nil {
		return nil, s.fail("failed to load players", err)
	}

	s.state.Records = records
	s.state.Loading = false
	s.publish()
	s.logger.Debug("players loaded", slog.Int("count", len(records)))
	return slices.Clone(records), nil
}

// Get fetches a single player without touching the collection
func (s *Service) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.store.FetchOne(ctx, id)
	if err != nil {
		return nil, s.fail(fmt.Sprintf("failed to get player %d", id), err)
	}
	return player, nil
}

// Create registers a new player and appends it to the collection
func (s *Service) Create(ctx context.Context, form model.PlayerForm) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := form.Validate(); err != nil {
		return nil, s.fail("failed to create player", err)
	}

	player, err := s.store.Create(ctx, form)
	if err != nil {
		return nil, s.fail("failed to create player", err)
	}

	s.state.Records = append(slices.Clone(s.state.Records), *player)
	s.publish()
	s.logger.Info("player created", slog.Int64("player_id", int64(player.ID)))
	return player, nil
}

// Update merges patch into the player and replaces it in the collection
func (s *Service) Update(ctx context.Context, id model.PlayerID, patch model.PlayerPatch) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	op := fmt.Sprintf("failed to update player %d", id)
	if err := patch.Validate(); err != nil {
		return nil, s.fail(op, err)
	}

	player, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return nil, s.fail(op, err)
	}

	records := slices.Clone(s.state.Records)
	if idx := slices.IndexFunc(records, func(p model.Player) bool { return p.ID == id }); idx >= 0 {
		records[idx] = *player
	}
	s.state.Records = records
	s.publish()
	s.logger.Info("player updated", slog.Int64("player_id", int64(id)))
	return player, nil
}

// Delete removes a player. A missing player yields model.ErrPlayerNotFound;
// a referenced one yields *model.DeleteRestrictionError and stays.
func (s *Service) Delete(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		return s.fail(fmt.Sprintf("failed to delete player %d", id), err)
	}

	s.state.Records = slices.DeleteFunc(slices.Clone(s.state.Records), func(p model.Player) bool { return p.ID == id })
	s.publish()
	s.logger.Info("player deleted", slog.Int64("player_id", int64(id)))
	return nil
}

// ClearError resets the last error
func (s *Service) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.LastError == "" {
		return
	}
	s.state.LastError = ""
	s.publish()
}

// Search returns the players whose first name, last name or email contains
// term, ignoring case and accents. A blank term returns everyone.
func (s *Service) Search(term string) []model.Player {
	records := s.Records()
	if textutil.IsBlank(term) {
		return records
	}
	return filter(records, func(p model.Player) bool {
		return textutil.Contains(p.FirstName, term) ||
			textutil.Contains(p.LastName, term) ||
			textutil.Contains(p.Email, term)
	})
}

// FilterByLevel returns the players at level, or everyone when level is nil
func (s *Service) FilterByLevel(level *model.SkillLevel) []model.Player {
	records := s.Records()
	if level == nil {
		return records
	}
	return filter(records, func(p model.Player) bool { return p.SkillLevel == *level })
}

// ActiveOnly returns the active players
func (s *Service) ActiveOnly() []model.Player {
	return filter(s.Records(), func(p model.Player) bool { return p.Active })
}

func filter(records []model.Player, keep func(model.Player) bool) []model.Player {
	out := make([]model.Player, 0, len(records))
	for _, p := range records {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
