package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/padelmixer/padelmixer-admin/internal/dependencies/clock"
	"github.com/padelmixer/padelmixer-admin/internal/model"
	"github.com/padelmixer/padelmixer-admin/internal/storage"
)

// ErrContention is returned when id assignment keeps losing optimistic-lock races
var ErrContention = errors.New("too many concurrent writers")

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	clock  clock.Clock
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config, clk clock.Clock) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(client, clk, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, clk clock.Clock, cfg Config) *Storage {
	if cfg.MaxCreateRetries <= 0 {
		cfg.MaxCreateRetries = DefaultConfig().MaxCreateRetries
	}
	return &Storage{
		client: client,
		clock:  clk,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interfaces
var (
	_ storage.Storage          = (*Storage)(nil)
	_ storage.DependencyLookup = (*Storage)(nil)
)

func (s *Storage) FetchAll(ctx context.Context) ([]model.Player, error) {
	ids, err := s.client.ZRange(ctx, playerIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []model.Player{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt player index entry %q: %w", raw, err)
		}
		keys = append(keys, playerKey(model.PlayerID(id)))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]model.Player, 0, len(values))
	for _, v := range values {
		data, ok := v.(string)
		if !ok {
			// indexed but deleted concurrently
			continue
		}
		var player model.Player
		if err := json.Unmarshal([]byte(data), &player); err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	return players, nil
}

func (s *Storage) FetchOne(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return getPlayer(ctx, s.client, id)
}

// stringGetter is satisfied by both *redis.Client and *redis.Tx
type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func getPlayer(ctx context.Context, c stringGetter, id model.PlayerID) (*model.Player, error) {
	data, err := c.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// Create assigns max id + 1 under WATCH on the index so concurrent creators
// never hand out the same id.
func (s *Storage) Create(ctx context.Context, form model.PlayerForm) (*model.Player, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	var created model.Player
	txf := func(tx *redis.Tx) error {
		top, err := tx.ZRevRangeWithScores(ctx, playerIndexKey(), 0, 0).Result()
		if err != nil {
			return err
		}
		next := model.PlayerID(1)
		if len(top) > 0 {
			next = model.PlayerID(top[0].Score) + 1
		}

		created = model.NewPlayer(next, form, s.clock.Now().UTC())
		data, err := json.Marshal(created)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, playerKey(next), data, 0)
			pipe.ZAdd(ctx, playerIndexKey(), redis.Z{Score: float64(next), Member: strconv.FormatInt(int64(next), 10)})
			return nil
		})
		return err
	}

	for i := 0; i < s.cfg.MaxCreateRetries; i++ {
		err := s.client.Watch(ctx, txf, playerIndexKey())
		if err == nil {
			return &created, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, ErrContention
}

func (s *Storage) Update(ctx context.Context, id model.PlayerID, patch model.PlayerPatch) (*model.Player, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var updated model.Player
	txf := func(tx *redis.Tx) error {
		current, err := getPlayer(ctx, tx, id)
		if err != nil {
			return err
		}
		updated = patch.Apply(*current)
		data, err := json.Marshal(updated)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, playerKey(id), data, 0)
			return nil
		})
		return err
	}

	if err := s.client.Watch(ctx, txf, playerKey(id)); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Storage) Delete(ctx context.Context, id model.PlayerID) error {
	exists, err := s.client.Exists(ctx, playerKey(id)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrPlayerNotFound
	}

	deps, err := s.Dependencies(ctx, id)
	if err != nil {
		return err
	}
	if restriction := deps.Restriction(); restriction != nil {
		return restriction
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, playerKey(id), dependenciesKey(id))
		pipe.ZRem(ctx, playerIndexKey(), strconv.FormatInt(int64(id), 10))
		return nil
	})
	return err
}

// Dependencies reads the dependent counts of a player. Missing fields count as zero.
func (s *Storage) Dependencies(ctx context.Context, id model.PlayerID) (model.Dependencies, error) {
	fields, err := s.client.HGetAll(ctx, dependenciesKey(id)).Result()
	if err != nil {
		return model.Dependencies{}, err
	}

	count := func(field string) int {
		n, _ := strconv.Atoi(fields[field])
		return n
	}
	return model.Dependencies{
		Matches:      count(fieldMatches),
		Tournaments:  count(fieldTournaments),
		Reservations: count(fieldReservations),
	}, nil
}

// SetDependencies records the dependent counts of a player
func (s *Storage) SetDependencies(ctx context.Context, id model.PlayerID, deps model.Dependencies) error {
	return s.client.HSet(ctx, dependenciesKey(id),
		fieldMatches, deps.Matches,
		fieldTournaments, deps.Tournaments,
		fieldReservations, deps.Reservations,
	).Err()
}

// SeedIfEmpty loads players and their dependent counts when the directory
// holds no players yet. It reports whether anything was written.
func (s *Storage) SeedIfEmpty(ctx context.Context, players []model.Player, deps map[model.PlayerID]model.Dependencies) (bool, error) {
	n, err := s.client.ZCard(ctx, playerIndexKey()).Result()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, p := range players {
			data, err := json.Marshal(p)
			if err != nil {
				return err
			}
			pipe.Set(ctx, playerKey(p.ID), data, 0)
			pipe.ZAdd(ctx, playerIndexKey(), redis.Z{Score: float64(p.ID), Member: strconv.FormatInt(int64(p.ID), 10)})
		}
		for id, d := range deps {
			pipe.HSet(ctx, dependenciesKey(id),
				fieldMatches, d.Matches,
				fieldTournaments, d.Tournaments,
				fieldReservations, d.Reservations,
			)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
