// Package remote implements the player directory backing over the HTTP API.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/padelmixer/padelmixer-admin/internal/model"
	"github.com/padelmixer/padelmixer-admin/internal/storage"
	"github.com/padelmixer/padelmixer-admin/internal/transport"
)

const playersPath = "/players"

// Storage calls the /players resource through a transport client, so every
// request carries the session credential and failures come back normalized.
type Storage struct {
	client *transport.Client
}

// New creates a remote storage
func New(client *transport.Client) *Storage {
	return &Storage{client: client}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func playerPath(id model.PlayerID) string {
	return fmt.Sprintf("%s/%d", playersPath, id)
}

func (s *Storage) FetchAll(ctx context.Context) ([]model.Player, error) {
	var players []model.Player
	if err := s.client.Get(ctx, playersPath, &players); err != nil {
		return nil, translate(err)
	}
	if players == nil {
		players = []model.Player{}
	}
	return players, nil
}

func (s *Storage) FetchOne(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var player model.Player
	if err := s.client.Get(ctx, playerPath(id), &player); err != nil {
		return nil, translate(err)
	}
	return &player, nil
}

func (s *Storage) Create(ctx context.Context, form model.PlayerForm) (*model.Player, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	var player model.Player
	if err := s.client.Post(ctx, playersPath, form, &player); err != nil {
		return nil, translate(err)
	}
	return &player, nil
}

func (s *Storage) Update(ctx context.Context, id model.PlayerID, patch model.PlayerPatch) (*model.Player, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	var player model.Player
	if err := s.client.Put(ctx, playerPath(id), patch, &player); err != nil {
		return nil, translate(err)
	}
	return &player, nil
}

func (s *Storage) Delete(ctx context.Context, id model.PlayerID) error {
	if err := s.client.Delete(ctx, playerPath(id)); err != nil {
		return translate(err)
	}
	return nil
}

// restrictionBody is the 409 body sent for a blocked delete
type restrictionBody struct {
	Error model.DeleteRestrictionError `json:"error"`
}

// translate maps resource-level statuses back onto directory errors.
// Everything else is returned as the transport produced it.
func translate(err error) error {
	var terr *transport.Error
	if !errors.As(err, &terr) || terr.Kind != transport.KindServer {
		return err
	}
	switch terr.Status {
	case http.StatusNotFound:
		return model.ErrPlayerNotFound
	case http.StatusBadRequest:
		if terr.Code == "INVALID_PLAYER" {
			return fmt.Errorf("%w: %s", model.ErrInvalidPlayer, terr.Message)
		}
	case http.StatusConflict:
		var body restrictionBody
		if json.Unmarshal(terr.Body, &body) == nil && body.Error.Code != "" {
			restriction := body.Error
			return &restriction
		}
	}
	return err
}
