package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/padelmixer/padelmixer-admin/internal/api/request"
	"github.com/padelmixer/padelmixer-admin/internal/api/response"
	"github.com/padelmixer/padelmixer-admin/internal/model"
	"github.com/padelmixer/padelmixer-admin/internal/storage"
)

// PlayerHandler handles the /players resource
type PlayerHandler struct {
	players storage.Storage
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(players storage.Storage) *PlayerHandler {
	return &PlayerHandler{players: players}
}

// List handles GET /api/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.players.FetchAll(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, players)
}

// Get handles GET /api/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	player, err := h.players.FetchOne(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, player)
}

// Create handles POST /api/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePlayer
	if err := request.Decode(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	player, err := h.players.Create(r.Context(), req)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, player)
}

// Update handles PUT /api/players/{id}
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	var req request.UpdatePlayer
	if err := request.Decode(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	player, err := h.players.Update(r.Context(), id, req)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, player)
}

// Delete handles DELETE /api/players/{id}
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	if err := h.players.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

func playerID(w http.ResponseWriter, r *http.Request) (model.PlayerID, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, NewInvalidRequestError("invalid player id: "+raw))
		return 0, false
	}
	return model.PlayerID(id), true
}
