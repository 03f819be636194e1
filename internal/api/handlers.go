// Package api exposes the game lifecycle over HTTP and a websocket push
// channel. Every mutating route is POST so browser clients stay inside the
// CORS simple-request rules.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kapu/chesslink/internal/lifecycle"
	"github.com/kapu/chesslink/internal/msgcat"
	"github.com/kapu/chesslink/internal/obslog"
	"github.com/kapu/chesslink/internal/push"
	"github.com/kapu/chesslink/internal/validate"
	"github.com/kapu/chesslink/pkg/gamedto"
)

// Request schemas. Validation fails closed: any missing field, type
// mismatch, or malformed identifier rejects the whole body.
var (
	createGameSchema = validate.Object()
	joinGameSchema   = validate.Object(
		validate.Required("game_id", validate.String(validate.GameID)),
	)
	getGameSchema = validate.Object(
		validate.Required("game_id", validate.String(validate.GameID)),
		validate.Required("password", validate.String(validate.Password)),
	)
	makeMoveSchema = validate.Object(
		validate.Required("game_id", validate.String(validate.GameID)),
		validate.Required("password", validate.String(validate.Password)),
		validate.Required("move", validate.String(validate.MoveText)),
	)
	checkTurnSchema = getGameSchema
	registerSchema  = getGameSchema
)

type Handlers struct {
	svc    *lifecycle.Service
	hub    *push.Hub
	msgs   *msgcat.Catalog
	logger *zap.Logger
}

func NewHandlers(svc *lifecycle.Service, hub *push.Hub, msgs *msgcat.Catalog) *Handlers {
	return &Handlers{svc: svc, hub: hub, msgs: msgs, logger: obslog.L()}
}

func (h *Handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.decode(w, r, createGameSchema); !ok {
		return
	}
	created, err := h.svc.Create(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, gamedto.CreateGameResponse{
		GameID:            created.GameID,
		PlayerOneUsername: created.PlayerOneUsername,
		PlayerOnePassword: created.PlayerOnePassword,
	})
}

func (h *Handlers) JoinGame(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decode(w, r, joinGameSchema)
	if !ok {
		return
	}
	joined, err := h.svc.Join(r.Context(), body["game_id"].(string))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, gamedto.JoinGameResponse{
		GameID:            joined.GameID,
		PlayerTwoUsername: joined.PlayerTwoUsername,
		PlayerTwoPassword: joined.PlayerTwoPassword,
	})
}

func (h *Handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decode(w, r, getGameSchema)
	if !ok {
		return
	}
	view, err := h.svc.Get(r.Context(), body["game_id"].(string), body["password"].(string))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stateResponse(view))
}

func (h *Handlers) MakeMove(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decode(w, r, makeMoveSchema)
	if !ok {
		return
	}
	view, err := h.svc.Move(r.Context(),
		body["game_id"].(string), body["password"].(string), body["move"].(string))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stateResponse(view))
}

// IsItMyTurn answers 200 when the caller moves next and 204 otherwise, so
// pollers can branch on the status code alone.
func (h *Handlers) IsItMyTurn(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decode(w, r, checkTurnSchema)
	if !ok {
		return
	}
	mine, err := h.svc.CheckTurn(r.Context(), body["game_id"].(string), body["password"].(string))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if mine {
		h.writeJSON(w, http.StatusOK, struct{}{})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func stateResponse(view *lifecycle.GameView) gamedto.GameStateResponse {
	return gamedto.GameStateResponse{
		GameID:       view.GameID,
		WhoseTurn:    view.WhoseTurn,
		Pieces:       view.Pieces,
		LegalMoves:   view.LegalMoves,
		PlayerID:     view.PlayerID,
		EnPassant:    view.EnPassant,
		PreviousMove: view.PreviousMove,
		Graveyard:    view.Graveyard,
		PieceTaken:   view.PieceTaken,
	}
}

// decode parses the JSON body and applies the schema, answering 400 itself
// on failure.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, schema *validate.Schema) (map[string]any, bool) {
	var raw any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "errors.bad_request")
		return nil, false
	}
	accepted, ok := validate.Apply(raw, schema)
	if !ok {
		h.writeMessage(w, http.StatusBadRequest, "errors.bad_request")
		return nil, false
	}
	return accepted.(map[string]any), true
}

func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrGameNotFound):
		h.writeMessage(w, http.StatusNotFound, "errors.not_found")
	case errors.Is(err, lifecycle.ErrNotAllowed):
		h.writeMessage(w, http.StatusUnauthorized, "errors.not_allowed")
	case errors.Is(err, lifecycle.ErrAlreadyJoined):
		h.writeMessage(w, http.StatusBadRequest, "errors.already_joined")
	case errors.Is(err, lifecycle.ErrUsernameRejected):
		h.writeMessage(w, http.StatusBadRequest, "errors.username_rejected")
	case errors.Is(err, lifecycle.ErrNotYourTurn):
		h.writeMessage(w, http.StatusInternalServerError, "errors.not_your_turn")
	case errors.Is(err, lifecycle.ErrIllegalMove), errors.Is(err, lifecycle.ErrCorrupted):
		h.writeMessage(w, http.StatusInternalServerError, "errors.corrupted")
	case errors.Is(err, lifecycle.ErrConflict):
		h.writeMessage(w, http.StatusConflict, "errors.conflict")
	case errors.Is(err, lifecycle.ErrStorage):
		h.writeMessage(w, http.StatusInsufficientStorage, "errors.storage")
	default:
		h.logger.Error("unmapped handler error", zap.Error(err))
		h.writeMessage(w, http.StatusInternalServerError, "errors.internal")
	}
}

func (h *Handlers) writeMessage(w http.ResponseWriter, status int, key string) {
	h.writeJSON(w, status, gamedto.ErrorResponse{Message: h.msgs.MustRender(key, nil)})
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn("response write failed", zap.Error(err))
	}
}
