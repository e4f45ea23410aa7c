package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/mindgrid/mindgrid-server/internal/api/apierr"
	"github.com/mindgrid/mindgrid-server/internal/api/middleware"
	"github.com/mindgrid/mindgrid-server/internal/api/request"
	"github.com/mindgrid/mindgrid-server/internal/api/response"
	"github.com/mindgrid/mindgrid-server/internal/services/session"
)

// GameHandler handles game-session endpoints
type GameHandler struct {
	sessionService *session.Service
	logger         *slog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(sessionService *session.Service, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		sessionService: sessionService,
		logger:         logger,
	}
}

// Start handles POST /api/v1/games
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	identity := middleware.MustGetIdentity(r.Context())

	var req request.StartGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, h.logger, apierr.NewInvalidArgumentError("invalid request body"))
		return
	}

	game, err := h.sessionService.Start(r.Context(), identity.Subject, req.Difficulty)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StartGameResponse{
		OK:          true,
		Difficulty:  game.Difficulty,
		CurrentGame: game,
	})
}

// Finish handles POST /api/v1/games/finish. The body is optional: an
// empty or absent body means "settle from server-held state".
func (h *GameHandler) Finish(w http.ResponseWriter, r *http.Request) {
	identity := middleware.MustGetIdentity(r.Context())

	var req request.FinishGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, h.logger, apierr.NewInvalidArgumentError("invalid request body"))
		return
	}

	result, err := h.sessionService.Finish(r.Context(), identity.Subject, session.Report{
		CurrentMove:      req.CurrentMove,
		Incorrects:       req.Incorrects,
		TimeSeconds:      req.TimeSeconds,
		RiskMode:         req.RiskMode,
		WalkedAway:       req.WalkedAway,
		Lost:             req.Lost,
		HasCompletedBase: req.HasCompletedBase,
	})
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, response.FinishGameResponseFromResult(result))
}
