package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/repository"
)

var errMissingCell = errors.New("row and col are required")

type gameUseCase interface {
	CreateGame(ctx context.Context, difficulty string) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, row, col int) (*entity.Game, error)
	RestartGame(ctx context.Context, gameID, difficulty string) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error
}

type difficultyRequest struct {
	Difficulty string `json:"difficulty"`
}

type moveRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger *slog.Logger
	games  gameUseCase
}

func newHandlers(logger *slog.Logger, games gameUseCase) *handlers {
	return &handlers{
		logger: logger.With("component", "rest"),
		games:  games,
	}
}

func (that *handlers) ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) createGame(w http.ResponseWriter, r *http.Request) {
	var req difficultyRequest
	if err := decodeOptional(r, &req); err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	game, err := that.games.CreateGame(r.Context(), req.Difficulty)
	if err != nil {
		that.handleError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, game)
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.handleError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) makeTurn(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	if req.Row == nil || req.Col == nil {
		that.writeError(w, http.StatusBadRequest, errMissingCell)
		return
	}

	game, err := that.games.MakeTurn(r.Context(), chi.URLParam(r, "id"), *req.Row, *req.Col)
	if err != nil {
		that.handleError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) restartGame(w http.ResponseWriter, r *http.Request) {
	var req difficultyRequest
	if err := decodeOptional(r, &req); err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	game, err := that.games.RestartGame(r.Context(), chi.URLParam(r, "id"), req.Difficulty)
	if err != nil {
		that.handleError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.games.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleError maps domain errors onto status codes.
func (that *handlers) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		that.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, apperror.ErrIllegalMove), errors.Is(err, apperror.ErrNoLegalMoves):
		that.writeError(w, http.StatusConflict, err)
	case errors.Is(err, entity.ErrUnknownDifficulty):
		that.writeError(w, http.StatusBadRequest, err)
	default:
		that.logger.Error("request failed", "error", err)
		that.writeError(w, http.StatusInternalServerError, err)
	}
}

func (that *handlers) writeError(w http.ResponseWriter, status int, err error) {
	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

// decodeOptional - an empty body leaves v untouched.
func decodeOptional(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}

	return err
}
