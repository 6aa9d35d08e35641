package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vncsmyrnk/hotornot/internal/core/domain"
	"github.com/vncsmyrnk/hotornot/internal/core/ports"
	"go.uber.org/zap"
)

type CarHandler struct {
	service ports.CarService
	logger  *zap.Logger
}

func NewCarHandler(service ports.CarService, logger *zap.Logger) *CarHandler {
	return &CarHandler{
		service: service,
		logger:  logger,
	}
}

type voteRequest struct {
	CarID    string `json:"car_id"`
	VoteType string `json:"vote_type"`
}

type voteResponse struct {
	Message string      `json:"message"`
	Car     *domain.Car `json:"car"`
}

func (h *CarHandler) RandomCar(w http.ResponseWriter, r *http.Request) {
	car, err := h.service.RandomCar(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, car)
}

func (h *CarHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	car, err := h.service.GetCar(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, car)
}

func (h *CarHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	car, err := h.service.Vote(r.Context(), ports.VoteInput{
		CarID:    req.CarID,
		VoteType: req.VoteType,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Debug("vote recorded",
		zap.String("car_id", car.ID.String()),
		zap.String("vote_type", req.VoteType),
		zap.Int64("hot_votes", car.HotVotes),
		zap.Int64("not_votes", car.NotVotes),
	)

	h.writeJSON(w, http.StatusOK, voteResponse{Message: "Vote recorded", Car: car})
}

func (h *CarHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	cars, err := h.service.Leaderboard(r.Context(), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if cars == nil {
		cars = []*domain.Car{}
	}

	h.writeJSON(w, http.StatusOK, cars)
}

func (h *CarHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCarID), errors.Is(err, domain.ErrInvalidVoteType):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrCarNotFound), errors.Is(err, domain.ErrNoCars):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		h.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, domain.ErrInternal.Error(), http.StatusInternalServerError)
	}
}

func (h *CarHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("failed to encode response", zap.Error(err))
	}
}
