package dating

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/auth"
	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/common/utils"
)

const (
	defaultRecommendationLimit = 10
	maxRequestBody             = 1 << 20
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetCompatibility(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	otherID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	result, err := h.service.CalculateCompatibility(r.Context(), userID, otherID)
	if err != nil {
		h.respondWithServiceError(w, err, "Failed to calculate compatibility")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

func (h *Handler) GetSavedScore(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	otherID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	score, err := h.service.GetSavedScore(r.Context(), userID, otherID)
	if err != nil {
		h.respondWithServiceError(w, err, "Failed to get saved score")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, score)
}

func (h *Handler) ScoreProfiles(w http.ResponseWriter, r *http.Request) {
	var dto ScoreRequestDTO
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithValidationError(w, err)
		return
	}

	result, err := h.service.ScoreProfiles(r.Context(), &dto)
	if err != nil {
		h.respondWithServiceError(w, err, "Failed to score profiles")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	params, ok := parseLimitParams(w, r)
	if !ok {
		return
	}

	recommendations, err := h.service.GetRecommendations(r.Context(), userID, params)
	if err != nil {
		h.respondWithServiceError(w, err, "Failed to get recommendations")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, recommendations)
}

func (h *Handler) GetTopMatches(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	params, ok := parseLimitParams(w, r)
	if !ok {
		return
	}

	matches, err := h.service.GetTopMatches(r.Context(), userID, params)
	if err != nil {
		h.respondWithServiceError(w, err, "Failed to get top matches")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, matches)
}

// parseLimitParams reads ?limit=N, writing a 400 and returning false when
// it is not a number or out of range.
func parseLimitParams(w http.ResponseWriter, r *http.Request) (*RecommendationParams, bool) {
	params := &RecommendationParams{Limit: defaultRecommendationLimit}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		l, err := strconv.Atoi(limit)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid limit")
			return nil, false
		}
		params.Limit = l
	}
	if err := utils.ValidateStruct(params); err != nil {
		utils.RespondWithValidationError(w, err)
		return nil, false
	}
	return params, true
}

func (h *Handler) GetWeights(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, h.service.Weights())
}

func (h *Handler) TriggerSync(w http.ResponseWriter, r *http.Request) {
	runID, err := h.service.StartSync()
	if err != nil {
		h.respondWithServiceError(w, err, "Failed to start sync")
		return
	}

	utils.RespondWithJSON(w, http.StatusAccepted, SyncAcceptedResponse{
		RunID:  runID.String(),
		Status: SyncStatusRunning,
	})
}

func (h *Handler) respondWithServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrCannotScoreSelf):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrProfileNotFound), errors.Is(err, ErrScoreNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrSyncInProgress):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("❌ %s: %v", fallback, err)
		utils.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}
