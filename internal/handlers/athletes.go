package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/teampulse/analytics-api/internal/logic"
	"github.com/teampulse/analytics-api/internal/models"
)

func athleteID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// ListAthletes returns the roster, optionally filtered by team
// @Summary List Athletes
// @Tags Athletes
// @Produce json
// @Param team query string false "Team filter"
// @Success 200 {array} models.Athlete
// @Router /athletes [get]
func (h *Handler) ListAthletes(w http.ResponseWriter, r *http.Request) {
	athletes, err := h.roster.ListAthletes(r.Context(), r.URL.Query().Get("team"))
	if err != nil {
		h.logger.Errorw("Failed to list athletes", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to list athletes")
		return
	}
	h.jsonResponse(w, http.StatusOK, athletes)
}

// GetAthlete returns one athlete by id
// @Summary Get Athlete
// @Tags Athletes
// @Produce json
// @Param id path int true "Athlete ID"
// @Success 200 {object} models.Athlete
// @Failure 404 {object} map[string]string "Not Found"
// @Router /athletes/{id} [get]
func (h *Handler) GetAthlete(w http.ResponseWriter, r *http.Request) {
	id, err := athleteID(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid athlete id")
		return
	}

	athlete, err := h.roster.GetAthlete(r.Context(), id)
	if errors.Is(err, logic.ErrNotFound) {
		h.errorResponse(w, http.StatusNotFound, "Athlete not found")
		return
	}
	if err != nil {
		h.logger.Errorw("Failed to get athlete", "id", id, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to get athlete")
		return
	}
	h.jsonResponse(w, http.StatusOK, athlete)
}

// CreateAthlete adds an athlete to the roster
// @Summary Create Athlete
// @Tags Athletes
// @Accept json
// @Produce json
// @Param body body models.CreateAthleteRequest true "Athlete"
// @Success 201 {object} models.Athlete
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /athletes [post]
func (h *Handler) CreateAthlete(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAthleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	athlete, err := h.roster.CreateAthlete(r.Context(), &req)
	if err != nil {
		h.logger.Errorw("Failed to create athlete", "name", req.Name, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to create athlete")
		return
	}
	h.jsonResponse(w, http.StatusCreated, athlete)
}

// UpdateAthlete updates roster fields; omitted fields keep their value
// @Summary Update Athlete
// @Tags Athletes
// @Accept json
// @Produce json
// @Param id path int true "Athlete ID"
// @Param body body models.UpdateAthleteRequest true "Fields to update"
// @Success 200 {object} models.Athlete
// @Failure 404 {object} map[string]string "Not Found"
// @Router /athletes/{id} [put]
func (h *Handler) UpdateAthlete(w http.ResponseWriter, r *http.Request) {
	id, err := athleteID(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid athlete id")
		return
	}

	var req models.UpdateAthleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	athlete, err := h.roster.UpdateAthlete(r.Context(), id, &req)
	if errors.Is(err, logic.ErrNotFound) {
		h.errorResponse(w, http.StatusNotFound, "Athlete not found")
		return
	}
	if err != nil {
		h.logger.Errorw("Failed to update athlete", "id", id, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to update athlete")
		return
	}
	h.jsonResponse(w, http.StatusOK, athlete)
}

// DeleteAthlete removes an athlete from the roster
// @Summary Delete Athlete
// @Tags Athletes
// @Param id path int true "Athlete ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /athletes/{id} [delete]
func (h *Handler) DeleteAthlete(w http.ResponseWriter, r *http.Request) {
	id, err := athleteID(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid athlete id")
		return
	}

	err = h.roster.DeleteAthlete(r.Context(), id)
	if errors.Is(err, logic.ErrNotFound) {
		h.errorResponse(w, http.StatusNotFound, "Athlete not found")
		return
	}
	if err != nil {
		h.logger.Errorw("Failed to delete athlete", "id", id, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to delete athlete")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateWellness upserts the wellness profile feeding the risk engine
// @Summary Update Wellness Profile
// @Tags Athletes
// @Accept json
// @Produce json
// @Param id path int true "Athlete ID"
// @Param body body models.UpdateWellnessRequest true "Wellness fields"
// @Success 200 {object} models.WellnessProfile
// @Failure 404 {object} map[string]string "Not Found"
// @Router /athletes/{id}/wellness [put]
func (h *Handler) UpdateWellness(w http.ResponseWriter, r *http.Request) {
	id, err := athleteID(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid athlete id")
		return
	}

	var req models.UpdateWellnessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	profile, err := h.roster.UpsertWellness(r.Context(), id, &req)
	if errors.Is(err, logic.ErrNotFound) {
		h.errorResponse(w, http.StatusNotFound, "Athlete not found")
		return
	}
	if err != nil {
		h.logger.Errorw("Failed to update wellness profile", "id", id, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to update wellness profile")
		return
	}
	h.jsonResponse(w, http.StatusOK, profile)
}
