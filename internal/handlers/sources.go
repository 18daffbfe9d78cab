package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/teampulse/analytics-api/internal/models"
)

// RegisterSource registers a telemetry source and issues its token
// @Summary Register Telemetry Source
// @Description Registers a tracking device or sync bridge and returns its credentials
// @Tags Sources
// @Accept json
// @Produce json
// @Param body body models.RegisterSourceRequest true "Source Info"
// @Success 200 {object} models.RegisterSourceResponse "Source Credentials"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /sources/register [post]
func (h *Handler) RegisterSource(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterSourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	sourceID := uuid.New().String()
	token := uuid.New().String()

	// Only the hash is stored; the plaintext token goes back to the caller
	// once and cannot be recovered.
	_, err := h.pg.Exec(r.Context(), `
		INSERT INTO sources (id, name, token, is_active)
		VALUES ($1, $2, $3, true)
		ON CONFLICT (name)
		DO UPDATE SET token = EXCLUDED.token, is_active = true
	`, sourceID, req.Name, hashToken(token))
	if err != nil {
		h.logger.Errorw("Failed to register source", "name", req.Name, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to register source")
		return
	}

	h.jsonResponse(w, http.StatusOK, models.RegisterSourceResponse{
		SourceID: sourceID,
		Token:    token,
	})
}
