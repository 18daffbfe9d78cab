package handlers

import (
	"net/http"
	"strconv"
)

// parseDays reads the "days" query parameter. Window length must be a
// positive integer; the scoring engine documents non-positive windows as
// undefined, so they are rejected here at the boundary.
func parseDays(r *http.Request, fallback int) (int, bool) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return fallback, true
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 || days > 365 {
		return 0, false
	}
	return days, true
}

// GetTrainingLoad returns ranked training-load assessments over a window
// @Summary Training Load Analysis
// @Description Scores every athlete's training volume against sustained capacity
// @Tags Analytics
// @Produce json
// @Param days query int false "Window length in days (1-365, default 7)"
// @Param team query string false "Team filter"
// @Success 200 {object} models.TrainingLoadResponse
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /analytics/training-load [get]
func (h *Handler) GetTrainingLoad(w http.ResponseWriter, r *http.Request) {
	days, ok := parseDays(r, 7)
	if !ok {
		h.errorResponse(w, http.StatusBadRequest, "days must be an integer between 1 and 365")
		return
	}
	team := r.URL.Query().Get("team")

	resp, err := h.analytics.TrainingLoad(r.Context(), days, team)
	if err != nil {
		h.logger.Errorw("Failed to compute training load", "days", days, "team", team, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to compute training load")
		return
	}
	h.jsonResponse(w, http.StatusOK, resp)
}

// GetInjuryRisk returns ranked injury-risk assessments with a cohort summary
// @Summary Injury Risk Analysis
// @Description Runs the weighted risk engine over each athlete's recent telemetry
// @Tags Analytics
// @Produce json
// @Param team query string false "Team filter"
// @Success 200 {object} models.InjuryRiskResponse
// @Router /analytics/injury-risk [get]
func (h *Handler) GetInjuryRisk(w http.ResponseWriter, r *http.Request) {
	team := r.URL.Query().Get("team")

	resp, err := h.analytics.InjuryRisk(r.Context(), team)
	if err != nil {
		h.logger.Errorw("Failed to compute injury risk", "team", team, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to compute injury risk")
		return
	}
	h.jsonResponse(w, http.StatusOK, resp)
}

// GetInsights returns categorized recovery, prevention and workload guidance
// @Summary Training Insights
// @Description Buckets athletes into recovery, injury-prevention and workload recommendations
// @Tags Analytics
// @Produce json
// @Param days query int false "Window length in days (1-365, default 7)"
// @Param team query string false "Team filter"
// @Success 200 {object} models.InsightReport
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /analytics/insights [get]
func (h *Handler) GetInsights(w http.ResponseWriter, r *http.Request) {
	days, ok := parseDays(r, 7)
	if !ok {
		h.errorResponse(w, http.StatusBadRequest, "days must be an integer between 1 and 365")
		return
	}
	team := r.URL.Query().Get("team")

	report, err := h.analytics.Insights(r.Context(), days, team)
	if err != nil {
		h.logger.Errorw("Failed to compute insights", "days", days, "team", team, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to compute insights")
		return
	}
	h.jsonResponse(w, http.StatusOK, report)
}

// GetRiskSummary returns the cached cohort-level risk summary
// @Summary Squad Risk Summary
// @Description Cohort histogram, average score, top factors and overall status
// @Tags Analytics
// @Produce json
// @Param team query string false "Team filter"
// @Success 200 {object} models.CohortSummary
// @Router /analytics/risk-summary [get]
func (h *Handler) GetRiskSummary(w http.ResponseWriter, r *http.Request) {
	team := r.URL.Query().Get("team")

	summary, err := h.analytics.RiskSummary(r.Context(), team)
	if err != nil {
		h.logger.Errorw("Failed to compute risk summary", "team", team, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to compute risk summary")
		return
	}
	h.jsonResponse(w, http.StatusOK, summary)
}

// GetPredictions runs the risk engine over a synthetic demo squad
// @Summary Demo Risk Predictions
// @Description Generates a synthetic squad and scores it; useful for demos and UI work
// @Tags Analytics
// @Produce json
// @Param count query int false "Squad size (default 20, max 100)"
// @Success 200 {object} models.InjuryRiskResponse
// @Router /analytics/predictions [get]
func (h *Handler) GetPredictions(w http.ResponseWriter, r *http.Request) {
	count := 0
	if raw := r.URL.Query().Get("count"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			count = n
		}
	}

	resp, err := h.analytics.DemoPredictions(r.Context(), count)
	if err != nil {
		h.logger.Errorw("Failed to generate demo predictions", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to generate predictions")
		return
	}
	h.jsonResponse(w, http.StatusOK, resp)
}
