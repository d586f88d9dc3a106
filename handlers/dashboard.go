package handlers

import (
	"net/http"
	"strconv"
	"time"

	"hisab/backend/charts"
	"hisab/backend/logging"
	"hisab/backend/models"
	"hisab/backend/services"
)

func (h *Handler) monthlyStats(r *http.Request) (*models.MonthlyStats, error) {
	year := services.ParseYear(r.URL.Query().Get("year"), time.Now())
	return h.stats.MonthlyStats(r.Context(), getUserIDFromContext(r), year)
}

// GetMonthlyStats handles GET /dashboard/monthly-stats
func (h *Handler) GetMonthlyStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.monthlyStats(r)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// GetMonthlyStatsChart handles GET /dashboard/monthly-stats/chart
func (h *Handler) GetMonthlyStatsChart(w http.ResponseWriter, r *http.Request) {
	stats, err := h.monthlyStats(r)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	img, err := charts.MonthlyChart(stats)
	if err != nil {
		logging.FromContext(r.Context()).WithComponent(logging.ComponentDashboard).ErrorContext(r.Context(), "Failed to render chart",
			logging.NewFields().WithOperation(logging.OpRender).WithError(err).ToSlice()...)
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	w.WriteHeader(http.StatusOK)
	w.Write(img)
}
