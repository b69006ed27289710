package adapthttp

import (
	"net/http"

	"glucolog/internal/domain"
)

func (s *Server) handleSummaryDaily(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	days := intQuery(r, "days", 14)
	unit := r.URL.Query().Get("unit")
	if unit == "" {
		unit = domain.UnitMgDL
	}

	points, err := s.summary.Daily(r.Context(), days, unit)
	if err != nil {
		writeError(w, errorStatus(err), err)
		return
	}

	// Daily always returns at least one point; the last one is today.
	writeJSON(w, http.StatusOK, map[string]any{
		"days":  len(points),
		"unit":  unit,
		"today": points[len(points)-1].Day,
		"items": points,
	})
}
