package adapthttp

import (
	"net/http"

	"glucolog/internal/app"
)

func (s *Server) handleGlucose(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, err := s.glucose.History(r.Context())
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	case http.MethodPost:
		var body app.GlucoseReading
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		entry, err := s.glucose.Record(r.Context(), body)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entry": entry})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
