package adapthttp

import (
	"net/http"

	"glucolog/internal/domain"
)

func (s *Server) handleFood(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, err := s.food.History(r.Context())
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	case http.MethodPost:
		var body domain.FoodLogEntry
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		entry, err := s.food.Record(r.Context(), body)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entry": entry})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
