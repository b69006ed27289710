package adapthttp

import (
	"net/http"

	"glucolog/internal/domain"
)

func (s *Server) handleMedications(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, err := s.medications.History(r.Context())
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	case http.MethodPost:
		// med_class is assigned server-side and is not accepted here.
		var body struct {
			ID             string `json:"id"`
			MedicationName string `json:"medication_name"`
			Dosage         string `json:"dosage"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		row, err := s.medications.Record(r.Context(), domain.MedicationRow{
			ID:             body.ID,
			MedicationName: body.MedicationName,
			Dosage:         body.Dosage,
		})
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entry": row})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleMedicationClassify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	name := r.URL.Query().Get("name")
	writeJSON(w, http.StatusOK, map[string]any{
		"medication_name": name,
		"med_class":       s.medications.Classify(name),
	})
}
