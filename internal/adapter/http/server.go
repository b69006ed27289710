package adapthttp

import (
	"log/slog"
	"net/http"

	"glucolog/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	glucose     *app.GlucoseLog
	food        *app.FoodLog
	medications *app.MedicationLog
	summary     *app.SummaryService
	logger      *slog.Logger
}

// New creates a Server wired to the given application services. A nil logger
// falls back to slog.Default.
func New(g *app.GlucoseLog, f *app.FoodLog, m *app.MedicationLog, s *app.SummaryService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{glucose: g, food: f, medications: m, summary: s, logger: logger}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/glucose", s.handleGlucose)
	api.HandleFunc("/food", s.handleFood)
	api.HandleFunc("/medications", s.handleMedications)
	api.HandleFunc("/medications/classify", s.handleMedicationClassify)
	api.HandleFunc("/summary/daily", s.handleSummaryDaily)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	return s.loggingMiddleware(withNoCache(root))
}
