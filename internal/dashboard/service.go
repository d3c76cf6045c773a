package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Harshdeep9881/hospitalos/pkg/interfaces"
	"github.com/Harshdeep9881/hospitalos/pkg/logger"
	"github.com/Harshdeep9881/hospitalos/pkg/types"
)

// Service serves the admin dashboard summary
type Service struct {
	repository interfaces.DashboardRepository
	logger     *logger.Logger
}

// New creates a new dashboard service
func New(repo interfaces.DashboardRepository, log *logger.Logger) *Service {
	return &Service{
		repository: repo,
		logger:     log,
	}
}

// Summary returns the aggregated dashboard numbers
func (s *Service) Summary(ctx context.Context) (*types.DashboardSummary, error) {
	return s.repository.Summary(ctx)
}

// RegisterRoutes configures the dashboard HTTP routes
func (s *Service) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/dashboard/summary", s.summaryHandler).Methods("GET")
}

func (s *Service) summaryHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := s.Summary(r.Context())
	if err != nil {
		s.writeError(w, err, "Unable to fetch dashboard summary")
		return
	}

	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Service) writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Error("Failed to encode JSON response")
	}
}

func (s *Service) writeError(w http.ResponseWriter, err error, fallback string) {
	var herr *types.HospitalError
	if errors.As(err, &herr) {
		message := herr.Message
		if herr.Type == types.ErrorTypeStore {
			s.logger.WithError(herr).Error(fallback)
			message = fallback
		}
		s.writeJSON(w, herr.HTTPStatus(), map[string]string{"message": message})
		return
	}

	s.logger.WithError(err).Error(fallback)
	s.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": fallback})
}
