package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Harshdeep9881/hospitalos/pkg/types"
)

// RegisterRoutes configures the authentication HTTP routes
func (s *Service) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/login", s.loginHandler).Methods("POST")
}

func (s *Service) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}

	resp, err := s.Login(&req)
	if err != nil {
		s.writeError(w, err, "Unable to log in")
		return
	}

	s.writeJSON(w, http.StatusOK, resp)
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
