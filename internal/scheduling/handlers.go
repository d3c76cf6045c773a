package scheduling

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Harshdeep9881/hospitalos/pkg/types"
)

// RegisterRoutes configures the appointment HTTP routes
func (s *Service) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/appointments", s.listAppointmentsHandler).Methods("GET")
	router.HandleFunc("/appointments/add", s.bookAppointmentHandler).Methods("POST")
	router.HandleFunc("/appointments/update/{id}", s.updateAppointmentHandler).Methods("PUT")
	router.HandleFunc("/appointments/delete/{id}", s.deleteAppointmentHandler).Methods("DELETE")
}

// listAppointmentsHandler handles GET /appointments
func (s *Service) listAppointmentsHandler(w http.ResponseWriter, r *http.Request) {
	appointments, err := s.ListAppointments(r.Context())
	if err != nil {
		s.writeError(w, err, "Unable to fetch appointments")
		return
	}

	// The original API returns a bare array, never null
	if appointments == nil {
		appointments = []*types.AppointmentView{}
	}
	s.writeJSON(w, http.StatusOK, appointments)
}

// bookAppointmentHandler handles POST /appointments/add
func (s *Service) bookAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	var req types.AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}

	id, err := s.BookAppointment(r.Context(), &req)
	if err != nil {
		s.writeError(w, err, "Unable to create appointment")
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Appointment booked successfully",
		"id":      id,
	})
}

// updateAppointmentHandler handles PUT /appointments/update/{id}
func (s *Service) updateAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Valid id is required"})
		return
	}

	var req types.AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}

	if err := s.UpdateAppointment(r.Context(), id, &req); err != nil {
		s.writeError(w, err, "Unable to update appointment")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Appointment updated"})
}

// deleteAppointmentHandler handles DELETE /appointments/delete/{id}
func (s *Service) deleteAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Valid id is required"})
		return
	}

	if err := s.DeleteAppointment(r.Context(), id); err != nil {
		s.writeError(w, err, "Unable to delete appointment")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Appointment deleted"})
}

// parseID parses a positive integer path parameter
func parseID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// writeJSON writes a JSON response
func (s *Service) writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Error("Failed to encode JSON response")
	}
}

// writeError maps a domain error onto the wire. Store errors are logged
// with their cause but surfaced as the opaque fallback message.
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
