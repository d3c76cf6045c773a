package records

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Harshdeep9881/hospitalos/pkg/types"
)

// RegisterRoutes configures the medical record HTTP routes
func (s *Service) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/medical-records", s.listRecordsHandler).Methods("GET")
	router.HandleFunc("/medical-records/patient/{patientId}", s.listPatientRecordsHandler).Methods("GET")
	router.HandleFunc("/medical-records/add", s.addRecordHandler).Methods("POST")
	router.HandleFunc("/medical-records/update/{id}", s.updateRecordHandler).Methods("PUT")
	router.HandleFunc("/medical-records/delete/{id}", s.deleteRecordHandler).Methods("DELETE")
}

func (s *Service) listRecordsHandler(w http.ResponseWriter, r *http.Request) {
	records, err := s.ListRecords(r.Context())
	if err != nil {
		s.writeError(w, err, "Unable to fetch medical records")
		return
	}

	if records == nil {
		records = []*types.MedicalRecordView{}
	}
	s.writeJSON(w, http.StatusOK, records)
}

func (s *Service) listPatientRecordsHandler(w http.ResponseWriter, r *http.Request) {
	patientID, ok := parseID(mux.Vars(r)["patientId"])
	if !ok {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Valid patient id is required"})
		return
	}

	records, err := s.ListPatientRecords(r.Context(), patientID)
	if err != nil {
		s.writeError(w, err, "Unable to fetch medical records")
		return
	}

	if records == nil {
		records = []*types.MedicalRecordView{}
	}
	s.writeJSON(w, http.StatusOK, records)
}

func (s *Service) addRecordHandler(w http.ResponseWriter, r *http.Request) {
	var req types.MedicalRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}

	id, err := s.AddRecord(r.Context(), &req)
	if err != nil {
		s.writeError(w, err, "Unable to add medical record")
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Medical record added successfully",
		"id":      id,
	})
}

func (s *Service) updateRecordHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Valid id is required"})
		return
	}

	var req types.MedicalRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}

	if err := s.UpdateRecord(r.Context(), id, &req); err != nil {
		s.writeError(w, err, "Unable to update medical record")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Medical record updated"})
}

func (s *Service) deleteRecordHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Valid id is required"})
		return
	}

	if err := s.DeleteRecord(r.Context(), id); err != nil {
		s.writeError(w, err, "Unable to delete medical record")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Medical record deleted"})
}

func parseID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
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
