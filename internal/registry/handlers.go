package registry

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Harshdeep9881/hospitalos/pkg/types"
)

// RegisterRoutes configures the patient, doctor and department HTTP routes
func (s *Service) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/patients", s.listPatientsHandler).Methods("GET")
	router.HandleFunc("/patients/add", s.addPatientHandler).Methods("POST")
	router.HandleFunc("/patients/update/{id}", s.updatePatientHandler).Methods("PUT")
	router.HandleFunc("/patients/delete/{id}", s.deletePatientHandler).Methods("DELETE")

	router.HandleFunc("/doctors", s.listDoctorsHandler).Methods("GET")
	router.HandleFunc("/doctors/add", s.addDoctorHandler).Methods("POST")
	router.HandleFunc("/doctors/update/{id}", s.updateDoctorHandler).Methods("PUT")
	router.HandleFunc("/doctors/delete/{id}", s.deleteDoctorHandler).Methods("DELETE")

	router.HandleFunc("/departments", s.listDepartmentsHandler).Methods("GET")
	router.HandleFunc("/departments/add", s.addDepartmentHandler).Methods("POST")
	router.HandleFunc("/departments/update/{id}", s.updateDepartmentHandler).Methods("PUT")
	router.HandleFunc("/departments/delete/{id}", s.deleteDepartmentHandler).Methods("DELETE")
}

func (s *Service) listPatientsHandler(w http.ResponseWriter, r *http.Request) {
	patients, err := s.ListPatients(r.Context())
	if err != nil {
		s.writeError(w, err, "Unable to fetch patients")
		return
	}

	if patients == nil {
		patients = []*types.Patient{}
	}
	s.writeJSON(w, http.StatusOK, patients)
}

func (s *Service) addPatientHandler(w http.ResponseWriter, r *http.Request) {
	var req types.PatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}

	id, err := s.AddPatient(r.Context(), &req)
	if err != nil {
		s.writeError(w, err, "Unable to add patient")
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Patient added successfully",
		"id":      id,
	})
}

func (s *Service) updatePatientHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Valid id is required"})
		return
	}

	var req types.PatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}

	if err := s.UpdatePatient(r.Context(), id, &req); err != nil {
		s.writeError(w, err, "Unable to update patient")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Patient updated"})
}

func (s *Service) deletePatientHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Valid id is required"})
		return
	}

	if err := s.DeletePatient(r.Context(), id); err != nil {
		s.writeError(w, err, "Unable to delete patient")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Patient deleted"})
}

func (s *Service) listDoctorsHandler(w http.ResponseWriter, r *http.Request) {
	doctors, err := s.ListDoctors(r.Context())
	if err != nil {
		s.writeError(w, err, "Unable to fetch doctors")
		return
	}

	if doctors == nil {
		doctors = []*types.Doctor{}
	}
	s.writeJSON(w, http.StatusOK, doctors)
}

func (s *Service) addDoctorHandler(w http.ResponseWriter, r *http.Request) {
	var req types.DoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}

	id, err := s.AddDoctor(r.Context(), &req)
	if err != nil {
		s.writeError(w, err, "Unable to add doctor")
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Doctor added successfully",
		"id":      id,
	})
}

func (s *Service) updateDoctorHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Valid id is required"})
		return
	}

	var req types.DoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}

	if err := s.UpdateDoctor(r.Context(), id, &req); err != nil {
		s.writeError(w, err, "Unable to update doctor")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Doctor updated"})
}

func (s *Service) deleteDoctorHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Valid id is required"})
		return
	}

	if err := s.DeleteDoctor(r.Context(), id); err != nil {
		s.writeError(w, err, "Unable to delete doctor")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Doctor deleted"})
}

func (s *Service) listDepartmentsHandler(w http.ResponseWriter, r *http.Request) {
	departments, err := s.ListDepartments(r.Context())
	if err != nil {
		s.writeError(w, err, "Unable to fetch departments")
		return
	}

	if departments == nil {
		departments = []*types.Department{}
	}
	s.writeJSON(w, http.StatusOK, departments)
}

func (s *Service) addDepartmentHandler(w http.ResponseWriter, r *http.Request) {
	var req types.DepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}

	id, err := s.AddDepartment(r.Context(), &req)
	if err != nil {
		s.writeError(w, err, "Unable to add department")
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Department added",
		"id":      id,
	})
}

func (s *Service) updateDepartmentHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Valid id is required"})
		return
	}

	var req types.DepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}

	if err := s.UpdateDepartment(r.Context(), id, &req); err != nil {
		s.writeError(w, err, "Unable to update department")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Department updated"})
}

func (s *Service) deleteDepartmentHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Valid id is required"})
		return
	}

	if err := s.DeleteDepartment(r.Context(), id); err != nil {
		s.writeError(w, err, "Unable to delete department")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Department deleted"})
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

// writeError maps a domain error onto the wire
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
