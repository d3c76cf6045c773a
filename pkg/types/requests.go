package types

// AppointmentRequest is the body for booking or updating an appointment
type AppointmentRequest struct {
	PatientID int    `json:"patient_id"`
	DoctorID  int    `json:"doctor_id"`
	Date      string `json:"appointment_date"`
	Time      string `json:"appointment_time"`
}

// PatientRequest is the body for adding or updating a patient
type PatientRequest struct {
	Name   string `json:"name"`
	Age    *int   `json:"age"`
	Gender string `json:"gender"`
	Phone  string `json:"phone"`
}

// DoctorRequest is the body for adding or updating a doctor
type DoctorRequest struct {
	Name         string `json:"name"`
	DepartmentID int    `json:"department_id"`
}

// DepartmentRequest is the body for adding or updating a department
type DepartmentRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// MedicalRecordRequest is the body for adding or updating a medical record
type MedicalRecordRequest struct {
	PatientID int     `json:"patient_id"`
	DoctorID  int     `json:"doctor_id"`
	VisitDate string  `json:"visit_date"`
	Diagnosis string  `json:"diagnosis"`
	Notes     *string `json:"notes"`
}

// LoginRequest is the body for the admin login endpoint
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer credential
type LoginResponse struct {
	Token string `json:"token"`
}
