package scheduling

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harshdeep9881/hospitalos/pkg/logger"
)

func setupTestRouter() *mux.Router {
	service := New(newSlotFakeRepository(), logger.New("error"))
	router := mux.NewRouter()
	service.RegisterRoutes(router)
	return router
}

func postJSON(t *testing.T, router *mux.Router, path string, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestBookingEndpoint_DoubleBookingRejected(t *testing.T) {
	router := setupTestRouter()

	// First booking takes the slot
	w := postJSON(t, router, "/appointments/add", map[string]interface{}{
		"patient_id":       1,
		"doctor_id":        5,
		"appointment_date": "2024-06-01",
		"appointment_time": "09:00",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeMessage(t, w)
	assert.NotNil(t, body["id"])

	// Second booking for the same doctor, date and time is rejected
	w = postJSON(t, router, "/appointments/add", map[string]interface{}{
		"patient_id":       2,
		"doctor_id":        5,
		"appointment_date": "2024-06-01",
		"appointment_time": "09:00",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	body = decodeMessage(t, w)
	assert.Equal(t, "Doctor already has an appointment at this date and time", body["message"])

	// A different time for the same doctor is fine
	w = postJSON(t, router, "/appointments/add", map[string]interface{}{
		"patient_id":       2,
		"doctor_id":        5,
		"appointment_date": "2024-06-01",
		"appointment_time": "09:30",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestBookingEndpoint_ValidationError(t *testing.T) {
	router := setupTestRouter()

	w := postJSON(t, router, "/appointments/add", map[string]interface{}{
		"doctor_id":        5,
		"appointment_date": "2024-06-01",
		"appointment_time": "09:00",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeMessage(t, w)
	assert.Equal(t, "Valid patient_id is required", body["message"])
}

func TestBookingEndpoint_MalformedBody(t *testing.T) {
	router := setupTestRouter()

	req := httptest.NewRequest("POST", "/appointments/add", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListEndpoint_EmptyArray(t *testing.T) {
	router := setupTestRouter()

	req := httptest.NewRequest("GET", "/appointments", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	// The list is a bare array even when empty, never null
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestUpdateEndpoint_BadID(t *testing.T) {
	router := setupTestRouter()

	req := httptest.NewRequest("PUT", "/appointments/update/abc", bytes.NewReader([]byte("{}")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeMessage(t, w)
	assert.Equal(t, "Valid id is required", body["message"])
}
