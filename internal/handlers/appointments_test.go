package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"practice-admin-server/internal/config"
	"practice-admin-server/internal/models"
	"practice-admin-server/internal/notify"
	"practice-admin-server/internal/routes"
	"practice-admin-server/internal/utils"
)

// envelope mirrors the standard API response shape.
type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func setupTest(t *testing.T) (*gin.Engine, *gorm.DB, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	// A second pooled connection would see its own empty in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := models.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	cfg := &config.Config{
		Environment:               "development",
		JWTSecret:                 "test-secret",
		JWTRefreshSecret:          "test-refresh-secret",
		JWTExpirationMinutes:      15,
		JWTRefreshExpirationHours: 1,
	}

	router := gin.New()
	routes.SetupRoutes(router, db, cfg, notify.NewMailer(config.MailerConfig{}))

	user := models.User{Email: "admin@practice.local", FirstName: "Ada", LastName: "Admin", Role: models.RoleAdmin}
	if err := user.SetPassword("password123"); err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	token, _, err := utils.GenerateTokens(&user, cfg)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	return router, db, token
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, env
}

func seedPatientAndDoctor(t *testing.T, db *gorm.DB) (models.Patient, models.Doctor) {
	t.Helper()

	patient := models.Patient{Name: "Jane Doe", Email: "jane@example.com", Status: models.PatientActive}
	if err := db.Create(&patient).Error; err != nil {
		t.Fatalf("failed to seed patient: %v", err)
	}
	doctor := models.Doctor{Name: "Dr. Smith", Email: "smith@example.com", Specialty: "Cardiology"}
	if err := db.Create(&doctor).Error; err != nil {
		t.Fatalf("failed to seed doctor: %v", err)
	}
	return patient, doctor
}

func TestAppointments_RequireAuth(t *testing.T) {
	router, _, _ := setupTest(t)

	w, _ := doJSON(t, router, http.MethodGet, "/api/appointments", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}

func TestCreateAndListAppointments_RoundTrip(t *testing.T) {
	router, db, token := setupTest(t)
	patient, doctor := seedPatientAndDoctor(t, db)

	wantDate := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	w, env := doJSON(t, router, http.MethodPost, "/api/appointments", token, map[string]interface{}{
		"patientId": patient.ID,
		"doctorId":  doctor.ID,
		"date":      wantDate.Format(time.RFC3339),
		"notes":     "first visit",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created models.Appointment
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("failed to decode created appointment: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected a positive integer id, got %d", created.ID)
	}
	if created.Status != models.StatusScheduled {
		t.Fatalf("expected default status scheduled, got %q", created.Status)
	}
	if !created.Date.Equal(wantDate) {
		t.Fatalf("expected date %v, got %v", wantDate, created.Date)
	}

	w, env = doJSON(t, router, http.MethodGet, "/api/appointments", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var listed []models.Appointment
	if err := json.Unmarshal(env.Data, &listed); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(listed))
	}
	got := listed[0]
	if got.PatientID != patient.ID || got.DoctorID == nil || *got.DoctorID != doctor.ID {
		t.Fatalf("round-trip lost references: %+v", got)
	}
	if !got.Date.Equal(wantDate) || got.Status != models.StatusScheduled {
		t.Fatalf("round-trip lost field values: %+v", got)
	}
	if got.Patient == nil || got.Patient.Name != "Jane Doe" {
		t.Fatalf("expected patient summary joined onto appointment, got %+v", got.Patient)
	}
}

func TestCreateAppointment_BadDate(t *testing.T) {
	router, db, token := setupTest(t)
	patient, _ := seedPatientAndDoctor(t, db)

	w, _ := doJSON(t, router, http.MethodPost, "/api/appointments", token, map[string]interface{}{
		"patientId": patient.ID,
		"date":      "not-a-date",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed date, got %d", w.Code)
	}
}

func TestUpdateAppointmentStatus(t *testing.T) {
	router, db, token := setupTest(t)
	patient, doctor := seedPatientAndDoctor(t, db)

	appointment := models.Appointment{PatientID: patient.ID, DoctorID: &doctor.ID, Date: time.Now().Add(24 * time.Hour), Status: models.StatusScheduled}
	if err := db.Create(&appointment).Error; err != nil {
		t.Fatalf("failed to seed appointment: %v", err)
	}
	path := fmt.Sprintf("/api/appointments/%d/status", appointment.ID)

	// scheduled -> confirmed
	w, _ := doJSON(t, router, http.MethodPut, path, token, map[string]string{"status": "confirmed"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Repeating the same update leaves the stored status unchanged.
	w, _ = doJSON(t, router, http.MethodPut, path, token, map[string]string{"status": "confirmed"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected idempotent repeat to return 200, got %d", w.Code)
	}
	var stored models.Appointment
	if err := db.First(&stored, appointment.ID).Error; err != nil {
		t.Fatalf("failed to reload appointment: %v", err)
	}
	if stored.Status != models.StatusConfirmed {
		t.Fatalf("expected stored status confirmed, got %q", stored.Status)
	}

	// Values outside the enumeration are rejected.
	w, _ = doJSON(t, router, http.MethodPut, path, token, map[string]string{"status": "no-show"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for undefined status, got %d", w.Code)
	}

	// confirmed -> cancelled is allowed; cancelled is terminal.
	w, _ = doJSON(t, router, http.MethodPut, path, token, map[string]string{"status": "cancelled"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for cancellation, got %d", w.Code)
	}
	w, _ = doJSON(t, router, http.MethodPut, path, token, map[string]string{"status": "scheduled"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 when leaving cancelled, got %d", w.Code)
	}
	if err := db.First(&stored, appointment.ID).Error; err != nil {
		t.Fatalf("failed to reload appointment: %v", err)
	}
	if stored.Status != models.StatusCancelled {
		t.Fatalf("expected status to remain cancelled, got %q", stored.Status)
	}
}

func TestUpdateAppointmentStatus_NotFoundAndBadID(t *testing.T) {
	router, _, token := setupTest(t)

	w, _ := doJSON(t, router, http.MethodPut, "/api/appointments/9999/status", token, map[string]string{"status": "confirmed"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing appointment, got %d", w.Code)
	}

	w, _ = doJSON(t, router, http.MethodPut, "/api/appointments/abc/status", token, map[string]string{"status": "confirmed"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", w.Code)
	}
}

func TestUpdateAndDeleteAppointment(t *testing.T) {
	router, db, token := setupTest(t)
	patient, doctor := seedPatientAndDoctor(t, db)

	appointment := models.Appointment{PatientID: patient.ID, DoctorID: &doctor.ID, Date: time.Now().Add(24 * time.Hour), Status: models.StatusScheduled}
	if err := db.Create(&appointment).Error; err != nil {
		t.Fatalf("failed to seed appointment: %v", err)
	}

	newDate := time.Date(2025, 4, 1, 9, 30, 0, 0, time.UTC)
	path := fmt.Sprintf("/api/appointments/%d", appointment.ID)
	w, env := doJSON(t, router, http.MethodPut, path, token, map[string]interface{}{
		"date":  newDate.Format(time.RFC3339),
		"notes": "rebooked at patient request",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var updated models.Appointment
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		t.Fatalf("failed to decode updated appointment: %v", err)
	}
	if !updated.Date.Equal(newDate) || updated.Notes != "rebooked at patient request" {
		t.Fatalf("partial update not applied: %+v", updated)
	}

	w, _ = doJSON(t, router, http.MethodDelete, path, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", w.Code)
	}

	var count int64
	db.Model(&models.Appointment{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected hard delete, %d rows remain", count)
	}

	w, _ = doJSON(t, router, http.MethodDelete, path, token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 deleting a deleted appointment, got %d", w.Code)
	}
}

func TestStartAppointment(t *testing.T) {
	router, db, token := setupTest(t)
	patient, doctor := seedPatientAndDoctor(t, db)

	appointment := models.Appointment{PatientID: patient.ID, DoctorID: &doctor.ID, Date: time.Now(), Status: models.StatusConfirmed}
	if err := db.Create(&appointment).Error; err != nil {
		t.Fatalf("failed to seed appointment: %v", err)
	}

	w, env := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/appointments/%d/start", appointment.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var started models.Appointment
	if err := json.Unmarshal(env.Data, &started); err != nil {
		t.Fatalf("failed to decode started appointment: %v", err)
	}
	if started.ActualStartTime == nil {
		t.Fatalf("expected actual start time to be set")
	}

	cancelled := models.Appointment{PatientID: patient.ID, DoctorID: &doctor.ID, Date: time.Now(), Status: models.StatusCancelled}
	if err := db.Create(&cancelled).Error; err != nil {
		t.Fatalf("failed to seed cancelled appointment: %v", err)
	}
	w, _ = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/appointments/%d/start", cancelled.ID), token, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 starting a cancelled appointment, got %d", w.Code)
	}
}

func TestWaitTimePrediction_NoHistory(t *testing.T) {
	router, db, token := setupTest(t)
	_, doctor := seedPatientAndDoctor(t, db)

	path := fmt.Sprintf("/api/appointments/analytics/wait-time?doctorId=%d&scheduledTime=%s", doctor.ID, "2025-03-03T10:00:00Z")
	w, env := doJSON(t, router, http.MethodGet, path, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with no history, got %d: %s", w.Code, w.Body.String())
	}

	var result struct {
		PredictedWaitMinutes int `json:"predictedWaitMinutes"`
	}
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("failed to decode prediction: %v", err)
	}
	if result.PredictedWaitMinutes != 0 {
		t.Fatalf("expected default estimate 0, got %d", result.PredictedWaitMinutes)
	}
}

func TestWaitTimePrediction_BadInput(t *testing.T) {
	router, _, token := setupTest(t)

	w, _ := doJSON(t, router, http.MethodGet, "/api/appointments/analytics/wait-time?scheduledTime=2025-03-03T10:00:00Z", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing doctorId, got %d", w.Code)
	}

	w, _ = doJSON(t, router, http.MethodGet, "/api/appointments/analytics/wait-time?doctorId=1&scheduledTime=tomorrow", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed scheduledTime, got %d", w.Code)
	}
}

func TestRecommendedSlots_EmptyDay(t *testing.T) {
	router, db, token := setupTest(t)
	_, doctor := seedPatientAndDoctor(t, db)

	path := fmt.Sprintf("/api/appointments/analytics/recommended-slots?doctorId=%d&date=2025-03-03&duration=30", doctor.ID)
	w, env := doJSON(t, router, http.MethodGet, path, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result struct {
		RecommendedSlots []struct {
			ExpectedWaitMinutes int `json:"expectedWaitMinutes"`
		} `json:"recommendedSlots"`
	}
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("failed to decode slots: %v", err)
	}
	if len(result.RecommendedSlots) != 16 {
		t.Fatalf("expected full day of 16 slots, got %d", len(result.RecommendedSlots))
	}
	for _, s := range result.RecommendedSlots {
		if s.ExpectedWaitMinutes != 0 {
			t.Fatalf("expected neutral wait estimates for empty history, got %d", s.ExpectedWaitMinutes)
		}
	}

	w, _ = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/appointments/analytics/recommended-slots?doctorId=%d&date=2025-03-03&duration=25", doctor.ID), token, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unsupported duration, got %d", w.Code)
	}
}
