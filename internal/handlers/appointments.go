package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"practice-admin-server/internal/models"
	"practice-admin-server/internal/notify"
	"practice-admin-server/internal/scheduler"
	"practice-admin-server/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	DB     *gorm.DB
	Mailer *notify.Mailer
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, mailer *notify.Mailer) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Mailer: mailer}
}

// CreateAppointmentRequest represents the request body for creating an appointment.
type CreateAppointmentRequest struct {
	PatientID uint      `json:"patientId" binding:"required"`
	DoctorID  *uint     `json:"doctorId"`
	Date      time.Time `json:"date" binding:"required"`
	Notes     string    `json:"notes"`
}

// CreateAppointment handles creating a new appointment. The new record
// defaults to status "scheduled"; on success a notification email goes out to
// patient and doctor without blocking the response.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment := models.Appointment{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Notes:     req.Notes,
		Status:    models.StatusScheduled,
	}

	if err := h.DB.Create(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}

	h.notifyCreated(&appointment)

	utils.Created(c, "Appointment created successfully", appointment)
}

// notifyCreated dispatches the creation email in the background. A missing
// patient or doctor row simply means no mail goes out.
func (h *AppointmentHandler) notifyCreated(appointment *models.Appointment) {
	if h.Mailer == nil {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, appointment.PatientID).Error; err != nil {
		return
	}

	var doctor models.Doctor
	if appointment.DoctorID != nil {
		if err := h.DB.First(&doctor, *appointment.DoctorID).Error; err != nil {
			doctor = models.Doctor{}
		}
	}

	go h.Mailer.SendAppointmentCreated(patient.Email, patient.Name, doctor.Email, doctor.Name, appointment.Date)
}

// ListAppointments handles fetching all appointments with their patient and
// doctor summaries.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	var appointments []models.Appointment
	if err := h.DB.Preload("Patient").Preload("Doctor").Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// UpdateAppointmentStatusRequest represents the request body for updating an appointment's status.
type UpdateAppointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required"`
}

// UpdateAppointmentStatus handles updating the status of an appointment.
// Transitions out of "cancelled" and transitions to an undefined status are rejected.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	appointmentID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if !models.ValidStatus(req.Status) {
		utils.BadRequest(c, "Invalid appointment status: "+string(req.Status))
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !models.CanTransition(appointment.Status, req.Status) {
		utils.Conflict(c, "Cannot transition appointment from "+string(appointment.Status)+" to "+string(req.Status))
		return
	}

	appointment.Status = req.Status
	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to update appointment status: "+err.Error())
		return
	}

	utils.Success(c, "Appointment status updated successfully", appointment)
}

// UpdateAppointmentRequest represents the request body for a partial appointment update.
type UpdateAppointmentRequest struct {
	PatientID *uint      `json:"patientId"`
	DoctorID  *uint      `json:"doctorId"`
	Date      *time.Time `json:"date"`
	Notes     *string    `json:"notes"`
}

// UpdateAppointment handles partial updates of editable appointment fields.
// It does not itself validate state-transition legality.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	appointmentID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.PatientID != nil {
		appointment.PatientID = *req.PatientID
	}
	if req.DoctorID != nil {
		appointment.DoctorID = req.DoctorID
	}
	if req.Date != nil {
		appointment.Date = *req.Date
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to update appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment updated successfully", appointment)
}

// DeleteAppointment handles hard removal of an appointment. This is an
// administrative override; the primary flow cancels via status instead.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	appointmentID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment deleted successfully", nil)
}

// StartAppointment marks the moment a consultation actually begins.
func (h *AppointmentHandler) StartAppointment(c *gin.Context) {
	appointmentID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if appointment.Status == models.StatusCancelled {
		utils.Conflict(c, "Cannot start a cancelled appointment")
		return
	}

	now := time.Now()
	appointment.ActualStartTime = &now
	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to start appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment started", appointment)
}

// GetWaitTimePrediction returns the predicted wait in minutes for a doctor
// and candidate time, derived from that doctor's appointment history.
func (h *AppointmentHandler) GetWaitTimePrediction(c *gin.Context) {
	doctorID, ok := parseUintQuery(c, "doctorId")
	if !ok {
		return
	}

	scheduledTime, err := time.Parse(time.RFC3339, c.Query("scheduledTime"))
	if err != nil {
		utils.BadRequest(c, "Invalid scheduledTime, expected RFC3339 timestamp")
		return
	}

	var history []models.Appointment
	if err := h.DB.Where("doctor_id = ?", doctorID).Find(&history).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointment history: "+err.Error())
		return
	}

	minutes := scheduler.PredictWaitTime(history, doctorID, scheduledTime)

	utils.Success(c, "Wait time predicted", gin.H{
		"doctorId":             doctorID,
		"scheduledTime":        scheduledTime,
		"predictedWaitMinutes": minutes,
	})
}

// GetRecommendedSlots returns ranked candidate slots for a doctor and date.
func (h *AppointmentHandler) GetRecommendedSlots(c *gin.Context) {
	doctorID, ok := parseUintQuery(c, "doctorId")
	if !ok {
		return
	}

	day, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		utils.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	duration := 30
	if raw := c.Query("duration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil {
			utils.BadRequest(c, "Invalid duration, expected minutes as an integer")
			return
		}
	}

	var existing []models.Appointment
	if err := h.DB.Where("doctor_id = ?", doctorID).Find(&existing).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	recommended, alternatives, err := scheduler.RecommendSlots(existing, doctorID, day, duration)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, "Slots recommended", gin.H{
		"recommendedSlots": recommended,
		"alternativeSlots": alternatives,
	})
}

// parseIDParam reads the numeric :id path parameter, replying 400 on garbage.
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid ID format")
		return 0, false
	}
	return uint(id), true
}

// parseUintQuery reads a required numeric query parameter.
func parseUintQuery(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		utils.BadRequest(c, name+" is required")
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid "+name+" format")
		return 0, false
	}
	return uint(v), true
}
