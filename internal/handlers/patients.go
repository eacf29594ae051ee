package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"practice-admin-server/internal/models"
	"practice-admin-server/internal/utils"
)

// PatientHandler handles patient record requests.
type PatientHandler struct {
	DB *gorm.DB
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{DB: db}
}

// PatientRequest represents the request body for creating or updating a patient.
type PatientRequest struct {
	Name             string     `json:"name" binding:"required"`
	Email            string     `json:"email" binding:"omitempty,email"`
	PhoneNumber      string     `json:"phoneNumber"`
	Address          string     `json:"address"`
	DateOfBirth      *time.Time `json:"dateOfBirth"`
	Gender           string     `json:"gender"`
	Region           string     `json:"region"`
	HealthConditions []string   `json:"healthConditions"`
	Medications      []string   `json:"medications"`
	Allergies        []string   `json:"allergies"`
	SmokingStatus    string     `json:"smokingStatus" binding:"omitempty,oneof=never former current"`
	Exercise         string     `json:"exerciseFrequency" binding:"omitempty,oneof=none rare weekly daily"`
	Status           string     `json:"status" binding:"omitempty,oneof=active inactive"`
}

func (r *PatientRequest) apply(p *models.Patient) {
	p.Name = r.Name
	p.Email = r.Email
	p.PhoneNumber = r.PhoneNumber
	p.Address = r.Address
	p.DateOfBirth = r.DateOfBirth
	p.Gender = r.Gender
	p.Region = r.Region
	p.HealthConditions = datatypes.NewJSONSlice(emptyIfNil(r.HealthConditions))
	p.Medications = datatypes.NewJSONSlice(emptyIfNil(r.Medications))
	p.Allergies = datatypes.NewJSONSlice(emptyIfNil(r.Allergies))
	p.SmokingStatus = models.SmokingStatus(r.SmokingStatus)
	p.Exercise = models.ExerciseFrequency(r.Exercise)
	if r.Status != "" {
		p.Status = models.PatientStatus(r.Status)
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// CreatePatient handles registering a new patient.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req PatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient := models.Patient{Status: models.PatientActive}
	req.apply(&patient)

	if err := h.DB.Create(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to create patient: "+err.Error())
		return
	}

	utils.Created(c, "Patient created successfully", patient)
}

// ListPatients handles fetching all patients.
func (h *PatientHandler) ListPatients(c *gin.Context) {
	var patients []models.Patient
	if err := h.DB.Find(&patients).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}

	utils.Success(c, "Patients fetched successfully", patients)
}

// GetPatientByID handles fetching a single patient.
func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	patientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, patientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Patient fetched successfully", patient)
}

// UpdatePatient handles editing a patient record.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	patientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req PatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, patientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	req.apply(&patient)

	if err := h.DB.Save(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to update patient: "+err.Error())
		return
	}

	utils.Success(c, "Patient updated successfully", patient)
}

// DeletePatient handles hard removal of a patient record. The primary flow
// deactivates via status instead.
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	patientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, patientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete patient: "+err.Error())
		return
	}

	utils.Success(c, "Patient deleted successfully", nil)
}
