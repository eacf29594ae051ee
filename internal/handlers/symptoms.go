package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"practice-admin-server/internal/models"
	"practice-admin-server/internal/utils"
)

// SymptomHandler handles symptom-journal requests.
type SymptomHandler struct {
	DB *gorm.DB
}

// NewSymptomHandler creates a new SymptomHandler.
func NewSymptomHandler(db *gorm.DB) *SymptomHandler {
	return &SymptomHandler{DB: db}
}

// CreateSymptomEntryRequest represents the request body for a journal entry.
type CreateSymptomEntryRequest struct {
	Date     time.Time `json:"date" binding:"required"`
	Symptoms []string  `json:"symptoms" binding:"required,min=1"`
	Severity int       `json:"severity" binding:"required,min=1,max=10"`
	Notes    string    `json:"notes"`
}

// CreateSymptomEntry records a symptom-journal entry for a patient.
func (h *SymptomHandler) CreateSymptomEntry(c *gin.Context) {
	patientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CreateSymptomEntryRequest
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

	entry := models.SymptomEntry{
		PatientID: patient.ID,
		Date:      req.Date,
		Symptoms:  datatypes.NewJSONSlice(req.Symptoms),
		Severity:  req.Severity,
		Notes:     req.Notes,
	}

	if err := h.DB.Create(&entry).Error; err != nil {
		utils.InternalServerError(c, "Failed to create symptom entry: "+err.Error())
		return
	}

	utils.Created(c, "Symptom entry created successfully", entry)
}

// ListSymptomEntries fetches a patient's journal, most recent first.
func (h *SymptomHandler) ListSymptomEntries(c *gin.Context) {
	patientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var entries []models.SymptomEntry
	if err := h.DB.Where("patient_id = ?", patientID).Order("date desc").Find(&entries).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch symptom entries: "+err.Error())
		return
	}

	utils.Success(c, "Symptom entries fetched successfully", entries)
}
