package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"practice-admin-server/internal/models"
	"practice-admin-server/internal/utils"
)

// CarePlanHandler handles care-plan requests.
type CarePlanHandler struct {
	DB *gorm.DB
}

// NewCarePlanHandler creates a new CarePlanHandler.
func NewCarePlanHandler(db *gorm.DB) *CarePlanHandler {
	return &CarePlanHandler{DB: db}
}

// CreateCarePlanRequest represents the request body for creating a care plan.
type CreateCarePlanRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	StartDate   time.Time  `json:"startDate" binding:"required"`
	EndDate     *time.Time `json:"endDate"`
}

// CreateCarePlan attaches a new care plan to a patient.
func (h *CarePlanHandler) CreateCarePlan(c *gin.Context) {
	patientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CreateCarePlanRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		utils.BadRequest(c, "End date must not be before start date")
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

	plan := models.CarePlan{
		PatientID:   patient.ID,
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      models.CarePlanActive,
	}

	if err := h.DB.Create(&plan).Error; err != nil {
		utils.InternalServerError(c, "Failed to create care plan: "+err.Error())
		return
	}

	utils.Created(c, "Care plan created successfully", plan)
}

// ListCarePlans fetches all care plans for a patient.
func (h *CarePlanHandler) ListCarePlans(c *gin.Context) {
	patientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var plans []models.CarePlan
	if err := h.DB.Where("patient_id = ?", patientID).Order("start_date desc").Find(&plans).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch care plans: "+err.Error())
		return
	}

	utils.Success(c, "Care plans fetched successfully", plans)
}

// UpdateCarePlanStatusRequest represents the request body for a care-plan status change.
type UpdateCarePlanStatusRequest struct {
	Status models.CarePlanStatus `json:"status" binding:"required,oneof=active paused completed"`
}

// UpdateCarePlanStatus moves a care plan between active, paused and completed.
func (h *CarePlanHandler) UpdateCarePlanStatus(c *gin.Context) {
	planID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateCarePlanStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var plan models.CarePlan
	if err := h.DB.First(&plan, planID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Care plan not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	plan.Status = req.Status
	if err := h.DB.Save(&plan).Error; err != nil {
		utils.InternalServerError(c, "Failed to update care plan: "+err.Error())
		return
	}

	utils.Success(c, "Care plan updated successfully", plan)
}
