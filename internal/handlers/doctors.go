package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"practice-admin-server/internal/models"
	"practice-admin-server/internal/utils"
)

// DoctorHandler handles provider directory requests.
type DoctorHandler struct {
	DB *gorm.DB
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(db *gorm.DB) *DoctorHandler {
	return &DoctorHandler{DB: db}
}

// DoctorRequest represents the request body for creating or updating a doctor.
type DoctorRequest struct {
	Name            string   `json:"name" binding:"required"`
	Email           string   `json:"email" binding:"omitempty,email"`
	PhoneNumber     string   `json:"phoneNumber"`
	Specialty       string   `json:"specialty"`
	Qualification   string   `json:"qualification"`
	ExperienceYears int      `json:"experienceYears" binding:"omitempty,min=0"`
	AvailableDays   []string `json:"availableDays"`
}

func (r *DoctorRequest) apply(d *models.Doctor) {
	d.Name = r.Name
	d.Email = r.Email
	d.PhoneNumber = r.PhoneNumber
	d.Specialty = r.Specialty
	d.Qualification = r.Qualification
	d.ExperienceYears = r.ExperienceYears
	d.AvailableDays = datatypes.NewJSONSlice(emptyIfNil(r.AvailableDays))
}

// CreateDoctor handles adding a provider to the directory.
func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var req DoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	for _, day := range req.AvailableDays {
		if !models.ValidWeekday(day) {
			utils.BadRequest(c, "Invalid available day: "+day)
			return
		}
	}

	var doctor models.Doctor
	req.apply(&doctor)

	if err := h.DB.Create(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to create doctor: "+err.Error())
		return
	}

	utils.Created(c, "Doctor created successfully", doctor)
}

// ListDoctors handles fetching the provider directory.
func (h *DoctorHandler) ListDoctors(c *gin.Context) {
	var doctors []models.Doctor
	if err := h.DB.Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}

	utils.Success(c, "Doctors fetched successfully", doctors)
}

// GetDoctorByID handles fetching a single doctor.
func (h *DoctorHandler) GetDoctorByID(c *gin.Context) {
	doctorID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, doctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Doctor fetched successfully", doctor)
}

// UpdateDoctor handles editing a doctor record.
func (h *DoctorHandler) UpdateDoctor(c *gin.Context) {
	doctorID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req DoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	for _, day := range req.AvailableDays {
		if !models.ValidWeekday(day) {
			utils.BadRequest(c, "Invalid available day: "+day)
			return
		}
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, doctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	req.apply(&doctor)

	if err := h.DB.Save(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to update doctor: "+err.Error())
		return
	}

	utils.Success(c, "Doctor updated successfully", doctor)
}

// DeleteDoctor handles removing a doctor from the directory.
func (h *DoctorHandler) DeleteDoctor(c *gin.Context) {
	doctorID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, doctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete doctor: "+err.Error())
		return
	}

	utils.Success(c, "Doctor deleted successfully", nil)
}
