package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"practice-admin-server/internal/analytics"
	"practice-admin-server/internal/models"
	"practice-admin-server/internal/utils"
)

// AnalyticsHandler exposes dashboard rollups computed over the full
// appointment and patient collections.
type AnalyticsHandler struct {
	DB *gorm.DB
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(db *gorm.DB) *AnalyticsHandler {
	return &AnalyticsHandler{DB: db}
}

// GetAppointmentAnalytics returns completion/cancellation rates, the status
// distribution and trend series over a trailing window (default 6 months).
func (h *AnalyticsHandler) GetAppointmentAnalytics(c *gin.Context) {
	months := 6
	if raw := c.Query("range"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			utils.BadRequest(c, "Invalid range, expected a positive number of months")
			return
		}
		months = parsed
	}

	var appointments []models.Appointment
	if err := h.DB.Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	now := time.Now()
	utils.Success(c, "Appointment analytics computed", gin.H{
		"totalAppointments":  len(appointments),
		"completionRate":     analytics.CompletionRate(appointments),
		"cancellationRate":   analytics.CancellationRate(appointments),
		"statusDistribution": analytics.StatusDistribution(appointments),
		"dailyTrend":         analytics.AppointmentTrends(appointments, analytics.IntervalDay, months, now),
		"weeklyTrend":        analytics.AppointmentTrends(appointments, analytics.IntervalWeek, months, now),
		"monthlyTrend":       analytics.AppointmentTrends(appointments, analytics.IntervalMonth, months, now),
	})
}

// GetPatientAnalytics returns demographic distributions, condition
// frequencies, the visit-frequency histogram and the retention rate.
func (h *AnalyticsHandler) GetPatientAnalytics(c *gin.Context) {
	var patients []models.Patient
	if err := h.DB.Find(&patients).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}

	var appointments []models.Appointment
	if err := h.DB.Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	now := time.Now()
	utils.Success(c, "Patient analytics computed", gin.H{
		"totalPatients":        len(patients),
		"ageBands":             analytics.AgeBandDistribution(patients, now),
		"genderDistribution":   analytics.GenderDistribution(patients),
		"regionDistribution":   analytics.RegionDistribution(patients),
		"conditionFrequency":   analytics.ConditionFrequency(patients),
		"visitFrequency":       analytics.VisitFrequencyHistogram(appointments),
		"retentionRate":        analytics.RetentionRate(appointments),
	})
}
