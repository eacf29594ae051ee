package models

import (
	"time"
)

// CarePlanStatus represents the lifecycle state of a care plan
type CarePlanStatus string

const (
	CarePlanActive    CarePlanStatus = "active"
	CarePlanPaused    CarePlanStatus = "paused"
	CarePlanCompleted CarePlanStatus = "completed"
)

// ValidCarePlanStatus reports whether s is a defined care-plan status.
func ValidCarePlanStatus(s CarePlanStatus) bool {
	switch s {
	case CarePlanActive, CarePlanPaused, CarePlanCompleted:
		return true
	}
	return false
}

// CarePlan represents an ongoing treatment plan for a patient
type CarePlan struct {
	BaseModel
	PatientID   uint           `gorm:"index;not null" json:"patientId"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	StartDate   time.Time      `json:"startDate"`
	EndDate     *time.Time     `json:"endDate,omitempty"`
	Status      CarePlanStatus `gorm:"size:20;default:'active'" json:"status"`

	// Relations
	Patient *Patient `gorm:"foreignKey:PatientID" json:"-"`
}
