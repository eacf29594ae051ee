package models

import (
	"time"

	"gorm.io/datatypes"
)

// PatientStatus constrains the soft-classification of a patient record
type PatientStatus string

const (
	PatientActive   PatientStatus = "active"
	PatientInactive PatientStatus = "inactive"
)

// SmokingStatus enumerates patient smoking habits
type SmokingStatus string

const (
	SmokingNever   SmokingStatus = "never"
	SmokingFormer  SmokingStatus = "former"
	SmokingCurrent SmokingStatus = "current"
)

// ExerciseFrequency enumerates how often a patient exercises
type ExerciseFrequency string

const (
	ExerciseNone   ExerciseFrequency = "none"
	ExerciseRare   ExerciseFrequency = "rare"
	ExerciseWeekly ExerciseFrequency = "weekly"
	ExerciseDaily  ExerciseFrequency = "daily"
)

// Patient represents a demographic and medical-summary record
type Patient struct {
	BaseModel
	Name             string                      `gorm:"size:255;not null" json:"name"`
	Email            string                      `gorm:"size:255" json:"email,omitempty"`
	PhoneNumber      string                      `gorm:"size:50" json:"phoneNumber,omitempty"`
	Address          string                      `gorm:"size:255" json:"address,omitempty"`
	DateOfBirth      *time.Time                  `json:"dateOfBirth,omitempty"`
	Gender           string                      `gorm:"size:50" json:"gender,omitempty"`
	Region           string                      `gorm:"size:100" json:"region,omitempty"`
	HealthConditions datatypes.JSONSlice[string] `json:"healthConditions"`
	Medications      datatypes.JSONSlice[string] `json:"medications"`
	Allergies        datatypes.JSONSlice[string] `json:"allergies"`
	SmokingStatus    SmokingStatus               `gorm:"size:20" json:"smokingStatus,omitempty"`
	Exercise         ExerciseFrequency           `gorm:"size:20" json:"exerciseFrequency,omitempty"`
	Status           PatientStatus               `gorm:"size:20;default:'active'" json:"status"`

	// Relations (not always preloaded)
	Appointments   []Appointment  `gorm:"foreignKey:PatientID" json:"-"`
	SymptomEntries []SymptomEntry `gorm:"foreignKey:PatientID" json:"-"`
	CarePlans      []CarePlan     `gorm:"foreignKey:PatientID" json:"-"`
}

// Age returns the patient's age in whole years at the given time, or -1 when
// the date of birth is unknown.
func (p *Patient) Age(now time.Time) int {
	if p.DateOfBirth == nil {
		return -1
	}
	dob := *p.DateOfBirth
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	if years < 0 {
		return -1
	}
	return years
}
