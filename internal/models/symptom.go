package models

import (
	"time"

	"gorm.io/datatypes"
)

// SymptomEntry represents one symptom-journal entry for a patient
type SymptomEntry struct {
	BaseModel
	PatientID uint                        `gorm:"index;not null" json:"patientId"`
	Date      time.Time                   `json:"date"`
	Symptoms  datatypes.JSONSlice[string] `json:"symptoms"`
	Severity  int                         `json:"severity"` // 1-10 scale
	Notes     string                      `gorm:"type:text" json:"notes"`

	// Relations
	Patient *Patient `gorm:"foreignKey:PatientID" json:"-"`
}
