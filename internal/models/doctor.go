package models

import (
	"gorm.io/datatypes"
)

// Weekdays is the set of legal values for a doctor's available days.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ValidWeekday reports whether day is one of the seven weekday names.
func ValidWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// Doctor represents a provider record
type Doctor struct {
	BaseModel
	Name            string                      `gorm:"size:255;not null" json:"name"`
	Email           string                      `gorm:"size:255" json:"email,omitempty"`
	PhoneNumber     string                      `gorm:"size:50" json:"phoneNumber,omitempty"`
	Specialty       string                      `gorm:"size:100" json:"specialty,omitempty"`
	Qualification   string                      `gorm:"size:255" json:"qualification,omitempty"`
	ExperienceYears int                         `json:"experienceYears"`
	AvailableDays   datatypes.JSONSlice[string] `json:"availableDays"`

	// Relations (not always preloaded)
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"-"`
}
