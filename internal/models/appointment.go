package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled   AppointmentStatus = "scheduled"
	StatusConfirmed   AppointmentStatus = "confirmed"
	StatusCancelled   AppointmentStatus = "cancelled"
	StatusRescheduled AppointmentStatus = "rescheduled"
)

// ValidStatus reports whether s is one of the defined appointment statuses.
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCancelled, StatusRescheduled:
		return true
	}
	return false
}

// CanTransition reports whether an appointment may move from one status to
// another. Cancelled is terminal; undefined target values are rejected.
func CanTransition(from, to AppointmentStatus) bool {
	if !ValidStatus(to) {
		return false
	}
	if from == StatusCancelled {
		return false
	}
	return true
}

// Appointment represents a scheduled encounter between a patient and a doctor
type Appointment struct {
	BaseModel
	PatientID       uint              `gorm:"index;not null" json:"patientId"`
	DoctorID        *uint             `gorm:"index" json:"doctorId,omitempty"`
	Date            time.Time         `gorm:"index" json:"date"`
	Status          AppointmentStatus `gorm:"size:20;default:'scheduled'" json:"status"`
	Notes           string            `gorm:"type:text" json:"notes"`
	ActualStartTime *time.Time        `json:"actualStartTime,omitempty"`

	// Relations
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}
