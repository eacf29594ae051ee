// Package analytics computes dashboard rollups from in-memory collections of
// appointments and patients. Every function is a pure, order-independent
// derivation: the same input always yields the same output, and empty input
// yields zero values rather than errors.
package analytics

import (
	"fmt"
	"math"
	"time"

	"practice-admin-server/internal/models"
)

// Interval selects the bucket width for trend series.
type Interval string

const (
	IntervalDay   Interval = "day"
	IntervalWeek  Interval = "week"
	IntervalMonth Interval = "month"
)

// AgeBands are the fixed age groupings used by the dashboard.
var AgeBands = []string{"0-17", "18-30", "31-45", "46-60", "61+"}

// TrendPoint is one bucket of a time-bucketed appointment count series.
type TrendPoint struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}

// CompletionRate returns the share of confirmed appointments as a rounded
// percentage. An empty list yields 0.
func CompletionRate(appointments []models.Appointment) int {
	return statusRate(appointments, models.StatusConfirmed)
}

// CancellationRate returns the share of cancelled appointments as a rounded
// percentage. An empty list yields 0.
func CancellationRate(appointments []models.Appointment) int {
	return statusRate(appointments, models.StatusCancelled)
}

func statusRate(appointments []models.Appointment, status models.AppointmentStatus) int {
	if len(appointments) == 0 {
		return 0
	}
	count := 0
	for _, a := range appointments {
		if a.Status == status {
			count++
		}
	}
	return int(math.Round(float64(count) / float64(len(appointments)) * 100))
}

// StatusDistribution counts appointments per status value.
func StatusDistribution(appointments []models.Appointment) map[string]int {
	dist := map[string]int{}
	for _, a := range appointments {
		dist[string(a.Status)]++
	}
	return dist
}

// AppointmentTrends partitions appointments into calendar-aligned buckets
// over a trailing window of the given number of months, ending at now. Empty
// buckets are included so charts render a continuous series.
func AppointmentTrends(appointments []models.Appointment, interval Interval, months int, now time.Time) []TrendPoint {
	if months <= 0 {
		months = 6
	}

	windowStart := bucketStart(now.AddDate(0, -months, 0), interval)
	windowEnd := now

	counts := map[string]int{}
	for _, a := range appointments {
		if a.Date.Before(windowStart) || a.Date.After(windowEnd) {
			continue
		}
		counts[bucketKey(a.Date, interval)]++
	}

	series := []TrendPoint{}
	for cur := windowStart; !cur.After(windowEnd); cur = nextBucket(cur, interval) {
		key := bucketKey(cur, interval)
		series = append(series, TrendPoint{Bucket: key, Count: counts[key]})
	}
	return series
}

// bucketStart aligns t to the calendar start of its bucket.
func bucketStart(t time.Time, interval Interval) time.Time {
	switch interval {
	case IntervalWeek:
		// ISO weeks start on Monday.
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case IntervalMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
}

func nextBucket(t time.Time, interval Interval) time.Time {
	switch interval {
	case IntervalWeek:
		return t.AddDate(0, 0, 7)
	case IntervalMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

func bucketKey(t time.Time, interval Interval) string {
	switch interval {
	case IntervalWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case IntervalMonth:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

// AgeBandDistribution groups patients into the five fixed age bands. Patients
// without a date of birth are skipped.
func AgeBandDistribution(patients []models.Patient, now time.Time) map[string]int {
	dist := map[string]int{}
	for _, band := range AgeBands {
		dist[band] = 0
	}
	for i := range patients {
		age := patients[i].Age(now)
		if age < 0 {
			continue
		}
		dist[ageBand(age)]++
	}
	return dist
}

func ageBand(age int) string {
	switch {
	case age <= 17:
		return "0-17"
	case age <= 30:
		return "18-30"
	case age <= 45:
		return "31-45"
	case age <= 60:
		return "46-60"
	default:
		return "61+"
	}
}

// GenderDistribution counts patients per literal gender field value.
func GenderDistribution(patients []models.Patient) map[string]int {
	dist := map[string]int{}
	for _, p := range patients {
		if p.Gender == "" {
			continue
		}
		dist[p.Gender]++
	}
	return dist
}

// RegionDistribution counts patients per literal region field value.
func RegionDistribution(patients []models.Patient) map[string]int {
	dist := map[string]int{}
	for _, p := range patients {
		if p.Region == "" {
			continue
		}
		dist[p.Region]++
	}
	return dist
}

// ConditionFrequency flattens every patient's health-condition array and
// counts occurrences per condition.
func ConditionFrequency(patients []models.Patient) map[string]int {
	freq := map[string]int{}
	for _, p := range patients {
		for _, cond := range p.HealthConditions {
			if cond == "" {
				continue
			}
			freq[cond]++
		}
	}
	return freq
}

// VisitFrequencyHistogram counts how many patients had exactly k appointments,
// keyed by k.
func VisitFrequencyHistogram(appointments []models.Appointment) map[int]int {
	perPatient := map[uint]int{}
	for _, a := range appointments {
		perPatient[a.PatientID]++
	}
	hist := map[int]int{}
	for _, visits := range perPatient {
		hist[visits]++
	}
	return hist
}

// RetentionRate returns the fraction of patients with more than one visit as
// a rounded percentage. No appointments yields 0.
func RetentionRate(appointments []models.Appointment) int {
	perPatient := map[uint]int{}
	for _, a := range appointments {
		perPatient[a.PatientID]++
	}
	if len(perPatient) == 0 {
		return 0
	}
	returning := 0
	for _, visits := range perPatient {
		if visits > 1 {
			returning++
		}
	}
	return int(math.Round(float64(returning) / float64(len(perPatient)) * 100))
}
