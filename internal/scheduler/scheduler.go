// Package scheduler derives wait-time predictions and time-slot
// recommendations from historical appointment data.
package scheduler

import (
	"errors"
	"sort"
	"time"

	"practice-admin-server/internal/models"
)

var (
	// ErrUnsupportedDuration is returned when the requested slot duration is
	// not one of the supported granularities.
	ErrUnsupportedDuration = errors.New("unsupported slot duration")
)

// Working day boundaries for slot generation.
const (
	dayStartHour = 9
	dayEndHour   = 17
)

// Minutes of extra wait attributed to each appointment already booked near a slot.
const waitPerNeighbor = 10

// Load at or above which a slot is demoted to the alternatives list.
const busyThreshold = 2

// SupportedDurations lists the slot granularities a client may request, in minutes.
var SupportedDurations = []int{15, 30, 45, 60}

// Slot is a candidate time interval for a new appointment.
type Slot struct {
	Start        time.Time `json:"startTime"`
	End          time.Time `json:"endTime"`
	WaitEstimate int       `json:"expectedWaitMinutes"`
	Probability  float64   `json:"selectionProbability"`
}

// AlternativeSlot is a less desirable slot with a human-readable reason.
type AlternativeSlot struct {
	Slot
	Reason string `json:"reason"`
}

// ValidDuration reports whether minutes is a supported slot granularity.
func ValidDuration(minutes int) bool {
	for _, d := range SupportedDurations {
		if d == minutes {
			return true
		}
	}
	return false
}

// PredictWaitTime estimates, in minutes, how long a patient booking with the
// given doctor at the candidate time would wait past the scheduled time. The
// estimate aggregates historical load for the same (doctor, weekday) bucket;
// with no history it returns 0 rather than failing.
func PredictWaitTime(history []models.Appointment, doctorID uint, at time.Time) int {
	weekday := at.Weekday()

	matched := 0
	days := map[string]struct{}{}
	for _, a := range history {
		if a.DoctorID == nil || *a.DoctorID != doctorID {
			continue
		}
		if a.Status == models.StatusCancelled {
			continue
		}
		if a.Date.Weekday() != weekday {
			continue
		}
		matched++
		days[a.Date.Format("2006-01-02")] = struct{}{}
	}

	if matched == 0 {
		return 0
	}

	// Average appointments per historical instance of this weekday, scaled
	// into minutes of expected waiting.
	perDay := matched / len(days)
	if perDay < 1 {
		perDay = 1
	}
	estimate := perDay * waitPerNeighbor
	if estimate > 120 {
		estimate = 120
	}
	return estimate
}

// RecommendSlots produces ranked candidate slots for the given date and
// duration, plus a secondary list of less desirable alternatives. Existing
// scheduled and confirmed appointments for the doctor block overlapping
// slots; cancelled ones do not. A fully booked day yields an empty
// recommended list, not an error.
func RecommendSlots(existing []models.Appointment, doctorID uint, day time.Time, durationMinutes int) ([]Slot, []AlternativeSlot, error) {
	if !ValidDuration(durationMinutes) {
		return nil, nil, ErrUnsupportedDuration
	}
	duration := time.Duration(durationMinutes) * time.Minute

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), dayStartHour, 0, 0, 0, day.Location())
	dayEnd := time.Date(day.Year(), day.Month(), day.Day(), dayEndHour, 0, 0, 0, day.Location())

	booked := bookedRanges(existing, doctorID, dayStart, dayEnd, duration)

	recommended := []Slot{}
	alternatives := []AlternativeSlot{}

	for cur := dayStart; !cur.Add(duration).After(dayEnd); cur = cur.Add(duration) {
		slotEnd := cur.Add(duration)
		if overlapsAny(cur, slotEnd, booked) {
			continue
		}

		load := neighborLoad(cur, booked)
		slot := Slot{
			Start:        cur,
			End:          slotEnd,
			WaitEstimate: load * waitPerNeighbor,
			Probability:  selectionProbability(load),
		}

		if load >= busyThreshold {
			alternatives = append(alternatives, AlternativeSlot{
				Slot:   slot,
				Reason: "high patient volume expected",
			})
			continue
		}
		recommended = append(recommended, slot)
	}

	// Rank by expected wait, earliest start breaking ties.
	sort.SliceStable(recommended, func(i, j int) bool {
		if recommended[i].WaitEstimate != recommended[j].WaitEstimate {
			return recommended[i].WaitEstimate < recommended[j].WaitEstimate
		}
		return recommended[i].Start.Before(recommended[j].Start)
	})

	return recommended, alternatives, nil
}

type timeRange struct {
	start time.Time
	end   time.Time
}

// bookedRanges collects the blocking intervals for the doctor on the target
// day. Stored appointments carry only a start; each blocks one slot duration.
func bookedRanges(existing []models.Appointment, doctorID uint, dayStart, dayEnd time.Time, duration time.Duration) []timeRange {
	var ranges []timeRange
	for _, a := range existing {
		if a.DoctorID == nil || *a.DoctorID != doctorID {
			continue
		}
		if a.Status != models.StatusScheduled && a.Status != models.StatusConfirmed {
			continue
		}
		if !a.Date.Add(duration).After(dayStart) || !a.Date.Before(dayEnd) {
			continue
		}
		ranges = append(ranges, timeRange{start: a.Date, end: a.Date.Add(duration)})
	}
	return ranges
}

// overlapsAny checks the half-open interval [start, end) against every booked range.
func overlapsAny(start, end time.Time, booked []timeRange) bool {
	for _, r := range booked {
		if start.Before(r.end) && r.start.Before(end) {
			return true
		}
	}
	return false
}

// neighborLoad counts booked appointments starting within an hour of the slot.
func neighborLoad(slotStart time.Time, booked []timeRange) int {
	load := 0
	for _, r := range booked {
		diff := r.start.Sub(slotStart)
		if diff < 0 {
			diff = -diff
		}
		if diff <= time.Hour {
			load++
		}
	}
	return load
}

// selectionProbability maps nearby load into a desirability score in [0,1].
func selectionProbability(load int) float64 {
	p := 1.0 - 0.2*float64(load)
	if p < 0.1 {
		p = 0.1
	}
	return p
}
