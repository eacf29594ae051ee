package models

import "testing"

func TestValidStatus(t *testing.T) {
	valid := []AppointmentStatus{StatusScheduled, StatusConfirmed, StatusCancelled, StatusRescheduled}
	for _, s := range valid {
		if !ValidStatus(s) {
			t.Fatalf("expected %q to be a valid status", s)
		}
	}

	invalid := []AppointmentStatus{"", "pending", "completed", "SCHEDULED", "done"}
	for _, s := range invalid {
		if ValidStatus(s) {
			t.Fatalf("expected %q to be rejected", s)
		}
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{"scheduled to confirmed", StatusScheduled, StatusConfirmed, true},
		{"scheduled to cancelled", StatusScheduled, StatusCancelled, true},
		{"scheduled to rescheduled", StatusScheduled, StatusRescheduled, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"same status is allowed", StatusConfirmed, StatusConfirmed, true},
		{"cancelled is terminal", StatusCancelled, StatusScheduled, false},
		{"cancelled to confirmed", StatusCancelled, StatusConfirmed, false},
		{"cancelled to cancelled", StatusCancelled, StatusCancelled, false},
		{"undefined target", StatusScheduled, "archived", false},
		{"empty target", StatusConfirmed, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanTransition(tc.from, tc.to); got != tc.want {
				t.Fatalf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}
