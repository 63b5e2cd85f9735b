// Package services – ScheduleService
//
// This file implements the appointment slot generator. Availability is purely
// derived from the current date at call time; nothing is persisted and the
// result is recomputed on every month navigation.
//
// Rules:
//   - current month: every day from today (inclusive) to month end
//   - strictly future month: every day of the month
//   - strictly past month: no days
//   - weekends are not excluded (the client only styles them differently)
//   - every available date carries the same fixed, ordered six-slot list
package services

import (
	"time"

	"github.com/mydoctor-app/go-booking-backend/internal/domain"
)

// TimeSlots is the fixed time-of-day offer for every available date. Order is
// part of the contract.
var TimeSlots = []string{"09:00", "10:00", "11:00", "12:30", "15:00", "17:00"}

// ScheduleService computes bookable dates and time slots.
type ScheduleService struct {
	// Now supplies the current time; overridable in tests.
	Now func() time.Time
}

// NewScheduleService constructs a ScheduleService using the wall clock.
func NewScheduleService() *ScheduleService {
	return &ScheduleService{}
}

// AvailableDates returns the bookable dates of the given month as yyyy-MM-dd
// strings in ascending order.
func (s *ScheduleService) AvailableDates(year int, month time.Month) []string {
	today := s.today()

	first := time.Date(year, month, 1, 0, 0, 0, 0, today.Location())
	last := first.AddDate(0, 1, -1)

	// Strictly past month.
	if last.Before(today) {
		return []string{}
	}

	start := first
	if first.Before(today) {
		// Current month: start from today, which is always included.
		start = today
	}

	out := make([]string, 0, last.Day())
	for d := start; !d.After(last); d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format(domain.DateKeyLayout))
	}
	return out
}

// TimeSlotsForDate returns the fixed slot list for an available date and nil
// for a date in the past or one that fails to parse.
func (s *ScheduleService) TimeSlotsForDate(dateKey string) []string {
	d, err := time.ParseInLocation(domain.DateKeyLayout, dateKey, s.today().Location())
	if err != nil {
		return nil
	}
	if d.Before(s.today()) {
		return nil
	}
	out := make([]string, len(TimeSlots))
	copy(out, TimeSlots)
	return out
}

// IsOfferedSlot reports whether an instant falls on an available date at one
// of the offered times of day.
func (s *ScheduleService) IsOfferedSlot(t time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	if day.Before(s.today()) {
		return false
	}
	hm := t.Format("15:04")
	for _, slot := range TimeSlots {
		if slot == hm {
			return true
		}
	}
	return false
}

// today returns the current local date truncated to midnight.
func (s *ScheduleService) today() time.Time {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	n := now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location())
}
