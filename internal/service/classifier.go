package service

import (
	"math"
	"time"

	"github.com/noah-isme/greatday-recap-api/internal/models"
)

// Classifier derives typed behavioural events from raw records. All
// day bucketing keys off the record's attributed day (its shift start
// in WIB); records without one never classify.
type Classifier struct {
	filter *ExclusionFilter
}

// NewClassifier constructs a classifier over an exclusion filter.
func NewClassifier(filter *ExclusionFilter) *Classifier {
	return &Classifier{filter: filter}
}

// DailyMetrics bundles one day's attendance-derived events.
type DailyMetrics struct {
	Absences    []models.AttendanceRecord
	Tardiness   []models.TardinessEvent
	EarlyLeaves []models.EarlyLeaveEvent
}

func roundMinutes(d time.Duration) int {
	return int(math.Round(float64(d.Milliseconds()) / 60000))
}

func roundSeconds(d time.Duration) int {
	return int(math.Round(float64(d.Milliseconds()) / 1000))
}

// DailyAttendanceMetrics classifies one day's records: absences,
// tardiness and early leaves attributed to exactly targetDay.
func (c *Classifier) DailyAttendanceMetrics(records []models.AttendanceRecord, targetDay string) DailyMetrics {
	var metrics DailyMetrics

	for _, r := range records {
		if c.filter.IsExcluded(r.Identity) {
			continue
		}
		if r.AttributedDay() != targetDay {
			continue
		}

		if r.AttendCode == models.AttendCodeAbsent && r.DayType != models.DayTypeOff {
			metrics.Absences = append(metrics.Absences, r)
		}

		if ev, ok := tardiness(r); ok {
			metrics.Tardiness = append(metrics.Tardiness, ev)
		}

		shiftEnd := models.ParseWIBTime(r.ShiftEndTime)
		endTime := models.ParseWIBTime(r.EndTime)
		if shiftEnd != nil && endTime != nil && endTime.Before(*shiftEnd) {
			metrics.EarlyLeaves = append(metrics.EarlyLeaves, models.EarlyLeaveEvent{
				Record:       r,
				MinutesEarly: roundMinutes(shiftEnd.Sub(*endTime)),
			})
		}
	}

	return metrics
}

// tardiness emits an event only for a clock-in strictly later than the
// shift start; equal instants emit nothing. Minute and second values
// derive from the same delta.
func tardiness(r models.AttendanceRecord) (models.TardinessEvent, bool) {
	shiftStart := models.ParseWIBTime(r.ShiftStartTime)
	startTime := models.ParseWIBTime(r.StartTime)
	if shiftStart == nil || startTime == nil || !startTime.After(*shiftStart) {
		return models.TardinessEvent{}, false
	}

	delta := startTime.Sub(*shiftStart)
	return models.TardinessEvent{
		Record:      r,
		MinutesLate: roundMinutes(delta),
		SecondsLate: roundSeconds(delta),
	}, true
}

// NotPresentByDate lists records attributed to targetDay that have no
// actual clock-in yet. Used only for single-day "who hasn't shown up"
// queries.
func (c *Classifier) NotPresentByDate(records []models.AttendanceRecord, targetDay string) []models.AttendanceRecord {
	var result []models.AttendanceRecord
	for _, r := range records {
		if c.filter.IsExcluded(r.Identity) {
			continue
		}
		if r.AttributedDay() != targetDay {
			continue
		}
		if models.ParseWIBTime(r.StartTime) == nil {
			result = append(result, r)
		}
	}
	return result
}

// TardinessEvents classifies tardiness across an inclusive day range.
func (c *Classifier) TardinessEvents(records []models.AttendanceRecord, startDay, endDay string) []models.TardinessEvent {
	var events []models.TardinessEvent
	for _, r := range records {
		if c.filter.IsExcluded(r.Identity) {
			continue
		}
		ev, ok := tardiness(r)
		if !ok {
			continue
		}
		day := r.AttributedDay()
		if day < startDay || day > endDay {
			continue
		}
		events = append(events, ev)
	}
	return events
}

// AbsenceEvents classifies absences across an inclusive day range.
func (c *Classifier) AbsenceEvents(records []models.AttendanceRecord, startDay, endDay string) []models.AttendanceRecord {
	var events []models.AttendanceRecord
	for _, r := range records {
		if c.filter.IsExcluded(r.Identity) {
			continue
		}
		day := r.AttributedDay()
		if day == "" || day < startDay || day > endDay {
			continue
		}
		if r.AttendCode == models.AttendCodeAbsent && r.DayType != models.DayTypeOff {
			events = append(events, r)
		}
	}
	return events
}

// OvertimeEvents classifies approved overtime across an inclusive day
// range. The day comes from the overtime's own date field, and corrupt
// hours still count as an event with zero minutes.
func (c *Classifier) OvertimeEvents(records []models.OvertimeRecord, startDay, endDay string) []models.OvertimeEvent {
	var events []models.OvertimeEvent
	for _, r := range records {
		if c.filter.IsExcluded(r.Identity) {
			continue
		}
		if r.Status != models.StatusApproved {
			continue
		}
		day := models.DayOf(r.OvtDate)
		if day == "" || day < startDay || day > endDay {
			continue
		}
		events = append(events, models.OvertimeEvent{
			Record:          r,
			MinutesOvertime: r.Minutes(),
		})
	}
	return events
}
