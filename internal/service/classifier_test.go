package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/greatday-recap-api/internal/models"
)

func attendance(empID, shiftStart, start string) models.AttendanceRecord {
	return models.AttendanceRecord{
		Identity:       models.Identity{EmpID: empID},
		ShiftStartTime: shiftStart,
		StartTime:      start,
	}
}

func newTestClassifier(excludedIDs ...string) *Classifier {
	return NewClassifier(NewExclusionFilter(excludedIDs, nil))
}

func TestDailyAttendanceMetricsTardiness(t *testing.T) {
	c := newTestClassifier()

	records := []models.AttendanceRecord{
		// 8 minutes late.
		attendance("E1", "2025-11-11T08:00:00", "2025-11-11T08:08:00"),
		// Exactly on time emits nothing.
		attendance("E2", "2025-11-11T08:00:00", "2025-11-11T08:00:00"),
		// Early emits nothing.
		attendance("E3", "2025-11-11T08:00:00", "2025-11-11T07:55:00"),
		// Late on a different day is out of scope.
		attendance("E4", "2025-11-10T08:00:00", "2025-11-10T08:30:00"),
	}

	metrics := c.DailyAttendanceMetrics(records, "2025-11-11")
	require.Len(t, metrics.Tardiness, 1)
	assert.Equal(t, "E1", metrics.Tardiness[0].Record.EmpID)
	assert.Equal(t, 8, metrics.Tardiness[0].MinutesLate)
	assert.Equal(t, 480, metrics.Tardiness[0].SecondsLate)
}

func TestTardinessSubMinuteDelta(t *testing.T) {
	c := newTestClassifier()

	metrics := c.DailyAttendanceMetrics([]models.AttendanceRecord{
		attendance("E1", "2025-11-11T08:00:00", "2025-11-11T08:00:25"),
	}, "2025-11-11")

	require.Len(t, metrics.Tardiness, 1)
	assert.Equal(t, 0, metrics.Tardiness[0].MinutesLate)
	assert.Equal(t, 25, metrics.Tardiness[0].SecondsLate)
}

func TestTardinessZSuffixIsWallClock(t *testing.T) {
	c := newTestClassifier()

	// The trailing Z is upstream decoration; both values read as WIB
	// wall clock, so this is 5 minutes late, not 5 minutes plus 7 hours.
	metrics := c.DailyAttendanceMetrics([]models.AttendanceRecord{
		attendance("E1", "2025-11-11T08:00:00Z", "2025-11-11T08:05:00"),
	}, "2025-11-11")

	require.Len(t, metrics.Tardiness, 1)
	assert.Equal(t, 5, metrics.Tardiness[0].MinutesLate)
}

func TestTardinessSkippedWithoutShiftStart(t *testing.T) {
	c := newTestClassifier()

	metrics := c.DailyAttendanceMetrics([]models.AttendanceRecord{
		attendance("E1", "", "2025-11-11T08:30:00"),
		attendance("E2", "not-a-date", "2025-11-11T08:30:00"),
	}, "2025-11-11")

	assert.Empty(t, metrics.Tardiness)
}

func TestDailyAttendanceMetricsAbsences(t *testing.T) {
	c := newTestClassifier()

	abs := attendance("E1", "2025-11-11T08:00:00", "")
	abs.AttendCode = models.AttendCodeAbsent

	// ABS on a scheduled day off is not an absence.
	off := attendance("E2", "2025-11-11T08:00:00", "")
	off.AttendCode = models.AttendCodeAbsent
	off.DayType = models.DayTypeOff

	metrics := c.DailyAttendanceMetrics([]models.AttendanceRecord{abs, off}, "2025-11-11")
	require.Len(t, metrics.Absences, 1)
	assert.Equal(t, "E1", metrics.Absences[0].EmpID)
}

func TestDailyAttendanceMetricsEarlyLeave(t *testing.T) {
	c := newTestClassifier()

	early := attendance("E1", "2025-11-11T08:00:00", "2025-11-11T08:00:00")
	early.ShiftEndTime = "2025-11-11T17:00:00"
	early.EndTime = "2025-11-11T16:30:00"

	onTime := attendance("E2", "2025-11-11T08:00:00", "2025-11-11T08:00:00")
	onTime.ShiftEndTime = "2025-11-11T17:00:00"
	onTime.EndTime = "2025-11-11T17:00:00"

	metrics := c.DailyAttendanceMetrics([]models.AttendanceRecord{early, onTime}, "2025-11-11")
	require.Len(t, metrics.EarlyLeaves, 1)
	assert.Equal(t, "E1", metrics.EarlyLeaves[0].Record.EmpID)
	assert.Equal(t, 30, metrics.EarlyLeaves[0].MinutesEarly)
}

func TestClassifierHonoursExclusions(t *testing.T) {
	c := newTestClassifier("DO230167")

	metrics := c.DailyAttendanceMetrics([]models.AttendanceRecord{
		attendance("DO230167", "2025-11-11T08:00:00", "2025-11-11T09:00:00"),
	}, "2025-11-11")

	assert.Empty(t, metrics.Tardiness)
}

func TestNotPresentByDate(t *testing.T) {
	c := newTestClassifier()

	present := attendance("E1", "2025-11-12T08:00:00", "2025-11-12T07:58:00")
	missing := attendance("E2", "2025-11-12T08:00:00", "")

	got := c.NotPresentByDate([]models.AttendanceRecord{present, missing}, "2025-11-12")
	require.Len(t, got, 1)
	assert.Equal(t, "E2", got[0].EmpID)
}

func TestTardinessEventsRange(t *testing.T) {
	c := newTestClassifier()

	records := []models.AttendanceRecord{
		attendance("E1", "2025-11-10T08:00:00", "2025-11-10T08:10:00"),
		attendance("E1", "2025-11-14T08:00:00", "2025-11-14T08:05:00"),
		// Saturday, outside the Monday-Friday range.
		attendance("E1", "2025-11-15T08:00:00", "2025-11-15T08:20:00"),
	}

	events := c.TardinessEvents(records, "2025-11-10", "2025-11-14")
	assert.Len(t, events, 2)
}

func TestOvertimeEvents(t *testing.T) {
	c := newTestClassifier()

	records := []models.OvertimeRecord{
		{Identity: models.Identity{EmpID: "E1"}, Status: models.StatusApproved, OvtDate: "2025-10-03", OvtHours: "1.5"},
		{Identity: models.Identity{EmpID: "E2"}, Status: models.StatusPending, OvtDate: "2025-10-03", OvtHours: "2"},
		{Identity: models.Identity{EmpID: "E3"}, Status: models.StatusApproved, OvtDate: "2025-09-30", OvtHours: "2"},
		// Corrupt hours still classify as an approved event.
		{Identity: models.Identity{EmpID: "E4"}, Status: models.StatusApproved, OvtDate: "2025-10-10", OvtHours: "abc"},
	}

	events := c.OvertimeEvents(records, "2025-10-01", "2025-10-31")
	require.Len(t, events, 2)
	assert.Equal(t, "E1", events[0].Record.EmpID)
	assert.Equal(t, 90, events[0].MinutesOvertime)
	assert.Equal(t, "E4", events[1].Record.EmpID)
	assert.Equal(t, 0, events[1].MinutesOvertime)
}
