package service

import (
	"time"

	"github.com/noah-isme/greatday-recap-api/internal/models"
)

// minuteEvent is the common shape every event kind reduces to before
// per-employee aggregation.
type minuteEvent struct {
	identity models.Identity
	name     string
	minutes  int
}

// aggregateMinutes groups events by employee id, preserving first-seen
// order so rendering stays deterministic. Events without an employee id
// cannot be keyed and are dropped.
func aggregateMinutes(events []minuteEvent) []models.AggregateRow {
	index := map[string]int{}
	var rows []models.AggregateRow

	for _, e := range events {
		if e.identity.EmpID == "" {
			continue
		}

		i, ok := index[e.identity.EmpID]
		if !ok {
			i = len(rows)
			index[e.identity.EmpID] = i
			rows = append(rows, models.AggregateRow{
				Identity: e.identity,
				Name:     e.name,
			})
		}

		rows[i].Count++
		rows[i].TotalMinutes += e.minutes
	}

	return rows
}

func tardinessMinuteEvents(events []models.TardinessEvent) []minuteEvent {
	out := make([]minuteEvent, 0, len(events))
	for _, e := range events {
		out = append(out, minuteEvent{identity: e.Record.Identity, name: e.Record.FullName, minutes: e.MinutesLate})
	}
	return out
}

func overtimeMinuteEvents(events []models.OvertimeEvent) []minuteEvent {
	out := make([]minuteEvent, 0, len(events))
	for _, e := range events {
		out = append(out, minuteEvent{identity: e.Record.Identity, name: e.Record.FullName, minutes: e.MinutesOvertime})
	}
	return out
}

// daysInclusive counts the calendar days spanned by two canonical day
// strings, both ends included. Unparseable or inverted spans count zero.
func daysInclusive(startDay, endDay string) int {
	start, err := time.Parse(models.DateLayout, startDay)
	if err != nil {
		return 0
	}
	end, err := time.Parse(models.DateLayout, endDay)
	if err != nil {
		return 0
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return 0
	}
	return days
}

// Aggregator reduces classified events into the summaries a recap
// renders.
type Aggregator struct {
	classifier *Classifier
	filter     *ExclusionFilter
}

// NewAggregator constructs an aggregator sharing the classifier's
// exclusion filter.
func NewAggregator(classifier *Classifier, filter *ExclusionFilter) *Aggregator {
	return &Aggregator{classifier: classifier, filter: filter}
}

// BuildWindowAggregates reduces a report window: tardiness and overtime
// per-employee aggregates, approved-leave counts, raw absence events
// and the total in-window leave days.
func (a *Aggregator) BuildWindowAggregates(
	attendance []models.AttendanceRecord,
	overtime []models.OvertimeRecord,
	leaves []models.LeaveRecord,
	startDay, endDay string,
) models.WindowAggregates {
	tardinessEvents := a.classifier.TardinessEvents(attendance, startDay, endDay)
	absenceEvents := a.classifier.AbsenceEvents(attendance, startDay, endDay)
	overtimeEvents := a.classifier.OvertimeEvents(overtime, startDay, endDay)

	leaveIndex := map[string]int{}
	var leaveRows []models.AggregateRow
	totalLeaveDays := 0

	for _, l := range leaves {
		if a.filter.IsExcluded(l.Identity) {
			continue
		}
		if !l.Approved() {
			continue
		}

		start, end := l.Span()
		if start == "" || end == "" || end < startDay || start > endDay {
			continue
		}

		// Clip the leave to the window before counting its days; a
		// leave reaching past either boundary contributes only the
		// in-window overlap.
		overlapStart := start
		if overlapStart < startDay {
			overlapStart = startDay
		}
		overlapEnd := end
		if overlapEnd > endDay {
			overlapEnd = endDay
		}
		totalLeaveDays += daysInclusive(overlapStart, overlapEnd)

		if l.EmpID == "" {
			continue
		}
		i, ok := leaveIndex[l.EmpID]
		if !ok {
			i = len(leaveRows)
			leaveIndex[l.EmpID] = i
			leaveRows = append(leaveRows, models.AggregateRow{
				Identity: l.Identity,
				Name:     l.FullName,
			})
		}
		leaveRows[i].Count++
	}

	return models.WindowAggregates{
		Start:          startDay,
		End:            endDay,
		TardinessAgg:   aggregateMinutes(tardinessMinuteEvents(tardinessEvents)),
		OvertimeAgg:    aggregateMinutes(overtimeMinuteEvents(overtimeEvents)),
		LeaveAgg:       leaveRows,
		Absences:       absenceEvents,
		TotalLeaveDays: totalLeaveDays,
	}
}

// DailySummaryInput carries the fetched collections a daily recap needs.
type DailySummaryInput struct {
	YesterdayAttendance []models.AttendanceRecord
	TodayAttendance     []models.AttendanceRecord
	Leaves              []models.LeaveRecord
	Overtime            []models.OvertimeRecord
	Employees           []models.EmployeeRecord
	Yesterday           string
	Today               string
}

// BuildDailySummary composes the daily recap: yesterday's derived
// events plus today's early signals (who has not clocked in yet, whose
// leave is still pending, who is already late).
func (a *Aggregator) BuildDailySummary(in DailySummaryInput) models.DailySummary {
	yesterdayMetrics := a.classifier.DailyAttendanceMetrics(in.YesterdayAttendance, in.Yesterday)
	todayMetrics := a.classifier.DailyAttendanceMetrics(in.TodayAttendance, in.Today)

	// Presence today is proven by either identity key: an attendance
	// row carrying only an empNo still counts for that employee.
	presentToday := map[string]struct{}{}
	for _, r := range in.TodayAttendance {
		if r.EmpID != "" {
			presentToday["id:"+r.EmpID] = struct{}{}
		}
		if r.EmpNo != "" {
			presentToday["no:"+r.EmpNo] = struct{}{}
		}
	}

	var notPresentToday []models.EmployeeRecord
	for _, e := range in.Employees {
		if a.filter.IsExcluded(e.Identity) {
			continue
		}
		seen := false
		if e.EmpID != "" {
			_, seen = presentToday["id:"+e.EmpID]
		}
		if !seen && e.EmpNo != "" {
			_, seen = presentToday["no:"+e.EmpNo]
		}
		if !seen {
			notPresentToday = append(notPresentToday, e)
		}
	}

	var approvedYesterday, pendingToday []models.LeaveRecord
	for _, l := range in.Leaves {
		if a.filter.IsExcluded(l.Identity) {
			continue
		}
		start, end := l.Span()
		if start == "" || end == "" {
			continue
		}
		if l.Approved() && in.Yesterday >= start && in.Yesterday <= end {
			approvedYesterday = append(approvedYesterday, l)
		}
		if l.Pending() && in.Today >= start && in.Today <= end {
			pendingToday = append(pendingToday, l)
		}
	}

	overtimeYesterday := a.classifier.OvertimeEvents(in.Overtime, in.Yesterday, in.Yesterday)

	return models.DailySummary{
		Yesterday:               in.Yesterday,
		Today:                   in.Today,
		ApprovedLeavesYesterday: approvedYesterday,
		AbsencesYesterday:       yesterdayMetrics.Absences,
		TardinessYesterday:      yesterdayMetrics.Tardiness,
		EarlyLeavesYesterday:    yesterdayMetrics.EarlyLeaves,
		OvertimeYesterdayAgg:    aggregateMinutes(overtimeMinuteEvents(overtimeYesterday)),
		NotPresentToday:         notPresentToday,
		PendingLeavesToday:      pendingToday,
		TardinessToday:          todayMetrics.Tardiness,
	}
}
