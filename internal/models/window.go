package models

// DailyWindow is the single-day pair a daily recap reports on.
type DailyWindow struct {
	Yesterday string
	Today     string
}

// ReportWindow is an inclusive calendar-day span.
type ReportWindow struct {
	Start string
	End   string
}

// MonthWindow is the previous calendar month plus its canonical
// "YYYY-MM" key.
type MonthWindow struct {
	ReportWindow
	MonthKey string
}

// DailySummary is everything a daily recap renders: yesterday's derived
// events plus today's early signals.
type DailySummary struct {
	Yesterday string
	Today     string

	ApprovedLeavesYesterday []LeaveRecord
	AbsencesYesterday       []AttendanceRecord
	TardinessYesterday      []TardinessEvent
	EarlyLeavesYesterday    []EarlyLeaveEvent
	OvertimeYesterdayAgg    []AggregateRow

	NotPresentToday    []EmployeeRecord
	PendingLeavesToday []LeaveRecord
	TardinessToday     []TardinessEvent
}

// WindowAggregates is the weekly/monthly reduction over a report window.
type WindowAggregates struct {
	Start string
	End   string

	TardinessAgg   []AggregateRow
	OvertimeAgg    []AggregateRow
	LeaveAgg       []AggregateRow
	Absences       []AttendanceRecord
	TotalLeaveDays int
}
